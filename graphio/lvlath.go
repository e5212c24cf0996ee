package graphio

import (
	"fmt"

	"github.com/katalvlaran/lvlath/core"

	"github.com/epinet-sim/epinet-sim/sim"
)

// FromLvlath converts an lvlath graph into the engine's Network. The graph
// may be directed or undirected, weighted or not, and may carry parallel
// edges; self-loops are dropped by the Network constructor. Integer edge
// weights become transmission multipliers. On an unweighted graph every
// edge carries the mandatory weight zero and gets unit weight; on a
// weighted graph an explicit zero means the contact never transmits, so the
// edge is omitted. The returned map resolves vertex IDs to NodeIDs;
// lvlath's Vertices() is already sorted, so the assignment is
// deterministic.
func FromLvlath(g *core.Graph) (*sim.Network, map[string]sim.NodeID, error) {
	if g == nil {
		return nil, nil, fmt.Errorf("%w: graph must not be nil", sim.ErrInvalidParameter)
	}

	vertices := g.Vertices()
	idOf := make(map[string]sim.NodeID, len(vertices))
	for i, v := range vertices {
		idOf[v] = sim.NodeID(i)
	}

	// A mixed graph (per-edge directedness overrides) is built as a directed
	// network with explicit mirror links for its undirected edges.
	directed := g.Directed() || g.MixedEdges()

	weighted := g.Weighted()
	edges := g.Edges()
	links := make([]sim.Link, 0, len(edges))
	for _, e := range edges {
		w := float64(e.Weight)
		if w < 0 {
			return nil, nil, fmt.Errorf("%w: edge %s has negative weight %v", sim.ErrInvalidParameter, e.ID, e.Weight)
		}
		if w == 0 {
			if weighted {
				// Explicit zero rate on a weighted graph: no transmission
				// opportunity at all.
				continue
			}
			w = 1.0
		}
		links = append(links, sim.Link{From: idOf[e.From], To: idOf[e.To], Weight: w})
		if directed && !e.Directed {
			links = append(links, sim.Link{From: idOf[e.To], To: idOf[e.From], Weight: w})
		}
	}

	net, err := sim.NewNetwork(len(vertices), links, directed)
	if err != nil {
		return nil, nil, err
	}
	return net, idOf, nil
}
