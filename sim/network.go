package sim

import (
	"fmt"
)

// NodeID indexes a node in a Network. IDs are dense, 0..N-1.
type NodeID int

// Link describes one contact used to build a Network. Weight scales the
// transmission rate across this contact; the zero value means unit weight.
type Link struct {
	From, To NodeID
	Weight   float64
}

// Network is an immutable contact network. Adjacency is stored in CSR form
// (one offset per node into a flat neighbor array), so a run touches no maps
// and no pointers while walking neighbors. After construction a Network is
// never mutated and is safe to share across concurrently executing runs.
type Network struct {
	n        int
	directed bool

	// CSR adjacency: neighbors of u are neighbors[offsets[u]:offsets[u+1]],
	// with parallel transmission weights.
	offsets   []int
	neighbors []NodeID
	weights   []float64

	numLinks int
}

// NewNetwork builds a Network over numNodes nodes from the given links.
// For undirected networks each link is indexed in both directions. Self-loops
// are skipped (they cannot transmit). Parallel links are kept: each one is an
// independent transmission opportunity. A link with a negative weight or an
// endpoint outside [0, numNodes) is rejected.
func NewNetwork(numNodes int, links []Link, directed bool) (*Network, error) {
	if numNodes < 0 {
		return nil, fmt.Errorf("%w: numNodes must be non-negative, got %d", ErrInvalidParameter, numNodes)
	}

	net := &Network{n: numNodes, directed: directed}

	degree := make([]int, numNodes)
	kept := 0
	for _, l := range links {
		if l.From < 0 || int(l.From) >= numNodes || l.To < 0 || int(l.To) >= numNodes {
			return nil, fmt.Errorf("%w: link %d-%d outside node range [0,%d)", ErrInvalidParameter, l.From, l.To, numNodes)
		}
		if l.Weight < 0 {
			return nil, fmt.Errorf("%w: link %d-%d has negative weight %g", ErrInvalidParameter, l.From, l.To, l.Weight)
		}
		if l.From == l.To {
			continue // self-loops are ignored
		}
		degree[l.From]++
		if !directed {
			degree[l.To]++
		}
		kept++
	}
	net.numLinks = kept

	net.offsets = make([]int, numNodes+1)
	for u := 0; u < numNodes; u++ {
		net.offsets[u+1] = net.offsets[u] + degree[u]
	}
	total := net.offsets[numNodes]
	net.neighbors = make([]NodeID, total)
	net.weights = make([]float64, total)

	fill := make([]int, numNodes)
	copy(fill, net.offsets[:numNodes])
	add := func(from, to NodeID, w float64) {
		net.neighbors[fill[from]] = to
		net.weights[fill[from]] = w
		fill[from]++
	}
	for _, l := range links {
		if l.From == l.To {
			continue
		}
		w := l.Weight
		if w == 0 {
			w = 1.0
		}
		add(l.From, l.To, w)
		if !directed {
			add(l.To, l.From, w)
		}
	}

	return net, nil
}

// N returns the number of nodes.
func (net *Network) N() int { return net.n }

// NumLinks returns the number of links the network was built from,
// excluding skipped self-loops.
func (net *Network) NumLinks() int { return net.numLinks }

// Directed reports whether transmission follows links in one direction only.
func (net *Network) Directed() bool { return net.directed }

// adjacency returns the neighbor and weight slices for u. Callers must not
// mutate the returned slices.
func (net *Network) adjacency(u NodeID) ([]NodeID, []float64) {
	lo, hi := net.offsets[u], net.offsets[u+1]
	return net.neighbors[lo:hi], net.weights[lo:hi]
}

// Degree returns the out-degree of u (counting parallel links).
func (net *Network) Degree(u NodeID) int {
	return net.offsets[u+1] - net.offsets[u]
}

// MeanDegree returns the average out-degree.
func (net *Network) MeanDegree() float64 {
	if net.n == 0 {
		return 0
	}
	return float64(len(net.neighbors)) / float64(net.n)
}

// MaxDegree returns the largest out-degree in the network.
func (net *Network) MaxDegree() int {
	max := 0
	for u := 0; u < net.n; u++ {
		if d := net.Degree(NodeID(u)); d > max {
			max = d
		}
	}
	return max
}

// DegreeCounts returns Nk, where Nk[k] is the number of nodes with degree k,
// for k = 0..MaxDegree. This is the degree-distribution summary consumed by
// the analytic collaborator.
func (net *Network) DegreeCounts() []float64 {
	counts := make([]float64, net.MaxDegree()+1)
	for u := 0; u < net.n; u++ {
		counts[net.Degree(NodeID(u))]++
	}
	return counts
}
