// Package graphio loads contact networks from edge-list files and adapts
// graphs built with external graph libraries into the engine's Network type.
// Node identifiers are assigned deterministically (labels sorted ascending),
// so a fixed seed reproduces the same run regardless of input ordering.
package graphio

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/epinet-sim/epinet-sim/sim"
)

// Options controls edge-list parsing.
type Options struct {
	// Comma is the field delimiter; zero means ','.
	Comma rune
	// Directed builds a directed network (transmission follows edges one
	// way only).
	Directed bool
}

// ReadEdgeList parses an edge-list file with rows of the form
//
//	src,dst[,weight]
//
// and builds the Network. Lines starting with '#' are comments. A missing
// weight column means unit weight. The returned slice maps each NodeID back
// to its label. Duplicate rows become parallel links, i.e. independent
// transmission opportunities.
func ReadEdgeList(path string, opts Options) (*sim.Network, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open edge list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ','
	if opts.Comma != 0 {
		r.Comma = opts.Comma
	}
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read edge list: %w", err)
	}

	type rawEdge struct {
		src, dst string
		weight   float64
	}
	edges := make([]rawEdge, 0, len(rows))
	labelSet := make(map[string]bool)
	for i, row := range rows {
		if len(row) != 2 && len(row) != 3 {
			return nil, nil, fmt.Errorf("edge list row %d: expected 2 or 3 columns, got %d", i+1, len(row))
		}
		e := rawEdge{src: row[0], dst: row[1], weight: 1.0}
		if len(row) == 3 {
			w, err := strconv.ParseFloat(row[2], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("edge list row %d: invalid weight: %w", i+1, err)
			}
			e.weight = w
		}
		edges = append(edges, e)
		labelSet[e.src] = true
		labelSet[e.dst] = true
	}

	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	idOf := make(map[string]sim.NodeID, len(labels))
	for i, l := range labels {
		idOf[l] = sim.NodeID(i)
	}

	links := make([]sim.Link, len(edges))
	for i, e := range edges {
		links[i] = sim.Link{From: idOf[e.src], To: idOf[e.dst], Weight: e.weight}
	}
	net, err := sim.NewNetwork(len(labels), links, opts.Directed)
	if err != nil {
		return nil, nil, err
	}
	return net, labels, nil
}
