package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathNetwork(t *testing.T, n int) *Network {
	t.Helper()
	links := make([]Link, 0, n-1)
	for i := 0; i < n-1; i++ {
		links = append(links, Link{From: NodeID(i), To: NodeID(i + 1)})
	}
	net, err := NewNetwork(n, links, false)
	require.NoError(t, err)
	return net
}

// TestNewNetwork_UndirectedMirrorsLinks tests that undirected links are
// traversable in both directions
func TestNewNetwork_UndirectedMirrorsLinks(t *testing.T) {
	net := pathNetwork(t, 3)

	assert.Equal(t, 3, net.N())
	assert.Equal(t, 2, net.NumLinks())
	assert.False(t, net.Directed())

	// Path 0-1-2: endpoints have degree 1, the middle node degree 2.
	assert.Equal(t, 1, net.Degree(0))
	assert.Equal(t, 2, net.Degree(1))
	assert.Equal(t, 1, net.Degree(2))

	nbrs, wts := net.adjacency(1)
	assert.ElementsMatch(t, []NodeID{0, 2}, nbrs)
	assert.Equal(t, []float64{1.0, 1.0}, wts)
}

// TestNewNetwork_DirectedKeepsOneDirection tests that directed links are
// only traversable from source to target
func TestNewNetwork_DirectedKeepsOneDirection(t *testing.T) {
	net, err := NewNetwork(2, []Link{{From: 0, To: 1}}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, net.Degree(0))
	assert.Equal(t, 0, net.Degree(1))
}

// TestNewNetwork_SelfLoopsSkipped tests that self-loops are dropped and do
// not count as links
func TestNewNetwork_SelfLoopsSkipped(t *testing.T) {
	net, err := NewNetwork(2, []Link{{From: 0, To: 0}, {From: 0, To: 1}}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, net.NumLinks())
	assert.Equal(t, 1, net.Degree(0))
}

// TestNewNetwork_ParallelLinksKept tests that duplicate links remain
// independent transmission opportunities
func TestNewNetwork_ParallelLinksKept(t *testing.T) {
	net, err := NewNetwork(2, []Link{{From: 0, To: 1}, {From: 0, To: 1}}, false)
	require.NoError(t, err)

	assert.Equal(t, 2, net.NumLinks())
	assert.Equal(t, 2, net.Degree(0))
	assert.Equal(t, 2, net.Degree(1))
}

// TestNewNetwork_ZeroWeightMeansUnit tests the unweighted default
func TestNewNetwork_ZeroWeightMeansUnit(t *testing.T) {
	net, err := NewNetwork(2, []Link{{From: 0, To: 1, Weight: 0}}, false)
	require.NoError(t, err)

	_, wts := net.adjacency(0)
	assert.Equal(t, []float64{1.0}, wts)
}

// TestNewNetwork_RejectsBadLinks tests endpoint range and weight validation
func TestNewNetwork_RejectsBadLinks(t *testing.T) {
	cases := []struct {
		name  string
		nodes int
		links []Link
	}{
		{"negative nodes", -1, nil},
		{"endpoint out of range", 2, []Link{{From: 0, To: 2}}},
		{"negative endpoint", 2, []Link{{From: -1, To: 1}}},
		{"negative weight", 2, []Link{{From: 0, To: 1, Weight: -0.5}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewNetwork(tc.nodes, tc.links, false)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))
		})
	}
}

// TestNetwork_DegreeStatistics tests MeanDegree, MaxDegree and DegreeCounts
// on a star network
func TestNetwork_DegreeStatistics(t *testing.T) {
	// Star: hub 0 connected to 1..4.
	links := []Link{{0, 1, 0}, {0, 2, 0}, {0, 3, 0}, {0, 4, 0}}
	net, err := NewNetwork(5, links, false)
	require.NoError(t, err)

	assert.InDelta(t, 8.0/5.0, net.MeanDegree(), 1e-12)
	assert.Equal(t, 4, net.MaxDegree())

	counts := net.DegreeCounts()
	require.Len(t, counts, 5) // k = 0..4
	assert.Equal(t, []float64{0, 4, 0, 0, 1}, counts)
}

// TestNetwork_EmptyNetwork tests the zero-node edge case
func TestNetwork_EmptyNetwork(t *testing.T) {
	net, err := NewNetwork(0, nil, false)
	require.NoError(t, err)
	assert.Equal(t, 0, net.N())
	assert.Equal(t, 0.0, net.MeanDegree())
}
