package analytic

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSIRHeterogeneousMeanfield_PureRecovery checks the tau=0 closed form
// per degree class
func TestSIRHeterogeneousMeanfield_PureRecovery(t *testing.T) {
	// Two degree classes (k=1 and k=3), 10 infected in each.
	sk0 := []float64{0, 40, 0, 40}
	ik0 := []float64{0, 10, 0, 10}
	rk0 := []float64{0, 0, 0, 0}

	traj, err := SIRHeterogeneousMeanfield(sk0, ik0, rk0, 0, 0.5, Grid{TMax: 10, Count: 101})
	require.NoError(t, err)

	for i, tt := range traj.T {
		assert.InDelta(t, 20*math.Exp(-0.5*tt), traj.I[i], 1e-4, "t=%g", tt)
		assert.InDelta(t, 80.0, traj.S[i], 1e-8)
	}
	checkConserved(t, traj, 100)
}

// TestSIRHeterogeneousMeanfield_Rejections tests shape and edge validation
func TestSIRHeterogeneousMeanfield_Rejections(t *testing.T) {
	_, err := SIRHeterogeneousMeanfield([]float64{1, 2}, []float64{1}, []float64{0, 0}, 1, 1, Grid{TMax: 10, Count: 11})
	assert.True(t, errors.Is(err, ErrBadGrid))

	// All mass at degree zero: nothing can transmit.
	_, err = SIRHeterogeneousMeanfield([]float64{90}, []float64{10}, []float64{0}, 1, 1, Grid{TMax: 10, Count: 11})
	assert.True(t, errors.Is(err, ErrBadGrid))
}

// TestSIRHeterogeneousMeanfieldFromGraph tests graph seeding and outbreak
// monotonicity
func TestSIRHeterogeneousMeanfieldFromGraph(t *testing.T) {
	rho := 0.01
	traj, err := SIRHeterogeneousMeanfieldFromGraph(ringNetwork(t, 500), 1.5, 1.0, &rho, Grid{TMax: 15, Count: 301})
	require.NoError(t, err)
	checkConserved(t, traj, 500)

	assert.InDelta(t, 495.0, traj.S[0], 1e-9)
	assert.InDelta(t, 5.0, traj.I[0], 1e-9)
	for i := 1; i < len(traj.T); i++ {
		assert.LessOrEqual(t, traj.S[i], traj.S[i-1]+1e-9)
		assert.GreaterOrEqual(t, traj.R[i], traj.R[i-1]-1e-9)
	}
}

// TestSISHeterogeneousMeanfield_Conservation tests S+I conservation per run
func TestSISHeterogeneousMeanfield_Conservation(t *testing.T) {
	sk0 := []float64{0, 0, 45, 0, 45}
	ik0 := []float64{0, 0, 5, 0, 5}

	traj, err := SISHeterogeneousMeanfield(sk0, ik0, 0.8, 1.0, Grid{TMax: 20, Count: 201})
	require.NoError(t, err)

	for i := range traj.T {
		assert.InDelta(t, 100.0, traj.S[i]+traj.I[i], 1e-6)
		assert.Equal(t, 0.0, traj.R[i])
	}
}

// TestSISHeterogeneousMeanfieldFromGraph tests the SIS graph entry point
func TestSISHeterogeneousMeanfieldFromGraph(t *testing.T) {
	rho := 0.1
	traj, err := SISHeterogeneousMeanfieldFromGraph(ringNetwork(t, 100), 1.0, 0.5, &rho, Grid{TMax: 10, Count: 101})
	require.NoError(t, err)

	assert.InDelta(t, 90.0, traj.S[0], 1e-9)
	assert.InDelta(t, 10.0, traj.I[0], 1e-9)
}
