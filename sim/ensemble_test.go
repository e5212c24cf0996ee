package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunEnsemble_ParallelismInvariance tests that the ensemble mean does
// not depend on how many runs execute concurrently
func TestRunEnsemble_ParallelismInvariance(t *testing.T) {
	net := ringNetwork(t, 30)
	cfg := RunConfig{Tau: 1.5, Gamma: 1.0, TMax: math.Inf(1), Seed: 42}
	grid := []float64{0, 1, 2, 5, 10}

	serial, err := RunEnsemble(net, ModelSIR, cfg, EnsembleConfig{Iterations: 16, Parallelism: 1, ReportTimes: grid})
	require.NoError(t, err)
	parallel, err := RunEnsemble(net, ModelSIR, cfg, EnsembleConfig{Iterations: 16, Parallelism: 8, ReportTimes: grid})
	require.NoError(t, err)

	assert.Equal(t, serial.MeanS, parallel.MeanS)
	assert.Equal(t, serial.MeanI, parallel.MeanI)
	assert.Equal(t, serial.MeanR, parallel.MeanR)

	// Iteration i gets the same derived seed either way.
	for i := range serial.Runs {
		assert.Equal(t, serial.Runs[i].Seed, parallel.Runs[i].Seed, "iteration %d", i)
	}
}

// TestRunEnsemble_SeedsDifferAcrossIterations tests that iterations are
// independent draws, not replays
func TestRunEnsemble_SeedsDifferAcrossIterations(t *testing.T) {
	net := ringNetwork(t, 20)
	cfg := RunConfig{Tau: 1.0, Gamma: 1.0, TMax: math.Inf(1), Seed: 7}

	ens, err := RunEnsemble(net, ModelSIR, cfg, EnsembleConfig{Iterations: 10})
	require.NoError(t, err)

	seen := make(map[int64]bool)
	for _, run := range ens.Runs {
		assert.False(t, seen[run.Seed], "duplicate iteration seed %d", run.Seed)
		seen[run.Seed] = true
	}
}

// TestRunEnsemble_MeanConservation tests that the averaged compartments
// still sum to N on every grid point
func TestRunEnsemble_MeanConservation(t *testing.T) {
	net := ringNetwork(t, 25)
	cfg := RunConfig{Tau: 2.0, Gamma: 1.0, TMax: math.Inf(1), Seed: 3}

	ens, err := RunEnsemble(net, ModelSIR, cfg, EnsembleConfig{Iterations: 8})
	require.NoError(t, err)

	require.NotEmpty(t, ens.ReportTimes)
	for j := range ens.ReportTimes {
		assert.InDelta(t, 25.0, ens.MeanS[j]+ens.MeanI[j]+ens.MeanR[j], 1e-9, "grid point %d", j)
	}
}

// TestRunEnsemble_SISKeepsMeanRZero tests the SIS dispatch path
func TestRunEnsemble_SISKeepsMeanRZero(t *testing.T) {
	net := ringNetwork(t, 20)
	cfg := RunConfig{Tau: 2.0, Gamma: 1.0, TMax: 5, Seed: 12, Rho: floatPtr(0.25)}

	ens, err := RunEnsemble(net, ModelSIS, cfg, EnsembleConfig{Iterations: 6, ReportTimes: []float64{0, 1, 5}})
	require.NoError(t, err)

	for j := range ens.ReportTimes {
		assert.Equal(t, 0.0, ens.MeanR[j])
	}
}

// TestRunEnsemble_Rejections tests iteration-count and config validation
func TestRunEnsemble_Rejections(t *testing.T) {
	net := ringNetwork(t, 10)

	_, err := RunEnsemble(net, ModelSIR, RunConfig{Tau: 1, Gamma: 1, TMax: 10}, EnsembleConfig{Iterations: 0})
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = RunEnsemble(net, ModelSIR, RunConfig{Tau: -1, Gamma: 1, TMax: 10}, EnsembleConfig{Iterations: 2})
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

// TestRunEnsemble_DefaultGridSpansRuns tests the derived report grid when
// none is supplied
func TestRunEnsemble_DefaultGridSpansRuns(t *testing.T) {
	net := ringNetwork(t, 15)
	cfg := RunConfig{Tau: 1.0, Gamma: 1.0, TMax: math.Inf(1), Seed: 9}

	ens, err := RunEnsemble(net, ModelSIR, cfg, EnsembleConfig{Iterations: 4})
	require.NoError(t, err)

	require.NotEmpty(t, ens.ReportTimes)
	assert.Equal(t, 0.0, ens.ReportTimes[0])

	longest := 0.0
	for _, run := range ens.Runs {
		if tt, _, _, _ := run.Trajectory.Final(); tt > longest {
			longest = tt
		}
	}
	assert.Equal(t, longest, ens.ReportTimes[len(ens.ReportTimes)-1])
}
