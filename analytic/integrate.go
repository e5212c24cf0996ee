package analytic

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrIntegrationFailure reports numerical non-convergence: the integrated
// state left the finite domain. Specific to this package; the simulation
// core never sees it.
var ErrIntegrationFailure = errors.New("analytic: integration failure")

// ErrBadGrid reports an invalid report grid or initial condition.
var ErrBadGrid = errors.New("analytic: bad parameter")

// Grid is a uniform report-time grid.
type Grid struct {
	TMin, TMax float64
	// Count is the number of report times, at least 2.
	Count int
}

// DefaultGrid mirrors the conventional 1001-point grid over [0, tmax].
func DefaultGrid(tmax float64) Grid {
	return Grid{TMin: 0, TMax: tmax, Count: 1001}
}

func (g Grid) validate() error {
	if g.Count < 2 {
		return fmt.Errorf("%w: grid needs at least 2 points, got %d", ErrBadGrid, g.Count)
	}
	if !(g.TMax > g.TMin) || math.IsInf(g.TMax, 0) || math.IsNaN(g.TMin) {
		return fmt.Errorf("%w: grid [%g,%g] is not a finite increasing interval", ErrBadGrid, g.TMin, g.TMax)
	}
	return nil
}

// Times materializes the grid.
func (g Grid) Times() []float64 {
	times := make([]float64, g.Count)
	span := g.TMax - g.TMin
	for i := range times {
		times[i] = g.TMin + span*float64(i)/float64(g.Count-1)
	}
	times[g.Count-1] = g.TMax
	return times
}

// derivFunc writes dy/dt at (t, y) into dydt.
type derivFunc func(t float64, y, dydt []float64)

// substeps refines each grid interval for the fixed-step integrator.
const substeps = 4

// integrate advances y0 across the grid times with classical fixed-step RK4,
// refining each interval into substeps. It returns the state at every grid
// time and fails if the state becomes non-finite.
func integrate(deriv derivFunc, y0 []float64, times []float64) ([][]float64, error) {
	n := len(y0)
	y := append([]float64(nil), y0...)
	k1 := make([]float64, n)
	k2 := make([]float64, n)
	k3 := make([]float64, n)
	k4 := make([]float64, n)
	ytmp := make([]float64, n)

	out := make([][]float64, len(times))
	out[0] = append([]float64(nil), y...)

	for i := 1; i < len(times); i++ {
		h := (times[i] - times[i-1]) / substeps
		t := times[i-1]
		for s := 0; s < substeps; s++ {
			deriv(t, y, k1)
			floats.AddScaledTo(ytmp, y, h/2, k1)
			deriv(t+h/2, ytmp, k2)
			floats.AddScaledTo(ytmp, y, h/2, k2)
			deriv(t+h/2, ytmp, k3)
			floats.AddScaledTo(ytmp, y, h, k3)
			deriv(t+h, ytmp, k4)
			for j := range y {
				y[j] += h / 6 * (k1[j] + 2*k2[j] + 2*k3[j] + k4[j])
			}
			t += h
		}
		for _, v := range y {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite state at t=%g", ErrIntegrationFailure, times[i])
			}
		}
		out[i] = append([]float64(nil), y...)
	}
	return out, nil
}
