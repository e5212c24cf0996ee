package analytic

import (
	"fmt"

	"github.com/epinet-sim/epinet-sim/sim"
)

// SIRHomogeneousMeanfield integrates the homogeneous mean-field SIR system
//
//	S' = -tau * kMean * S * I / N
//	I' =  tau * kMean * S * I / N - gamma * I
//	R' =  gamma * I
//
// with N = s0+i0+r0 and kMean the average contact count per node.
func SIRHomogeneousMeanfield(s0, i0, r0, kMean, tau, gamma float64, grid Grid) (*sim.Trajectory, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	n := s0 + i0 + r0
	if n <= 0 {
		return nil, fmt.Errorf("%w: population must be positive, got %g", ErrBadGrid, n)
	}
	factor := tau * kMean / n

	deriv := func(_ float64, y, dydt []float64) {
		s, i := y[0], y[1]
		dydt[0] = -factor * s * i
		dydt[1] = factor*s*i - gamma*i
	}
	times := grid.Times()
	states, err := integrate(deriv, []float64{s0, i0}, times)
	if err != nil {
		return nil, err
	}

	traj := &sim.Trajectory{T: times, S: make([]float64, len(times)), I: make([]float64, len(times)), R: make([]float64, len(times))}
	for idx, y := range states {
		traj.S[idx] = y[0]
		traj.I[idx] = y[1]
		traj.R[idx] = n - y[0] - y[1]
	}
	return traj, nil
}

// SISHomogeneousMeanfield integrates the homogeneous mean-field SIS system
//
//	S' = gamma * I - tau * kMean * S * I / N
//	I' = -S'
//
// R is identically zero in the returned trajectory.
func SISHomogeneousMeanfield(s0, i0, kMean, tau, gamma float64, grid Grid) (*sim.Trajectory, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	n := s0 + i0
	if n <= 0 {
		return nil, fmt.Errorf("%w: population must be positive, got %g", ErrBadGrid, n)
	}
	factor := tau * kMean / n

	deriv := func(_ float64, y, dydt []float64) {
		s, i := y[0], y[1]
		dydt[0] = gamma*i - factor*s*i
		dydt[1] = -dydt[0]
	}
	times := grid.Times()
	states, err := integrate(deriv, []float64{s0, i0}, times)
	if err != nil {
		return nil, err
	}

	traj := &sim.Trajectory{T: times, S: make([]float64, len(times)), I: make([]float64, len(times)), R: make([]float64, len(times))}
	for idx, y := range states {
		traj.S[idx] = y[0]
		traj.I[idx] = y[1]
	}
	return traj, nil
}

// SIRHomogeneousMeanfieldFromGraph derives the initial condition from the
// network and a uniformly random initial infected fraction rho (nil means
// 1/N), using the network's mean degree as the contact count.
func SIRHomogeneousMeanfieldFromGraph(net *sim.Network, tau, gamma float64, rho *float64, grid Grid) (*sim.Trajectory, error) {
	r, err := resolveRho(net, rho)
	if err != nil {
		return nil, err
	}
	n := float64(net.N())
	return SIRHomogeneousMeanfield((1-r)*n, r*n, 0, net.MeanDegree(), tau, gamma, grid)
}

// SISHomogeneousMeanfieldFromGraph is the SIS counterpart of
// SIRHomogeneousMeanfieldFromGraph.
func SISHomogeneousMeanfieldFromGraph(net *sim.Network, tau, gamma float64, rho *float64, grid Grid) (*sim.Trajectory, error) {
	r, err := resolveRho(net, rho)
	if err != nil {
		return nil, err
	}
	n := float64(net.N())
	return SISHomogeneousMeanfield((1-r)*n, r*n, net.MeanDegree(), tau, gamma, grid)
}
