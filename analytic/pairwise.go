package analytic

import (
	"fmt"

	"github.com/epinet-sim/epinet-sim/sim"
)

// SIRHomogeneousPairwise integrates the homogeneous pairwise SIR closure
//
//	[S]'  = -tau [SI]
//	[I]'  =  tau [SI] - gamma [I]
//	[SI]' = -gamma [SI] + tau ((n-1)/n) [SI]([SS]-[SI])/[S] - tau [SI]
//	[SS]' = -2 tau ((n-1)/n) [SI][SS]/[S]
//
// where n is the (homogeneous) contact count per node and [SI], [SS] count
// ordered pairs.
func SIRHomogeneousPairwise(s0, i0, r0, si0, ss0, n, tau, gamma float64, grid Grid) (*sim.Trajectory, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: contact count n must be positive, got %g", ErrBadGrid, n)
	}
	total := s0 + i0 + r0
	ratio := (n - 1) / n

	deriv := func(_ float64, y, dydt []float64) {
		s, i, si, ss := y[0], y[1], y[2], y[3]
		if s <= 0 {
			// The closure divides by [S]; once susceptibles are exhausted
			// the pair dynamics are over.
			dydt[0], dydt[2], dydt[3] = 0, 0, 0
			dydt[1] = -gamma * i
			return
		}
		dydt[0] = -tau * si
		dydt[1] = tau*si - gamma*i
		dydt[2] = -gamma*si + tau*ratio*si*(ss-si)/s - tau*si
		dydt[3] = -2 * tau * ratio * si * ss / s
	}
	times := grid.Times()
	states, err := integrate(deriv, []float64{s0, i0, si0, ss0}, times)
	if err != nil {
		return nil, err
	}

	traj := &sim.Trajectory{T: times, S: make([]float64, len(times)), I: make([]float64, len(times)), R: make([]float64, len(times))}
	for idx, y := range states {
		traj.S[idx] = y[0]
		traj.I[idx] = y[1]
		traj.R[idx] = total - y[0] - y[1]
	}
	return traj, nil
}

// SISHomogeneousPairwise integrates the homogeneous pairwise SIS closure.
// State variables are [S], [SI], [SS]; [I] = N-[S] and [II] follows from the
// conserved pair count n*N = [SS] + 2[SI] + [II].
func SISHomogeneousPairwise(s0, i0, si0, ss0, n, tau, gamma float64, grid Grid) (*sim.Trajectory, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: contact count n must be positive, got %g", ErrBadGrid, n)
	}
	total := s0 + i0
	ratio := (n - 1) / n

	deriv := func(_ float64, y, dydt []float64) {
		s, si, ss := y[0], y[1], y[2]
		i := total - s
		ii := total*n - ss - 2*si
		if s <= 0 {
			dydt[0] = gamma * i
			dydt[1], dydt[2] = gamma*(ii-si), 2*gamma*si
			return
		}
		dydt[0] = gamma*i - tau*si
		dydt[1] = gamma*(ii-si) + tau*ratio*si*(ss-si)/s - tau*si
		dydt[2] = 2*gamma*si - 2*tau*ratio*si*ss/s
	}
	times := grid.Times()
	states, err := integrate(deriv, []float64{s0, si0, ss0}, times)
	if err != nil {
		return nil, err
	}

	traj := &sim.Trajectory{T: times, S: make([]float64, len(times)), I: make([]float64, len(times)), R: make([]float64, len(times))}
	for idx, y := range states {
		traj.S[idx] = y[0]
		traj.I[idx] = total - y[0]
	}
	return traj, nil
}

// SIRHomogeneousPairwiseFromGraph seeds the pairwise closure from the
// network: n is the mean degree and the initial pair counts assume the
// infected fraction rho is placed uniformly at random,
// [SI]0 = (1-rho) N n rho and [SS]0 = (1-rho) N n (1-rho).
func SIRHomogeneousPairwiseFromGraph(net *sim.Network, tau, gamma float64, rho *float64, grid Grid) (*sim.Trajectory, error) {
	r, err := resolveRho(net, rho)
	if err != nil {
		return nil, err
	}
	n, _ := DegreeMoments(net)
	total := float64(net.N())
	s0 := (1 - r) * total
	i0 := r * total
	si0 := (1 - r) * total * n * r
	ss0 := (1 - r) * total * n * (1 - r)
	return SIRHomogeneousPairwise(s0, i0, 0, si0, ss0, n, tau, gamma, grid)
}

// SISHomogeneousPairwiseFromGraph is the SIS counterpart of
// SIRHomogeneousPairwiseFromGraph.
func SISHomogeneousPairwiseFromGraph(net *sim.Network, tau, gamma float64, rho *float64, grid Grid) (*sim.Trajectory, error) {
	r, err := resolveRho(net, rho)
	if err != nil {
		return nil, err
	}
	n, _ := DegreeMoments(net)
	total := float64(net.N())
	s0 := (1 - r) * total
	i0 := r * total
	si0 := (1 - r) * total * n * r
	ss0 := (1 - r) * total * n * (1 - r)
	return SISHomogeneousPairwise(s0, i0, si0, ss0, n, tau, gamma, grid)
}
