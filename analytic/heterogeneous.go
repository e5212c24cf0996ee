package analytic

import (
	"fmt"
	"math"

	"github.com/epinet-sim/epinet-sim/sim"
)

// SIRHeterogeneousMeanfield integrates the degree-based mean-field SIR
// system. Sk0, Ik0, Rk0 give the number of susceptible/infected/recovered
// nodes of each degree k (index = degree). The reduced state is
//
//	theta' = -tau * piI * theta
//	Rk'    =  gamma * Ik
//
// with Sk = Sk0 * theta^k, Ik = Nk - Sk - Rk and
// piI = sum_k k Ik / sum_k k Nk.
func SIRHeterogeneousMeanfield(sk0, ik0, rk0 []float64, tau, gamma float64, grid Grid) (*sim.Trajectory, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	if len(sk0) != len(ik0) || len(sk0) != len(rk0) {
		return nil, fmt.Errorf("%w: Sk0, Ik0 and Rk0 must have equal length", ErrBadGrid)
	}
	kcount := len(sk0)
	nk := make([]float64, kcount)
	edgeTotal := 0.0 // sum_k k Nk
	for k := 0; k < kcount; k++ {
		nk[k] = sk0[k] + ik0[k] + rk0[k]
		edgeTotal += float64(k) * nk[k]
	}
	if edgeTotal == 0 {
		return nil, fmt.Errorf("%w: network has no edges to transmit along", ErrBadGrid)
	}

	// State: y[0] = theta, y[1:] = Rk.
	y0 := make([]float64, 1+kcount)
	y0[0] = 1
	copy(y0[1:], rk0)

	deriv := func(_ float64, y, dydt []float64) {
		theta := y[0]
		piI := 0.0
		thetaK := 1.0
		for k := 0; k < kcount; k++ {
			sk := sk0[k] * thetaK
			ik := nk[k] - sk - y[1+k]
			piI += float64(k) * ik
			dydt[1+k] = gamma * ik
			thetaK *= theta
		}
		piI /= edgeTotal
		dydt[0] = -tau * piI * theta
	}

	times := grid.Times()
	states, err := integrate(deriv, y0, times)
	if err != nil {
		return nil, err
	}

	traj := &sim.Trajectory{T: times, S: make([]float64, len(times)), I: make([]float64, len(times)), R: make([]float64, len(times))}
	for idx, y := range states {
		theta := y[0]
		var s, i, r float64
		for k := 0; k < kcount; k++ {
			sk := sk0[k] * math.Pow(theta, float64(k))
			rk := y[1+k]
			s += sk
			r += rk
			i += nk[k] - sk - rk
		}
		traj.S[idx], traj.I[idx], traj.R[idx] = s, i, r
	}
	return traj, nil
}

// SISHeterogeneousMeanfield integrates the degree-based mean-field SIS
// system: Sk' = gamma Ik - tau k Sk piI, Ik' = -Sk', with
// piI = sum_k k Ik / sum_k k (Sk+Ik).
func SISHeterogeneousMeanfield(sk0, ik0 []float64, tau, gamma float64, grid Grid) (*sim.Trajectory, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	if len(sk0) != len(ik0) {
		return nil, fmt.Errorf("%w: Sk0 and Ik0 must have equal length", ErrBadGrid)
	}
	kcount := len(sk0)

	// State: y[:kcount] = Sk, y[kcount:] = Ik.
	y0 := make([]float64, 2*kcount)
	copy(y0, sk0)
	copy(y0[kcount:], ik0)

	deriv := func(_ float64, y, dydt []float64) {
		num, den := 0.0, 0.0
		for k := 0; k < kcount; k++ {
			num += float64(k) * y[kcount+k]
			den += float64(k) * (y[k] + y[kcount+k])
		}
		piI := 0.0
		if den > 0 {
			piI = num / den
		}
		for k := 0; k < kcount; k++ {
			flow := tau*float64(k)*y[k]*piI - gamma*y[kcount+k]
			dydt[k] = -flow
			dydt[kcount+k] = flow
		}
	}

	times := grid.Times()
	states, err := integrate(deriv, y0, times)
	if err != nil {
		return nil, err
	}

	traj := &sim.Trajectory{T: times, S: make([]float64, len(times)), I: make([]float64, len(times)), R: make([]float64, len(times))}
	for idx, y := range states {
		var s, i float64
		for k := 0; k < kcount; k++ {
			s += y[k]
			i += y[kcount+k]
		}
		traj.S[idx], traj.I[idx] = s, i
	}
	return traj, nil
}

// SIRHeterogeneousMeanfieldFromGraph seeds the degree-based mean-field from
// the network's degree counts: Sk0 = (1-rho) Nk, Ik0 = rho Nk, Rk0 = 0.
func SIRHeterogeneousMeanfieldFromGraph(net *sim.Network, tau, gamma float64, rho *float64, grid Grid) (*sim.Trajectory, error) {
	r, err := resolveRho(net, rho)
	if err != nil {
		return nil, err
	}
	nk := net.DegreeCounts()
	sk0 := make([]float64, len(nk))
	ik0 := make([]float64, len(nk))
	rk0 := make([]float64, len(nk))
	for k, c := range nk {
		sk0[k] = (1 - r) * c
		ik0[k] = r * c
	}
	return SIRHeterogeneousMeanfield(sk0, ik0, rk0, tau, gamma, grid)
}

// SISHeterogeneousMeanfieldFromGraph is the SIS counterpart of
// SIRHeterogeneousMeanfieldFromGraph.
func SISHeterogeneousMeanfieldFromGraph(net *sim.Network, tau, gamma float64, rho *float64, grid Grid) (*sim.Trajectory, error) {
	r, err := resolveRho(net, rho)
	if err != nil {
		return nil, err
	}
	nk := net.DegreeCounts()
	sk0 := make([]float64, len(nk))
	ik0 := make([]float64, len(nk))
	for k, c := range nk {
		sk0[k] = (1 - r) * c
		ik0[k] = r * c
	}
	return SISHeterogeneousMeanfield(sk0, ik0, tau, gamma, grid)
}
