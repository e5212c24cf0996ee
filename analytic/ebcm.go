package analytic

import (
	"fmt"

	"github.com/epinet-sim/epinet-sim/sim"
)

// EBCM integrates the edge-based compartmental SIR model. psiHat and
// psiHatPrime encode the degree distribution of the initially susceptible
// population (psiHat(x) = sum_k S(k,0)/N x^k); phiS0 is the probability that
// a random neighbor is initially susceptible. The reduced state is
//
//	theta' = -tau theta + tau phiS0 psiHat'(theta)/psiHat'(1)
//	         + gamma (1-theta) + tau phiR0
//	R'     = gamma I
//
// with S = N psiHat(theta) and I = N - S - R.
func EBCM(n float64, psiHat, psiHatPrime func(float64) float64, tau, gamma, phiS0, phiR0, r0 float64, grid Grid) (*sim.Trajectory, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: population must be positive, got %g", ErrBadGrid, n)
	}
	psiHatPrime1 := psiHatPrime(1)
	if psiHatPrime1 == 0 {
		return nil, fmt.Errorf("%w: degree distribution has no edges (psiHat'(1)=0)", ErrBadGrid)
	}

	deriv := func(_ float64, y, dydt []float64) {
		theta, r := y[0], y[1]
		dydt[0] = -tau*theta + tau*phiS0*psiHatPrime(theta)/psiHatPrime1 + gamma*(1-theta) + tau*phiR0
		s := n * psiHat(theta)
		dydt[1] = gamma * (n - s - r)
	}

	times := grid.Times()
	states, err := integrate(deriv, []float64{1, r0}, times)
	if err != nil {
		return nil, err
	}

	traj := &sim.Trajectory{T: times, S: make([]float64, len(times)), I: make([]float64, len(times)), R: make([]float64, len(times))}
	for idx, y := range states {
		s := n * psiHat(y[0])
		traj.S[idx] = s
		traj.R[idx] = y[1]
		traj.I[idx] = n - s - y[1]
	}
	return traj, nil
}

// EBCMUniformIntroduction handles a disease introduced uniformly at random
// with fraction rho: psiHat(x) = (1-rho) psi(x), phiS0 = 1-rho.
func EBCMUniformIntroduction(n float64, psi, psiPrime func(float64) float64, tau, gamma, rho float64, grid Grid) (*sim.Trajectory, error) {
	if rho < 0 || rho > 1 {
		return nil, fmt.Errorf("%w: rho must be within [0,1], got %g", ErrBadGrid, rho)
	}
	psiHat := func(x float64) float64 { return (1 - rho) * psi(x) }
	psiHatPrime := func(x float64) float64 { return (1 - rho) * psiPrime(x) }
	return EBCM(n, psiHat, psiHatPrime, tau, gamma, 1-rho, 0, 0, grid)
}

// EBCMFromGraph derives the generating function from the network's degree
// distribution and introduces the disease uniformly with fraction rho
// (nil means 1/N).
func EBCMFromGraph(net *sim.Network, tau, gamma float64, rho *float64, grid Grid) (*sim.Trajectory, error) {
	r, err := resolveRho(net, rho)
	if err != nil {
		return nil, err
	}
	pk := DegreeDistribution(net)
	return EBCMUniformIntroduction(float64(net.N()), psiFrom(pk), psiPrimeFrom(pk), tau, gamma, r, grid)
}
