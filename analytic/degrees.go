package analytic

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/epinet-sim/epinet-sim/sim"
)

// DegreeDistribution returns Pk, where Pk[k] is the proportion of nodes with
// degree k, for k = 0..maxDegree.
func DegreeDistribution(net *sim.Network) []float64 {
	counts := net.DegreeCounts()
	n := float64(net.N())
	pk := make([]float64, len(counts))
	if n == 0 {
		return pk
	}
	for k, c := range counts {
		pk[k] = c / n
	}
	return pk
}

// DegreeMoments returns the first and second raw moments of the degree
// distribution, weighted by the node counts of each degree.
func DegreeMoments(net *sim.Network) (k1, k2 float64) {
	counts := net.DegreeCounts()
	ks := make([]float64, len(counts))
	ks2 := make([]float64, len(counts))
	for k := range ks {
		ks[k] = float64(k)
		ks2[k] = float64(k) * float64(k)
	}
	return stat.Mean(ks, counts), stat.Mean(ks2, counts)
}

// psiFrom builds the probability generating function
// psi(x) = sum_k Pk[k] x^k of a degree distribution.
func psiFrom(pk []float64) func(float64) float64 {
	coeffs := append([]float64(nil), pk...)
	return func(x float64) float64 {
		// Horner evaluation, highest degree first.
		acc := 0.0
		for k := len(coeffs) - 1; k >= 0; k-- {
			acc = acc*x + coeffs[k]
		}
		return acc
	}
}

// psiPrimeFrom builds d psi(x)/dx = sum_k k Pk[k] x^(k-1).
func psiPrimeFrom(pk []float64) func(float64) float64 {
	if len(pk) < 2 {
		return func(float64) float64 { return 0 }
	}
	coeffs := make([]float64, len(pk)-1)
	for k := 1; k < len(pk); k++ {
		coeffs[k-1] = float64(k) * pk[k]
	}
	return func(x float64) float64 {
		acc := 0.0
		for k := len(coeffs) - 1; k >= 0; k-- {
			acc = acc*x + coeffs[k]
		}
		return acc
	}
}

// resolveRho defaults a nil rho to 1/N and validates the range.
func resolveRho(net *sim.Network, rho *float64) (float64, error) {
	if net.N() == 0 {
		return 0, fmt.Errorf("%w: graph has no nodes", ErrBadGrid)
	}
	r := 1.0 / float64(net.N())
	if rho != nil {
		r = *rho
	}
	if r < 0 || r > 1 {
		return 0, fmt.Errorf("%w: rho must be within [0,1], got %g", ErrBadGrid, r)
	}
	return r, nil
}
