package dist

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat/distuv"
)

const samples = 50000

// sampleMoments draws from s and returns the sample mean and variance.
func sampleMoments(s Sampler, seed int64) (mean, variance float64) {
	rng := rand.New(rand.NewSource(seed))
	var sum, sumSq float64
	for k := 0; k < samples; k++ {
		v := s.Sample(rng)
		sum += v
		sumSq += v * v
	}
	mean = sum / samples
	variance = sumSq/samples - mean*mean
	return mean, variance
}

// TestExponential_MatchesDistuv cross-checks the sampler against gonum's
// reference distribution
func TestExponential_MatchesDistuv(t *testing.T) {
	ref := distuv.Exponential{Rate: 2.5}
	mean, variance := sampleMoments(Exponential{Rate: 2.5}, 1)
	assert.InDelta(t, ref.Mean(), mean, 0.01)
	assert.InDelta(t, ref.Variance(), variance, 0.01)
}

// TestExponential_NonPositiveRateNeverFires tests the degenerate rate
func TestExponential_NonPositiveRateNeverFires(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.True(t, math.IsInf(Exponential{Rate: 0}.Sample(rng), 1))
	assert.True(t, math.IsInf(Exponential{Rate: -1}.Sample(rng), 1))
}

// TestFixed tests the constant sampler
func TestFixed(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for k := 0; k < 10; k++ {
		assert.Equal(t, 3.25, Fixed{Value: 3.25}.Sample(rng))
	}
}

// TestGamma_MatchesDistuv cross-checks both Marsaglia-Tsang branches
func TestGamma_MatchesDistuv(t *testing.T) {
	cases := []struct{ shape, scale float64 }{
		{2.5, 1.5}, // shape >= 1
		{0.5, 2.0}, // shape < 1, boosted branch
	}
	for _, tc := range cases {
		ref := distuv.Gamma{Alpha: tc.shape, Beta: 1 / tc.scale}
		mean, variance := sampleMoments(Gamma{Shape: tc.shape, Scale: tc.scale}, 2)
		assert.InDelta(t, ref.Mean(), mean, 0.05*ref.Mean(), "shape=%g mean", tc.shape)
		assert.InDelta(t, ref.Variance(), variance, 0.05*ref.Variance(), "shape=%g variance", tc.shape)
	}
}

// TestWeibull_MatchesDistuv cross-checks the inverse-CDF sampler
func TestWeibull_MatchesDistuv(t *testing.T) {
	ref := distuv.Weibull{K: 1.5, Lambda: 2.0}
	mean, variance := sampleMoments(Weibull{Shape: 1.5, Scale: 2.0}, 3)
	assert.InDelta(t, ref.Mean(), mean, 0.05*ref.Mean())
	assert.InDelta(t, ref.Variance(), variance, 0.05*ref.Variance())
}

// TestLogNormal_MatchesDistuv cross-checks the log-normal sampler
func TestLogNormal_MatchesDistuv(t *testing.T) {
	ref := distuv.LogNormal{Mu: 0.2, Sigma: 0.5}
	mean, variance := sampleMoments(LogNormal{Mu: 0.2, Sigma: 0.5}, 4)
	assert.InDelta(t, ref.Mean(), mean, 0.05*ref.Mean())
	assert.InDelta(t, ref.Variance(), variance, 0.10*ref.Variance())
}

// TestFunc_Adapter tests the function adapter
func TestFunc_Adapter(t *testing.T) {
	s := Func(func(rng *rand.Rand) float64 { return 7 })
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, 7.0, s.Sample(rng))
}

// TestSamplers_NonNegative tests that every duration sampler stays
// non-negative, which the engine relies on
func TestSamplers_NonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ss := []Sampler{
		Exponential{Rate: 1},
		Gamma{Shape: 0.7, Scale: 1},
		Weibull{Shape: 2, Scale: 1},
		LogNormal{Mu: 0, Sigma: 1},
	}
	for _, s := range ss {
		for k := 0; k < 1000; k++ {
			if v := s.Sample(rng); v < 0 {
				t.Fatalf("%T drew negative value %g", s, v)
			}
		}
	}
}
