// Package dist provides the delay and duration samplers used by the
// non-Markovian simulation mode. A Sampler draws one value per call from its
// distribution; the engine supplies the per-run generator explicitly so that
// no sampler holds shared mutable state.
package dist

import (
	"math"
	"math/rand"
)

// Sampler draws i.i.d. values from a distribution. The same interface serves
// both roles the engine needs: transmission delays (time from infection of
// the source to the infection attempt across one edge) and infectious-period
// durations.
type Sampler interface {
	// Sample returns one draw. A +Inf return is valid and means the event
	// never fires.
	Sample(rng *rand.Rand) float64
}

// Func adapts a plain sampling function to the Sampler interface.
type Func func(rng *rand.Rand) float64

func (f Func) Sample(rng *rand.Rand) float64 { return f(rng) }

// Exponential samples Exp(Rate). Rate <= 0 degenerates to +Inf draws
// (the event never fires), matching a zero transmission or recovery rate.
type Exponential struct {
	Rate float64
}

func (e Exponential) Sample(rng *rand.Rand) float64 {
	if e.Rate <= 0 {
		return math.Inf(1)
	}
	return rng.ExpFloat64() / e.Rate
}

// Fixed always returns Value. Models a constant infectious period.
type Fixed struct {
	Value float64
}

func (f Fixed) Sample(_ *rand.Rand) float64 { return f.Value }

// Gamma samples Gamma(Shape, Scale) using Marsaglia-Tsang's method for
// shape >= 1, with the Ahrens-Dieter transformation for shape < 1.
type Gamma struct {
	Shape, Scale float64
}

func (g Gamma) Sample(rng *rand.Rand) float64 {
	return gammaRand(rng, g.Shape, g.Scale)
}

func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		// Ahrens-Dieter: Gamma(a) = Gamma(a+1) * U^(1/a)
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	// Marsaglia-Tsang for shape >= 1
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// Weibull samples Weibull(Shape, Scale) by inverse-CDF.
type Weibull struct {
	Shape, Scale float64
}

func (w Weibull) Sample(rng *rand.Rand) float64 {
	u := rng.Float64()
	return w.Scale * math.Pow(-math.Log(1-u), 1.0/w.Shape)
}

// LogNormal samples exp(N(Mu, Sigma^2)).
type LogNormal struct {
	Mu, Sigma float64
}

func (l LogNormal) Sample(rng *rand.Rand) float64 {
	return math.Exp(l.Mu + l.Sigma*rng.NormFloat64())
}
