package estimator

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Randomized estimators take an explicit rand.Source so that experiments are
// reproducible from a caller-supplied seed; none of them touches a
// process-wide generator.

// PerturbedMax estimates the arrival rate as the observed maximum perturbed
// by normal white noise: max(0, maxRate*(1+err)), err ~ N(mean, stddev).
type PerturbedMax struct {
	Max
	noise distuv.Normal
}

func NewPerturbedMax(src rand.Source, mean float64, stddev float64) *PerturbedMax {
	return &PerturbedMax{
		noise: distuv.Normal{Mu: mean, Sigma: stddev, Src: src},
	}
}

func (e *PerturbedMax) Estimate() float64 {
	return math.Max(0, e.Max.Estimate()*(1+e.noise.Rand()))
}

// UniformMax estimates the arrival rate as a uniform draw between zero and
// the observed maximum.
type UniformMax struct {
	Max
	src rand.Source
}

func NewUniformMax(src rand.Source) *UniformMax {
	return &UniformMax{src: src}
}

func (e *UniformMax) Estimate() float64 {
	maxRate := e.Max.Estimate()
	if maxRate == 0 {
		return 0
	}
	return distuv.Uniform{Min: 0, Max: maxRate, Src: e.src}.Rand()
}

// UniformMinMax estimates the arrival rate as a uniform draw between the
// observed minimum and maximum.
type UniformMinMax struct {
	src     rand.Source
	minRate float64
	maxRate float64
}

func NewUniformMinMax(src rand.Source) *UniformMinMax {
	return &UniformMinMax{
		src:     src,
		minRate: math.Inf(1),
	}
}

func (e *UniformMinMax) Collect(rate float64) {
	if rate > e.maxRate {
		e.maxRate = rate
	}
	if rate < e.minRate {
		e.minRate = rate
	}
}

func (e *UniformMinMax) Estimate() float64 {
	lo := math.Min(e.minRate, e.maxRate)
	if lo == e.maxRate {
		return e.maxRate
	}
	return distuv.Uniform{Min: lo, Max: e.maxRate, Src: e.src}.Rand()
}

func (e *UniformMinMax) Reset() {
	e.minRate = math.Inf(1)
	e.maxRate = 0
}

// PerturbedMostRecent estimates the arrival rate as the last observation
// perturbed by normal white noise, clamped at zero.
type PerturbedMostRecent struct {
	MostRecent
	noise distuv.Normal
}

func NewPerturbedMostRecent(src rand.Source, mean float64, stddev float64) *PerturbedMostRecent {
	return &PerturbedMostRecent{
		noise: distuv.Normal{Mu: mean, Sigma: stddev, Src: src},
	}
}

func (e *PerturbedMostRecent) Estimate() float64 {
	return math.Max(0, e.MostRecent.Estimate()*(1+e.noise.Rand()))
}

// Beta ignores observations and draws estimates from a beta distribution
// scaled to [lower, upper].
type Beta struct {
	beta  distuv.Beta
	lower float64
	upper float64
}

func NewBeta(src rand.Source, alpha float64, beta float64, lower float64, upper float64) *Beta {
	return &Beta{
		beta:  distuv.Beta{Alpha: alpha, Beta: beta, Src: src},
		lower: lower,
		upper: upper,
	}
}

func (e *Beta) Collect(rate float64) {}

func (e *Beta) Estimate() float64 {
	return e.lower + (e.upper-e.lower)*e.beta.Rand()
}

func (e *Beta) Reset() {}
