package estimator

// Estimator produces a working estimate of a workload arrival rate from a
// stream of observed rates.
type Estimator interface {
	// Collect feeds one observed rate into the estimator.
	Collect(rate float64)

	// Estimate returns the current arrival-rate estimate.
	Estimate() float64

	// Reset discards all collected observations.
	Reset()
}

// Max estimates the arrival rate as the largest rate observed so far.
type Max struct {
	maxRate float64
}

func NewMax() *Max {
	return &Max{}
}

func (e *Max) Collect(rate float64) {
	if rate > e.maxRate {
		e.maxRate = rate
	}
}

func (e *Max) Estimate() float64 {
	return e.maxRate
}

func (e *Max) Reset() {
	e.maxRate = 0
}

// MostRecent estimates the arrival rate as the last rate observed.
type MostRecent struct {
	rate float64
}

func NewMostRecent() *MostRecent {
	return &MostRecent{}
}

func (e *MostRecent) Collect(rate float64) {
	e.rate = rate
}

func (e *MostRecent) Estimate() float64 {
	return e.rate
}

func (e *MostRecent) Reset() {
	e.rate = 0
}

// default smoothing factor for the exponentially weighted moving average
const DefaultSmoothing = 0.95

// EWMA estimates the arrival rate as an exponentially weighted moving
// average of the observed rates. The first observation seeds the average.
type EWMA struct {
	smoothing float64
	avg       float64
	first     bool
}

// NewEWMA creates an EWMA estimator with the given smoothing factor in
// (0,1]; values outside that range fall back to DefaultSmoothing.
func NewEWMA(smoothing float64) *EWMA {
	if smoothing <= 0 || smoothing > 1 {
		smoothing = DefaultSmoothing
	}
	return &EWMA{
		smoothing: smoothing,
		first:     true,
	}
}

func (e *EWMA) Collect(rate float64) {
	if e.first {
		e.avg = rate
		e.first = false
	} else {
		e.avg = e.smoothing*rate + (1-e.smoothing)*e.avg
	}
}

func (e *EWMA) Estimate() float64 {
	return e.avg
}

func (e *EWMA) Reset() {
	e.avg = 0
	e.first = true
}
