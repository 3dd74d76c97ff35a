package estimator

import (
	"math"

	kalman "github.com/llm-inferno/kalman-filter/pkg/core"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Kalman tracks the arrival rate as the single state of an extended Kalman
// filter with identity transition and observation functions. Process and
// observation noise variances control how quickly the estimate follows the
// observed rates.
type Kalman struct {
	filter *kalman.ExtendedKalmanFilter
	x0     *mat.VecDense
	p0     *mat.Dense
	obsR   *mat.Dense
	log    *zap.SugaredLogger
}

func NewKalman(initialRate float64, initialVar float64, processVar float64, obsVar float64) (*Kalman, error) {
	x0 := mat.NewVecDense(1, []float64{initialRate})
	p0 := mat.NewDense(1, 1, []float64{initialVar})
	filter, err := kalman.NewExtendedKalmanFilter(1, 1, mat.VecDenseCopyOf(x0), mat.DenseCopyOf(p0))
	if err != nil {
		return nil, err
	}
	if err := filter.SetQ(mat.NewDense(1, 1, []float64{processVar})); err != nil {
		return nil, err
	}
	obsR := mat.NewDense(1, 1, []float64{obsVar})
	if err := filter.SetR(obsR); err != nil {
		return nil, err
	}
	identity := func(x *mat.VecDense) *mat.VecDense {
		return mat.VecDenseCopyOf(x)
	}
	if err := filter.SetfF(identity); err != nil {
		return nil, err
	}
	if err := filter.SethH(identity); err != nil {
		return nil, err
	}
	return &Kalman{
		filter: filter,
		x0:     x0,
		p0:     p0,
		obsR:   obsR,
		log:    zap.NewNop().Sugar(),
	}, nil
}

// SetLogger sets the diagnostic sink for filter failures.
func (e *Kalman) SetLogger(log *zap.SugaredLogger) {
	if log != nil {
		e.log = log
	}
}

func (e *Kalman) Collect(rate float64) {
	if err := e.filter.Predict(e.filter.Q); err != nil {
		e.log.Warnw("kalman predict failed", "error", err)
		return
	}
	z := mat.NewVecDense(1, []float64{rate})
	if err := e.filter.Update(z, e.obsR); err != nil {
		e.log.Warnw("kalman update failed", "error", err)
	}
}

func (e *Kalman) Estimate() float64 {
	return math.Max(0, e.filter.State().AtVec(0))
}

func (e *Kalman) Reset() {
	e.filter.X = mat.VecDenseCopyOf(e.x0)
	e.filter.P = mat.DenseCopyOf(e.p0)
}
