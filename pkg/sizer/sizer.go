package sizer

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"go.uber.org/zap"

	"github.com/dcs-fog/capacity-planner/pkg/queueing"
)

// Sentinel outcomes of a sizing run. Both are normal planning results for a
// caller producing a capacity report, not crashes.
var (
	// ErrInfeasible indicates the target cannot be met at any scale with the
	// given service rate.
	ErrInfeasible = errors.New("target response time not achievable at any server count")

	// ErrNotConverged indicates the search exhausted its server-count bound
	// before meeting the target.
	ErrNotConverged = errors.New("no sufficient server count within bound")
)

// default limit on the candidate server counts examined
const DefaultMaxServers = 1000

// Sizer determines the minimum number of parallel servers needed for an
// M/M/c system to meet a response-time target.
type Sizer struct {
	maxServers int
	log        *zap.SugaredLogger
}

// NewSizer creates a sizer bounded by maxServers candidate server counts.
// A non-positive bound falls back to DefaultMaxServers.
func NewSizer(maxServers int) *Sizer {
	if maxServers <= 0 {
		maxServers = DefaultMaxServers
	}
	return &Sizer{
		maxServers: maxServers,
		log:        zap.NewNop().Sugar(),
	}
}

// SetLogger sets the diagnostic sink for per-iteration traces.
func (s *Sizer) SetLogger(log *zap.SugaredLogger) {
	if log != nil {
		s.log = log
	}
}

func (s *Sizer) MaxServers() int {
	return s.maxServers
}

// candidates yields server counts 1, 2, ..., maxServers in increasing order.
func (s *Sizer) candidates() iter.Seq[int] {
	return func(yield func(int) bool) {
		for c := 1; c <= s.maxServers; c++ {
			if !yield(c) {
				return
			}
		}
	}
}

// FindMinServers returns the smallest server count c such that the M/M/c
// system with arrival rate lambda and per-server service rate mu is stable
// (lambda/(c*mu) < 1) and its expected response time is at most target within
// relative tolerance tol.
//
// It returns a wrapped ErrInfeasible when target < 1/mu, since every
// configuration has expected response time at least one service duration, and
// a wrapped ErrNotConverged when the bound is exhausted. Since the expected
// response time is non-increasing in the server count over the stable range,
// the first accepted candidate is the global minimum.
func (s *Sizer) FindMinServers(lambda float64, mu float64, target float64, tol float64) (int, error) {
	if err := checkArgs(lambda, mu, target, tol); err != nil {
		return 0, err
	}
	if target < 1/mu {
		return 0, fmt.Errorf("%w: target=%v below minimum service time=%v", ErrInfeasible, target, 1/mu)
	}
	for c := range s.candidates() {
		model := queueing.NewMMCModel(c)
		model.Solve(lambda, mu)
		if !model.IsValid() {
			// unstable at this server count, evaluating the model would divide
			// by a non-positive denominator
			continue
		}
		respTime := model.GetAvgRespTime()
		if queueing.FloatLE(respTime, target, tol) {
			s.log.Debugw("target met",
				"lambda", lambda, "mu", mu, "servers", c, "respTime", respTime, "target", target)
			return c, nil
		}
		s.log.Debugw("target exceeded",
			"lambda", lambda, "mu", mu, "servers", c, "respTime", respTime, "target", target)
	}
	return 0, fmt.Errorf("%w: lambda=%v, mu=%v, target=%v, maxServers=%d",
		ErrNotConverged, lambda, mu, target, s.maxServers)
}

// FindMinServersPercentile returns the smallest stable server count c such
// that the probability of a sojourn time at most target is at least
// percentile, within relative tolerance tol.
//
// As the server count grows the sojourn time approaches a pure service time
// with distribution 1-exp(-mu*target); a percentile above that limit is
// reported as a wrapped ErrInfeasible before any search.
func (s *Sizer) FindMinServersPercentile(lambda float64, mu float64, target float64, percentile float64, tol float64) (int, error) {
	if err := checkArgs(lambda, mu, target, tol); err != nil {
		return 0, err
	}
	if percentile <= 0 || percentile >= 1 {
		return 0, fmt.Errorf("percentile must be in (0,1), got %v", percentile)
	}
	if limit := 1 - math.Exp(-mu*target); !queueing.FloatLE(percentile, limit, tol) {
		return 0, fmt.Errorf("%w: percentile=%v above service-time limit=%v", ErrInfeasible, percentile, limit)
	}
	for c := range s.candidates() {
		model := queueing.NewMMCModel(c)
		model.Solve(lambda, mu)
		if !model.IsValid() {
			continue
		}
		prob := model.ResponseTimeCDF(target)
		if queueing.FloatLE(percentile, prob, tol) {
			s.log.Debugw("percentile met",
				"lambda", lambda, "mu", mu, "servers", c, "prob", prob, "percentile", percentile, "target", target)
			return c, nil
		}
		s.log.Debugw("percentile missed",
			"lambda", lambda, "mu", mu, "servers", c, "prob", prob, "percentile", percentile, "target", target)
	}
	return 0, fmt.Errorf("%w: lambda=%v, mu=%v, target=%v, percentile=%v, maxServers=%d",
		ErrNotConverged, lambda, mu, target, percentile, s.maxServers)
}

// MinServiceRateMM1 returns the smallest service rate mu such that a stable
// single-server system with arrival rate lambda has P(T <= target) >= percentile:
//
//	mu = (lambda*target - ln(1-percentile)) / target
func MinServiceRateMM1(lambda float64, target float64, percentile float64) (float64, error) {
	if lambda <= 0 || target <= 0 {
		return 0, fmt.Errorf("lambda and target must be positive, got lambda=%v, target=%v", lambda, target)
	}
	if percentile <= 0 || percentile >= 1 {
		return 0, fmt.Errorf("percentile must be in (0,1), got %v", percentile)
	}
	return (lambda*target - math.Log(1-percentile)) / target, nil
}

func checkArgs(lambda float64, mu float64, target float64, tol float64) error {
	if lambda <= 0 || mu <= 0 || target <= 0 {
		return fmt.Errorf("rates and target must be positive, got lambda=%v, mu=%v, target=%v", lambda, mu, target)
	}
	if tol < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %v", tol)
	}
	return nil
}
