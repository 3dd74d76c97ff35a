package queueing

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ErrUnstable indicates a model evaluation at utilization outside (0,1).
var ErrUnstable = errors.New("utilization outside the stable range (0,1)")

// M/M/c multi-server queue with infinite waiting room
type MMCModel struct {
	QueueModel     // extends base class
	servers    int // number of identical servers

	probEmpty    float64 // probability of empty system (P0)
	probQueueing float64 // Erlang C term
	probAllBusy  float64 // probability of exactly c customers in system (Pc)
}

func NewMMCModel(servers int) *MMCModel {
	m := &MMCModel{
		QueueModel: QueueModel{log: zap.NewNop().Sugar()},
		servers:    servers,
	}
	m.QueueModel.ComputeRho = m.ComputeRho
	m.QueueModel.GetRhoMax = m.GetRhoMax
	m.QueueModel.computeStatistics = m.computeStatistics
	return m
}

// Solve queueing model given arrival and service rates
func (m *MMCModel) Solve(lambda float64, mu float64) {
	m.QueueModel.Solve(lambda, mu)
}

// Compute utilization of queueing model
func (m *MMCModel) ComputeRho() float64 {
	return m.lambda / (float64(m.servers) * m.mu)
}

// Compute the maximum utilization of queueing model
func (m *MMCModel) GetRhoMax() float64 {
	return 1
}

// Evaluate performance measures of queueing model
func (m *MMCModel) computeStatistics() {
	c := float64(m.servers)
	m.probEmpty = ProbEmpty(m.lambda, m.mu, m.servers)
	m.probQueueing = ProbQueueing(m.lambda, m.mu, m.servers)
	m.probAllBusy = ProbAllBusy(m.lambda, m.mu, m.servers)
	if m.servers == 1 {
		m.avgRespTime = (1 / m.mu) / (1 - m.rho)
		m.avgNumInSystem = m.lambda * m.avgRespTime
	} else {
		// Little's Law on the average number in system
		m.avgNumInSystem = c*m.rho + (m.rho/(1-m.rho))*m.probAllBusy
		m.avgRespTime = m.avgNumInSystem / m.lambda
	}
	m.avgServTime = 1 / m.mu
	m.avgWaitTime = m.avgRespTime - m.avgServTime
	if m.avgWaitTime < 0 {
		m.avgWaitTime = 0
	}
	m.avgQueueLength = m.lambda * m.avgWaitTime
}

func (m *MMCModel) GetServers() int {
	return m.servers
}

func (m *MMCModel) GetProbEmpty() float64 {
	return m.probEmpty
}

func (m *MMCModel) GetProbQueueing() float64 {
	return m.probQueueing
}

func (m *MMCModel) GetProbAllBusy() float64 {
	return m.probAllBusy
}

// ResponseTimeCDF returns the probability that the sojourn time of an
// arriving customer is at most t, mixing the direct-service branch (decay
// rate mu) and the must-queue branch (decay rate c*mu-lambda), weighted
// through the Erlang C term. Returns 0 for an unsolved or unstable model.
func (m *MMCModel) ResponseTimeCDF(t float64) float64 {
	if !m.isValid {
		m.log.Warnw("response-time CDF undefined for unstable model",
			"servers", m.servers, "rho", m.rho)
		return 0
	}
	c := float64(m.servers)
	lambda, pq := m.lambda, m.probQueueing
	if den := lambda - (c-1)*m.mu; math.Abs(den) < 1e-9*m.mu {
		// removable singularity at lambda = (c-1)*mu, evaluate the
		// continuous extension at a nudged arrival rate
		lambda += 1e-9 * m.mu
		pq = ProbQueueing(lambda, m.mu, m.servers)
	}
	f1 := (lambda - c*m.mu + m.mu*pq) / (lambda - (c-1)*m.mu)
	f2 := 1 - math.Exp(-m.mu*t)
	f3 := ((1 - pq) * m.mu) / (lambda - (c-1)*m.mu)
	f4 := 1 - math.Exp(-(c*m.mu-lambda)*t)
	return f1*f2 + f3*f4
}

func (m *MMCModel) String() string {
	var b bytes.Buffer
	b.WriteString("MMCModel: ")
	b.WriteString(m.QueueModel.String())
	fmt.Fprintf(&b, "c=%d; P0=%v; PQ=%v; Pc=%v; ", m.servers, m.probEmpty, m.probQueueing, m.probAllBusy)
	return b.String()
}

// AvgRespTime returns the expected sojourn time (waiting plus service) for an
// M/M/c system. The single-server case uses the closed form (1/mu)/(1-rho);
// the multi-server case derives the expected number in system from Pc and
// applies Little's Law. A wrapped ErrUnstable is returned when the utilization
// lambda/(c*mu) falls outside (0,1), rather than a NaN or Inf value.
func AvgRespTime(lambda float64, mu float64, servers int) (float64, error) {
	model := NewMMCModel(servers)
	model.Solve(lambda, mu)
	if !model.IsValid() {
		return 0, fmt.Errorf("%w: lambda=%v, mu=%v, c=%d", ErrUnstable, lambda, mu, servers)
	}
	return model.GetAvgRespTime(), nil
}

// RespTimeCDF returns the probability that the sojourn time in an M/M/c
// system is at most t. A wrapped ErrUnstable is returned when the utilization
// falls outside (0,1).
func RespTimeCDF(lambda float64, mu float64, servers int, t float64) (float64, error) {
	model := NewMMCModel(servers)
	model.Solve(lambda, mu)
	if !model.IsValid() {
		return 0, fmt.Errorf("%w: lambda=%v, mu=%v, c=%d", ErrUnstable, lambda, mu, servers)
	}
	return model.ResponseTimeCDF(t), nil
}

// RespTimeCDFMM1 is the single-server specialization of the sojourn-time
// distribution: P(T <= t) = 1 - exp(-mu*(1-lambda/mu)*t).
func RespTimeCDFMM1(lambda float64, mu float64, t float64) float64 {
	return 1 - math.Exp(-mu*(1-lambda/mu)*t)
}
