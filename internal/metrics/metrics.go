package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder emits custom metrics for the planner REST service.
type Recorder struct {
	sizingRequestsTotal *prometheus.CounterVec
	sizingServers       prometheus.Histogram
	mobilityInRegion    prometheus.Gauge
	mobilityStepsTotal  prometheus.Counter
}

// NewRecorder registers all planner metrics with the provided registry.
func NewRecorder(registry prometheus.Registerer) *Recorder {
	r := &Recorder{
		sizingRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planner_sizing_requests_total",
				Help: "Total number of sizing requests by outcome",
			},
			[]string{"outcome"},
		),
		sizingServers: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "planner_sizing_servers",
				Help:    "Server counts returned by successful sizing requests",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		mobilityInRegion: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "planner_mobility_nodes_in_region",
				Help: "Number of mobile nodes inside the fog region at the last step",
			},
		),
		mobilityStepsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "planner_mobility_steps_total",
				Help: "Total number of mobility simulation steps taken",
			},
		),
	}
	registry.MustRegister(
		r.sizingRequestsTotal,
		r.sizingServers,
		r.mobilityInRegion,
		r.mobilityStepsTotal,
	)
	return r
}

// Sizing request outcomes
const (
	OutcomeOK           = "ok"
	OutcomeInfeasible   = "infeasible"
	OutcomeNotConverged = "not_converged"
	OutcomeBadRequest   = "bad_request"
)

// RecordSizing counts one sizing request and, on success, observes the
// resulting server count.
func (r *Recorder) RecordSizing(outcome string, servers int) {
	r.sizingRequestsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		r.sizingServers.Observe(float64(servers))
	}
}

// RecordMobilityStep records the node count of one mobility step.
func (r *Recorder) RecordMobilityStep(inRegion int) {
	r.mobilityStepsTotal.Inc()
	r.mobilityInRegion.Set(float64(inRegion))
}
