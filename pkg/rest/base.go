package rest

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dcs-fog/capacity-planner/internal/metrics"
	"github.com/dcs-fog/capacity-planner/pkg/config"
	"github.com/dcs-fog/capacity-planner/pkg/mobility"
	"github.com/dcs-fog/capacity-planner/pkg/sizer"
)

// PlannerServer exposes capacity sizing and the mobility workload feed over
// a REST API.
type PlannerServer struct {
	router    *gin.Engine
	sizer     *sizer.Sizer
	generator *mobility.Generator // nil when no mobility section is configured
	tolerance float64
	recorder  *metrics.Recorder
	log       *zap.SugaredLogger
}

// NewPlannerServer creates a server from the planner configuration. The
// mobility feed is enabled only when the config carries a mobility section.
func NewPlannerServer(conf *config.PlannerConfigData, log *zap.SugaredLogger) (*PlannerServer, error) {
	registry := prometheus.NewRegistry()

	s := sizer.NewSizer(conf.Sizer.MaxServers)
	s.SetLogger(log)

	server := &PlannerServer{
		router:    gin.Default(),
		sizer:     s,
		tolerance: conf.Sizer.Tolerance,
		recorder:  metrics.NewRecorder(registry),
		log:       log,
	}

	if conf.Mobility.Nodes > 0 {
		gen, err := mobility.NewGenerator(&conf.Mobility)
		if err != nil {
			return nil, err
		}
		gen.SetLogger(log)
		server.generator = gen
	}

	server.router.POST("/sizing", server.postSizing)
	server.router.POST("/sizing/percentile", server.postSizingPercentile)

	server.router.GET("/responsetime", server.getResponseTime)
	server.router.GET("/cdf", server.getCDF)

	server.router.GET("/mobility/next", server.getMobilityNext)

	server.router.GET("/metrics", gin.WrapH(
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return server, nil
}

// Run starts the server on the configured or default address, blocking until
// it stops.
func (server *PlannerServer) Run() error {
	var host, port string
	if host = os.Getenv(RestHostEnvName); host == "" {
		host = DefaultRestHost
	}
	if port = os.Getenv(RestPortEnvName); port == "" {
		port = DefaultRestPort
	}
	return server.router.Run(host + ":" + port)
}
