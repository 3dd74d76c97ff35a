package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dcs-fog/capacity-planner/internal/metrics"
	"github.com/dcs-fog/capacity-planner/pkg/queueing"
	"github.com/dcs-fog/capacity-planner/pkg/sizer"
)

// Handlers for REST API calls

// sizing request parameters
type SizingRequest struct {
	Lambda     float64  `json:"lambda" binding:"required"`
	Mu         float64  `json:"mu" binding:"required"`
	Target     float64  `json:"target" binding:"required"`
	Percentile float64  `json:"percentile,omitempty"`
	Tolerance  *float64 `json:"tolerance,omitempty"` // defaults to the configured tolerance
}

// sizing outcome; Servers is set only when Outcome is "ok"
type SizingResponse struct {
	Servers int    `json:"servers,omitempty"`
	Outcome string `json:"outcome"`
	Detail  string `json:"detail,omitempty"`
}

func (server *PlannerServer) postSizing(c *gin.Context) {
	var req SizingRequest
	if err := c.BindJSON(&req); err != nil {
		server.recorder.RecordSizing(metrics.OutcomeBadRequest, 0)
		return
	}
	servers, err := server.sizer.FindMinServers(req.Lambda, req.Mu, req.Target, server.reqTolerance(&req))
	server.respondSizing(c, servers, err)
}

func (server *PlannerServer) postSizingPercentile(c *gin.Context) {
	var req SizingRequest
	if err := c.BindJSON(&req); err != nil {
		server.recorder.RecordSizing(metrics.OutcomeBadRequest, 0)
		return
	}
	servers, err := server.sizer.FindMinServersPercentile(
		req.Lambda, req.Mu, req.Target, req.Percentile, server.reqTolerance(&req))
	server.respondSizing(c, servers, err)
}

func (server *PlannerServer) reqTolerance(req *SizingRequest) float64 {
	if req.Tolerance != nil {
		return *req.Tolerance
	}
	return server.tolerance
}

// respondSizing maps a sizing outcome to a response. Infeasible and
// not-converged are planning outcomes, reported with 200 and a distinguishing
// outcome field; only malformed parameters produce an error status.
func (server *PlannerServer) respondSizing(c *gin.Context, servers int, err error) {
	switch {
	case err == nil:
		server.recorder.RecordSizing(metrics.OutcomeOK, servers)
		c.IndentedJSON(http.StatusOK, SizingResponse{Servers: servers, Outcome: metrics.OutcomeOK})
	case errors.Is(err, sizer.ErrInfeasible):
		server.recorder.RecordSizing(metrics.OutcomeInfeasible, 0)
		c.IndentedJSON(http.StatusOK, SizingResponse{Outcome: metrics.OutcomeInfeasible, Detail: err.Error()})
	case errors.Is(err, sizer.ErrNotConverged):
		server.recorder.RecordSizing(metrics.OutcomeNotConverged, 0)
		c.IndentedJSON(http.StatusOK, SizingResponse{Outcome: metrics.OutcomeNotConverged, Detail: err.Error()})
	default:
		server.recorder.RecordSizing(metrics.OutcomeBadRequest, 0)
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	}
}

func (server *PlannerServer) getResponseTime(c *gin.Context) {
	lambda, mu, servers, ok := queryModelParams(c)
	if !ok {
		return
	}
	respTime, err := queueing.AvgRespTime(lambda, mu, servers)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"respTime": respTime})
}

func (server *PlannerServer) getCDF(c *gin.Context) {
	lambda, mu, servers, ok := queryModelParams(c)
	if !ok {
		return
	}
	t, err := strconv.ParseFloat(c.Query("t"), 64)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": "invalid parameter t"})
		return
	}
	prob, err := queueing.RespTimeCDF(lambda, mu, servers, t)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"probability": prob})
}

func (server *PlannerServer) getMobilityNext(c *gin.Context) {
	if server.generator == nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "mobility generator not configured"})
		return
	}
	count := server.generator.Next()
	server.recorder.RecordMobilityStep(count)
	c.IndentedJSON(http.StatusOK, gin.H{"step": server.generator.Steps(), "count": count})
}

func queryModelParams(c *gin.Context) (lambda float64, mu float64, servers int, ok bool) {
	var err error
	if lambda, err = strconv.ParseFloat(c.Query("lambda"), 64); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": "invalid parameter lambda"})
		return 0, 0, 0, false
	}
	if mu, err = strconv.ParseFloat(c.Query("mu"), 64); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": "invalid parameter mu"})
		return 0, 0, 0, false
	}
	if servers, err = strconv.Atoi(c.Query("servers")); err != nil || servers < 1 {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": "invalid parameter servers"})
		return 0, 0, 0, false
	}
	return lambda, mu, servers, true
}
