package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/dcs-fog/capacity-planner/internal/metrics"
	"github.com/dcs-fog/capacity-planner/pkg/config"
)

var _ = Describe("PlannerServer", func() {
	var server *PlannerServer

	newServer := func(conf *config.PlannerConfigData) *PlannerServer {
		conf.ApplyDefaults()
		s, err := NewPlannerServer(conf, zap.NewNop().Sugar())
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	perform := func(method, uri, body string) *httptest.ResponseRecorder {
		var reader *strings.Reader
		if body == "" {
			reader = strings.NewReader("")
		} else {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, uri, reader)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		server.router.ServeHTTP(rec, req)
		return rec
	}

	decodeSizing := func(rec *httptest.ResponseRecorder) SizingResponse {
		var resp SizingResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	BeforeEach(func() {
		server = newServer(&config.PlannerConfigData{})
	})

	Context("POST /sizing", func() {
		It("returns the minimal server count", func() {
			rec := perform(http.MethodPost, "/sizing",
				`{"lambda": 1, "mu": 2, "target": 1.0}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			resp := decodeSizing(rec)
			Expect(resp.Outcome).To(Equal(metrics.OutcomeOK))
			Expect(resp.Servers).To(Equal(1))
		})

		It("skips unstable server counts", func() {
			rec := perform(http.MethodPost, "/sizing",
				`{"lambda": 5, "mu": 2, "target": 100}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeSizing(rec).Servers).To(Equal(3))
		})

		It("reports an infeasible target as a planning outcome", func() {
			rec := perform(http.MethodPost, "/sizing",
				`{"lambda": 1, "mu": 10, "target": 0.05}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			resp := decodeSizing(rec)
			Expect(resp.Outcome).To(Equal(metrics.OutcomeInfeasible))
			Expect(resp.Servers).To(BeZero())
		})

		It("rejects malformed parameters", func() {
			rec := perform(http.MethodPost, "/sizing",
				`{"lambda": -1, "mu": 2, "target": 1}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("POST /sizing/percentile", func() {
		It("sizes against the response-time distribution", func() {
			rec := perform(http.MethodPost, "/sizing/percentile",
				`{"lambda": 1, "mu": 2, "target": 2.0, "percentile": 0.9}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			resp := decodeSizing(rec)
			Expect(resp.Outcome).To(Equal(metrics.OutcomeOK))
			Expect(resp.Servers).To(BeNumerically(">=", 1))
		})

		It("rejects a missing percentile", func() {
			rec := perform(http.MethodPost, "/sizing/percentile",
				`{"lambda": 1, "mu": 2, "target": 2.0}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("GET /responsetime", func() {
		It("evaluates the model", func() {
			rec := perform(http.MethodGet, "/responsetime?lambda=1&mu=2&servers=1", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp map[string]float64
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["respTime"]).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("rejects an unstable configuration", func() {
			rec := perform(http.MethodGet, "/responsetime?lambda=5&mu=2&servers=1", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects missing parameters", func() {
			rec := perform(http.MethodGet, "/responsetime?lambda=1", "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("GET /cdf", func() {
		It("returns a probability", func() {
			rec := perform(http.MethodGet, "/cdf?lambda=1&mu=2&servers=1&t=2", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp map[string]float64
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["probability"]).To(BeNumerically(">", 0))
			Expect(resp["probability"]).To(BeNumerically("<=", 1))
		})
	})

	Context("GET /mobility/next", func() {
		It("is not found without a mobility section", func() {
			rec := perform(http.MethodGet, "/mobility/next", "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("counts nodes in the fog region per step", func() {
			server = newServer(&config.PlannerConfigData{
				Mobility: config.MobilitySpec{
					Nodes: 20, MaxX: 100, MaxY: 100, MinV: 1, MaxV: 5, MaxWaitTime: 5,
				},
			})
			for step := 1; step <= 3; step++ {
				rec := perform(http.MethodGet, "/mobility/next", "")
				Expect(rec.Code).To(Equal(http.StatusOK))
				var resp map[string]int
				Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
				Expect(resp["step"]).To(Equal(step))
				Expect(resp["count"]).To(And(
					BeNumerically(">=", 0),
					BeNumerically("<=", 20),
				))
			}
		})
	})

	Context("GET /metrics", func() {
		It("exposes planner metrics", func() {
			perform(http.MethodPost, "/sizing", `{"lambda": 1, "mu": 2, "target": 1.0}`)
			rec := perform(http.MethodGet, "/metrics", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("planner_sizing_requests_total"))
		})
	})
})
