package queueing

import (
	"errors"
	"math"
	"testing"
)

func TestAvgRespTimeSingleServerClosedForm(t *testing.T) {
	// (1/mu)/(1-rho), exact
	got, err := AvgRespTime(1, 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.0 {
		t.Errorf("AvgRespTime(1, 2, 1) = %v, want exactly 1.0", got)
	}
}

func TestAvgRespTimeSingleServerDiverges(t *testing.T) {
	// response time increases monotonically as lambda approaches mu
	mu := 1.0
	prev := 0.0
	for _, lambda := range []float64{0.5, 0.9, 0.99, 0.999} {
		got, err := AvgRespTime(lambda, mu, 1)
		if err != nil {
			t.Fatalf("lambda=%v: unexpected error: %v", lambda, err)
		}
		if got <= prev {
			t.Errorf("lambda=%v: respTime %v not greater than %v at lower load", lambda, got, prev)
		}
		prev = got
	}
}

func TestAvgRespTimeNonIncreasingInServers(t *testing.T) {
	lambda, mu := 5.0, 2.0
	prev := math.Inf(1)
	for m := 3; m <= 10; m++ {
		got, err := AvgRespTime(lambda, mu, m)
		if err != nil {
			t.Fatalf("m=%d: unexpected error: %v", m, err)
		}
		if got > prev {
			t.Errorf("m=%d: respTime %v increased from %v at fewer servers", m, got, prev)
		}
		prev = got
	}
}

func TestAvgRespTimeMultiServer(t *testing.T) {
	// lambda=5, mu=2: single server unstable, three servers give rho=5/6
	got, err := AvgRespTime(5, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got <= 0 || math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("AvgRespTime(5, 2, 3) = %v, want finite positive value", got)
	}
	// a sojourn time is at least one service time
	if got < 1.0/2.0 {
		t.Errorf("AvgRespTime(5, 2, 3) = %v, below the mean service time", got)
	}
}

func TestAvgRespTimeUnstable(t *testing.T) {
	tests := []struct {
		name       string
		lambda, mu float64
		servers    int
	}{
		{name: "overloaded single server", lambda: 5, mu: 2, servers: 1},
		{name: "overloaded two servers", lambda: 5, mu: 2, servers: 2},
		{name: "utilization exactly one", lambda: 4, mu: 2, servers: 2},
		{name: "zero arrival rate", lambda: 0, mu: 2, servers: 1},
		{name: "zero service rate", lambda: 1, mu: 0, servers: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AvgRespTime(tt.lambda, tt.mu, tt.servers); !errors.Is(err, ErrUnstable) {
				t.Errorf("AvgRespTime(%v, %v, %d) error = %v, want ErrUnstable",
					tt.lambda, tt.mu, tt.servers, err)
			}
		})
	}
}

func TestAvgRespTimeDeterminism(t *testing.T) {
	a, _ := AvgRespTime(5, 2, 3)
	b, _ := AvgRespTime(5, 2, 3)
	if a != b {
		t.Errorf("repeated calls differ: %v vs %v", a, b)
	}
}

func TestMMCModelStatistics(t *testing.T) {
	model := NewMMCModel(3)
	model.Solve(5, 2)
	if !model.IsValid() {
		t.Fatalf("model invalid: %s", model)
	}
	if got, want := model.GetRho(), 5.0/6.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("rho = %v, want %v", got, want)
	}
	if got, want := model.GetAvgServTime(), 0.5; got != want {
		t.Errorf("avgServTime = %v, want %v", got, want)
	}
	if model.GetAvgWaitTime() < 0 {
		t.Errorf("avgWaitTime = %v, want non-negative", model.GetAvgWaitTime())
	}
	// Little's Law ties the pieces together
	if got, want := model.GetAvgNumInSystem(), model.GetLambda()*model.GetAvgRespTime(); math.Abs(got-want) > 1e-9 {
		t.Errorf("avgNumInSystem = %v, want lambda*respTime = %v", got, want)
	}
}

func TestResponseTimeCDF(t *testing.T) {
	model := NewMMCModel(3)
	model.Solve(5, 2)
	if !model.IsValid() {
		t.Fatal("model invalid")
	}
	prev := 0.0
	for _, tm := range []float64{0.1, 0.5, 1, 2, 5, 10} {
		p := model.ResponseTimeCDF(tm)
		if p < 0 || p > 1+1e-12 {
			t.Errorf("CDF(%v) = %v, want value in [0,1]", tm, p)
		}
		if p < prev {
			t.Errorf("CDF(%v) = %v decreased from %v", tm, p, prev)
		}
		prev = p
	}
	// far beyond the mean, nearly all customers are done
	if p := model.ResponseTimeCDF(100); p < 0.999 {
		t.Errorf("CDF(100) = %v, want close to 1", p)
	}
}

func TestResponseTimeCDFRemovableSingularity(t *testing.T) {
	// lambda = (c-1)*mu makes the closed form 0/0; the continuous extension
	// must still yield a proper probability
	model := NewMMCModel(2)
	model.Solve(2, 2)
	if !model.IsValid() {
		t.Fatal("model invalid")
	}
	for _, tm := range []float64{0.1, 1, 10} {
		p := model.ResponseTimeCDF(tm)
		if math.IsNaN(p) || p < 0 || p > 1+1e-9 {
			t.Errorf("CDF(%v) = %v, want value in [0,1]", tm, p)
		}
	}
}

func TestResponseTimeCDFUnstable(t *testing.T) {
	model := NewMMCModel(1)
	model.Solve(5, 2)
	if model.IsValid() {
		t.Fatal("expected invalid model")
	}
	if p := model.ResponseTimeCDF(1); p != 0 {
		t.Errorf("CDF on unstable model = %v, want 0", p)
	}
}

func TestRespTimeCDFBoundary(t *testing.T) {
	if _, err := RespTimeCDF(5, 2, 1, 1); !errors.Is(err, ErrUnstable) {
		t.Errorf("RespTimeCDF(5, 2, 1, 1) error = %v, want ErrUnstable", err)
	}
}

func TestRespTimeCDFMM1MatchesGeneralModel(t *testing.T) {
	lambda, mu := 1.0, 2.0
	got, err := RespTimeCDF(lambda, mu, 1, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := RespTimeCDFMM1(lambda, mu, 1.5)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("general model CDF = %v, M/M/1 specialization = %v", got, want)
	}
}

func TestRespTimeCDFMM1(t *testing.T) {
	// 1 - exp(-mu*(1-lambda/mu)*t)
	got := RespTimeCDFMM1(1, 2, 2)
	want := 1 - math.Exp(-2)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("RespTimeCDFMM1(1, 2, 2) = %v, want %v", got, want)
	}
}
