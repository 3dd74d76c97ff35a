package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dcs-fog/capacity-planner/internal/logger"
	"github.com/dcs-fog/capacity-planner/pkg/config"
	"github.com/dcs-fog/capacity-planner/pkg/sizer"
)

// one-shot capacity sizing run
func main() {
	var (
		lambda     = flag.Float64("lambda", 0, "arrival rate (customers per unit time)")
		mu         = flag.Float64("mu", 0, "per-server service rate (customers per unit time)")
		target     = flag.Float64("target", 0, "target response time (same unit as 1/mu)")
		tol        = flag.Float64("tol", config.DefaultTolerance, "relative tolerance for target comparison")
		percentile = flag.Float64("percentile", 0, "size for P(T <= target) >= percentile instead of the mean")
		maxServers = flag.Int("max-servers", config.DefaultMaxServers, "bound on candidate server counts")
	)
	flag.Parse()

	log := logger.New(logger.LevelFromEnv())
	defer log.Sync()

	s := sizer.NewSizer(*maxServers)
	s.SetLogger(log)

	var servers int
	var err error
	if *percentile > 0 {
		servers, err = s.FindMinServersPercentile(*lambda, *mu, *target, *percentile, *tol)
	} else {
		servers, err = s.FindMinServers(*lambda, *mu, *target, *tol)
	}

	switch {
	case err == nil:
		fmt.Println(servers)
	case errors.Is(err, sizer.ErrInfeasible):
		fmt.Fprintf(os.Stderr, "infeasible: %v\n", err)
		os.Exit(2)
	case errors.Is(err, sizer.ErrNotConverged):
		fmt.Fprintf(os.Stderr, "not converged: %v\n", err)
		os.Exit(3)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
