package main

import (
	"flag"
	"os"

	"github.com/dcs-fog/capacity-planner/internal/logger"
	"github.com/dcs-fog/capacity-planner/pkg/config"
	"github.com/dcs-fog/capacity-planner/pkg/rest"
)

// create and run a REST API capacity planner server
func main() {
	configPath := flag.String("config", "", "path to planner configuration file (YAML)")
	flag.Parse()

	log := logger.New(logger.LevelFromEnv())
	defer log.Sync()

	conf := &config.PlannerConfigData{}
	if *configPath != "" {
		var err error
		if conf, err = config.Load(*configPath); err != nil {
			log.Errorw("failed to load configuration", "path", *configPath, "error", err)
			os.Exit(1)
		}
	} else {
		conf.ApplyDefaults()
	}

	server, err := rest.NewPlannerServer(conf, log)
	if err != nil {
		log.Errorw("failed to create server", "error", err)
		os.Exit(1)
	}
	if err := server.Run(); err != nil {
		log.Errorw("server stopped", "error", err)
		os.Exit(1)
	}
}
