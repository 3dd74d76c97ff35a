package config

import (
	"time"

	"github.com/prometheus/common/model"
)

// capacity search defaults
const (
	DefaultMaxServers = 1000
	DefaultTolerance  = 1e-6
)

// workload generator defaults
const (
	// DefaultSeed seeds node movement when no seed is configured.
	DefaultSeed uint64 = 0xffff

	// DefaultRegionFraction is the side of the fog region relative to the
	// movement area, centered on it.
	DefaultRegionFraction = 0.1

	DefaultInterval = model.Duration(time.Second)
)
