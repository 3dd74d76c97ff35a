package config

import "github.com/prometheus/common/model"

// Data related to the capacity planner
type PlannerConfigData struct {
	Sizer    SizerSpec    `json:"sizer" yaml:"sizer"`       // capacity search parameters
	Mobility MobilitySpec `json:"mobility" yaml:"mobility"` // workload generator parameters
}

// Specifications for the capacity search
type SizerSpec struct {
	MaxServers int     `json:"maxServers" yaml:"maxServers"` // bound on candidate server counts
	Tolerance  float64 `json:"tolerance" yaml:"tolerance"`   // relative tolerance for target comparisons
}

// Specifications for the random-waypoint workload generator
type MobilitySpec struct {
	Nodes       int     `json:"nodes" yaml:"nodes"`             // number of mobile nodes
	MaxX        float64 `json:"maxX" yaml:"maxX"`               // width of the movement area
	MaxY        float64 `json:"maxY" yaml:"maxY"`               // height of the movement area
	MinV        float64 `json:"minV" yaml:"minV"`               // minimum node speed (distance per step)
	MaxV        float64 `json:"maxV" yaml:"maxV"`               // maximum node speed (distance per step)
	MaxWaitTime float64 `json:"maxWaitTime" yaml:"maxWaitTime"` // maximum pause at a waypoint (steps)

	// seed for the node movement generator; when unset, DefaultSeed is used
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// sampling interval between steps when the generator drives a live feed
	Interval model.Duration `json:"interval,omitempty" yaml:"interval,omitempty"`
}
