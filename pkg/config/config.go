package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a planner configuration from a YAML file, filling defaults for
// unset sizer fields.
func Load(path string) (*PlannerConfigData, error) {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	c := &PlannerConfigData{}
	if err := yaml.Unmarshal(byteValue, c); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return c, nil
}

// ApplyDefaults fills unset fields with their documented defaults.
func (c *PlannerConfigData) ApplyDefaults() {
	if c.Sizer.MaxServers == 0 {
		c.Sizer.MaxServers = DefaultMaxServers
	}
	if c.Sizer.Tolerance == 0 {
		c.Sizer.Tolerance = DefaultTolerance
	}
	if c.Mobility.Interval == 0 {
		c.Mobility.Interval = DefaultInterval
	}
}

// Validate checks field ranges after defaults are applied. A zero-valued
// mobility spec is allowed, for deployments that only size capacity.
func (c *PlannerConfigData) Validate() error {
	if c.Sizer.MaxServers < 0 {
		return fmt.Errorf("sizer.maxServers must be positive, got %d", c.Sizer.MaxServers)
	}
	if c.Sizer.Tolerance < 0 {
		return fmt.Errorf("sizer.tolerance must be non-negative, got %v", c.Sizer.Tolerance)
	}
	m := &c.Mobility
	if m.Nodes == 0 && m.MaxX == 0 && m.MaxY == 0 {
		return nil
	}
	if m.Nodes <= 0 {
		return fmt.Errorf("mobility.nodes must be positive, got %d", m.Nodes)
	}
	if m.MaxX <= 0 || m.MaxY <= 0 {
		return fmt.Errorf("mobility bounds must be positive, got maxX=%v, maxY=%v", m.MaxX, m.MaxY)
	}
	if m.MinV <= 0 || m.MaxV < m.MinV {
		return fmt.Errorf("mobility speeds must satisfy 0 < minV <= maxV, got minV=%v, maxV=%v", m.MinV, m.MaxV)
	}
	if m.MaxWaitTime < 0 {
		return fmt.Errorf("mobility.maxWaitTime must be non-negative, got %v", m.MaxWaitTime)
	}
	return nil
}
