package mobility

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dcs-fog/capacity-planner/pkg/config"
)

// Generator produces, per simulation step, the number of mobile nodes inside
// a fixed fog region: a rectangle centered on the movement area whose sides
// are config.DefaultRegionFraction of the bounds.
type Generator struct {
	model *WaypointModel
	step  int
	log   *zap.SugaredLogger

	xMin, xMax float64
	yMin, yMax float64
}

func NewGenerator(spec *config.MobilitySpec) (*Generator, error) {
	if spec.Nodes <= 0 || spec.MaxX <= 0 || spec.MaxY <= 0 {
		return nil, fmt.Errorf("invalid mobility spec: nodes=%d, maxX=%v, maxY=%v",
			spec.Nodes, spec.MaxX, spec.MaxY)
	}
	if spec.MinV <= 0 || spec.MaxV < spec.MinV {
		return nil, fmt.Errorf("invalid mobility speeds: minV=%v, maxV=%v", spec.MinV, spec.MaxV)
	}

	xLen := config.DefaultRegionFraction * spec.MaxX
	yLen := config.DefaultRegionFraction * spec.MaxY
	xCenter := spec.MaxX / 2
	yCenter := spec.MaxY / 2

	return &Generator{
		model: NewWaypointModel(spec),
		log:   zap.NewNop().Sugar(),
		xMin:  xCenter - xLen/2,
		xMax:  xCenter + xLen/2,
		yMin:  yCenter - yLen/2,
		yMax:  yCenter + yLen/2,
	}, nil
}

// SetLogger sets the diagnostic sink for per-step traces.
func (g *Generator) SetLogger(log *zap.SugaredLogger) {
	if log != nil {
		g.log = log
	}
}

// Next advances the mobility model one step and returns the number of nodes
// currently inside the fog region.
func (g *Generator) Next() int {
	positions := g.model.Step()
	g.step++

	count := 0
	for _, p := range positions {
		if p.X >= g.xMin && p.X <= g.xMax && p.Y >= g.yMin && p.Y <= g.yMax {
			count++
		}
	}
	g.log.Debugw("mobility step", "step", g.step, "inRegion", count, "nodes", len(positions))
	return count
}

// Steps returns the number of steps taken so far.
func (g *Generator) Steps() int {
	return g.step
}
