package mobility

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/dcs-fog/capacity-planner/pkg/config"
)

// Position of a node in the movement area
type Position struct {
	X float64
	Y float64
}

// state of one mobile node
type node struct {
	pos   Position
	dest  Position
	speed float64
	wait  float64 // remaining pause at the current waypoint, in steps
}

// WaypointModel moves nodes over a MaxX x MaxY rectangle following the
// random-waypoint model: each node travels in a straight line to a uniformly
// chosen destination at a uniformly chosen speed, pauses there for a uniform
// time up to MaxWaitTime, then repeats. All randomness comes from a single
// source seeded explicitly, so runs are reproducible.
type WaypointModel struct {
	nodes []node

	posX  distuv.Uniform
	posY  distuv.Uniform
	speed distuv.Uniform
	pause distuv.Uniform
}

// NewWaypointModel creates a model from the given spec, seeding node
// movement with spec.Seed or config.DefaultSeed when unset.
func NewWaypointModel(spec *config.MobilitySpec) *WaypointModel {
	seed := config.DefaultSeed
	if spec.Seed != nil {
		seed = *spec.Seed
	}
	src := rand.NewPCG(seed, seed)

	w := &WaypointModel{
		nodes: make([]node, spec.Nodes),
		posX:  distuv.Uniform{Min: 0, Max: spec.MaxX, Src: src},
		posY:  distuv.Uniform{Min: 0, Max: spec.MaxY, Src: src},
		speed: distuv.Uniform{Min: spec.MinV, Max: spec.MaxV, Src: src},
		pause: distuv.Uniform{Min: 0, Max: spec.MaxWaitTime, Src: src},
	}
	for i := range w.nodes {
		n := &w.nodes[i]
		n.pos = Position{X: w.posX.Rand(), Y: w.posY.Rand()}
		w.retarget(n)
	}
	return w
}

// retarget picks a new destination and travel speed for a node.
func (w *WaypointModel) retarget(n *node) {
	n.dest = Position{X: w.posX.Rand(), Y: w.posY.Rand()}
	n.speed = w.speed.Rand()
}

// Step advances the model by one time unit and returns the node positions.
func (w *WaypointModel) Step() []Position {
	for i := range w.nodes {
		w.advance(&w.nodes[i])
	}
	positions := make([]Position, len(w.nodes))
	for i := range w.nodes {
		positions[i] = w.nodes[i].pos
	}
	return positions
}

func (w *WaypointModel) advance(n *node) {
	if n.wait > 0 {
		n.wait--
		return
	}
	dx := n.dest.X - n.pos.X
	dy := n.dest.Y - n.pos.Y
	dist := math.Hypot(dx, dy)
	if dist <= n.speed {
		// waypoint reached, pause before choosing the next one
		n.pos = n.dest
		if w.pause.Max > w.pause.Min {
			n.wait = w.pause.Rand()
		}
		w.retarget(n)
		return
	}
	n.pos.X += n.speed * dx / dist
	n.pos.Y += n.speed * dy / dist
}
