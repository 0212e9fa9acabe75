package ants

import (
	"math"
	"math/rand"
)

// Speed range of newly created agents, in world units per second.
const (
	MinAgentSpeed = 20.0
	MaxAgentSpeed = 100.0
)

// Sense is the outcome of the last ray scan of an agent.
type Sense struct {
	Hit bool // some ray intersected another agent
	Ray int  // offset index of the first ray that did, if any
}

// An Agent is a single ant.
type Agent struct {
	ID    int     // unique, equal to the index of the agent at creation
	Pos   Vec2    // position in world coordinates
	Dir   Vec2    // unit heading
	Speed float64 // in world units per second, constant
	Sense Sense   // result of the last scan
}

// Populate creates n agents uniformly spread inside bounds,
// with uniformly random headings and speeds.
func Populate(n int, bounds Rect, rng *rand.Rand) []Agent {
	w, h := bounds.Size()
	swarm := make([]Agent, n)
	for i := range swarm {
		θ := -math.Pi + 2*math.Pi*rng.Float64()
		sin, cos := math.Sincos(θ)
		swarm[i] = Agent{
			ID:    i,
			Pos:   Vec2{bounds.Min[0] + w*rng.Float64(), bounds.Min[1] + h*rng.Float64()},
			Dir:   Vec2{cos, sin},
			Speed: MinAgentSpeed + (MaxAgentSpeed-MinAgentSpeed)*rng.Float64(),
		}
	}
	return swarm
}
