// Package ants runs real-time simulations of wandering ants.
//
// A fixed number of agents move in a 2D world.
// Each agent wanders along a smooth noise field, flees the pointer,
// is nudged back when it leaves the boundary and looks ahead with a fan of
// rays to steer away from the other agents it sees.
package ants

import (
	"fmt"
	"math"
	"sync"
)

// An Environment contains the inputs of the next simulation step.
type Environment struct {
	Dt      float64 // duration of the step, already scaled by the simulation speed
	Time    float64 // monotonic time, used as the time axis of the noise
	Pointer Vec2    // position of the pointer agents flee from
	Bounds  Rect    // area agents are kept in
}

// Behavior contains all the parameters relative to the rules followed by agents.
type Behavior struct {
	// AvoidRadius is the distance under which agents flee the pointer.
	AvoidRadius float64

	// Avoidance returns the strength of the push away from the pointer
	// for an agent at distance d, with d < AvoidRadius.
	Avoidance func(d, radius float64) float64

	// Containment is the strength of the nudge back toward the center
	// of the boundary for agents outside of it.
	Containment float64

	// Steps is the number of sensing rays on each side of the heading.
	Steps int

	// Fan is the angle between the heading and the outermost rays.
	Fan float64

	// RayLength is the length of the sensing rays.
	RayLength float64

	// Collider is the radius of an agent as seen by sensing rays.
	Collider float64

	// TurnGain scales the turn rate away from a sensed agent by its angular offset.
	// A negative gain makes agents turn toward what they see instead.
	TurnGain float64

	// MaxTurn is the maximum turn rate away from a sensed agent, in radians per second.
	MaxTurn float64
}

// DefaultBehavior returns the reference parameters.
// Agents turn away from the agents they sense, the opposite sign of the
// reference steering rule; set TurnGain to -55 to turn toward the hit ray instead.
func DefaultBehavior() Behavior {
	return Behavior{
		AvoidRadius: 100,
		Avoidance:   LinearAvoidance(5),
		Containment: 0.1,
		Steps:       10,
		Fan:         math.Pi / 8,
		RayLength:   50,
		Collider:    2,
		TurnGain:    55,
		MaxTurn:     10,
	}
}

// A Simulation contains all the state and parameters of a simulation.
type Simulation struct {
	Swarm    []Agent
	Env      Environment
	Behavior Behavior
	Noise    Noise

	// Workers is the number of goroutines sharing a step.
	// Zero or one means the step runs on the calling goroutine.
	Workers int

	prev []Agent // snapshot of the swarm at the start of the step
}

// Step runs a single simulation step.
//
// Every agent senses the others as they were at the start of the step,
// so the outcome does not depend on the order agents are updated in.
func (s *Simulation) Step() {
	prev := s.snapshot()
	order := RayOrder(s.Behavior.Steps)

	n := len(s.Swarm)
	w := s.Workers
	if w <= 1 || n < 2 {
		var near []Vec2
		for i := range s.Swarm {
			near = s.steer(&s.Swarm[i], prev, order, near)
		}
		return
	}
	if w > n {
		w = n
	}

	// each worker owns a contiguous chunk of the swarm
	var wg sync.WaitGroup
	chunk := (n + w - 1) / w
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(part []Agent) {
			defer wg.Done()
			var near []Vec2
			for i := range part {
				near = s.steer(&part[i], prev, order, near)
			}
		}(s.Swarm[lo:hi])
	}
	wg.Wait()
}

// snapshot copies the swarm into the snapshot buffer, reusing it when possible.
func (s *Simulation) snapshot() []Agent {
	if cap(s.prev) < len(s.Swarm) {
		s.prev = make([]Agent, len(s.Swarm))
	}
	s.prev = s.prev[:len(s.Swarm)]
	copy(s.prev, s.Swarm)
	return s.prev
}

// Check returns an error describing the first agent
// whose state is not finite or whose heading is not of unit length.
func (s *Simulation) Check() error {
	const tol = 1e-4
	for _, a := range s.Swarm {
		for _, x := range [...]float64{a.Pos[0], a.Pos[1], a.Dir[0], a.Dir[1]} {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("ants: agent %d has non-finite state (pos %v, dir %v)", a.ID, a.Pos, a.Dir)
			}
		}
		if n := a.Dir.Len(); math.Abs(n-1) > tol {
			return fmt.Errorf("ants: agent %d has heading of length %g", a.ID, n)
		}
	}
	return nil
}

// Hits returns the number of agents that sensed another agent during the last step.
func (s *Simulation) Hits() int {
	var n int
	for _, a := range s.Swarm {
		if a.Sense.Hit {
			n++
		}
	}
	return n
}
