package main

import (
	"math/rand"

	"github.com/PrincetonUniversity/ants"
)

// far is a pointer position out of reach of every agent.
var far = ants.Vec2{1e9, 1e9}

// behavior returns the agent parameters described by conf.
func behavior(conf *Config) ants.Behavior {
	b := ants.DefaultBehavior()
	switch conf.Avoidance {
	case "linear":
		b.Avoidance = ants.LinearAvoidance(conf.AvoidGain)
	case "inverse":
		b.Avoidance = ants.InverseAvoidance(conf.AvoidGain)
	}
	b.MaxTurn = conf.MaxTurn
	return b
}

// settings returns the initial settings described by conf.
func settings(conf *Config) ants.Settings {
	set := ants.DefaultSettings()
	set.SetSpeed(conf.Speed)
	set.Trails = conf.Trails
	set.Debug = conf.Debug
	return set
}

// setup initializes the state and parameters of all agents.
// The seed must already be resolved.
func setup(conf *Config) (*ants.Simulation, func(w, h float64)) {
	rng := rand.New(rand.NewSource(conf.Seed))
	bounds := ants.Centered(conf.Width, conf.Height)

	s := &ants.Simulation{
		Swarm: ants.Populate(conf.SwarmSize, bounds, rng),
		Env: ants.Environment{
			Dt:      conf.Dt,
			Pointer: far,
			Bounds:  bounds,
		},
		Behavior: behavior(conf),
		Noise:    ants.NewPerlin(conf.Seed),
		Workers:  conf.Workers,
	}

	// reset repopulates a world of the given size
	reset := func(w, h float64) {
		s.Swarm = ants.Populate(conf.SwarmSize, ants.Centered(w, h), rng)
	}
	return s, reset
}
