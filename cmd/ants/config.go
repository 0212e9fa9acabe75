package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the various parameters required for running a simulation.
type Config struct {
	// Output is either a filename (path) for the HDF5 output file,
	// or the empty string for an interactive simulation.
	Output string

	// Frontend is the interactive frontend; possible values: opengl, terminal
	Frontend string

	SwarmSize int     // number of agents
	Steps     int     // number of time steps (hdf5 only)
	Dt        float64 // duration of time steps (hdf5 only)
	Seed      int64   // seed of the random number generators, 0 for a random seed
	Workers   int     // number of goroutines sharing each step

	// World parameters
	Width  float64 // initial width of the world, also the window width in pixels
	Height float64 // initial height of the world

	// Settings
	Speed  float64 // time dilation, between 0.1 and 3
	Trails bool    // fade frames out instead of clearing them
	Debug  bool    // draw sensing rays and colliders

	// Agent parameters
	Avoidance string  // pointer avoidance falloff; possible values: linear, inverse
	AvoidGain float64 // strength of pointer avoidance
	MaxTurn   float64 // unit: rad/time
}

// DefaultConf are the default parameters.
var DefaultConf = &Config{
	Output:    "",
	Frontend:  "opengl",
	SwarmSize: 1000,
	Steps:     1000,
	Dt:        1.0 / 60,
	Seed:      0,
	Workers:   1,
	Width:     1024,
	Height:    768,
	Speed:     1,
	Trails:    true,
	Debug:     false,
	Avoidance: "linear",
	AvoidGain: 5,
	MaxTurn:   10,
}

// ParseConfig parses the TOML config file whose path is provided.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := *DefaultConf
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return nil, errors.Wrapf(err, "cannot parse %s", path)
	}
	return &conf, nil
}

// Validate checks that the configuration describes a runnable simulation.
func (c *Config) Validate() error {
	switch {
	case c.SwarmSize <= 0:
		return errors.Errorf("swarm size must be positive, got %d", c.SwarmSize)
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("world size must be positive, got %gx%g", c.Width, c.Height)
	case c.Workers < 0:
		return errors.Errorf("number of workers must not be negative, got %d", c.Workers)
	case c.MaxTurn < 0:
		return errors.Errorf("max turn must not be negative, got %g", c.MaxTurn)
	}
	if c.Output != "" {
		if c.Steps <= 0 {
			return errors.Errorf("number of steps must be positive, got %d", c.Steps)
		}
		if c.Dt <= 0 {
			return errors.Errorf("time step must be positive, got %g", c.Dt)
		}
	}
	switch c.Frontend {
	case "opengl", "terminal":
	default:
		return errors.Errorf("bad frontend %q", c.Frontend)
	}
	switch c.Avoidance {
	case "linear", "inverse":
	default:
		return errors.Errorf("bad avoidance %q", c.Avoidance)
	}
	return nil
}
