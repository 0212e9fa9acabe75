// Command ants runs real-time simulations of wandering ants.
//
// Usage
//
// The ants command takes one optional argument:
//  ants [flags] [config_file]
// It is the path to a TOML config file.
// If no config file is specified, an interactive simulation
// with default parameters will run in an OpenGL window.
// Flags override the values of the config file.
//
// Config file
//
// The config file is written in TOML, see ants.toml for an example
// listing every key with its default value.
//
// Interactive mode
//
// Agents flee the mouse pointer and the window (or terminal) borders
// are the boundary of the world. The following keys are available:
//  space      pause/resume
//  right      single step while paused
//  t          toggle trails
//  d          toggle sensing rays and colliders
//  + -        change the simulation speed
//  r          new swarm
//  q, Esc     quit
//
// Headless mode
//
// When an output file is specified the simulation runs with a fixed time
// step and trajectories are saved to an HDF5 file. The summary command
// prints statistics about such a file:
//  ants summary [-every n] file.h5
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"
)

func init() {
	// Most OpenGL functions have to run from the main thread.
	// This is needed to arrange that main() runs on main thread.
	// See https://github.com/golang/go/wiki/LockOSThread for more info.
	runtime.LockOSThread()
}

func main() {
	if err := makeapp().Run(os.Args); err != nil {
		Fatal(err)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "ants"
	app.Usage = "real-time simulation of wandering ants"
	app.ArgsUsage = "[config_file]"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "frontend, f", Usage: "interactive frontend: opengl or terminal"},
		cli.StringFlag{Name: "output, o", Usage: "run headless and save trajectories to this HDF5 file"},
		cli.BoolFlag{Name: "debug, d", Usage: "draw sensing rays and colliders"},
		cli.Int64Flag{Name: "seed", Usage: "seed of the random number generators"},
		cli.IntFlag{Name: "workers, w", Usage: "number of goroutines sharing each step"},
	}
	app.Action = run
	app.Commands = []cli.Command{
		{
			Name:      "summary",
			Usage:     "Print statistics about a recorded trajectory",
			ArgsUsage: "file.h5",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "every", Value: 100, Usage: "print every n-th step"},
			},
			Action: summary,
		},
	}
	return app
}

// run runs a simulation as described by the config file and flags.
func run(c *cli.Context) error {
	conf, err := config(c)
	if err != nil {
		return err
	}

	sim, reset := setup(conf)
	if conf.Output == "" {
		return RunInteractive(conf, sim, reset)
	}
	return RunHDF5(conf, sim, os.Stdout)
}

// config loads the config file, if any, and applies flags.
func config(c *cli.Context) (*Config, error) {
	var conf *Config
	switch c.NArg() {
	case 0:
		cp := *DefaultConf
		conf = &cp
	case 1:
		var err error
		if conf, err = ParseConfig(c.Args().Get(0)); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("%d arguments provided (0 required, 1 optional)", c.NArg())
	}

	if c.IsSet("frontend") {
		conf.Frontend = c.String("frontend")
	}
	if c.IsSet("output") {
		conf.Output = c.String("output")
	}
	if c.IsSet("debug") {
		conf.Debug = c.Bool("debug")
	}
	if c.IsSet("seed") {
		conf.Seed = c.Int64("seed")
	}
	if c.IsSet("workers") {
		conf.Workers = c.Int("workers")
	}
	if conf.Seed == 0 {
		conf.Seed = time.Now().UnixNano()
	}
	return conf, conf.Validate()
}

// summary prints statistics about a recorded trajectory.
func summary(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("summary requires exactly one HDF5 file")
	}
	steps, err := Summarize(c.Args().Get(0), c.Int("every"))
	if err != nil {
		return err
	}
	fmt.Printf("%8s %8s %10s %10s\n", "step", "hits", "speed", "spread")
	for _, s := range steps {
		fmt.Printf("%8d %8d %10.2f %10.2f\n", s.Step, s.Hits, s.MeanSpeed, s.Spread)
	}
	return nil
}

// Fatal prints an error on the standard error and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintln(os.Stderr, chalk.Red.Color("Error: "+err.Error()))
	os.Exit(1)
}

// Warn prints a warning on the standard error.
func Warn(err error) {
	fmt.Fprintln(os.Stderr, chalk.Yellow.Color("Warning: "+err.Error()))
}
