package main

import (
	"fmt"
	"io"
	"math"

	"github.com/PrincetonUniversity/ants"
	"github.com/PrincetonUniversity/ants/hdf5"
	"github.com/PrincetonUniversity/ants/opengl"
	"github.com/PrincetonUniversity/ants/terminal"
)

const title = "ants"

// RunInteractive runs a simulation in the frontend named by the config.
func RunInteractive(conf *Config, s *ants.Simulation, reset func(w, h float64)) error {
	set := settings(conf)
	l := ants.NewLoop(s, &set)
	switch conf.Frontend {
	case "terminal":
		return terminal.Run(l, &terminal.Config{Title: title, FrameRate: 30, Reset: reset})
	default:
		return opengl.Run(l, &opengl.Config{
			Title:  title,
			Width:  int(conf.Width),
			Height: int(conf.Height),
			Reset:  reset,
		})
	}
}

// RunHDF5 runs a simulation with a fixed time step and saves trajectories to an HDF5 file.
func RunHDF5(conf *Config, s *ants.Simulation, progress io.Writer) error {
	set := settings(conf)
	set.Debug = false
	l := ants.NewLoop(s, &set)

	var check error
	f := ants.Frame{Elapsed: conf.Dt, Pointer: far, Bounds: s.Env.Bounds}
	step := func() {
		f.Time += conf.Dt
		l.Tick(f, ants.Discard)
		if check == nil {
			check = s.Check()
			if check != nil {
				Warn(fmt.Errorf("step %d: %s", l.Frames(), check))
			}
		}
	}

	err := hdf5.Run(s, &hdf5.Config{
		Output:   conf.Output,
		Steps:    conf.Steps,
		Step:     step,
		Datasets: []*hdf5.Dataset{hdf5.Agents(conf.SwarmSize), hdf5.Time()},
		Attrs:    conf,
		Progress: progress,
	})
	if err != nil {
		return err
	}
	return check
}

// A Summary describes one step of a recorded trajectory.
type Summary struct {
	Step      int
	Hits      int     // agents that sensed another agent
	MeanSpeed float64 // mean agent speed
	Spread    float64 // root mean square distance to the centroid
}

// Summarize reads an agents dataset and describes every n-th step.
func Summarize(path string, every int) ([]Summary, error) {
	r, err := hdf5.NewReader(path, "agents")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if every <= 0 {
		every = 1
	}
	var out []Summary
	for k := 0; k < r.Len(); k++ {
		recs, err := r.Next()
		if err != nil {
			return nil, err
		}
		if k%every == 0 {
			out = append(out, summarize(k, recs))
		}
	}
	return out, nil
}

// summarize describes a single step.
func summarize(k int, recs []hdf5.Record) Summary {
	sum := Summary{Step: k}
	if len(recs) == 0 {
		return sum
	}
	var c ants.Vec2
	for _, r := range recs {
		sum.Hits += int(r.Hit)
		sum.MeanSpeed += r.Speed
		c = c.Add(r.Pos)
	}
	n := float64(len(recs))
	sum.MeanSpeed /= n
	c = c.Mul(1 / n)
	for _, r := range recs {
		sum.Spread += ants.Dist2(r.Pos, c)
	}
	sum.Spread = math.Sqrt(sum.Spread / n)
	return sum
}
