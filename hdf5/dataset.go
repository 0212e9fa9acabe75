// Package hdf5 runs simulations headlessly and records trajectories to HDF5 files.
package hdf5

import (
	"io"

	"github.com/PrincetonUniversity/ants"
)

// A Dataset stipulates how to generate data and where to store them in the HDF5 file.
type Dataset struct {
	// Name the name of the dataset in the HDF5 file.
	Name string

	// Val is a value of the same concrete type as the underlying type of the data.
	Val interface{}

	// Dims are the dimensions of the data for a single step.
	Dims []int

	// Data is a function that produces the data
	// as a pointer to a slice of row-major concrete values.
	Data func(s *ants.Simulation) interface{}

	h handles
}

// Config holds the parameters of the HDF5 driver.
type Config struct {
	Output   string     // path of output file
	Steps    int        // total number of steps
	Step     func()     // go to next step
	Datasets []*Dataset // list of datasets

	// Attrs, if not nil, is a pointer to a struct whose fields
	// are saved as attributes of the "config" dataset.
	Attrs interface{}

	// Progress, if not nil, receives the completion percentage as the run goes.
	Progress io.Writer
}

// A Record is what is recorded in the HDF5 file for each agent at each step.
// This structure is mapped to a compound datatype in HDF5 so member names are important.
type Record struct {
	Pos   [2]float64 // position
	Dir   [2]float64 // unit heading
	Speed float64    // speed
	Hit   int32      // 1 if a sensing ray intersected another agent, else 0
	Ray   int32      // offset index of that ray
}

// Records returns the state of the swarm as records.
func Records(swarm []ants.Agent, buf []Record) []Record {
	buf = buf[:0]
	for _, a := range swarm {
		r := Record{Pos: a.Pos, Dir: a.Dir, Speed: a.Speed, Ray: int32(a.Sense.Ray)}
		if a.Sense.Hit {
			r.Hit = 1
		}
		buf = append(buf, r)
	}
	return buf
}

// Agents returns a dataset recording the state of n agents at each step.
func Agents(n int) *Dataset {
	var buf []Record
	return &Dataset{
		Name: "agents",
		Val:  Record{},
		Dims: []int{n},
		Data: func(s *ants.Simulation) interface{} {
			buf = Records(s.Swarm, buf)
			return &buf
		},
	}
}

// Time returns a dataset recording the simulation time at each step.
func Time() *Dataset {
	var t float64
	return &Dataset{
		Name: "time",
		Val:  t,
		Data: func(s *ants.Simulation) interface{} {
			t = s.Env.Time
			return &t
		},
	}
}
