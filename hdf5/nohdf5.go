//go:build nohdf5

package hdf5

import (
	"github.com/PrincetonUniversity/ants"
	"github.com/pkg/errors"
)

var errDisabled = errors.New("hdf5: built without HDF5 support")

type handles struct{}

// Run returns an error.
func Run(s *ants.Simulation, conf *Config) error {
	return errDisabled
}

// A Reader is not available without HDF5 support.
type Reader struct{}

// NewReader returns an error.
func NewReader(filepath, dataset string) (*Reader, error) {
	return nil, errDisabled
}

// Len returns 0.
func (r *Reader) Len() int { return 0 }

// Next returns an error.
func (r *Reader) Next() ([]Record, error) { return nil, errDisabled }

// Close does nothing.
func (r *Reader) Close() error { return nil }
