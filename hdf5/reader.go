//go:build !nohdf5

package hdf5

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// A Reader sequentially reads the steps of an agents dataset
// recorded by Run.
type Reader struct {
	i uint // index of current step
	n uint // total number of steps

	data []Record // data buffer

	file   *hdf5.File
	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// NewReader opens a dataset in an HDF5 file and returns an initialized reader.
func NewReader(filepath, dataset string) (*Reader, error) {
	r := new(Reader)
	var err error
	r.file, err = hdf5.OpenFile(filepath, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	r.dset, err = r.file.OpenDataset(dataset)
	if err != nil {
		checkClose(&err, r.file)
		return nil, err
	}
	r.fspace = r.dset.Space()
	dims, _, err := r.fspace.SimpleExtentDims()
	if err != nil {
		r.closeAll(&err)
		return nil, err
	}
	if len(dims) != 2 {
		r.closeAll(&err)
		return nil, fmt.Errorf("hdf5: dataset %q has %d dimensions, expected 2", dataset, len(dims))
	}
	if dims[0] == 0 {
		r.closeAll(&err)
		return nil, fmt.Errorf("hdf5: dataset %q has no steps", dataset)
	}
	r.n = dims[0]

	r.mspace, err = hdf5.CreateSimpleDataspace(dims[1:], nil)
	if err != nil {
		r.closeAll(&err)
		return nil, err
	}

	start := []uint{0, 0}
	count := []uint{1, dims[1]}
	if err := r.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		r.closeAll(&err)
		return nil, err
	}

	r.data = make([]Record, dims[1])

	return r, nil
}

// Len returns the number of steps in the dataset.
func (r *Reader) Len() int {
	return int(r.n)
}

// Next reads the next step and cycles when every step has already been read.
// The returned slice is only valid until the next call.
func (r *Reader) Next() ([]Record, error) {
	start := []uint{r.i, 0}
	if err := r.fspace.SetOffset(start); err != nil {
		return nil, err
	}
	r.i = (r.i + 1) % r.n

	if err := r.dset.ReadSubset(&r.data, r.mspace, r.fspace); err != nil {
		return nil, err
	}
	return r.data, nil
}

// Close releases the HDF5 objects of the reader.
func (r *Reader) Close() (err error) {
	r.closeAll(&err)
	return err
}

func (r *Reader) closeAll(err *error) {
	if r.mspace != nil {
		checkClose(err, r.mspace)
	}
	checkClose(err, r.fspace)
	checkClose(err, r.dset)
	checkClose(err, r.file)
}
