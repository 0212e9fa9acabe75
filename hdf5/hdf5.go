//go:build !nohdf5

package hdf5

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/PrincetonUniversity/ants"
	"github.com/pkg/errors"
	"gonum.org/v1/hdf5"
)

// handles are the HDF5 objects backing a dataset during a run.
type handles struct {
	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// Run runs a simulation and saves data to an HDF5 file.
func Run(s *ants.Simulation, conf *Config) (err error) {
	if err := os.MkdirAll(filepath.Dir(conf.Output), 0755); err != nil {
		return err
	}

	file, err := hdf5.CreateFile(conf.Output, hdf5.F_ACC_TRUNC)
	if err != nil {
		return errors.Wrapf(err, "hdf5: cannot create %s", conf.Output)
	}
	defer checkClose(&err, file)

	if err := saveConfig(file, conf); err != nil {
		return errors.Wrap(err, "hdf5: cannot save config")
	}

	for _, d := range conf.Datasets {
		if err := d.init(file, conf); err != nil {
			return errors.Wrapf(err, "hdf5: cannot create dataset %q", d.Name)
		}
		defer checkClose(&err, d)
	}

	for k := uint(0); k < uint(conf.Steps); k++ {
		// show progress as percentage
		if conf.Progress != nil {
			fmt.Fprintf(conf.Progress, "\r% 3d%%", 100*k/uint(conf.Steps))
		}

		for _, d := range conf.Datasets {
			start := make([]uint, len(d.Dims)+1)
			start[0] = k
			if err := d.h.fspace.SetOffset(start); err != nil {
				return err
			}
			if err := d.h.dset.WriteSubset(d.Data(s), d.h.mspace, d.h.fspace); err != nil {
				return errors.Wrapf(err, "hdf5: cannot write step %d of %q", k, d.Name)
			}
		}

		conf.Step()
	}
	if conf.Progress != nil {
		fmt.Fprintf(conf.Progress, "\r100%%\n")
	}
	return nil
}

// saveConfig creates a "config" dataset with a null dataspace whose attributes
// reflect the whole configuration plus some other appropriate metadata.
func saveConfig(file *hdf5.File, conf *Config) (err error) {
	null, err := hdf5.CreateDataspace(hdf5.S_NULL)
	if err != nil {
		return err
	}
	defer checkClose(&err, null)

	anytype, err := hdf5.NewDatatypeFromValue(0)
	if err != nil {
		return err
	}
	defer checkClose(&err, anytype)

	dset, err := file.CreateDataset("config", anytype, null)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	scalar, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	defer checkClose(&err, scalar)

	now := time.Now().String()
	if err := writeAttr(dset, scalar, "Time", &now); err != nil {
		return err
	}

	if conf.Attrs == nil {
		return nil
	}
	v := reflect.ValueOf(conf.Attrs).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		val := f.Addr().Interface()
		if f.Kind() == reflect.Bool {
			// HDF5 has no boolean type
			var b int8
			if f.Bool() {
				b = 1
			}
			val = &b
		}
		if err := writeAttr(dset, scalar, v.Type().Field(i).Name, val); err != nil {
			return err
		}
	}
	return nil
}

// writeAttr writes the scalar value pointed to by val as an attribute of dset.
func writeAttr(dset *hdf5.Dataset, scalar *hdf5.Dataspace, name string, val interface{}) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(reflect.ValueOf(val).Elem().Interface())
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	attr, err := dset.CreateAttribute(name, dtype, scalar)
	if err != nil {
		return err
	}
	defer checkClose(&err, attr)

	return attr.Write(val, dtype)
}

// init creates the dataset and the dataspaces used to write it step by step.
func (d *Dataset) init(file *hdf5.File, conf *Config) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(d.Val)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	udims := make([]uint, len(d.Dims)+1)
	udims[0] = uint(conf.Steps)
	for i, n := range d.Dims {
		udims[i+1] = uint(n)
	}

	d.h.fspace, err = hdf5.CreateSimpleDataspace(udims, nil)
	if err != nil {
		return err
	}

	start := make([]uint, len(udims))
	count := make([]uint, len(udims))
	copy(count, udims)
	count[0] = 1

	if err := d.h.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		checkClose(&err, d.h.fspace)
		return err
	}

	if len(d.Dims) == 0 {
		d.h.mspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
	} else {
		d.h.mspace, err = hdf5.CreateSimpleDataspace(udims[1:], nil)
	}
	if err != nil {
		checkClose(&err, d.h.fspace)
		return err
	}

	d.h.dset, err = file.CreateDataset(d.Name, dtype, d.h.fspace)
	if err != nil {
		checkClose(&err, d.h.fspace)
		checkClose(&err, d.h.mspace)
	}

	return err
}

// Close closes the HDF5 dataset and dataspaces.
func (d *Dataset) Close() error {
	if err := d.h.dset.Close(); err != nil {
		return err
	}
	if err := d.h.mspace.Close(); err != nil {
		return err
	}
	if err := d.h.fspace.Close(); err != nil {
		return err
	}
	return nil
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
