// Package dataset holds paired (x, y) samples for univariate regression.
//
// A Dataset keeps its two columns the same length at all times and can
// normalize them to [0, 1] independently, remembering each column's bounds
// so that values and fitted coefficients can be mapped back to the original
// scale.
package dataset

import (
	"fmt"
	"iter"

	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

// Dataset pairs an independent column x with a dependent column y.
type Dataset struct {
	x Row
	y Row
}

// New returns an empty dataset.
func New() *Dataset {
	return &Dataset{}
}

// FromColumns builds a dataset from two columns of equal length.
func FromColumns(x, y []float64) (*Dataset, error) {
	if len(x) != len(y) {
		return nil, errors.NewDimensionError("Dataset.FromColumns", len(x), len(y), 0)
	}
	d := New()
	for i := range x {
		d.Push(x[i], y[i])
	}
	return d, nil
}

// Push appends one sample to both columns.
func (d *Dataset) Push(x, y float64) {
	d.x.Push(x)
	d.y.Push(y)
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return d.x.Len()
}

// IsEmpty reports whether the dataset holds no samples.
func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// X returns a copy of the x column.
func (d *Dataset) X() []float64 { return d.x.Values() }

// Y returns a copy of the y column.
func (d *Dataset) Y() []float64 { return d.y.Values() }

// XY returns the i-th sample. Together with Len it makes a Dataset a
// gonum plotter.XYer.
func (d *Dataset) XY(i int) (x, y float64) {
	return d.x.At(i), d.y.At(i)
}

// All iterates over the samples in insertion order.
func (d *Dataset) All() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for i := 0; i < d.Len(); i++ {
			if !yield(d.x.At(i), d.y.At(i)) {
				return
			}
		}
	}
}

// Normalize rescales x and y to [0, 1], each on its own scale.
//
// Either both columns are normalized or, on error, neither is.
func (d *Dataset) Normalize() error {
	xScaler, xs, err := d.x.planNormalize()
	if err != nil {
		return errors.Wrap(err, "column x")
	}
	yScaler, ys, err := d.y.planNormalize()
	if err != nil {
		return errors.Wrap(err, "column y")
	}
	d.x.commit(xScaler, xs, true)
	d.y.commit(yScaler, ys, true)

	log.GetLogger().Debug("Dataset normalized",
		log.OperationKey, log.OperationNormalize,
		log.SamplesKey, d.Len(),
		"x.min", d.XMin(), "x.max", d.XMax(),
		"y.min", d.YMin(), "y.max", d.YMax(),
	)
	return nil
}

// Denormalize maps both columns back to their original scale.
func (d *Dataset) Denormalize() error {
	xs, err := d.x.planDenormalize()
	if err != nil {
		return errors.Wrap(err, "column x")
	}
	ys, err := d.y.planDenormalize()
	if err != nil {
		return errors.Wrap(err, "column y")
	}
	d.x.commit(d.x.scaler, xs, false)
	d.y.commit(d.y.scaler, ys, false)
	return nil
}

// IsNormalized reports whether the columns are currently in normalized units.
func (d *Dataset) IsNormalized() bool {
	return d.x.IsNormalized() && d.y.IsNormalized()
}

// HasBounds reports whether both columns have been normalized at least once,
// so that XMin, XMax, YMin and YMax are meaningful.
func (d *Dataset) HasBounds() bool {
	return d.x.HasBounds() && d.y.HasBounds()
}

func (d *Dataset) XMin() float64 { return d.x.Min() }
func (d *Dataset) XMax() float64 { return d.x.Max() }
func (d *Dataset) YMin() float64 { return d.y.Min() }
func (d *Dataset) YMax() float64 { return d.y.Max() }

func (d *Dataset) String() string {
	return fmt.Sprintf("Dataset(samples=%d, normalized=%t)", d.Len(), d.IsNormalized())
}
