package dataset

import (
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/preprocessing"
)

// Row is one numeric column of a dataset together with the bounds recorded
// by its last normalization.
//
// Min and Max are zero until Normalize has succeeded once. After a
// successful Normalize every value lies in [0, 1]; Denormalize restores the
// original values from the recorded bounds.
type Row struct {
	values     []float64
	scaler     preprocessing.MinMaxScaler
	normalized bool
}

// NewRow returns a row holding a copy of values.
func NewRow(values ...float64) *Row {
	r := &Row{values: make([]float64, len(values))}
	copy(r.values, values)
	return r
}

// Push appends one value.
func (r *Row) Push(v float64) {
	r.values = append(r.values, v)
}

// Len returns the number of values.
func (r *Row) Len() int {
	return len(r.values)
}

// At returns the i-th value.
func (r *Row) At(i int) float64 {
	return r.values[i]
}

// Values returns a copy of the current values.
func (r *Row) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}

// Min returns the minimum recorded by the last Normalize, or 0.
func (r *Row) Min() float64 {
	return r.scaler.DataMin
}

// Max returns the maximum recorded by the last Normalize, or 0.
func (r *Row) Max() float64 {
	return r.scaler.DataMax
}

// IsNormalized reports whether the values are currently in normalized units.
func (r *Row) IsNormalized() bool {
	return r.normalized
}

// HasBounds reports whether Normalize has succeeded at least once.
func (r *Row) HasBounds() bool {
	return r.scaler.IsFitted()
}

// Normalize rescales the values to [0, 1] using their own minimum and
// maximum and records those bounds.
//
// A row whose values are all equal cannot be normalized; the error matches
// errors.ErrZeroRange and the row is left unchanged.
func (r *Row) Normalize() error {
	next, scaled, err := r.planNormalize()
	if err != nil {
		return err
	}
	r.commit(next, scaled, true)
	return nil
}

// Denormalize maps normalized values back to the original scale with the
// bounds recorded by the last Normalize.
func (r *Row) Denormalize() error {
	original, err := r.planDenormalize()
	if err != nil {
		return err
	}
	r.commit(r.scaler, original, false)
	return nil
}

// planNormalize computes the normalized values without touching the row so
// that Dataset can normalize both columns or neither.
func (r *Row) planNormalize() (preprocessing.MinMaxScaler, []float64, error) {
	if r.normalized {
		return r.scaler, nil, errors.NewValueError("Row.Normalize", "row is already normalized")
	}
	var next preprocessing.MinMaxScaler
	scaled, err := next.FitTransform(r.values)
	if err != nil {
		return r.scaler, nil, errors.Wrap(err, "Row.Normalize")
	}
	return next, scaled, nil
}

func (r *Row) planDenormalize() ([]float64, error) {
	if !r.scaler.IsFitted() {
		return nil, errors.NewNotFittedError("Row", "Denormalize")
	}
	if !r.normalized {
		return nil, errors.NewValueError("Row.Denormalize", "row is not normalized")
	}
	return r.scaler.InverseTransform(r.values)
}

func (r *Row) commit(scaler preprocessing.MinMaxScaler, values []float64, normalized bool) {
	r.scaler = scaler
	r.values = values
	r.normalized = normalized
}
