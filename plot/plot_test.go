package plot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/linreg/dataset"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct{ a, b float64 }

func (l line) Estimate(x float64) float64 { return l.a*x + l.b }

func sample(t *testing.T) *dataset.Dataset {
	t.Helper()
	d, err := dataset.FromColumns([]float64{1, 2, 3, 4}, []float64{3, 5.5, 6.5, 9})
	require.NoError(t, err)
	return d
}

func TestLinearModelFormats(t *testing.T) {
	tests := []struct {
		file   string
		marker []byte
	}{
		{"plot.png", []byte("\x89PNG")},
		{"plot.svg", []byte("<svg")},
		{"plot.pdf", []byte("%PDF")},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, LinearModel(line{2, 1}, sample(t), path))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, bytes.Contains(data[:min(len(data), 512)], tt.marker),
				"unexpected header %q", data[:min(len(data), 16)])
		})
	}
}

func TestLinearModelUsesRecordedBounds(t *testing.T) {
	d := sample(t)
	require.NoError(t, d.Normalize())
	require.NoError(t, d.Denormalize())

	xMin, xMax, yMin, yMax := bounds(d)
	assert.Equal(t, []float64{1, 4, 3, 9}, []float64{xMin, xMax, yMin, yMax})

	p, err := build(line{2, 1}, d)
	require.NoError(t, err)
	assert.Equal(t, title, p.Title.Text)
	assert.LessOrEqual(t, p.X.Min, 1.0)
	assert.GreaterOrEqual(t, p.X.Max, 4.0)
}

func TestLinearModelErrors(t *testing.T) {
	err := LinearModel(line{1, 0}, dataset.New(), filepath.Join(t.TempDir(), "p.png"))
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	err = LinearModel(line{1, 0}, sample(t), filepath.Join(t.TempDir(), "p.unknown"))
	assert.Equal(t, errors.CouldNotSaveFile, errors.KindOf(err))

	err = LinearModel(line{1, 0}, sample(t), filepath.Join(t.TempDir(), "missing", "p.png"))
	assert.Equal(t, errors.CouldNotSaveFile, errors.KindOf(err))
}
