package linear

import (
	"math"
	"sync"
	"testing"

	"github.com/YuminosukeSato/linreg/dataset"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func mustDataset(t testing.TB, x, y []float64) *dataset.Dataset {
	t.Helper()
	d, err := dataset.FromColumns(x, y)
	require.NoError(t, err)
	return d
}

// captureWarnings は errors.Warn に渡された警告を記録する
func captureWarnings(t *testing.T) func() []error {
	t.Helper()
	var mu sync.Mutex
	var warnings []error
	errors.SetZerologWarnFunc(nil)
	errors.SetWarningHandler(func(w error) {
		mu.Lock()
		defer mu.Unlock()
		warnings = append(warnings, w)
	})
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })
	return func() []error {
		mu.Lock()
		defer mu.Unlock()
		return append([]error(nil), warnings...)
	}
}

func TestEstimate(t *testing.T) {
	m := New(0.01)
	assert.Equal(t, 0.0, m.Estimate(42))

	m.A, m.B = 2, 1
	assert.Equal(t, 11.0, m.Estimate(5))
	assert.Equal(t, -1.0, m.Estimate(-1))
}

func TestGradientDescentUpdatesSimultaneously(t *testing.T) {
	d := mustDataset(t, []float64{1, 2}, []float64{3, 5})
	m := New(0.1)

	require.NoError(t, m.GradientDescent(d))

	// residuals at (0, 0) are -3 and -5:
	// costA = (-3*1 + -5*2) / 2 = -6.5, costB = (-3 + -5) / 2 = -4
	assert.InDelta(t, 0.65, m.A, 1e-15)
	// b computed from the updated a would be 0.3025
	assert.InDelta(t, 0.4, m.B, 1e-15)
}

func TestGradientDescentEmpty(t *testing.T) {
	err := New(0.1).GradientDescent(dataset.New())
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestTrainConverges(t *testing.T) {
	var xs, ys []float64
	for i := 0; i < 10; i++ {
		xs = append(xs, float64(i))
		ys = append(ys, 2*float64(i)+3)
	}
	d := mustDataset(t, xs, ys)
	require.NoError(t, d.Normalize())

	m := New(0.1)
	require.NoError(t, m.Train(d, 10000))
	assert.True(t, m.IsFitted())
	assert.Equal(t, NormalizedScale, m.Scale())

	m, err := m.Denormalize(d)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, m.A, 1e-2)
	assert.InDelta(t, 3.0, m.B, 1e-2)

	// closed-form least squares agrees
	require.NoError(t, d.Denormalize())
	wantB, wantA := stat.LinearRegression(d.X(), d.Y(), nil, false)
	assert.InDelta(t, wantA, m.A, 1e-6)
	assert.InDelta(t, wantB, m.B, 1e-6)
}

func TestTrainEndToEnd(t *testing.T) {
	d := mustDataset(t, []float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
	require.NoError(t, d.Normalize())

	m := New(0.1)
	require.NoError(t, m.Train(d, 5000))
	m, err := m.Denormalize(d)
	require.NoError(t, err)
	require.NoError(t, d.Denormalize())

	assert.InDelta(t, 11.0, m.Estimate(5), 0.1)

	mape, err := m.MeanAbsolutePercentageError(d)
	require.NoError(t, err)
	assert.Less(t, mape, 1e-6)

	score, err := m.Score(d)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestTrainDecreasesCostMonotonically(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	noise := []float64{0.3, -0.2, 0.1, 0.4, -0.3, 0.2, -0.1, 0.0, 0.25, -0.15}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2*x + 3 + noise[i]
	}
	d := mustDataset(t, xs, ys)
	require.NoError(t, d.Normalize())

	m := New(0.1)
	prev, err := m.MeanSquaredError(d)
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		require.NoError(t, m.GradientDescent(d))
		cur, err := m.MeanSquaredError(d)
		require.NoError(t, err)
		require.LessOrEqual(t, cur, prev, "iteration %d", i+1)
		prev = cur
	}
}

func TestTrainIsDeterministic(t *testing.T) {
	d := mustDataset(t, []float64{1, 4, 2, 8}, []float64{2, 9, 3, 15})
	require.NoError(t, d.Normalize())

	m1, m2 := New(0.05), New(0.05)
	require.NoError(t, m1.Train(d, 500))
	require.NoError(t, m2.Train(d, 500))
	assert.Equal(t, math.Float64bits(m1.A), math.Float64bits(m2.A))
	assert.Equal(t, math.Float64bits(m1.B), math.Float64bits(m2.B))
}

func TestTrainErrors(t *testing.T) {
	err := New(0.1).Train(dataset.New(), 10)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	d := mustDataset(t, []float64{1, 2}, []float64{3, 4})
	err = New(0.1).Train(d, -1)
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))

	d = mustDataset(t, []float64{1, 2}, []float64{3, math.Inf(1)})
	err = New(0.1).Train(d, 10)
	var instability *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &instability))
	assert.Zero(t, instability.Iteration)
}

func TestTrainZeroIterations(t *testing.T) {
	d := mustDataset(t, []float64{1, 2}, []float64{3, 4})
	m := New(0.1)
	require.NoError(t, m.Train(d, 0))
	assert.Zero(t, m.A)
	assert.Zero(t, m.B)
}

func TestTrainDiverges(t *testing.T) {
	warnings := captureWarnings(t)
	d := mustDataset(t, []float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
	require.NoError(t, d.Normalize())

	m := New(1e6)
	err := m.Train(d, 1000)
	require.Error(t, err)

	var instability *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &instability))
	assert.Greater(t, instability.Iteration, 1)
	assert.False(t, math.IsInf(m.A, 0) || math.IsNaN(m.A))
	assert.False(t, m.IsFitted())
	assert.Empty(t, warnings())
}

func TestTrainWarnings(t *testing.T) {
	d := mustDataset(t, []float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
	require.NoError(t, d.Normalize())

	t.Run("non-positive learning rate", func(t *testing.T) {
		warnings := captureWarnings(t)
		require.NoError(t, New(0).Train(d, 10))

		got := warnings()
		require.Len(t, got, 1)
		var cw *errors.ConvergenceWarning
		require.True(t, errors.As(got[0], &cw))
		assert.Contains(t, cw.Message, "not positive")
	})

	t.Run("cost increases", func(t *testing.T) {
		warnings := captureWarnings(t)
		// 2/λmax ≈ 1.56 for this data, so 2.0 oscillates outward
		require.NoError(t, New(2.0).Train(d, 20))

		got := warnings()
		require.Len(t, got, 1)
		assert.Contains(t, got[0].Error(), "cost increased")
	})

	t.Run("healthy run", func(t *testing.T) {
		warnings := captureWarnings(t)
		require.NoError(t, New(0.1).Train(d, 100))
		assert.Empty(t, warnings())
	})
}

func TestTrainLogsProgress(t *testing.T) {
	d := mustDataset(t, []float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
	require.NoError(t, d.Normalize())

	logger, _ := log.NewTestLogger(log.LevelDebug)
	m := New(0.1, WithLogger(logger), WithLogInterval(10))
	require.NoError(t, m.Train(d, 30))

	assert.True(t, logger.ContainsMessage("Training started"))
	assert.True(t, logger.ContainsMessage("Training completed"))
	assert.True(t, logger.ContainsField(log.IterationKey, float64(30)))
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationTrain))
	assert.True(t, logger.ContainsField(log.SamplesKey, float64(4)))

	entries, err := logger.GetLogEntries()
	require.NoError(t, err)
	progress := 0
	for _, e := range entries {
		if e["message"] == "Training progress" {
			progress++
		}
	}
	assert.Equal(t, 3, progress)
}

func TestTrainWithoutProgressLogs(t *testing.T) {
	d := mustDataset(t, []float64{1, 2}, []float64{3, 5})
	require.NoError(t, d.Normalize())

	logger, _ := log.NewTestLogger(log.LevelDebug)
	require.NoError(t, New(0.1, WithLogger(logger), WithLogInterval(0)).Train(d, 30))
	assert.False(t, logger.ContainsMessage("Training progress"))
	assert.True(t, logger.ContainsMessage("Training completed"))
}

func TestDenormalize(t *testing.T) {
	d := mustDataset(t, []float64{10, 20, 30}, []float64{100, 300, 500})
	require.NoError(t, d.Normalize())

	// y_n = x_n exactly, so (1, 0) is the normalized fit of y = 20x - 100
	m := New(0.1)
	m.A, m.B = 1, 0

	orig, err := m.Denormalize(d)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, orig.A, 1e-12)
	assert.InDelta(t, -100.0, orig.B, 1e-9)
	assert.Equal(t, OriginalScale, orig.Scale())

	// receiver untouched
	assert.Equal(t, 1.0, m.A)
	assert.Equal(t, NormalizedScale, m.Scale())

	for x, y := range d.All() {
		assert.InDelta(t, m.Estimate(x)*(d.YMax()-d.YMin())+d.YMin(),
			orig.Estimate(x*(d.XMax()-d.XMin())+d.XMin()), 1e-9, "y=%v", y)
	}
}

func TestDenormalizeTwice(t *testing.T) {
	d := mustDataset(t, []float64{1, 2, 3}, []float64{3, 5, 7})
	require.NoError(t, d.Normalize())

	m := New(0.1)
	require.NoError(t, m.Train(d, 100))
	orig, err := m.Denormalize(d)
	require.NoError(t, err)

	_, err = orig.Denormalize(d)
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))
}

func TestDenormalizeWithoutBounds(t *testing.T) {
	d := mustDataset(t, []float64{1, 2, 3}, []float64{3, 5, 7})
	_, err := New(0.1).Denormalize(d)
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))
}

func TestMeanAbsolutePercentageError(t *testing.T) {
	m := New(0.1)
	m.A, m.B = 2, 0

	// |2-4|/4 = 0.5, |4-4|/4 = 0
	d := mustDataset(t, []float64{1, 2}, []float64{4, 4})
	mape, err := m.MeanAbsolutePercentageError(d)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, mape, 1e-15)

	_, err = m.MeanAbsolutePercentageError(mustDataset(t, []float64{1, 2}, []float64{0, 4}))
	assert.True(t, errors.Is(err, errors.ErrZeroDenominator))

	_, err = m.MeanAbsolutePercentageError(dataset.New())
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestString(t *testing.T) {
	tests := []struct {
		a, b, lr float64
		want     string
	}{
		{0, 0, 0.01, "LinearModel { a: 0.0, b: 0.0, learning_rate: 0.01 }"},
		{2, 1, 0.1, "LinearModel { a: 2.0, b: 1.0, learning_rate: 0.1 }"},
		{-0.5, 1234.25, 1, "LinearModel { a: -0.5, b: 1234.25, learning_rate: 1.0 }"},
		{math.Inf(1), math.NaN(), 1, "LinearModel { a: +Inf, b: NaN, learning_rate: 1.0 }"},
	}
	for _, tt := range tests {
		m := New(tt.lr)
		m.A, m.B = tt.a, tt.b
		assert.Equal(t, tt.want, m.String())
	}
}
