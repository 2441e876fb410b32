package cli

import (
	"bytes"
	"flag"
	"io"
	"math"
	"testing"

	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet() (*flag.FlagSet, *int, *bool) {
	fs := NewFlagSet("train", "<dataset_path> [flags]", io.Discard)
	n := fs.Int("iterations", 10, "")
	fs.IntVar(n, "i", 10, "")
	plot := fs.Bool("plot", false, "")
	return fs, n, plot
}

func TestParseInterspersed(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		positional []string
		iterations int
		plot       bool
	}{
		{"flags first", []string{"-i", "5", "--plot", "data.csv"}, []string{"data.csv"}, 5, true},
		{"flags last", []string{"data.csv", "--iterations=7", "--plot"}, []string{"data.csv"}, 7, true},
		{"mixed", []string{"1", "-i=3", "model.csv"}, []string{"1", "model.csv"}, 3, false},
		{"no flags", []string{"a", "b"}, []string{"a", "b"}, 10, false},
		{"terminator", []string{"--plot", "--", "-1", "-i"}, []string{"-1", "-i"}, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, n, plot := newTestFlagSet()
			got, err := Parse(fs, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.positional, got)
			assert.Equal(t, tt.iterations, *n)
			assert.Equal(t, tt.plot, *plot)
		})
	}
}

func TestParseErrors(t *testing.T) {
	fs, _, _ := newTestFlagSet()
	_, err := Parse(fs, []string{"data.csv", "--unknown"})
	var usage *UsageError
	assert.True(t, errors.As(err, &usage))

	fs, _, _ = newTestFlagSet()
	_, err = Parse(fs, []string{"--help"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, ValidateIterations(1))

	err := ValidateIterations(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Number of iterations must be greater than 0")
	var validation *errors.ValidationError
	assert.True(t, errors.As(err, &validation))

	assert.NoError(t, ValidateLearningRate(0.01))
	assert.NoError(t, ValidateLearningRate(-1))
	assert.Error(t, ValidateLearningRate(math.NaN()))
	assert.Error(t, ValidateLearningRate(math.Inf(1)))
}

func TestExit(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 0, Exit(nil, &stderr))
	assert.Equal(t, 0, Exit(flag.ErrHelp, &stderr))
	assert.Empty(t, stderr.String())

	assert.Equal(t, 2, Exit(Usagef("expected %d arguments", 2), &stderr))
	assert.Contains(t, stderr.String(), "Error: expected 2 arguments")

	stderr.Reset()
	ioErr := errors.NewIOErrorf("Dataset.Load", errors.IsEmpty, "")
	assert.Equal(t, 1, Exit(ioErr, &stderr))
	assert.Equal(t, "Error: linreg: Dataset.Load: dataset is empty\n", stderr.String())
}

func TestLogConfigSetup(t *testing.T) {
	t.Cleanup(func() { log.SetLogger(log.NewConsoleLogger(io.Discard, log.LevelWarn)) })

	tests := []struct {
		format string
		want   string
	}{
		{FormatConsole, "hello"},
		{FormatJSON, `"message":"hello"`},
		{FormatSlog, `"severity":"INFO"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, LogConfig{Level: "info", Format: tt.format}.Setup(&buf))
			log.GetLogger().Info("hello")
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	var usage *UsageError
	assert.True(t, errors.As(LogConfig{Level: "loud", Format: FormatConsole}.Setup(io.Discard), &usage))
	assert.True(t, errors.As(LogConfig{Level: "loud", Format: FormatSlog}.Setup(io.Discard), &usage))
	assert.True(t, errors.As(LogConfig{Level: "info", Format: "xml"}.Setup(io.Discard), &usage))
}
