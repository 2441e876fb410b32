// Package cli holds the flag handling and logging setup shared by the
// train and predict commands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

// UsageError is returned for bad command-line input. Exit reports it with
// status 2.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// NewUsageError wraps err as a UsageError. A nil err stays nil.
func NewUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{Err: err}
}

// Usagef formats a UsageError.
func Usagef(format string, args ...interface{}) error {
	return &UsageError{Err: errors.Newf(format, args...)}
}

// NewFlagSet returns a FlagSet that reports errors instead of exiting and
// prints its usage to stderr.
func NewFlagSet(name, synopsis string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s %s\n\nFlags:\n", name, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// Parse parses args with fs and returns the positional arguments.
//
// Unlike fs.Parse, flags may also follow positional arguments. Everything
// after a "--" is positional.
func Parse(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, NewUsageError(err)
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// ValidateIterations rejects a non-positive iteration count.
func ValidateIterations(n int) error {
	if n <= 0 {
		return NewUsageError(errors.NewValidationError("iterations",
			"Number of iterations must be greater than 0", n))
	}
	return nil
}

// ValidateLearningRate rejects NaN and infinite learning rates.
func ValidateLearningRate(lr float64) error {
	if math.IsNaN(lr) || math.IsInf(lr, 0) {
		return NewUsageError(errors.NewValidationError("learning-rate", "must be a finite number", lr))
	}
	return nil
}

// Exit prints err to stderr and returns the process exit status:
// 0 for nil or a help request, 2 for a UsageError and 1 otherwise.
func Exit(err error, stderr io.Writer) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	var usage *UsageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

// Log formats accepted by LogConfig.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatSlog    = "slog"
)

// LogConfig selects the process-wide logger.
type LogConfig struct {
	Level  string
	Format string
}

// Register adds --log-level and --log-format to fs.
func (c *LogConfig) Register(fs *flag.FlagSet) {
	fs.StringVar(&c.Level, "log-level", "warn", "log level: debug, info, warn or error")
	fs.StringVar(&c.Format, "log-format", FormatConsole,
		"log format: console (zerolog, human readable), json (zerolog) or slog (log/slog JSON)")
}

// Setup installs the configured logger writing to w.
func (c LogConfig) Setup(w io.Writer) error {
	if c.Format == FormatSlog {
		return NewUsageError(log.SetupLogger(w, c.Level))
	}

	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return NewUsageError(err)
	}
	switch c.Format {
	case FormatConsole:
		log.SetLogger(log.NewConsoleLogger(w, level))
	case FormatJSON:
		log.SetLogger(log.NewZerologLogger(w, level))
	default:
		return NewUsageError(errors.NewValidationError("log-format", "must be one of console, json, slog", c.Format))
	}
	return nil
}
