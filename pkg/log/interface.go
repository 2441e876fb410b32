// Package log provides a structured logging interface for the linreg packages.
//
// The interface is slog-compatible so that components can log through
// zerolog (the default) or log/slog without knowing which backend is active.
//
// Example usage:
//
//	logger := log.GetLogger().With(log.ModelNameKey, "LinearModel")
//	logger.Info("Training completed",
//	    log.OperationKey, log.OperationTrain,
//	    log.SamplesKey, 4,
//	    log.LossKey, 1.2e-9,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key-value pairs. The With method returns a logger
// that includes the given fields in every subsequent record.
type Logger interface {
	// Debug logs detailed diagnostic information such as per-iteration progress.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs potentially problematic situations that do not stop the run.
	Warn(msg string, fields ...any)

	// Error logs an error condition. If the first field is an error value it
	// is attached as the record's error, with its stack trace when available.
	//
	//	logger.Error("Model save failed", err, log.PathKey, path)
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to skip computing expensive fields, such as the training loss.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
