package log

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger on top of zerolog.
//
// Field values implementing zerolog.LogObjectMarshaler, which all error and
// warning types in pkg/errors do, are encoded as nested objects.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger returns a logger writing JSON lines to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	return &ZerologLogger{
		logger: zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger(),
	}
}

// NewConsoleLogger returns a logger writing human-readable lines to w.
func NewConsoleLogger(w io.Writer, level Level) *ZerologLogger {
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	return &ZerologLogger{
		logger: zerolog.New(out).Level(toZerologLevel(level)).With().Timestamp().Logger(),
	}
}

func (z *ZerologLogger) Debug(msg string, fields ...any) { write(z.logger.Debug(), msg, fields) }
func (z *ZerologLogger) Info(msg string, fields ...any)  { write(z.logger.Info(), msg, fields) }
func (z *ZerologLogger) Warn(msg string, fields ...any)  { write(z.logger.Warn(), msg, fields) }

func (z *ZerologLogger) Error(msg string, fields ...any) {
	e := z.logger.Error()
	if e == nil {
		return
	}
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			e = e.Err(err)
			if st := extractStacktrace(err); st != "" {
				e = e.Str(StacktraceAttrKey, st)
			}
			fields = fields[1:]
		}
	}
	write(e, msg, fields)
}

func (z *ZerologLogger) With(fields ...any) Logger {
	return &ZerologLogger{logger: z.logger.With().Fields(pairs(fields)).Logger()}
}

func (z *ZerologLogger) Enabled(ctx context.Context, level Level) bool {
	l := toZerologLevel(level)
	return l >= z.logger.GetLevel() && l >= zerolog.GlobalLevel()
}

// write is a no-op for a nil event, which zerolog returns for disabled levels.
func write(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		e = e.Fields(pairs(fields))
	}
	e.Msg(msg)
}

// pairs drops a trailing key without value; zerolog expects even length.
func pairs(fields []any) []interface{} {
	if len(fields)%2 == 1 {
		fields = fields[:len(fields)-1]
	}
	return fields
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
