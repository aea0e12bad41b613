package runtime

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/arloliu/mdarr/format"
)

// Logger wraps slog.Logger with array-operation helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler at Info level writing to stderr is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable records to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithOperation tags every record with an operation name.
func (l *Logger) WithOperation(op string) *Logger {
	return &Logger{Logger: l.With("op", op)}
}

// LogOperation logs one array operation: Debug on success, Error on failure.
func (l *Logger) LogOperation(op string, t format.ElementType, size int, elapsed time.Duration, err error) {
	if err != nil {
		l.Error("array operation failed",
			"op", op,
			"type", t.String(),
			"elapsed", elapsed,
			"error", err,
		)

		return
	}

	l.Debug("array operation completed",
		"op", op,
		"type", t.String(),
		"bytes", size,
		"elapsed", elapsed,
	)
}

// LogDatum logs the sealing or opening of a datum envelope.
func (l *Logger) LogDatum(action string, compression format.CompressionType, raw, stored int, err error) {
	if err != nil {
		l.Error("datum "+action+" failed",
			"compression", compression.String(),
			"error", err,
		)

		return
	}

	l.Debug("datum "+action+" completed",
		"compression", compression.String(),
		"raw_bytes", raw,
		"stored_bytes", stored,
	)
}
