package logging

import (
	"context"
	"log/slog"
	"time"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Frame tags a record with a zero-based decode-order frame index.
func Frame(index int) Attr { return slog.Int(FieldFrame, index) }

// Stride tags a record with the sampling interval in effect.
func Stride(n int) Attr { return slog.Int(FieldStride, n) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

func toArgs(attrs []Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

func NewNop() *slog.Logger {
	return slog.New(discardHandler{})
}

// NewComponentLogger tags logger with a component name. A nil logger yields a
// no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

const defaultErrorHint = "rerun with --log-level debug for decoder output"

// WarnWithContext logs a warning that always carries event_type and error_hint.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	logEvent(logger, slog.LevelWarn, msg, eventType, attrs)
}

// ErrorWithContext logs an error that always carries event_type and error_hint.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	logEvent(logger, slog.LevelError, msg, eventType, attrs)
}

func logEvent(logger *slog.Logger, level slog.Level, msg, eventType string, attrs []Attr) {
	if logger == nil {
		return
	}
	var hasEvent, hasHint bool
	for _, attr := range attrs {
		switch attr.Key {
		case FieldEventType:
			hasEvent = true
		case FieldErrorHint:
			hasHint = true
		}
	}
	if !hasEvent {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	if !hasHint {
		attrs = append(attrs, String(FieldErrorHint, defaultErrorHint))
	}
	logger.Log(context.Background(), level, msg, toArgs(attrs)...)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool { return false }

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }

func (discardHandler) WithAttrs([]slog.Attr) slog.Handler { return discardHandler{} }

func (discardHandler) WithGroup(string) slog.Handler { return discardHandler{} }
