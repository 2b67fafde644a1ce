package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for the run identifier.
	FieldRunID = "run_id"
	// FieldVideo is the standardized structured logging key for video unit names.
	FieldVideo = "video"
	// FieldStage is the standardized structured logging key for pipeline stage names.
	FieldStage = "stage"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries a short next step for the operator.
	FieldErrorHint = "error_hint"
	FieldFrame     = "frame_index"
	FieldStride    = "stride"
)

type contextKey string

const (
	runIDKey contextKey = "run_id"
	videoKey contextKey = "video"
	stageKey contextKey = "stage"
)

// WithRunID annotates context with the run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// WithVideo annotates context with the video unit name.
func WithVideo(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, videoKey, name)
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

func stringFromContext(ctx context.Context, key contextKey) (string, bool) {
	if str, ok := ctx.Value(key).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := stringFromContext(ctx, runIDKey); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if video, ok := stringFromContext(ctx, videoKey); ok {
		fields = append(fields, slog.String(FieldVideo, video))
	}
	if stage, ok := stringFromContext(ctx, stageKey); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(toArgs(fields)...)
}
