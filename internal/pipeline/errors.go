package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrIO            = errors.New("io error")
	ErrCanceled      = errors.New("run canceled")
	ErrLocked        = errors.New("output directory locked")
)

// Stage names used in errors, logs and unit results.
const (
	StageLayout      = "layout"
	StageSample      = "sample"
	StageAnnotations = "annotations"
	StageLabels      = "labels"
)

// Wrap builds an error message that includes stage and video context while
// tagging it with marker for later classification. A nil marker is treated as
// ErrIO.
func Wrap(marker error, stage, video, message string, err error) error {
	detail := buildDetail(stage, video, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err must abort the whole run rather than only the
// current unit.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrExternalTool) {
		return false
	}
	return true
}

// ErrorCode maps err to a stable short code for reports.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCanceled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrExternalTool):
		return "external_tool"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrLocked):
		return "locked"
	default:
		return "io"
	}
}

func buildDetail(stage, video, message string) string {
	parts := make([]string, 0, 3)
	if video = strings.TrimSpace(video); video != "" {
		parts = append(parts, video)
	}
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
