package dataset

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"yoloprep/internal/logging"
)

// FrameSource yields decoded frames in decode order. Next returns io.EOF once
// the stream is exhausted.
type FrameSource interface {
	Next(ctx context.Context) (image.Image, error)
}

// ImageWriter persists a decoded frame at path.
type ImageWriter interface {
	WriteImage(path string, img image.Image) error
}

// SampleStats summarizes one sampling pass.
type SampleStats struct {
	FramesDecoded int
	ImagesWritten int
	// DecodeErr is the error that ended decoding early, if any. Decoding
	// errors are not fatal; the frames seen so far are kept.
	DecodeErr error
}

// ImageWriteError wraps a failure to persist a selected frame.
type ImageWriteError struct {
	Path string
	Err  error
}

func (e *ImageWriteError) Error() string {
	return fmt.Sprintf("write image %s: %v", e.Path, e.Err)
}

func (e *ImageWriteError) Unwrap() error { return e.Err }

// Sampler selects every Nth frame from a FrameSource and writes it through an
// ImageWriter.
type Sampler struct {
	Writer ImageWriter
	Logger *slog.Logger
}

// NewSampler returns a Sampler writing through w.
func NewSampler(w ImageWriter, logger *slog.Logger) *Sampler {
	return &Sampler{Writer: w, Logger: logger}
}

// SampleFrames decodes src to the end and writes frame i to layout.ImagePath(i)
// whenever i%stride == 0. It returns the selected indices in decode order.
//
// stride must be at least 1. A decode error other than io.EOF ends the pass
// early without failing it; write errors and context cancellation do fail it.
func (s *Sampler) SampleFrames(ctx context.Context, src FrameSource, stride int, layout Layout) (*FrameSet, SampleStats, error) {
	var stats SampleStats
	if stride < 1 {
		return nil, stats, fmt.Errorf("%w: %d", ErrInvalidStride, stride)
	}
	if s.Writer == nil {
		return nil, stats, errors.New("sampler: image writer is required")
	}
	logger := s.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	selected := NewFrameSet()
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return selected, stats, err
		}
		frame, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return selected, stats, ctxErr
			}
			stats.DecodeErr = err
			logging.WarnWithContext(logger, "decoding stopped early; keeping frames decoded so far", "decode_truncated",
				logging.Frame(index),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the video file for corruption"),
			)
			break
		}
		stats.FramesDecoded++

		if index%stride != 0 {
			continue
		}
		path := layout.ImagePath(index)
		if err := s.Writer.WriteImage(path, frame); err != nil {
			return selected, stats, &ImageWriteError{Path: path, Err: err}
		}
		selected.Add(index)
		stats.ImagesWritten++
	}

	logger.Debug("frame sampling complete",
		logging.Int("frames_decoded", stats.FramesDecoded),
		logging.Int("images_written", stats.ImagesWritten),
		logging.Stride(stride),
	)
	return selected, stats, nil
}
