package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"yoloprep/internal/dataset"
	"yoloprep/internal/logging"
)

func (r *Runner) processUnit(ctx context.Context, unit dataset.Unit, stride int) (result UnitResult, err error) {
	started := time.Now()
	ctx = logging.WithVideo(ctx, unit.Name)
	logger := logging.WithContext(ctx, r.logger)
	result = UnitResult{Video: unit.Name}
	defer func() {
		result.DurationMS = time.Since(started).Milliseconds()
	}()

	fail := func(stage string, err error) (UnitResult, error) {
		result.Status = StatusFailed
		result.Stage = stage
		result.ErrorCode = ErrorCode(err)
		result.ErrorMsg = err.Error()
		if !IsFatal(err) {
			logging.WarnWithContext(logger, "unit failed; continuing with next video", "unit_failed",
				logging.String(logging.FieldStage, stage),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check that ffmpeg can decode the video"),
			)
		}
		return result, err
	}

	present, err := unit.HasAnnotations()
	if err != nil {
		return fail(StageAnnotations, Wrap(ErrIO, StageAnnotations, unit.Name, "stat annotation file", err))
	}
	if !present {
		result.Status = StatusSkipped
		result.Reason = ReasonNoAnnotations
		logger.Info("no annotation file; skipping video",
			logging.String(logging.FieldEventType, "unit_skipped"),
			logging.String("annotation_path", unit.AnnotationPath),
		)
		return result, nil
	}

	logger.Info("processing video",
		logging.String(logging.FieldEventType, "unit_start"),
		logging.String("video_path", unit.VideoPath),
	)

	layout := dataset.NewLayout(r.cfg.Paths.OutputDir, unit.Name)
	if err := layout.Ensure(); err != nil {
		return fail(StageLayout, Wrap(ErrIO, StageLayout, unit.Name, "create output directories", err))
	}

	selected, stats, err := r.sample(ctx, unit, layout, stride)
	result.FramesDecoded = stats.FramesDecoded
	result.ImagesWritten = stats.ImagesWritten
	result.DecodeTruncated = stats.DecodeErr != nil
	if err != nil {
		return fail(StageSample, err)
	}

	labels, loadStats, err := dataset.LoadAnnotationFile(unit.AnnotationPath, selected, r.classes)
	result.RowsDiscarded = loadStats.Discarded
	if err != nil {
		return fail(StageAnnotations, classifyAnnotationError(ctx, unit.Name, err))
	}
	result.Boxes = labels.BoxCount()

	paths, err := dataset.WriteLabels(layout, labels)
	result.LabelFiles = len(paths)
	if err != nil {
		return fail(StageLabels, Wrap(ErrIO, StageLabels, unit.Name, "write labels", err))
	}

	result.Status = StatusProcessed
	logger.Info("video processed",
		logging.String(logging.FieldEventType, "unit_complete"),
		logging.Int("frames_decoded", result.FramesDecoded),
		logging.Int("images", result.ImagesWritten),
		logging.Int("label_files", result.LabelFiles),
		logging.Int("boxes", result.Boxes),
		logging.Int("rows_discarded", result.RowsDiscarded),
		logging.Duration("unit_duration", time.Since(started)),
	)
	return result, nil
}

// sample runs the frame sampler over a freshly opened source. The source is
// closed before returning on every path.
func (r *Runner) sample(ctx context.Context, unit dataset.Unit, layout dataset.Layout, stride int) (*dataset.FrameSet, dataset.SampleStats, error) {
	stageCtx := logging.WithStage(ctx, StageSample)
	logger := logging.WithContext(stageCtx, r.logger)

	src, err := r.open(stageCtx, unit.VideoPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, dataset.SampleStats{}, Wrap(ErrCanceled, StageSample, unit.Name, "open video", ctxErr)
		}
		return nil, dataset.SampleStats{}, Wrap(ErrExternalTool, StageSample, unit.Name, "open video", err)
	}
	defer closeSource(logger, src)

	sampler := dataset.NewSampler(r.writer, logger)
	selected, stats, err := sampler.SampleFrames(stageCtx, src, stride, layout)
	if err != nil {
		var writeErr *dataset.ImageWriteError
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return selected, stats, Wrap(ErrCanceled, StageSample, unit.Name, "", err)
		case errors.As(err, &writeErr):
			return selected, stats, Wrap(ErrIO, StageSample, unit.Name, "", err)
		case errors.Is(err, dataset.ErrInvalidStride):
			return selected, stats, Wrap(ErrConfiguration, StageSample, unit.Name, "", err)
		default:
			return selected, stats, Wrap(ErrIO, StageSample, unit.Name, "", err)
		}
	}
	logger.Debug("frames sampled",
		logging.Int("frames_decoded", stats.FramesDecoded),
		logging.Int("images", stats.ImagesWritten),
	)
	return selected, stats, nil
}

func closeSource(logger *slog.Logger, src Source) {
	if err := src.Close(); err != nil {
		logger.Warn("failed to close frame source", logging.Error(err))
	}
}

func classifyAnnotationError(ctx context.Context, video string, err error) error {
	switch {
	case errors.Is(err, dataset.ErrUnknownClass):
		return Wrap(ErrConfiguration, StageAnnotations, video, "", err)
	case errors.Is(err, dataset.ErrMalformedRow):
		return Wrap(ErrValidation, StageAnnotations, video, "", err)
	case ctx.Err() != nil:
		return Wrap(ErrCanceled, StageAnnotations, video, "", ctx.Err())
	default:
		return Wrap(ErrIO, StageAnnotations, video, "read annotations", err)
	}
}
