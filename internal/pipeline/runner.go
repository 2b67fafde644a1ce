package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"yoloprep/internal/config"
	"yoloprep/internal/dataset"
	"yoloprep/internal/logging"
	"yoloprep/internal/media/framesource"
	"yoloprep/internal/media/imagefile"
)

// LockFileName is created in the output root for the duration of a run.
const LockFileName = ".yoloprep.lock"

// Source is an open frame source for one video.
type Source interface {
	dataset.FrameSource
	Close() error
}

// SourceOpener opens the video at path for decoding.
type SourceOpener func(ctx context.Context, path string) (Source, error)

// Runner executes prepare runs against a configuration.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	classes  dataset.ClassMap
	open     SourceOpener
	writer   dataset.ImageWriter
	observer Observer
}

// Option customizes a Runner.
type Option func(*Runner)

// WithSourceOpener replaces the ffmpeg backed frame source.
func WithSourceOpener(open SourceOpener) Option {
	return func(r *Runner) {
		if open != nil {
			r.open = open
		}
	}
}

// WithImageWriter replaces the JPEG writer.
func WithImageWriter(w dataset.ImageWriter) Option {
	return func(r *Runner) {
		if w != nil {
			r.writer = w
		}
	}
}

// WithObserver registers a progress observer.
func WithObserver(obs Observer) Option {
	return func(r *Runner) {
		if obs != nil {
			r.observer = obs
		}
	}
}

// NewRunner builds a Runner. The class table is resolved once here; an
// invalid table is a configuration error.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	classes, err := dataset.NewClassMap(cfg.ClassTable())
	if err != nil {
		return nil, Wrap(ErrConfiguration, "", "", "class table", err)
	}

	r := &Runner{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		classes:  classes,
		writer:   imagefile.NewJPEGWriter(cfg.Sampling.JPEGQuality),
		observer: nopObserver{},
	}
	r.open = r.openFrameSource
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Runner) openFrameSource(ctx context.Context, path string) (Source, error) {
	return framesource.Open(ctx, framesource.Options{
		FFmpeg:  r.cfg.FFmpegBinary(),
		FFprobe: r.cfg.FFprobeBinary(),
		Logger:  logging.WithContext(ctx, r.logger),
	}, path)
}

// Run processes units in order. The returned Summary is always non-nil and
// finalized; err is set when the run could not start or was aborted.
func (r *Runner) Run(ctx context.Context, units []dataset.Unit) (*Summary, error) {
	stride := r.cfg.Stride()
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	summary := &Summary{
		RunID:     runID,
		InputDir:  r.cfg.Paths.InputDir,
		OutputDir: r.cfg.Paths.OutputDir,
		Stride:    stride,
		StartedAt: time.Now(),
		Units:     make([]UnitResult, 0, len(units)),
	}
	abort := func(err error) (*Summary, error) {
		summary.Aborted = true
		summary.ErrorMsg = err.Error()
		summary.FinishedAt = time.Now()
		summary.Finalize()
		return summary, err
	}

	if err := r.cfg.EnsureOutputDir(); err != nil {
		return abort(Wrap(ErrIO, StageLayout, "", "create output directory", err))
	}
	lockPath := filepath.Join(r.cfg.Paths.OutputDir, LockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return abort(Wrap(ErrIO, StageLayout, "", "acquire output lock", err))
	}
	if !ok {
		return abort(fmt.Errorf("%w: another run holds %s", ErrLocked, lockPath))
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	logger.Info(
		"run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.Int("units", len(units)),
		logging.Stride(stride),
		logging.String("input_dir", r.cfg.Paths.InputDir),
		logging.String("output_dir", r.cfg.Paths.OutputDir),
	)

	for i, unit := range units {
		if err := ctx.Err(); err != nil {
			return abort(Wrap(ErrCanceled, "", unit.Name, "", err))
		}
		r.observer.UnitStarted(i+1, len(units), unit.Name)
		result, err := r.processUnit(ctx, unit, stride)
		summary.Units = append(summary.Units, result)
		r.observer.UnitFinished(i+1, len(units), result)
		if err != nil && IsFatal(err) {
			logging.ErrorWithContext(logger, "run aborted", "run_aborted",
				logging.String(logging.FieldVideo, unit.Name),
				logging.String(logging.FieldStage, result.Stage),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, errorHint(err)),
			)
			return abort(err)
		}
	}

	summary.FinishedAt = time.Now()
	summary.Finalize()
	images, labels, boxes := summary.Totals()
	logger.Info(
		"run complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("processed", summary.Counts.Processed),
		logging.Int("skipped", summary.Counts.Skipped),
		logging.Int("failed", summary.Counts.Failed),
		logging.Int("images", images),
		logging.Int("label_files", labels),
		logging.Int("boxes", boxes),
		logging.Duration("run_duration", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, ErrConfiguration):
		return "add the class to the [classes] table or fix the CSV"
	case errors.Is(err, ErrValidation):
		return "fix the annotation CSV row named above"
	case errors.Is(err, ErrCanceled):
		return "rerun to regenerate the interrupted unit"
	default:
		return "check permissions and free space on the output directory"
	}
}
