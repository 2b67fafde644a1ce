package testsupport

import (
	"path/filepath"
	"testing"

	"yoloprep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Stride defaults to 1 so small fake videos select predictable frames.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "input")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Classes = config.DefaultClasses()
	cfgVal.SetStride(1)

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStride overrides the sampling stride.
func WithStride(stride int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.SetStride(stride)
	}
}

// WithClasses replaces the class table.
func WithClasses(classes map[string]int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Classes = classes
	}
}

// WithLogDir points file logging at a directory under the test base.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// WithFakeMedia installs stub ffmpeg and ffprobe executables that emit
// media's frames, and points the config at them.
func WithFakeMedia(media FakeMedia) ConfigOption {
	return func(b *configBuilder) {
		ffmpeg, ffprobe := WriteFakeTools(b.t, filepath.Join(b.baseDir, "bin"), media)
		b.cfg.Tools.FFmpeg = ffmpeg
		b.cfg.Tools.FFprobe = ffprobe
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
