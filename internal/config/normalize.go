package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSampling()
	c.normalizeClasses()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

// NormalizePaths expands the path fields in place. Callers that override
// paths after Load (for example from CLI flags) run it again.
func (c *Config) NormalizePaths() error {
	return c.normalizePaths()
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InputDir, err = expandPath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSampling() {
	stride := normalizeStride(c.Sampling.Stride)
	c.Sampling.Stride = &stride
	if c.Sampling.JPEGQuality == 0 {
		c.Sampling.JPEGQuality = defaultJPEGQuality
	}
}

// normalizeStride maps the "every frame" sentinel (nil or 0) to 1.
func normalizeStride(value *int) int {
	if value == nil || *value <= 0 {
		return 1
	}
	return *value
}

func (c *Config) normalizeClasses() {
	if len(c.Classes) == 0 {
		c.Classes = DefaultClasses()
	}
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpeg
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobe
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
