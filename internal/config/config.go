package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the dataset input and output roots.
type Paths struct {
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Sampling controls which decoded frames are materialized.
type Sampling struct {
	// Stride is the sampling interval in frames. A missing value or 0 means
	// every frame is extracted.
	Stride      *int `toml:"stride"`
	JPEGQuality int  `toml:"jpeg_quality"`
}

// Tools names the external binaries used to decode video.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for yoloprep.
//
// Configuration sections:
//   - Paths: input root, output root, optional log directory
//   - Sampling: frame stride and JPEG quality
//   - Classes: class name to integer id table written into label files
//   - Tools: ffmpeg/ffprobe executables
//   - Logging: log format and level
type Config struct {
	Paths    Paths          `toml:"paths"`
	Sampling Sampling       `toml:"sampling"`
	Classes  map[string]int `toml:"classes"`
	Tools    Tools          `toml:"tools"`
	Logging  Logging        `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/yoloprep/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and the sampling stride normalized to a positive value.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("yoloprep.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Stride returns the normalized sampling stride. It is always at least 1.
func (c *Config) Stride() int {
	return normalizeStride(c.Sampling.Stride)
}

// SetStride overrides the sampling stride. A value of 0 selects every frame.
func (c *Config) SetStride(value int) {
	c.Sampling.Stride = &value
}

// ClassTable returns a copy of the configured class table, falling back to the
// stock classes when none are configured.
func (c *Config) ClassTable() map[string]int {
	source := c.Classes
	if len(source) == 0 {
		source = DefaultClasses()
	}
	out := make(map[string]int, len(source))
	for name, id := range source {
		out[name] = id
	}
	return out
}

// FFmpegBinary returns the ffmpeg executable name used for decoding.
func (c *Config) FFmpegBinary() string {
	if value := strings.TrimSpace(c.Tools.FFmpeg); value != "" {
		return value
	}
	return defaultFFmpeg
}

// FFprobeBinary returns the ffprobe executable name used for stream inspection.
func (c *Config) FFprobeBinary() string {
	if value := strings.TrimSpace(c.Tools.FFprobe); value != "" {
		return value
	}
	return defaultFFprobe
}

// EnsureOutputDir creates the output root.
func (c *Config) EnsureOutputDir() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if err := os.MkdirAll(c.Paths.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.OutputDir, err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
