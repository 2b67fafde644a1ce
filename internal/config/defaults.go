package config

const (
	defaultOutputDir   = "njord-yolo"
	defaultStride      = 25
	defaultJPEGQuality = 95
	defaultFFmpeg      = "ffmpeg"
	defaultFFprobe     = "ffprobe"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// DefaultClasses returns the stock class table used when the config file does
// not provide a [classes] section.
func DefaultClasses() map[string]int {
	return map[string]int{
		"boat":   0,
		"person": 1,
		"net":    2,
		"fish":   3,
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	stride := defaultStride
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Sampling: Sampling{
			Stride:      &stride,
			JPEGQuality: defaultJPEGQuality,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
