package deps

import "strings"

// FFmpegRequirements lists the decoding tools used to extract frames.
func FFmpegRequirements(ffmpeg, ffprobe string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpeg,
			Description: "Required for frame decoding",
			VersionArgs: []string{"-hide_banner", "-version"},
		},
		{
			Name:        "FFprobe",
			Command:     ffprobe,
			Description: "Required for stream inspection",
			VersionArgs: []string{"-hide_banner", "-version"},
		},
	}
}

// parseVersionBanner extracts the version token from the first line of an
// "<tool> version <x> Copyright ..." banner. Other output is returned trimmed
// to its first line.
func parseVersionBanner(output string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] == "version" {
			return fields[i+1]
		}
	}
	return line
}
