package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoVideoStream is returned when a file carries no decodable video stream.
var ErrNoVideoStream = errors.New("no video stream")

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index        int    `json:"index"`
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	PixFmt       string `json:"pix_fmt"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NBFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`

	Disposition  Disposition `json:"disposition"`
	Tags         StreamTags  `json:"tags"`
	SideDataList []SideData  `json:"side_data_list"`
}

// Disposition holds the stream flags ffprobe reports as 0/1 integers.
type Disposition struct {
	AttachedPic int `json:"attached_pic"`
}

// StreamTags holds the stream metadata tags yoloprep reads.
type StreamTags struct {
	Rotate string `json:"rotate"`
}

// SideData is one entry of a stream's side_data_list. Only display matrix
// rotation is decoded.
type SideData struct {
	SideDataType string   `json:"side_data_type"`
	Rotation     *float64 `json:"rotation"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Probe executes ffprobe against path and decodes the JSON response.
func Probe(ctx context.Context, binary, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return Result{}, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return Parse(output)
}

// Parse decodes an ffprobe JSON payload.
func Parse(payload []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// VideoStream returns the first video stream with usable dimensions that is
// not an attached picture. Decoders should map it by Index.
func (r Result) VideoStream() (Stream, error) {
	for _, stream := range r.Streams {
		if !strings.EqualFold(stream.CodecType, "video") {
			continue
		}
		if stream.Width <= 0 || stream.Height <= 0 || stream.Disposition.AttachedPic != 0 {
			continue
		}
		return stream, nil
	}
	return Stream{}, ErrNoVideoStream
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	value := parseFloat(r.Format.Duration)
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	return value
}

// FrameRate parses r_frame_rate (falling back to avg_frame_rate) as frames
// per second. It returns 0 when neither is usable.
func (s Stream) FrameRate() float64 {
	for _, raw := range []string{s.RFrameRate, s.AvgFrameRate} {
		if rate := parseRational(raw); rate > 0 {
			return rate
		}
	}
	return 0
}

// FrameCount returns nb_frames, or 0 when the container does not report it.
func (s Stream) FrameCount() int {
	count, err := strconv.Atoi(strings.TrimSpace(s.NBFrames))
	if err != nil || count < 0 {
		return 0
	}
	return count
}

// Rotation returns the display rotation in degrees, normalized to 0, 90, 180
// or 270. The display matrix side data wins over the legacy rotate tag.
func (s Stream) Rotation() int {
	for _, side := range s.SideDataList {
		if side.Rotation != nil {
			return normalizeRotation(*side.Rotation)
		}
	}
	if value := parseFloat(s.Tags.Rotate); !math.IsNaN(value) {
		return normalizeRotation(value)
	}
	return 0
}

// DisplaySize returns the frame size after ffmpeg applies the stream's
// rotation, which is the size of the frames it emits by default.
func (s Stream) DisplaySize() (width, height int) {
	switch s.Rotation() {
	case 90, 270:
		return s.Height, s.Width
	default:
		return s.Width, s.Height
	}
}

// FrameBytes is the size of one decoded RGBA frame of this stream.
func (s Stream) FrameBytes() int {
	width, height := s.DisplaySize()
	return width * height * 4
}

func normalizeRotation(degrees float64) int {
	// Snap to the nearest quarter turn; ffmpeg only transposes for those.
	quarter := int(math.Round(degrees/90)) % 4
	if quarter < 0 {
		quarter += 4
	}
	return quarter * 90
}

func parseRational(value string) float64 {
	num, den, ok := strings.Cut(strings.TrimSpace(value), "/")
	if !ok {
		return parseFloat(value)
	}
	n := parseFloat(num)
	d := parseFloat(den)
	if math.IsNaN(n) || math.IsNaN(d) || d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
