package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FakeMedia describes what the stub decoder emits for every input.
//
// Inputs whose file name contains "corrupt" make ffmpeg fail before any output.
// Inputs containing "truncated" emit half the frames followed by a partial
// frame. Inputs containing "noprobe" make ffprobe fail.
//
// Width and Height are the size of the frames ffmpeg emits. With Rotation set
// to 90 or 270, ffprobe reports the coded size (Height x Width) plus a display
// matrix, the way a portrait phone recording looks. CoverArt lists an
// attached picture as stream 0 so the video stream becomes stream 1.
type FakeMedia struct {
	Width    int
	Height   int
	Frames   int
	Rotation int
	CoverArt bool
}

// FrameBytes is the size of one RGBA frame.
func (m FakeMedia) FrameBytes() int {
	return m.Width * m.Height * 4
}

// SkipWithoutShell skips tests that rely on /bin/sh stubs.
func SkipWithoutShell(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub tools require /bin/sh")
	}
}

// WriteFakeTools writes stub ffmpeg and ffprobe scripts into dir and returns
// their paths. Each ffmpeg invocation records its arguments, one per line, in
// FFmpegArgsPath(dir).
func WriteFakeTools(t testing.TB, dir string, media FakeMedia) (ffmpeg, ffprobe string) {
	t.Helper()
	SkipWithoutShell(t)

	if media.Width <= 0 {
		media.Width = 4
	}
	if media.Height <= 0 {
		media.Height = 2
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}

	full := media.Frames * media.FrameBytes()
	truncated := (media.Frames/2)*media.FrameBytes() + media.FrameBytes()/2

	ffmpeg = filepath.Join(dir, "ffmpeg")
	ffmpegScript := fmt.Sprintf(`#!/bin/sh
printf '%%s\n' "$@" > %q
for arg in "$@"; do
  if [ "$arg" = "-version" ]; then echo "ffmpeg version 7.1-stub Copyright (c) the FFmpeg developers"; exit 0; fi
done
input=""
prev=""
for arg in "$@"; do
  if [ "$prev" = "-i" ]; then input="$arg"; fi
  prev="$arg"
done
case "$(basename "$input")" in
  *corrupt*) echo "moov atom not found" >&2; exit 1 ;;
  *truncated*) head -c %d /dev/zero; echo "error while decoding" >&2; exit 1 ;;
esac
exec head -c %d /dev/zero
`, FFmpegArgsPath(dir), truncated, full)
	if err := os.WriteFile(ffmpeg, []byte(ffmpegScript), 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}

	ffprobe = filepath.Join(dir, "ffprobe")
	ffprobeScript := fmt.Sprintf(`#!/bin/sh
for arg in "$@"; do
  if [ "$arg" = "-version" ]; then echo "ffprobe version 7.1-stub Copyright (c) the FFmpeg developers"; exit 0; fi
  last="$arg"
done
case "$(basename "$last")" in
  *noprobe*) echo "Invalid data found when processing input" >&2; exit 1 ;;
esac
cat <<'JSON'
{"streams":[%s],"format":{"duration":"1.0","format_name":"mov,mp4"}}
JSON
`, probeStreams(media))
	if err := os.WriteFile(ffprobe, []byte(ffprobeScript), 0o755); err != nil {
		t.Fatalf("write ffprobe stub: %v", err)
	}
	return ffmpeg, ffprobe
}

// FFmpegArgsPath is where the stub ffmpeg in dir records its last arguments.
func FFmpegArgsPath(dir string) string {
	return filepath.Join(dir, "ffmpeg.args")
}

func probeStreams(media FakeMedia) string {
	width, height := media.Width, media.Height
	var sideData string
	if media.Rotation != 0 {
		if media.Rotation%180 != 0 {
			width, height = height, width
		}
		sideData = fmt.Sprintf(`,"side_data_list":[{"side_data_type":"Display Matrix","rotation":%d}]`, -media.Rotation)
	}
	index := 0
	var streams []string
	if media.CoverArt {
		streams = append(streams, `{"index":0,"codec_type":"video","codec_name":"mjpeg","width":600,"height":600,"disposition":{"default":0,"attached_pic":1}}`)
		index = 1
	}
	streams = append(streams, fmt.Sprintf(
		`{"index":%d,"codec_type":"video","codec_name":"h264","width":%d,"height":%d,"r_frame_rate":"25/1","nb_frames":"%d","disposition":{"default":1,"attached_pic":0}%s}`,
		index, width, height, media.Frames, sideData,
	))
	return strings.Join(streams, ",")
}
