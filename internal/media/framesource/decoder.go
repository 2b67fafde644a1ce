package framesource

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"yoloprep/internal/logging"
	"yoloprep/internal/media/ffprobe"
)

// ErrTruncatedFrame is returned when the stream ends partway through a frame.
var ErrTruncatedFrame = errors.New("truncated frame")

// Options configures the external tools used to decode.
type Options struct {
	FFmpeg  string
	FFprobe string
	Logger  *slog.Logger
}

// Decoder streams frames from a running ffmpeg process.
type Decoder struct {
	path       string
	width      int
	height     int
	frameBytes int

	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr *stderrTail
	logger *slog.Logger

	pending *image.RGBA
	done    bool
	waitErr error
	waited  bool
}

// Open probes path and starts decoding its first video stream. The returned
// Decoder must be closed.
func Open(ctx context.Context, opts Options, path string) (*Decoder, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	probe, err := ffprobe.Probe(ctx, opts.FFprobe, path)
	if err != nil {
		return nil, err
	}
	stream, err := probe.VideoStream()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	width, height := stream.DisplaySize()
	logger.Debug("video probed",
		logging.String("codec", stream.CodecName),
		logging.Int("stream_index", stream.Index),
		logging.Int("width", width),
		logging.Int("height", height),
		logging.Int("rotation", stream.Rotation()),
		logging.Int("frames_reported", stream.FrameCount()),
		logging.Any("frame_rate", stream.FrameRate()),
		logging.Any("duration_seconds", probe.DurationSeconds()),
	)

	binary := strings.TrimSpace(opts.FFmpeg)
	if binary == "" {
		binary = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, binary, decodeArgs(path, stream.Index)...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	d := &Decoder{
		path:       path,
		width:      width,
		height:     height,
		frameBytes: stream.FrameBytes(),
		cmd:        cmd,
		stdout:     stdout,
		stderr:     newStderrTail(stderr),
		logger:     logger,
	}
	first, err := d.read()
	switch {
	case err == nil:
		d.pending = first
	case errors.Is(err, io.EOF):
		// empty stream, Next reports io.EOF
	default:
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// decodeArgs maps the probed stream by absolute index so ffmpeg decodes the
// same stream whose size was probed. Autorotation stays on; Open sizes frames
// with the rotated dimensions.
func decodeArgs(path string, streamIndex int) []string {
	return []string{
		"-v", "error",
		"-nostdin",
		"-i", path,
		"-map", fmt.Sprintf("0:%d", streamIndex),
		"-vsync", "passthrough",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	}
}

// Next returns the next frame in decode order, or io.EOF at the end of the
// stream.
func (d *Decoder) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.pending != nil {
		frame := d.pending
		d.pending = nil
		return frame, nil
	}
	if d.done {
		return nil, io.EOF
	}
	frame, err := d.read()
	if err != nil {
		return nil, err
	}
	return frame, nil
}

func (d *Decoder) read() (*image.RGBA, error) {
	frame := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	n, err := io.ReadFull(d.stdout, frame.Pix[:d.frameBytes])
	switch {
	case err == nil:
		return frame, nil
	case errors.Is(err, io.EOF):
		d.done = true
		if waitErr := d.wait(); waitErr != nil {
			return nil, d.toolError(waitErr)
		}
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		d.done = true
		if waitErr := d.wait(); waitErr != nil {
			return nil, fmt.Errorf("%w after %d of %d bytes: %w", ErrTruncatedFrame, n, d.frameBytes, d.toolError(waitErr))
		}
		return nil, fmt.Errorf("%w after %d of %d bytes", ErrTruncatedFrame, n, d.frameBytes)
	default:
		d.done = true
		return nil, fmt.Errorf("read frame: %w", err)
	}
}

func (d *Decoder) wait() error {
	if d.waited {
		return d.waitErr
	}
	d.waited = true
	// Wait closes the stderr pipe, so let the tail reader finish first.
	d.stderr.drain()
	d.waitErr = d.cmd.Wait()
	return d.waitErr
}

func (d *Decoder) toolError(err error) error {
	if detail := d.stderr.String(); detail != "" {
		return fmt.Errorf("ffmpeg %s: %w: %s", d.path, err, detail)
	}
	return fmt.Errorf("ffmpeg %s: %w", d.path, err)
}

// Close stops ffmpeg if it is still running and releases its pipes.
func (d *Decoder) Close() error {
	if d == nil || d.cmd == nil {
		return nil
	}
	if d.waited {
		return nil
	}
	if d.cmd.Process != nil {
		_ = d.cmd.Process.Kill()
	}
	// Children still writing to stdout exit once the read side is gone.
	_ = d.stdout.Close()
	_ = d.wait()
	d.logger.Debug("decoder closed", logging.String("stderr", d.stderr.String()))
	return nil
}
