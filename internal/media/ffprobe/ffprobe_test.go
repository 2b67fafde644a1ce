package ffprobe

import (
	"errors"
	"testing"
)

const samplePayload = `{
  "streams": [
    {"index": 0, "codec_type": "audio", "codec_name": "aac"},
    {"index": 1, "codec_type": "video", "codec_name": "h264", "width": 0, "height": 0},
    {"index": 2, "codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080,
     "pix_fmt": "yuv420p", "r_frame_rate": "30000/1001", "avg_frame_rate": "0/0", "nb_frames": "1800"}
  ],
  "format": {"filename": "harbor_01.mp4", "duration": "60.06", "format_name": "mov,mp4"}
}`

func TestParseSelectsFirstUsableVideoStream(t *testing.T) {
	result, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	stream, err := result.VideoStream()
	if err != nil {
		t.Fatalf("VideoStream: %v", err)
	}
	if stream.Index != 2 || stream.Width != 1920 || stream.Height != 1080 {
		t.Fatalf("unexpected stream %+v", stream)
	}
	if stream.FrameBytes() != 1920*1080*4 {
		t.Fatalf("unexpected frame size %d", stream.FrameBytes())
	}
	if stream.FrameCount() != 1800 {
		t.Fatalf("unexpected frame count %d", stream.FrameCount())
	}
	if rate := stream.FrameRate(); rate < 29.97 || rate > 29.98 {
		t.Fatalf("unexpected frame rate %v", rate)
	}
	if result.DurationSeconds() != 60.06 {
		t.Fatalf("unexpected duration %v", result.DurationSeconds())
	}
}

func TestVideoStreamMissing(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "audio"}}}
	if _, err := result.VideoStream(); !errors.Is(err, ErrNoVideoStream) {
		t.Fatalf("expected ErrNoVideoStream, got %v", err)
	}
}

func TestStreamHelpersHandleInvalidNumbers(t *testing.T) {
	stream := Stream{RFrameRate: "bad", AvgFrameRate: "25/0", NBFrames: "N/A"}
	if stream.FrameRate() != 0 {
		t.Fatalf("expected frame rate 0, got %v", stream.FrameRate())
	}
	if stream.FrameCount() != 0 {
		t.Fatalf("expected frame count 0, got %d", stream.FrameCount())
	}
	if (Result{Format: Format{Duration: "nope"}}).DurationSeconds() != 0 {
		t.Fatal("expected duration 0 for invalid value")
	}
	if (Stream{AvgFrameRate: "25"}).FrameRate() != 25 {
		t.Fatal("expected plain avg frame rate to parse")
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestVideoStreamSkipsAttachedPicture(t *testing.T) {
	payload := `{"streams": [
    {"index": 0, "codec_type": "video", "codec_name": "mjpeg", "width": 600, "height": 600, "disposition": {"attached_pic": 1}},
    {"index": 1, "codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720, "disposition": {"attached_pic": 0}}
  ]}`
	result, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	stream, err := result.VideoStream()
	if err != nil {
		t.Fatalf("VideoStream: %v", err)
	}
	if stream.Index != 1 {
		t.Fatalf("expected stream 1, got %+v", stream)
	}
}

func TestStreamRotationSwapsDisplaySize(t *testing.T) {
	tests := []struct {
		name          string
		payload       string
		rotation      int
		width, height int
	}{
		{
			name:     "display matrix",
			payload:  `{"streams":[{"index":0,"codec_type":"video","width":1920,"height":1080,"side_data_list":[{"side_data_type":"Display Matrix","displaymatrix":"...","rotation":-90}]}]}`,
			rotation: 270, width: 1080, height: 1920,
		},
		{
			name:     "rotate tag",
			payload:  `{"streams":[{"index":0,"codec_type":"video","width":1920,"height":1080,"tags":{"rotate":"90"}}]}`,
			rotation: 90, width: 1080, height: 1920,
		},
		{
			name:     "upside down",
			payload:  `{"streams":[{"index":0,"codec_type":"video","width":1920,"height":1080,"side_data_list":[{"side_data_type":"Display Matrix","rotation":180}]}]}`,
			rotation: 180, width: 1920, height: 1080,
		},
		{
			name:     "no rotation",
			payload:  `{"streams":[{"index":0,"codec_type":"video","width":1920,"height":1080,"side_data_list":[{"side_data_type":"Mastering display metadata"}]}]}`,
			rotation: 0, width: 1920, height: 1080,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse([]byte(tt.payload))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			stream, err := result.VideoStream()
			if err != nil {
				t.Fatalf("VideoStream: %v", err)
			}
			if got := stream.Rotation(); got != tt.rotation {
				t.Fatalf("rotation = %d, want %d", got, tt.rotation)
			}
			if w, h := stream.DisplaySize(); w != tt.width || h != tt.height {
				t.Fatalf("display size = %dx%d, want %dx%d", w, h, tt.width, tt.height)
			}
			if stream.FrameBytes() != tt.width*tt.height*4 {
				t.Fatalf("unexpected frame bytes %d", stream.FrameBytes())
			}
		})
	}
}
