package dataset

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"testing"
)

type fakeSource struct {
	frames int
	next   int
	failAt int
	err    error
}

func (f *fakeSource) Next(context.Context) (image.Image, error) {
	if f.err != nil && f.next == f.failAt {
		return nil, f.err
	}
	if f.next >= f.frames {
		return nil, io.EOF
	}
	f.next++
	return image.NewGray(image.Rect(0, 0, 2, 2)), nil
}

type recordingWriter struct {
	paths []string
	err   error
}

func (w *recordingWriter) WriteImage(path string, _ image.Image) error {
	if w.err != nil {
		return w.err
	}
	w.paths = append(w.paths, path)
	return os.WriteFile(path, []byte("jpg"), 0o644)
}

var errDecode = errors.New("decode failed")

func stockClasses(t *testing.T) ClassMap {
	t.Helper()
	classes, err := NewClassMap(map[string]int{"boat": 0, "person": 1, "net": 2, "fish": 3})
	if err != nil {
		t.Fatalf("NewClassMap: %v", err)
	}
	return classes
}

func newTestLayout(t *testing.T, video string) Layout {
	t.Helper()
	layout := NewLayout(t.TempDir(), video)
	if err := layout.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	return layout
}
