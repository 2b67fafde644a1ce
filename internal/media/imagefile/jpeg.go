// Package imagefile persists decoded frames as image files.
package imagefile

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"os"
)

// DefaultQuality is used when JPEGWriter.Quality is out of range.
const DefaultQuality = 95

// JPEGWriter encodes frames as baseline JPEG.
type JPEGWriter struct {
	Quality int
}

// NewJPEGWriter returns a writer using quality. Values outside 1..100 fall
// back to DefaultQuality.
func NewJPEGWriter(quality int) *JPEGWriter {
	return &JPEGWriter{Quality: quality}
}

func (w *JPEGWriter) quality() int {
	if w == nil || w.Quality < 1 || w.Quality > 100 {
		return DefaultQuality
	}
	return w.Quality
}

// WriteImage creates path (truncating any existing file) and encodes img into it.
func (w *JPEGWriter) WriteImage(path string, img image.Image) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close image %s: %w", path, closeErr)
		}
	}()

	buf := bufio.NewWriter(file)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: w.quality()}); err != nil {
		return fmt.Errorf("encode image %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("write image %s: %w", path, err)
	}
	return nil
}
