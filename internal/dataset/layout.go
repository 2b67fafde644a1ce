package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	imagesDirName = "images"
	labelsDirName = "labels"
	imageExt      = ".jpg"
	labelExt      = ".txt"
)

// Layout derives every output path for one video unit:
//
//	<root>/<video>/images/<video>_frame_<i>.jpg
//	<root>/<video>/labels/<video>_frame_<i>.txt
//	<root>/<video>/<video>.txt
type Layout struct {
	Root  string
	Video string
}

// NewLayout returns the layout for video under the output root.
func NewLayout(root, video string) Layout {
	return Layout{Root: root, Video: video}
}

// Dir is the unit's output subtree.
func (l Layout) Dir() string {
	return filepath.Join(l.Root, l.Video)
}

func (l Layout) ImagesDir() string {
	return filepath.Join(l.Dir(), imagesDirName)
}

func (l Layout) LabelsDir() string {
	return filepath.Join(l.Dir(), labelsDirName)
}

// ManifestPath is the per-video list of label files.
func (l Layout) ManifestPath() string {
	return filepath.Join(l.Dir(), l.Video+labelExt)
}

// Stem is the file name shared by a frame's image and label, minus extension.
func (l Layout) Stem(frame int) string {
	return fmt.Sprintf("%s_frame_%d", l.Video, frame)
}

func (l Layout) ImagePath(frame int) string {
	return filepath.Join(l.ImagesDir(), l.Stem(frame)+imageExt)
}

func (l Layout) LabelPath(frame int) string {
	return filepath.Join(l.LabelsDir(), l.Stem(frame)+labelExt)
}

// ImagePathForLabel maps a label file path to its paired image path.
func (l Layout) ImagePathForLabel(labelPath string) string {
	stem := strings.TrimSuffix(filepath.Base(labelPath), filepath.Ext(labelPath))
	return filepath.Join(l.ImagesDir(), stem+imageExt)
}

// Ensure creates the images and labels directories.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.ImagesDir(), l.LabelsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}
