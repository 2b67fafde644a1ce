package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ReservedUnannotated names the input folder that holds videos without
// annotations. It is never treated as a unit.
const ReservedUnannotated = "unannotated"

const videosDirName = "videos"

// Unit is one input video plus its annotation CSV.
type Unit struct {
	Name           string
	Dir            string
	VideoPath      string
	AnnotationPath string
}

// NewUnit derives the conventional file paths for the unit in dir.
func NewUnit(dir string) Unit {
	name := filepath.Base(dir)
	return Unit{
		Name:           name,
		Dir:            dir,
		VideoPath:      filepath.Join(dir, name+".mp4"),
		AnnotationPath: filepath.Join(dir, name+"_bb.csv"),
	}
}

// HasAnnotations reports whether the unit's CSV exists.
func (u Unit) HasAnnotations() (bool, error) {
	info, err := os.Stat(u.AnnotationPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat annotations: %w", err)
	}
	return !info.IsDir(), nil
}

// DiscoverUnits lists the video units under <inputRoot>/videos in name order.
// Plain files and the reserved "unannotated" folder are ignored.
func DiscoverUnits(inputRoot string) ([]Unit, error) {
	videosDir := filepath.Join(inputRoot, videosDirName)
	entries, err := os.ReadDir(videosDir)
	if err != nil {
		return nil, fmt.Errorf("read videos directory: %w", err)
	}

	units := make([]Unit, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == ReservedUnannotated {
			continue
		}
		units = append(units, NewUnit(filepath.Join(videosDir, entry.Name())))
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	return units, nil
}
