package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Problem describes one violation found by VerifyUnit.
type Problem struct {
	Path   string
	Detail string
}

// VerifyReport summarizes the consistency of one produced unit.
type VerifyReport struct {
	Video           string
	ManifestEntries int
	LabelFiles      int
	Images          int
	Problems        []Problem
}

// OK reports whether no problems were found.
func (r VerifyReport) OK() bool {
	return len(r.Problems) == 0
}

func (r *VerifyReport) addProblem(path, format string, args ...any) {
	r.Problems = append(r.Problems, Problem{Path: path, Detail: fmt.Sprintf(format, args...)})
}

// VerifyUnit checks a produced unit against the output contract: every
// manifest entry is a non-empty, parseable label file with a paired image, and
// every label file on disk is listed in the manifest.
func VerifyUnit(layout Layout) (VerifyReport, error) {
	report := VerifyReport{Video: layout.Video}

	entries, err := ReadManifest(layout.ManifestPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			report.addProblem(layout.ManifestPath(), "manifest missing")
			return report, nil
		}
		return report, fmt.Errorf("read manifest: %w", err)
	}
	report.ManifestEntries = len(entries)

	onDisk, err := listFiles(layout.LabelsDir(), labelExt)
	if err != nil {
		return report, err
	}
	report.LabelFiles = len(onDisk)

	images, err := listFiles(layout.ImagesDir(), imageExt)
	if err != nil {
		return report, err
	}
	report.Images = len(images)

	listed := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		clean := filepath.Clean(entry)
		if _, dup := listed[clean]; dup {
			report.addProblem(entry, "listed more than once")
			continue
		}
		listed[clean] = struct{}{}
		verifyLabelEntry(&report, layout, clean)
	}

	for _, path := range onDisk {
		if _, ok := listed[filepath.Clean(path)]; !ok {
			report.addProblem(path, "label file not listed in manifest")
		}
	}
	return report, nil
}

func verifyLabelEntry(report *VerifyReport, layout Layout, path string) {
	info, err := os.Stat(path)
	if err != nil {
		report.addProblem(path, "label file unreadable: %v", err)
		return
	}
	if info.Size() == 0 {
		report.addProblem(path, "label file is empty")
		return
	}
	if _, err := ParseLabelFile(path); err != nil {
		report.addProblem(path, "label file invalid: %v", err)
	}
	image := layout.ImagePathForLabel(path)
	if _, err := os.Stat(image); err != nil {
		report.addProblem(path, "paired image %s missing", filepath.Base(image))
	}
}

func listFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// OutputUnits lists the unit names under an output root, identified by the
// presence of a manifest.
func OutputUnits(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read output directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		layout := NewLayout(root, entry.Name())
		if _, err := os.Stat(layout.ManifestPath()); err == nil {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
