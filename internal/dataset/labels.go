package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// WriteLabels writes one label file per frame in labels, in the grouping's
// frame order, and records each path in a freshly truncated manifest. It
// returns the label paths in manifest order.
func WriteLabels(layout Layout, labels *FrameLabels) (paths []string, err error) {
	manifest, err := os.Create(layout.ManifestPath())
	if err != nil {
		return nil, fmt.Errorf("create manifest: %w", err)
	}
	defer func() {
		if closeErr := manifest.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close manifest: %w", closeErr)
		}
	}()

	out := bufio.NewWriter(manifest)
	paths = make([]string, 0, labels.Len())
	for _, frame := range labels.Frames() {
		path := layout.LabelPath(frame)
		if err := writeLabelFile(path, labels.Labels(frame)); err != nil {
			return paths, err
		}
		if _, err := out.WriteString(path + "\n"); err != nil {
			return paths, fmt.Errorf("append manifest: %w", err)
		}
		paths = append(paths, path)
	}
	if err := out.Flush(); err != nil {
		return paths, fmt.Errorf("flush manifest: %w", err)
	}
	return paths, nil
}

func writeLabelFile(path string, labels []Label) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create label file: %w", err)
	}
	w := bufio.NewWriter(file)
	for _, label := range labels {
		if _, err := w.WriteString(label.String() + "\n"); err != nil {
			_ = file.Close()
			return fmt.Errorf("write label file %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("write label file %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close label file %s: %w", path, err)
	}
	return nil
}

// ParseLabelFile reads a label file back into labels.
func ParseLabelFile(path string) ([]Label, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseLabels(file)
}

// ParseLabels reads "<class_id> <x> <y> <width> <height>" lines.
func ParseLabels(r io.Reader) ([]Label, error) {
	var labels []Label
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 5 {
			return nil, fmt.Errorf("label line %d: expected 5 fields, got %d", line, len(fields))
		}
		classID, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("label line %d: class id %q: %w", line, fields[0], err)
		}
		labels = append(labels, Label{ClassID: classID, X: fields[1], Y: fields[2], Width: fields[3], Height: fields[4]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}

// ReadManifest returns the label paths listed in a manifest.
func ReadManifest(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if entry := strings.TrimSpace(scanner.Text()); entry != "" {
			paths = append(paths, entry)
		}
	}
	return paths, scanner.Err()
}
