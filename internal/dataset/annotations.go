package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// annotationFields is the column count of frame_id;class_name;x;y;width;height.
const annotationFields = 6

var coordinateNames = [...]string{"x", "y", "width", "height"}

// Label is one bounding box in label-file form. Coordinates are carried
// verbatim from the CSV.
type Label struct {
	ClassID int
	X       string
	Y       string
	Width   string
	Height  string
}

// String renders the label-file line without the trailing newline.
func (l Label) String() string {
	return strings.Join([]string{strconv.Itoa(l.ClassID), l.X, l.Y, l.Width, l.Height}, " ")
}

// FrameLabels groups labels by frame, remembering the order in which frames
// were first seen.
type FrameLabels struct {
	order []int
	boxes map[int][]Label
}

// NewFrameLabels returns an empty grouping.
func NewFrameLabels() *FrameLabels {
	return &FrameLabels{boxes: make(map[int][]Label)}
}

// Add appends label to frame.
func (f *FrameLabels) Add(frame int, label Label) {
	if _, ok := f.boxes[frame]; !ok {
		f.order = append(f.order, frame)
	}
	f.boxes[frame] = append(f.boxes[frame], label)
}

// Frames returns frames with at least one label in first-seen order.
func (f *FrameLabels) Frames() []int {
	out := make([]int, len(f.order))
	copy(out, f.order)
	return out
}

// Labels returns the labels for frame in CSV row order.
func (f *FrameLabels) Labels(frame int) []Label {
	return f.boxes[frame]
}

// Len reports the number of labelled frames.
func (f *FrameLabels) Len() int {
	return len(f.order)
}

// BoxCount reports the total number of labels across frames.
func (f *FrameLabels) BoxCount() int {
	total := 0
	for _, labels := range f.boxes {
		total += len(labels)
	}
	return total
}

// LoadStats counts the CSV rows seen by LoadAnnotations.
type LoadStats struct {
	Rows      int
	Kept      int
	Discarded int
}

// LoadAnnotationFile opens path and runs LoadAnnotations on it. A missing file
// returns ErrNoAnnotations.
func LoadAnnotationFile(path string, selected *FrameSet, classes ClassMap) (*FrameLabels, LoadStats, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, LoadStats{}, fmt.Errorf("%w: %s", ErrNoAnnotations, path)
		}
		return nil, LoadStats{}, fmt.Errorf("open annotations: %w", err)
	}
	defer file.Close()
	return LoadAnnotations(file, selected, classes)
}

// LoadAnnotations parses a semicolon-delimited annotation CSV and keeps the
// rows whose frame is in selected. The first row is a header and is skipped
// without inspection.
//
// Every data row must carry exactly six fields, a non-negative integer frame
// id and four coordinates that are each one non-empty token (ErrMalformedRow),
// and its class must resolve through classes (ErrUnknownClass). These checks
// apply to discarded rows too. Coordinates are otherwise carried verbatim, so
// every label line written from them parses back with five fields.
func LoadAnnotations(r io.Reader, selected *FrameSet, classes ClassMap) (*FrameLabels, LoadStats, error) {
	var stats LoadStats
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	// Quotes are data here: a stray " in the header or a coordinate passes
	// through untouched.
	reader.LazyQuotes = true

	labels := NewFrameLabels()
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return labels, stats, nil
		}
		return nil, stats, fmt.Errorf("%w: header: %w", ErrMalformedRow, err)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}
		line, _ := reader.FieldPos(0)
		stats.Rows++

		if len(record) != annotationFields {
			return nil, stats, fmt.Errorf("%w: line %d: expected %d fields, got %d", ErrMalformedRow, line, annotationFields, len(record))
		}
		frame, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil || frame < 0 {
			return nil, stats, fmt.Errorf("%w: line %d: frame id %q is not a non-negative integer", ErrMalformedRow, line, record[0])
		}
		classID, ok := classes.Lookup(record[1])
		if !ok {
			return nil, stats, fmt.Errorf("%w %q at line %d", ErrUnknownClass, record[1], line)
		}
		for i, value := range record[2:] {
			if len(strings.Fields(value)) != 1 {
				return nil, stats, fmt.Errorf("%w: line %d: %s %q must be a single non-empty token", ErrMalformedRow, line, coordinateNames[i], value)
			}
		}

		if !selected.Contains(frame) {
			stats.Discarded++
			continue
		}
		labels.Add(frame, Label{
			ClassID: classID,
			X:       record[2],
			Y:       record[3],
			Width:   record[4],
			Height:  record[5],
		})
		stats.Kept++
	}
	return labels, stats, nil
}
