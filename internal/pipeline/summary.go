package pipeline

import (
	"time"
)

// Status is the outcome of one video unit.
type Status string

const (
	StatusProcessed Status = "processed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// ReasonNoAnnotations marks units skipped because their CSV is absent.
const ReasonNoAnnotations = "no_annotations"

// UnitResult records what happened to one video unit.
type UnitResult struct {
	Video     string `json:"video"`
	Status    Status `json:"status"`
	Stage     string `json:"stage,omitempty"`
	Reason    string `json:"reason,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	ErrorMsg  string `json:"error_msg,omitempty"`

	FramesDecoded   int  `json:"frames_decoded"`
	ImagesWritten   int  `json:"images_written"`
	LabelFiles      int  `json:"label_files"`
	Boxes           int  `json:"boxes"`
	RowsDiscarded   int  `json:"rows_discarded"`
	DecodeTruncated bool `json:"decode_truncated,omitempty"`

	DurationMS int64 `json:"duration_ms"`
}

// Counts tallies unit outcomes.
type Counts struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Summary is the report of one prepare run.
type Summary struct {
	RunID     string `json:"run_id"`
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`
	Stride    int    `json:"stride"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Aborted  bool   `json:"aborted"`
	ErrorMsg string `json:"error_msg,omitempty"`

	Counts Counts       `json:"summary"`
	Units  []UnitResult `json:"units"`
}

// Finalize normalizes timestamps to UTC and recomputes Counts from Units.
// Units keep processing order.
func (s *Summary) Finalize() {
	s.StartedAt = s.StartedAt.UTC()
	s.FinishedAt = s.FinishedAt.UTC()
	if s.Units == nil {
		s.Units = []UnitResult{}
	}

	var c Counts
	for _, unit := range s.Units {
		switch unit.Status {
		case StatusProcessed:
			c.Processed++
		case StatusSkipped:
			c.Skipped++
		case StatusFailed:
			c.Failed++
		}
	}
	s.Counts = c
}

// Totals sums image, label and box counts across units.
func (s *Summary) Totals() (images, labels, boxes int) {
	for _, unit := range s.Units {
		images += unit.ImagesWritten
		labels += unit.LabelFiles
		boxes += unit.Boxes
	}
	return images, labels, boxes
}

// Unit returns the result for video, if present.
func (s *Summary) Unit(video string) (UnitResult, bool) {
	for _, unit := range s.Units {
		if unit.Video == video {
			return unit, true
		}
	}
	return UnitResult{}, false
}
