package pipeline

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSummaryFinalizeCountsAndUTC(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	s := &Summary{
		StartedAt:  time.Date(2026, 5, 1, 12, 0, 0, 0, loc),
		FinishedAt: time.Date(2026, 5, 1, 12, 5, 0, 0, loc),
		Units: []UnitResult{
			{Video: "b", Status: StatusProcessed, ImagesWritten: 3, LabelFiles: 1, Boxes: 2},
			{Video: "a", Status: StatusSkipped},
			{Video: "c", Status: StatusFailed},
			{Video: "d", Status: StatusProcessed, ImagesWritten: 2, LabelFiles: 2, Boxes: 2},
		},
	}
	s.Finalize()

	if diff := cmp.Diff(Counts{Processed: 2, Skipped: 1, Failed: 1}, s.Counts); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
	if s.StartedAt.Location() != time.UTC || s.StartedAt.Hour() != 10 {
		t.Fatalf("expected UTC start, got %v", s.StartedAt)
	}
	if s.Units[0].Video != "b" {
		t.Fatal("finalize must keep processing order")
	}
	images, labels, boxes := s.Totals()
	if images != 5 || labels != 3 || boxes != 4 {
		t.Fatalf("unexpected totals %d/%d/%d", images, labels, boxes)
	}
}

func TestSummaryJSONShape(t *testing.T) {
	s := &Summary{RunID: "run-1", Stride: 25}
	s.Finalize()
	payload, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"run_id", "stride", "summary", "units", "started_at", "aborted"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing key %q in %s", key, payload)
		}
	}
	if units, ok := decoded["units"].([]any); !ok || len(units) != 0 {
		t.Fatalf("expected empty units array, got %v", decoded["units"])
	}
}
