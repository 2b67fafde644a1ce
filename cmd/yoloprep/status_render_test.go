package main

import (
	"bytes"
	"strings"
	"testing"

	"yoloprep/internal/pipeline"
)

func TestOutcomeLabel(t *testing.T) {
	for input, want := range map[string]string{
		"no_annotations": "No Annotations",
		"processed":      "Processed",
		"external_tool":  "External Tool",
		"":               "",
	} {
		if got := outcomeLabel(input); got != want {
			t.Fatalf("outcomeLabel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("harbor", statusOK, "3 images", false)
	if line != "  harbor:              [OK] 3 images" {
		t.Fatalf("unexpected line %q", line)
	}
	colored := renderStatusLine("harbor", statusError, "", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected colored line, got %q", colored)
	}
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers must never be colorized")
	}
}

func TestProgressObserverLines(t *testing.T) {
	var buf bytes.Buffer
	obs := newProgressObserver(&buf, false)
	obs.UnitStarted(1, 2, "harbor")
	obs.UnitFinished(1, 2, pipeline.UnitResult{Video: "harbor", Status: pipeline.StatusFailed, Stage: pipeline.StageSample, ErrorMsg: "boom"})
	obs.UnitFinished(2, 2, pipeline.UnitResult{Video: "bare", Status: pipeline.StatusSkipped, Reason: pipeline.ReasonNoAnnotations})

	out := buf.String()
	requireContains(t, out, "[1/2] harbor")
	requireContains(t, out, "[ERROR] Sample: boom")
	requireContains(t, out, "[WARN] No Annotations")
}
