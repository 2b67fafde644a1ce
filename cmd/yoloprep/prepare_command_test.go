package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"yoloprep/internal/dataset"
	"yoloprep/internal/pipeline"
	"yoloprep/internal/testsupport"
)

func TestPrepareWritesDatasetJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteUnit(t, env.cfg.Paths.InputDir, "harbor", harborCSV())
	testsupport.WriteUnit(t, env.cfg.Paths.InputDir, "bare", "")
	testsupport.WriteUnit(t, env.cfg.Paths.InputDir, "unannotated", "")

	out, stderr, err := runCLI(t, []string{"prepare", "-e", "10", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	requireContains(t, stderr, "[1/2] bare")
	requireContains(t, stderr, "[2/2] harbor")

	var summary pipeline.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if diff := cmp.Diff(pipeline.Counts{Processed: 1, Skipped: 1}, summary.Counts); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
	if summary.Stride != 10 {
		t.Fatalf("expected stride override 10, got %d", summary.Stride)
	}

	layout := dataset.NewLayout(env.cfg.Paths.OutputDir, "harbor")
	for _, frame := range []int{0, 10, 20} {
		if _, err := os.Stat(layout.ImagePath(frame)); err != nil {
			t.Fatalf("expected image for frame %d: %v", frame, err)
		}
	}
	labels, err := dataset.ParseLabelFile(layout.LabelPath(10))
	if err != nil {
		t.Fatalf("parse label: %v", err)
	}
	want := []dataset.Label{{ClassID: 0, X: "0.5", Y: "0.4", Width: "0.2", Height: "0.1"}}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, "unannotated")); !os.IsNotExist(err) {
		t.Fatalf("reserved folder must not produce output, stat err=%v", err)
	}
}

func TestPrepareTableOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteUnit(t, env.cfg.Paths.InputDir, "harbor", harborCSV())
	testsupport.WriteUnit(t, env.cfg.Paths.InputDir, "bare", "")

	out, _, err := runCLI(t, []string{"prepare", "--every", "10"}, env.configPath)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	requireContains(t, out, "harbor")
	requireContains(t, out, "Processed")
	requireContains(t, out, "No Annotations")
	requireContains(t, out, "1 processed, 1 skipped, 0 failed (stride 10)")
}

func TestPrepareEveryZeroExtractsAllFrames(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStride(25))
	testsupport.WriteUnit(t, env.cfg.Paths.InputDir, "harbor", harborCSV())

	out, _, err := runCLI(t, []string{"prepare", "-e", "0", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	var summary pipeline.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	unit, _ := summary.Unit("harbor")
	if unit.ImagesWritten != 30 || unit.LabelFiles != 2 {
		t.Fatalf("expected every frame extracted, got %+v", unit)
	}
}

func TestPrepareOutputFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteUnit(t, env.cfg.Paths.InputDir, "harbor", harborCSV())
	target := filepath.Join(t.TempDir(), "custom")

	if _, _, err := runCLI(t, []string{"prepare", "-o", target}, env.configPath); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if _, err := os.Stat(dataset.NewLayout(target, "harbor").ManifestPath()); err != nil {
		t.Fatalf("expected manifest under override: %v", err)
	}
}

func TestPrepareUnknownClassFails(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteUnit(t, env.cfg.Paths.InputDir, "harbor", testsupport.AnnotationCSV("0;shark;0.1;0.1;0.1;0.1"))

	out, _, err := runCLI(t, []string{"prepare"}, env.configPath)
	if !errors.Is(err, pipeline.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, err.Error(), `"shark"`)
	requireContains(t, out, "run aborted")
}

func TestPrepareCorruptVideoContinues(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteUnit(t, env.cfg.Paths.InputDir, "a_corrupt", harborCSV())
	testsupport.WriteUnit(t, env.cfg.Paths.InputDir, "b_harbor", harborCSV())

	out, _, err := runCLI(t, []string{"prepare", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	var summary pipeline.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if diff := cmp.Diff(pipeline.Counts{Processed: 1, Failed: 1}, summary.Counts); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestPrepareRequiresInput(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Paths.InputDir = ""
	writeTestConfig(t, env.configPath, env.cfg)

	_, _, err := runCLI(t, []string{"prepare"}, env.configPath)
	if err == nil {
		t.Fatal("expected error without input directory")
	}
	requireContains(t, err.Error(), "--input")
}

func TestPrepareRejectsNegativeEvery(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"prepare", "-e", "-3"}, env.configPath); err == nil {
		t.Fatal("expected error for negative stride")
	}
}

func TestPrepareMissingVideosDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"prepare", "-i", t.TempDir()}, env.configPath); err == nil {
		t.Fatal("expected error when videos directory is missing")
	}
}
