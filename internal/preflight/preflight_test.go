package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"yoloprep/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckInputLayout(t *testing.T) {
	input := t.TempDir()
	if result := CheckInputLayout(input); result.Passed {
		t.Fatal("expected failure without videos directory")
	}

	testsupport.WriteUnit(t, input, "harbor", testsupport.AnnotationCSV("0;boat;1;1;1;1"))
	testsupport.WriteUnit(t, input, "bare", "")
	testsupport.WriteUnit(t, input, "unannotated", "")

	result := CheckInputLayout(input)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "2 videos, 1 annotated") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckInputLayout_Unset(t *testing.T) {
	if result := CheckInputLayout(" "); result.Passed || !strings.Contains(result.Detail, "--input") {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckOutputDirectory_NotYetCreated(t *testing.T) {
	target := filepath.Join(t.TempDir(), "njord-yolo", "nested")
	result := CheckOutputDirectory(target)
	if !result.Passed || !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckOutputDirectory_IsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckOutputDirectory(f); result.Passed {
		t.Fatal("expected failure for file output root")
	}
}

func TestRunAllWithFakeTools(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithFakeMedia(testsupport.FakeMedia{Frames: 1}), testsupport.WithLogDir())
	testsupport.WriteUnit(t, cfg.Paths.InputDir, "harbor", testsupport.AnnotationCSV("0;boat;1;1;1;1"))

	results := RunAll(context.Background(), cfg)
	names := make([]string, 0, len(results))
	for _, result := range results {
		names = append(names, result.Name)
	}
	if got := strings.Join(names, ","); got != "Input directory,Output directory,Log directory,FFmpeg,FFprobe" {
		t.Fatalf("unexpected checks %s", got)
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("expected all checks to pass, got %+v", failed)
	}
}

func TestRunAllReportsMissingTool(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Tools.FFmpeg = "clearly-not-present-ffmpeg"
	testsupport.WriteUnit(t, cfg.Paths.InputDir, "harbor", "")

	failed := Failed(RunAll(context.Background(), cfg))
	if len(failed) == 0 || failed[0].Name != "FFmpeg" {
		t.Fatalf("expected FFmpeg failure, got %+v", failed)
	}
}
