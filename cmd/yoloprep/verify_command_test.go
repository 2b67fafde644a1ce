package main

import (
	"os"
	"testing"

	"yoloprep/internal/dataset"
	"yoloprep/internal/testsupport"
)

func TestVerifyAfterPrepare(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteUnit(t, env.cfg.Paths.InputDir, "harbor", harborCSV())
	if _, _, err := runCLI(t, []string{"prepare", "-e", "10"}, env.configPath); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	out, _, err := runCLI(t, []string{"verify"}, env.configPath)
	if err != nil {
		t.Fatalf("verify: %v\n%s", err, out)
	}
	requireContains(t, out, "harbor")
	requireContains(t, out, "OK")

	if err := os.Remove(dataset.NewLayout(env.cfg.Paths.OutputDir, "harbor").ImagePath(10)); err != nil {
		t.Fatalf("remove image: %v", err)
	}
	out, _, err = runCLI(t, []string{"verify", "harbor"}, env.configPath)
	if err == nil {
		t.Fatal("expected verify to fail after removing an image")
	}
	requireContains(t, out, "paired image harbor_frame_10.jpg missing")
}

func TestVerifyEmptyOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"verify", "-o", t.TempDir()}, env.configPath); err == nil {
		t.Fatal("expected error for empty output root")
	}
}
