package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"yoloprep/internal/config"
	"yoloprep/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	homeDir    string
}

// setupCLITestEnv isolates HOME and the working directory, and writes a
// config that points at stub decoding tools emitting 30 frames per video.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Chdir(homeDir)

	opts = append([]testsupport.ConfigOption{
		testsupport.WithFakeMedia(testsupport.FakeMedia{Width: 4, Height: 2, Frames: 30}),
	}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"

	configPath := filepath.Join(homeDir, "yoloprep-test.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, homeDir: homeDir}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func harborCSV() string {
	return testsupport.AnnotationCSV(
		"10;boat;0.5;0.4;0.2;0.1",
		"5;person;0.1;0.1;0.1;0.1",
	)
}
