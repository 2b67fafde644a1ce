package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"yoloprep/internal/config"
	"yoloprep/internal/logging"
)

func newLogFile(t *testing.T) (string, func() string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "test.log")
	return logPath, func() string {
		content, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("read log file: %v", err)
		}
		return string(content)
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello")

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "yoloprep.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "hello") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath, read := newLogFile(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if content := read(); strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath, read := newLogFile(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("message with caller")

	if content := read(); !strings.Contains(content, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerLiftsSubjectIntoHeader(t *testing.T) {
	logPath, read := newLogFile(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithStage(logging.WithVideo(context.Background(), "harbor_01"), "sample")
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "pipeline"))
	logger.Info("frames sampled", logging.Int("images", 3))

	content := read()
	if !strings.Contains(content, "[pipeline] harbor_01 (sample) – frames sampled") {
		t.Fatalf("unexpected header: %q", content)
	}
	if !strings.Contains(content, "    - images: 3") {
		t.Fatalf("expected field line, got %q", content)
	}
}

func TestConsoleLoggerShortensRunID(t *testing.T) {
	logPath, read := newLogFile(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809")
	logging.WithContext(ctx, logging.NewComponentLogger(logger, "pipeline")).Info("run started", logging.Stride(10))

	content := read()
	if !strings.Contains(content, "INFO [pipeline run 1a2b3c4d] – run started") {
		t.Fatalf("unexpected header: %q", content)
	}
	if strings.Contains(content, "run_id") {
		t.Fatalf("run id should be lifted out of the fields: %q", content)
	}
	if !strings.Contains(content, "    - stride: 10") {
		t.Fatalf("expected stride field, got %q", content)
	}
}

func TestJSONLoggerEmitsContextFields(t *testing.T) {
	logPath, read := newLogFile(t)
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-1")
	logging.WithContext(ctx, logger).Warn("careful")

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(read())), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry["run_id"] != "run-1" {
		t.Fatalf("expected run_id field, got %v", entry)
	}
	if entry["level"] != "warn" {
		t.Fatalf("expected lowercase level, got %v", entry["level"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath, read := newLogFile(t)
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WarnWithContext(logger, "decode stopped early", "decode_truncated")

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(read())), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry[logging.FieldEventType] != "decode_truncated" {
		t.Fatalf("expected event_type, got %v", entry)
	}
	if entry[logging.FieldErrorHint] == nil {
		t.Fatalf("expected error_hint, got %v", entry)
	}
}
