package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleHandlerOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Options{Level: "debug", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("stream kept", String("codec", "aac"), Int("index", 1), String("title", "Director Commentary"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO stream kept") {
		t.Fatalf("missing level/message in %q", line)
	}
	if !strings.Contains(line, "codec=aac") || !strings.Contains(line, "index=1") {
		t.Fatalf("missing attrs in %q", line)
	}
	if !strings.Contains(line, `title="Director Commentary"`) {
		t.Fatalf("expected quoted value in %q", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Options{Level: "warn", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("debug/info should be filtered: %q", string(data))
	}
	if !strings.Contains(string(data), "shown") {
		t.Fatalf("warn level missing: %q", string(data))
	}
}

func TestGroupedAttrsFlatten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Options{OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("job done", slog.Group("job", slog.String("id", "abc"), slog.Int("streams", 3)))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "job.id=abc") || !strings.Contains(string(data), "job.streams=3") {
		t.Fatalf("expected flattened group keys in %q", string(data))
	}
}
