package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "config.toml")
	body := `
[selection]
fallback = "keep"
unknown_streams = "keep"

[output]
history_db = "` + filepath.ToSlash(filepath.Join(dir, "history.db")) + `"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestRootCommandShowsHelp(t *testing.T) {
	out, _, err := runCLI(t, nil)
	if err != nil {
		t.Fatalf("root command: %v", err)
	}
	requireContains(t, out, "trimmux")
	requireContains(t, out, "Available Commands")
}

func TestRunRejectsBadTimestamp(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir)

	_, _, err := runCLI(t, []string{"run", "--config", configPath, "--start", "bogus", "input.mkv"})
	if err == nil {
		t.Fatal("expected error for invalid timestamp")
	}
	if !strings.Contains(err.Error(), "invalid timestamp") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMissingSelectionPolicyBlocksCommands(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[tools]\nffmpeg = \"ffmpeg\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, err := runCLI(t, []string{"history", "--config", configPath})
	if err == nil {
		t.Fatal("expected config validation to fail")
	}
	if !strings.Contains(err.Error(), "selection.fallback") {
		t.Fatalf("unexpected error: %v", err)
	}
}
