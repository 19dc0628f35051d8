package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	out, _, err = runCLI(t, []string{"config", "validate", "--config", target})
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	out, _, err = runCLI(t, []string{"config", "show", "--config", target})
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[selection]")
	requireContains(t, out, "fallback = 'keep'")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("write existing config: %v", err)
	}

	_, _, err := runCLI(t, []string{"config", "init", "--path", target})
	if err == nil {
		t.Fatal("expected error for existing config")
	}

	out, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"})
	if err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
}

func TestConfigPathPrintsDefault(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	out, _, err := runCLI(t, []string{"config", "path"})
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	requireContains(t, out, filepath.Join(tempHome, ".config", "trimmux", "config.toml"))
}
