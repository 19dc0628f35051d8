package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"trimmux/internal/command"
	"trimmux/internal/config"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "", want: 0},
		{input: "90s", want: 90 * time.Second},
		{input: "1m30s", want: 90 * time.Second},
		{input: "1:30", want: 90 * time.Second},
		{input: "00:01:30", want: 90 * time.Second},
		{input: "01:02:03.5", want: time.Hour + 2*time.Minute + 3*time.Second + 500*time.Millisecond},
		{input: "bogus", wantErr: true},
		{input: "-5s", wantErr: true},
	}

	for _, tc := range cases {
		got, err := parseTimestamp(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseTimestamp(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseTimestamp(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("parseTimestamp(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestPlanOptionsFromFlagsRejectsInvertedWindow(t *testing.T) {
	if _, err := planOptionsFromFlags("", "2m", "1m"); err == nil {
		t.Fatal("expected error when end precedes start")
	}
	opts, err := planOptionsFromFlags("out.mkv", "1m", "2m")
	if err != nil {
		t.Fatalf("planOptionsFromFlags: %v", err)
	}
	if opts.destination != "out.mkv" || opts.start != time.Minute || opts.end != 2*time.Minute {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestOutputPathForPrecedence(t *testing.T) {
	cfg := config.Default()
	container, ok := command.LookupContainer("mkv")
	if !ok {
		t.Fatal("mkv container missing")
	}

	if got := outputPathFor(&cfg, "/media/movie.mkv", container, ""); got != "" {
		t.Fatalf("expected empty destination for in-place mode, got %q", got)
	}

	cfg.Output.DestinationDir = t.TempDir()
	want := filepath.Join(cfg.Output.DestinationDir, "movie.mkv.trimmed.mkv")
	if got := outputPathFor(&cfg, "/media/movie.mkv", container, ""); got != want {
		t.Fatalf("destination dir path: got %q want %q", got, want)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if got := outputPathFor(&cfg, "/media/movie.mkv", container, "explicit.mkv"); got != filepath.Join(cwd, "explicit.mkv") {
		t.Fatalf("explicit output not honored: %q", got)
	}
}
