package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trimmux/internal/command"
	"trimmux/internal/config"
	"trimmux/internal/media/probe"
	"trimmux/internal/selection"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
[selection]
fallback = "keep"
unknown_streams = "drop"
`

func TestLoadMinimalConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, path)
	}
	if cfg.Tools.FFmpeg != "ffmpeg" || cfg.Tools.FFprobe != "ffprobe" {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
	if cfg.Video.TargetFamily != "hevc" {
		t.Fatalf("unexpected target family: %q", cfg.Video.TargetFamily)
	}
	if got := cfg.Video.EncoderPreference; len(got) != 1 || got[0] != "libx265" {
		t.Fatalf("unexpected encoder preference: %v", got)
	}
	if cfg.Output.Container != "mkv" {
		t.Fatalf("unexpected container: %q", cfg.Output.Container)
	}
	if cfg.Output.HistoryDB == "" {
		t.Fatal("expected default history path")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadRejectsMissingSelectionPolicy(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	_, _, _, err := config.Load("")
	if err == nil {
		t.Fatal("expected error when selection policy is unset")
	}
	if !strings.Contains(err.Error(), "selection.fallback") {
		t.Fatalf("expected fallback mentioned, got %v", err)
	}
	if !strings.Contains(err.Error(), "selection.unknown_streams") {
		t.Fatalf("expected unknown_streams mentioned, got %v", err)
	}
}

func TestLoadNormalizesEnumsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := writeConfig(t, `
[selection]
fallback = " KEEP "
unknown_streams = "Drop"

[audio]
handling = "REENCODE"

[output]
container = "MKV"
destination_dir = "~/trimmed"
history_db = "~/state/history.db"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Selection.Fallback != "keep" || cfg.Selection.UnknownStreams != "drop" {
		t.Fatalf("selection not normalized: %+v", cfg.Selection)
	}
	if cfg.Audio.Handling != "reencode" {
		t.Fatalf("audio handling not normalized: %q", cfg.Audio.Handling)
	}
	if want := filepath.Join(tempHome, "trimmed"); cfg.Output.DestinationDir != want {
		t.Fatalf("destination dir: got %q want %q", cfg.Output.DestinationDir, want)
	}
	if want := filepath.Join(tempHome, "state", "history.db"); cfg.Output.HistoryDB != want {
		t.Fatalf("history db: got %q want %q", cfg.Output.HistoryDB, want)
	}
}

func TestLoadValidatesValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "bad fallback",
			body: `
[selection]
fallback = "maybe"
unknown_streams = "keep"
`,
			want: "selection.fallback",
		},
		{
			name: "bad handling",
			body: minimalConfig + `
[audio]
handling = "transcode"
`,
			want: "audio.handling",
		},
		{
			name: "unknown container",
			body: minimalConfig + `
[output]
container = "avi"
`,
			want: "output.container",
		},
		{
			name: "unknown encoder",
			body: minimalConfig + `
[video]
encoder_preference = ["libx264"]
`,
			want: "video.encoder_preference",
		},
		{
			name: "crf out of range",
			body: minimalConfig + `
[video]
crf = 99
`,
			want: "video.crf",
		},
		{
			name: "bad log format",
			body: minimalConfig + `
[logging]
format = "xml"
`,
			want: "logging.format",
		},
		{
			name: "incomplete rule",
			body: minimalConfig + `
[[selection.rules]]
kind = "language"
action = "drop"
`,
			want: "selection.rules[0]",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.body)
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestRulesAndPolicyConversion(t *testing.T) {
	path := writeConfig(t, `
[selection]
fallback = "keep"
unknown_streams = "drop"

[[selection.rules]]
kind = "stream_type"
action = "drop"
stream_type = "subtitle"

[[selection.rules]]
kind = "language"
action = "drop"
language = "jpn"

[audio]
handling = "reencode"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	rules := cfg.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Kind != selection.RuleByStreamType || rules[0].StreamType != probe.KindSubtitle {
		t.Fatalf("unexpected first rule: %+v", rules[0])
	}
	if rules[1].Kind != selection.RuleByLanguage || rules[1].Language != "jpn" {
		t.Fatalf("unexpected second rule: %+v", rules[1])
	}

	policy := cfg.Policy()
	if policy.Fallback != selection.ActionKeep || policy.Unknown != selection.ActionDrop {
		t.Fatalf("unexpected policy actions: %+v", policy)
	}
	if policy.Audio != selection.HandleReencode {
		t.Fatalf("unexpected audio handling: %v", policy.Audio)
	}
	if policy.VideoCodecFamily != "hevc" {
		t.Fatalf("unexpected codec family: %q", policy.VideoCodecFamily)
	}
}

func TestCompatTableOverride(t *testing.T) {
	path := writeConfig(t, minimalConfig + `
[containers.mkv]
kinds = ["video", "audio"]
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	container, ok := command.LookupContainer("mkv")
	if !ok {
		t.Fatal("mkv container missing")
	}
	compat, err := cfg.CompatTable().Lookup(container)
	if err != nil {
		t.Fatalf("lookup mkv: %v", err)
	}
	if !compat.Kinds[probe.KindVideo] || !compat.Kinds[probe.KindAudio] {
		t.Fatalf("expected video and audio allowed: %+v", compat.Kinds)
	}
	if compat.Kinds[probe.KindSubtitle] {
		t.Fatal("expected subtitle excluded by override")
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Selection.Fallback != "keep" {
		t.Fatalf("unexpected sample fallback: %q", cfg.Selection.Fallback)
	}
}
