package main

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"trimmux/internal/command"
	"trimmux/internal/config"
	"trimmux/internal/encoder"
	"trimmux/internal/media/probe"
	"trimmux/internal/selection"
)

// planOptions carries the per-invocation overrides shared by preview and run.
type planOptions struct {
	destination string
	start       time.Duration
	end         time.Duration
	metadata    map[string]string
}

// buildPlan probes the input, resolves the stream selection, and assembles
// the builder plan. Encoder detection runs only when a kept video stream
// actually re-encodes, so copy-only invocations never shell out to ffmpeg.
func buildPlan(ctx context.Context, cfg *config.Config, input string, opts planOptions) (command.Plan, probe.Result, error) {
	expanded, err := config.ExpandPath(input)
	if err != nil {
		return command.Plan{}, probe.Result{}, err
	}

	result, err := probe.Inspect(ctx, cfg.Tools.FFprobe, expanded)
	if err != nil {
		return command.Plan{}, probe.Result{}, err
	}

	resolution := selection.Resolve(result.Streams, cfg.Rules(), cfg.Policy())

	container, err := cfg.Container()
	if err != nil {
		return command.Plan{}, probe.Result{}, err
	}

	plan := command.Plan{
		Input:      expanded,
		Resolution: resolution,
		Preset:     cfg.Video.Preset,
		Tune:       cfg.Video.Tune,
		Profile:    cfg.Video.Profile,
		Quality: command.Quality{
			CRF:          cfg.Video.CRF,
			VideoBitRate: cfg.Video.BitRate,
			AudioBitRate: cfg.Audio.BitRate,
		},
		Container:   container,
		Compat:      cfg.CompatTable(),
		Trim:        command.Trim{Start: opts.start, End: opts.end},
		Metadata:    opts.metadata,
		Destination: outputPathFor(cfg, expanded, container, opts.destination),
	}

	if needsEncoder(resolution) {
		available, err := encoder.Detect(ctx, cfg.Tools.FFmpeg)
		if err != nil {
			return command.Plan{}, probe.Result{}, err
		}
		chosen, err := encoder.Choose(cfg.Video.EncoderPreference, available)
		if err != nil {
			return command.Plan{}, probe.Result{}, err
		}
		plan.Encoder = chosen
	}

	return plan, result, nil
}

func needsEncoder(resolution selection.Resolution) bool {
	for _, entry := range resolution.Kept() {
		if entry.Stream.Kind == probe.KindVideo && entry.Handling == selection.HandleReencode {
			return true
		}
	}
	return false
}

// outputPathFor applies the override precedence: an explicit flag wins, then
// the configured destination directory, then the builder's sibling default.
func outputPathFor(cfg *config.Config, input string, container command.Container, explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		if expanded, err := config.ExpandPath(explicit); err == nil {
			return expanded
		}
		return explicit
	}
	if cfg.Output.DestinationDir != "" {
		return filepath.Join(cfg.Output.DestinationDir, filepath.Base(input)+".trimmed."+container.Ext())
	}
	return ""
}

var timestampRe = regexp.MustCompile(`^(?:(\d+):)?(\d{1,2}):(\d{1,2}(?:\.\d+)?)$`)

// parseTimestamp accepts Go duration syntax ("90s", "1m30s") and clock
// notation ("1:30", "00:01:30.5").
func parseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("timestamp %q is negative", value)
		}
		return d, nil
	}
	match := timestampRe.FindStringSubmatch(value)
	if match == nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours := 0
	if match[1] != "" {
		hours, _ = strconv.Atoi(match[1])
	}
	minutes, _ := strconv.Atoi(match[2])
	seconds, err := strconv.ParseFloat(match[3], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second))
	return total, nil
}

func formatStreamDetail(stream probe.Stream) string {
	switch stream.Kind {
	case probe.KindVideo:
		if stream.Width > 0 && stream.Height > 0 {
			return fmt.Sprintf("%dx%d", stream.Width, stream.Height)
		}
	case probe.KindAudio:
		if stream.Channels > 0 {
			return fmt.Sprintf("%dch", stream.Channels)
		}
	}
	return ""
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
