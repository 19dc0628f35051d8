package config

import (
	"errors"
	"fmt"

	"trimmux/internal/command"
	"trimmux/internal/encoder"
)

// Validate rejects configurations the rest of the program cannot act on.
func (c *Config) Validate() error {
	var problems []error

	if c.Tools.FFmpeg == "" {
		problems = append(problems, errors.New("tools.ffmpeg: binary name required"))
	}
	if c.Tools.FFprobe == "" {
		problems = append(problems, errors.New("tools.ffprobe: binary name required"))
	}

	if c.Video.TargetFamily == "" {
		problems = append(problems, errors.New("video.target_family: value required"))
	}
	for _, name := range c.Video.EncoderPreference {
		if _, ok := encoder.Lookup(name); !ok {
			problems = append(problems, fmt.Errorf("video.encoder_preference: unknown encoder %q", name))
		}
	}
	if c.Video.CRF < 0 || c.Video.CRF > 51 {
		problems = append(problems, fmt.Errorf("video.crf: %d outside 0-51", c.Video.CRF))
	}

	for name, value := range map[string]string{
		"audio.handling":     c.Audio.Handling,
		"subtitles.handling": c.Subtitles.Handling,
		"data.handling":      c.Data.Handling,
	} {
		if value != "copy" && value != "reencode" {
			problems = append(problems, fmt.Errorf("%s: must be copy or reencode, got %q", name, value))
		}
	}

	// Both policies are required; silence is not a policy.
	if c.Selection.Fallback != "keep" && c.Selection.Fallback != "drop" {
		problems = append(problems, fmt.Errorf("selection.fallback: must be keep or drop, got %q", c.Selection.Fallback))
	}
	if c.Selection.UnknownStreams != "keep" && c.Selection.UnknownStreams != "drop" {
		problems = append(problems, fmt.Errorf("selection.unknown_streams: must be keep or drop, got %q", c.Selection.UnknownStreams))
	}

	for i, rc := range c.Selection.Rules {
		if err := rc.rule().Validate(); err != nil {
			problems = append(problems, fmt.Errorf("selection.rules[%d]: %w", i, err))
		}
	}

	if _, ok := command.LookupContainer(c.Output.Container); !ok {
		problems = append(problems, fmt.Errorf("output.container: unsupported value %q", c.Output.Container))
	}
	if c.Output.HistoryDB == "" {
		problems = append(problems, errors.New("output.history_db: path required"))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Errorf("logging.level: unknown value %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Errorf("logging.format: must be console or json, got %q", c.Logging.Format))
	}

	return errors.Join(problems...)
}
