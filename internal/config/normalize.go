package config

import "strings"

// normalize trims and lowercases enumeration fields and expands path values
// so the rest of the program never re-sanitizes configuration.
func (c *Config) normalize() error {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)

	c.Video.TargetFamily = lower(c.Video.TargetFamily)
	for i, name := range c.Video.EncoderPreference {
		c.Video.EncoderPreference[i] = lower(name)
	}
	c.Video.Preset = strings.TrimSpace(c.Video.Preset)
	c.Video.Tune = strings.TrimSpace(c.Video.Tune)
	c.Video.Profile = strings.TrimSpace(c.Video.Profile)
	c.Video.BitRate = strings.TrimSpace(c.Video.BitRate)

	c.Audio.Handling = lower(c.Audio.Handling)
	c.Audio.BitRate = strings.TrimSpace(c.Audio.BitRate)
	c.Subtitles.Handling = lower(c.Subtitles.Handling)
	c.Data.Handling = lower(c.Data.Handling)

	c.Selection.Fallback = lower(c.Selection.Fallback)
	c.Selection.UnknownStreams = lower(c.Selection.UnknownStreams)
	for i := range c.Selection.Rules {
		rule := &c.Selection.Rules[i]
		rule.Kind = lower(rule.Kind)
		rule.Action = lower(rule.Action)
		rule.StreamType = lower(rule.StreamType)
		rule.Language = lower(rule.Language)
	}

	c.Output.Container = lower(c.Output.Container)

	c.Logging.Level = lower(c.Logging.Level)
	c.Logging.Format = lower(c.Logging.Format)

	for _, field := range []*string{&c.Output.DestinationDir, &c.Output.HistoryDB, &c.Logging.LogDir} {
		if strings.TrimSpace(*field) == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}

func lower(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
