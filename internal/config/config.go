package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"trimmux/internal/command"
	"trimmux/internal/media/probe"
	"trimmux/internal/selection"
)

//go:embed sample_config.toml
var sampleConfig string

// Tools names the external binaries trimmux invokes.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Video configures the target video codec and encoder choice.
type Video struct {
	// TargetFamily is the codec family re-encoded video aims for (e.g.
	// "hevc"). Source streams already in the family are copied.
	TargetFamily string `toml:"target_family"`
	// EncoderPreference is tried in order against the encoders the local
	// ffmpeg build exposes; the first available wins.
	EncoderPreference []string `toml:"encoder_preference"`
	// Preset/Tune/Profile override each encoder's preferred values when set.
	Preset  string `toml:"preset"`
	Tune    string `toml:"tune"`
	Profile string `toml:"profile"`
	CRF     int    `toml:"crf"`
	BitRate string `toml:"bitrate"`
}

// Audio configures kept audio streams.
type Audio struct {
	Handling string `toml:"handling"`
	BitRate  string `toml:"bitrate"`
}

// Subtitles configures kept subtitle streams.
type Subtitles struct {
	Handling string `toml:"handling"`
}

// Data configures kept data/attachment streams.
type Data struct {
	Handling string `toml:"handling"`
}

// RuleConfig is the TOML shape of one selection rule.
type RuleConfig struct {
	Kind       string `toml:"kind"`
	Action     string `toml:"action"`
	Index      int    `toml:"index"`
	StreamType string `toml:"stream_type"`
	Language   string `toml:"language"`
}

// Selection configures rule evaluation. Fallback and UnknownStreams have no
// hard-coded defaults by design; validation rejects configs that omit them.
type Selection struct {
	Fallback       string       `toml:"fallback"`
	UnknownStreams string       `toml:"unknown_streams"`
	Rules          []RuleConfig `toml:"rules"`
}

// Output configures where results land.
type Output struct {
	Container string `toml:"container"`
	// DestinationDir writes outputs there when set; otherwise the source is
	// replaced in place and the original kept as a numbered backup.
	DestinationDir string `toml:"destination_dir"`
	HistoryDB      string `toml:"history_db"`
}

// Logging configures log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	LogDir string `toml:"log_dir"`
}

// ContainerRules optionally overrides the built-in compatibility table for
// one container.
type ContainerRules struct {
	Kinds          []string `toml:"kinds"`
	SubtitleCodecs []string `toml:"subtitle_codecs"`
}

// Config encapsulates all configuration values for trimmux.
type Config struct {
	Tools      Tools                     `toml:"tools"`
	Video      Video                     `toml:"video"`
	Audio      Audio                     `toml:"audio"`
	Subtitles  Subtitles                 `toml:"subtitles"`
	Data       Data                      `toml:"data"`
	Selection  Selection                 `toml:"selection"`
	Output     Output                    `toml:"output"`
	Logging    Logging                   `toml:"logging"`
	Containers map[string]ContainerRules `toml:"containers"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/trimmux/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file actually existed at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("trimmux.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// Rules converts the configured rule list into selection rules.
func (c *Config) Rules() []selection.Rule {
	rules := make([]selection.Rule, 0, len(c.Selection.Rules))
	for _, rc := range c.Selection.Rules {
		rules = append(rules, rc.rule())
	}
	return rules
}

func (rc RuleConfig) rule() selection.Rule {
	return selection.Rule{
		Kind:       selection.RuleKind(rc.Kind),
		Action:     selection.Action(rc.Action),
		Index:      rc.Index,
		StreamType: probe.Kind(rc.StreamType),
		Language:   rc.Language,
	}
}

// Policy builds the resolution policy from the configured values.
func (c *Config) Policy() selection.Policy {
	return selection.Policy{
		Fallback:         selection.Action(c.Selection.Fallback),
		Unknown:          selection.Action(c.Selection.UnknownStreams),
		VideoCodecFamily: c.Video.TargetFamily,
		Audio:            selection.Handling(c.Audio.Handling),
		Subtitle:         selection.Handling(c.Subtitles.Handling),
		Data:             selection.Handling(c.Data.Handling),
	}
}

// CompatTable returns the container compatibility table: the built-in
// defaults with any [containers.X] overrides applied.
func (c *Config) CompatTable() command.Table {
	table := command.DefaultTable()
	for name, rules := range c.Containers {
		compat := command.Compatibility{}
		if len(rules.Kinds) > 0 {
			compat.Kinds = make(map[probe.Kind]bool, len(rules.Kinds))
			for _, kind := range rules.Kinds {
				compat.Kinds[probe.Kind(strings.ToLower(strings.TrimSpace(kind)))] = true
			}
		}
		if len(rules.SubtitleCodecs) > 0 {
			compat.SubtitleCodecs = make(map[string]bool, len(rules.SubtitleCodecs))
			for _, codec := range rules.SubtitleCodecs {
				compat.SubtitleCodecs[strings.ToLower(strings.TrimSpace(codec))] = true
			}
		}
		table[strings.ToLower(strings.TrimSpace(name))] = compat
	}
	return table
}

// Container resolves the configured output container.
func (c *Config) Container() (command.Container, error) {
	container, ok := command.LookupContainer(c.Output.Container)
	if !ok {
		return command.Container{}, fmt.Errorf("output container: unsupported value %q", c.Output.Container)
	}
	return container, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
