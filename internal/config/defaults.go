package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default returns the repository defaults. Selection fallback and unknown
// stream policies are deliberately left empty: both are required inputs and
// validation fails until the user states them.
func Default() Config {
	return Config{
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
		Video: Video{
			TargetFamily:      "hevc",
			EncoderPreference: []string{"libx265"},
		},
		Audio:     Audio{Handling: "copy"},
		Subtitles: Subtitles{Handling: "copy"},
		Data:      Data{Handling: "copy"},
		Selection: Selection{},
		Output: Output{
			Container: "mkv",
			HistoryDB: defaultHistoryPath(),
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

func defaultHistoryPath() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "trimmux", "history.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/state/trimmux/history.db"
	}
	return filepath.Join(home, ".local", "state", "trimmux", "history.db")
}
