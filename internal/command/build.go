package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"trimmux/internal/encoder"
	"trimmux/internal/media/probe"
	"trimmux/internal/selection"
)

// ErrConfiguration marks failures caused by the supplied transcode
// configuration rather than by the media file or the transcoder. Builds fail
// with it before any argument vector exists, so no process is ever launched
// and no partial output is produced for a configuration mistake.
var ErrConfiguration = errors.New("configuration error")

// Trim bounds the output to a window of the source. Zero values mean
// unbounded on that side.
type Trim struct {
	Start time.Duration
	End   time.Duration
}

// Quality carries rate-control parameters scoped by stream kind.
type Quality struct {
	// CRF applies to re-encoded video when > 0. Mutually exclusive with
	// VideoBitRate; CRF wins when both are set.
	CRF int
	// VideoBitRate is an ffmpeg rate string such as "4M".
	VideoBitRate string
	// AudioBitRate applies when audio streams re-encode.
	AudioBitRate string
}

// Plan bundles everything the builder needs: the resolved selection plus the
// caller-owned transcode configuration. The builder never mutates it.
type Plan struct {
	Input      string
	Resolution selection.Resolution
	// Encoder drives re-encoded video streams. The first encoder of the
	// user's preference list that detection reported available; the builder
	// assumes it works.
	Encoder encoder.Codec
	// Preset/Tune/Profile override the encoder's preferred values when set.
	Preset  string
	Tune    string
	Profile string
	Quality Quality
	// Container and Compat describe the output format. Compat is a
	// caller-supplied table, not builder logic.
	Container Container
	Compat    Table
	Trim      Trim
	// Metadata is written as container-level tags, keys sorted for
	// deterministic output.
	Metadata map[string]string
	// Destination overrides the default output path when set.
	Destination string
}

// OutputPath returns where the built command will write. The default places
// a ".trimmed.<ext>" sibling next to the input.
func (p Plan) OutputPath() string {
	if strings.TrimSpace(p.Destination) != "" {
		return p.Destination
	}
	return p.Input + ".trimmed." + p.Container.Ext()
}

// Build translates the plan into the ffmpeg argument vector and the output
// path. It is a pure function of its input: identical plans always produce
// identical argument vectors, which the preview command relies on. No
// process is spawned here.
func Build(plan Plan) ([]string, string, error) {
	if strings.TrimSpace(plan.Input) == "" {
		return nil, "", fmt.Errorf("%w: no input file", ErrConfiguration)
	}

	kept := plan.Resolution.Kept()
	if len(kept) == 0 {
		return nil, "", fmt.Errorf("%w: selection keeps no streams", ErrConfiguration)
	}

	compat, err := plan.Compat.Lookup(plan.Container)
	if err != nil {
		return nil, "", err
	}
	for _, entry := range kept {
		if !compat.Allows(entry.Stream) {
			return nil, "", fmt.Errorf("%w: %s stream %d (%s) cannot be muxed into %s",
				ErrConfiguration, entry.Stream.Kind, entry.Stream.Index, entry.Stream.Codec, plan.Container.Name)
		}
	}

	reencodes := false
	for _, entry := range kept {
		if entry.Handling == selection.HandleReencode && entry.Stream.Kind == probe.KindVideo {
			reencodes = true
		}
	}
	if reencodes && plan.Encoder.Name == "" {
		return nil, "", fmt.Errorf("%w: selection re-encodes video but no encoder is configured", ErrConfiguration)
	}

	args := []string{"-hide_banner", "-y"}

	if plan.Trim.Start > 0 {
		args = append(args, "-ss", formatDuration(plan.Trim.Start))
	}
	if plan.Trim.End > 0 {
		args = append(args, "-to", formatDuration(plan.Trim.End))
	}

	args = append(args, "-i", plan.Input)

	// Stream maps in original index order keep the output layout stable.
	for _, entry := range kept {
		args = append(args, "-map", fmt.Sprintf("0:%d", entry.Stream.Index))
	}

	// Per-output-stream codec selection; output positions follow map order.
	for out, entry := range kept {
		switch entry.Handling {
		case selection.HandleCopy:
			args = append(args, fmt.Sprintf("-c:%d", out), "copy")
		case selection.HandleReencode:
			args = append(args, codecArgs(out, entry.Stream, plan)...)
		}
		args = append(args, streamMetadataArgs(out, entry.Stream)...)
	}

	args = append(args, qualityArgs(kept, plan)...)

	for _, key := range sortedKeys(plan.Metadata) {
		args = append(args, "-metadata", key+"="+plan.Metadata[key])
	}

	output := plan.OutputPath()
	args = append(args, "-f", plan.Container.Muxer(), output)
	return args, output, nil
}

func codecArgs(out int, stream probe.Stream, plan Plan) []string {
	if stream.Kind != probe.KindVideo {
		// Only video re-encoding is driven by the encoder registry; other
		// kinds re-encode to the container's conventional codec.
		return []string{fmt.Sprintf("-c:%d", out), defaultCodecFor(stream.Kind, plan.Container)}
	}

	enc := plan.Encoder
	args := []string{fmt.Sprintf("-c:%d", out), enc.Name}

	if preset := firstNonEmpty(plan.Preset, enc.PreferredPreset); preset != "" {
		args = append(args, "-preset", preset)
	}
	if tune := firstNonEmpty(plan.Tune, enc.PreferredTune); tune != "" {
		args = append(args, "-tune", tune)
	}
	if profile := firstNonEmpty(plan.Profile, enc.PreferredProfile); profile != "" {
		args = append(args, "-profile:v", profile)
	}
	// mp4/mov players expect the hvc1 sample entry for HEVC.
	if enc.Family == "hevc" && (plan.Container.Name == "mp4" || plan.Container.Name == "mov") {
		args = append(args, "-tag:v", "hvc1")
	}
	return args
}

func defaultCodecFor(kind probe.Kind, container Container) string {
	switch kind {
	case probe.KindAudio:
		if container.Name == "webm" {
			return "libopus"
		}
		return "aac"
	case probe.KindSubtitle:
		switch container.Name {
		case "mp4", "mov":
			return "mov_text"
		case "webm":
			return "webvtt"
		default:
			return "srt"
		}
	default:
		return "copy"
	}
}

func streamMetadataArgs(out int, stream probe.Stream) []string {
	var args []string
	if stream.Language != "" {
		args = append(args, fmt.Sprintf("-metadata:s:%d", out), "language="+stream.Language)
	}
	if stream.Title != "" {
		args = append(args, fmt.Sprintf("-metadata:s:%d", out), "title="+stream.Title)
	}
	return args
}

func qualityArgs(kept []selection.Entry, plan Plan) []string {
	var args []string

	videoReencodes := false
	audioReencodes := false
	for _, entry := range kept {
		switch {
		case entry.Handling != selection.HandleReencode:
		case entry.Stream.Kind == probe.KindVideo:
			videoReencodes = true
		case entry.Stream.Kind == probe.KindAudio:
			audioReencodes = true
		}
	}

	if videoReencodes {
		switch {
		case plan.Quality.CRF > 0:
			args = append(args, "-crf", fmt.Sprintf("%d", plan.Quality.CRF))
		case plan.Quality.VideoBitRate != "":
			args = append(args, "-b:v", plan.Quality.VideoBitRate)
		}
	}
	if audioReencodes && plan.Quality.AudioBitRate != "" {
		args = append(args, "-b:a", plan.Quality.AudioBitRate)
	}
	return args
}

func formatDuration(d time.Duration) string {
	total := d.Seconds()
	hours := int(total) / 3600
	minutes := (int(total) % 3600) / 60
	seconds := total - float64(hours*3600+minutes*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, seconds)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

// Preview renders the full command line for display, shell-quoting arguments
// that need it.
func Preview(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(binary))
	for _, arg := range args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" || strings.ContainsAny(arg, " \t\"'$&|<>(){};*?") {
		return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
	}
	return arg
}
