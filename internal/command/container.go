package command

import (
	"fmt"
	"strings"

	"trimmux/internal/media/probe"
)

// Container identifies an output container format.
type Container struct {
	// Name is the user-facing identifier and file extension.
	Name string
	// Format is the ffmpeg muxer name when it differs from Name.
	Format string
	// Description for listings.
	Description string
}

// Ext returns the output file extension without a dot.
func (c Container) Ext() string { return c.Name }

// Muxer returns the ffmpeg -f value.
func (c Container) Muxer() string {
	if c.Format != "" {
		return c.Format
	}
	return c.Name
}

// Containers trimmux can write, matching what the stock ffmpeg muxers accept.
var Containers = []Container{
	{Name: "mkv", Format: "matroska", Description: "Matroska Video File"},
	{Name: "webm", Description: "WebM Video File"},
	{Name: "mp4", Description: "MPEG-4 Video File"},
	{Name: "mov", Description: "QuickTime Movie"},
	{Name: "m2ts", Format: "mpegts", Description: "Blu-ray BDAV Video File"},
}

// LookupContainer resolves a container by name.
func LookupContainer(name string) (Container, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, container := range Containers {
		if container.Name == name {
			return container, true
		}
	}
	return Container{}, false
}

// Compatibility states which stream kinds and subtitle codecs a container
// accepts. It is configuration data: callers may override the defaults, the
// builder only consults the table it is given.
type Compatibility struct {
	// Kinds that can be muxed at all.
	Kinds map[probe.Kind]bool
	// SubtitleCodecs restricts subtitle codec names when set; nil means any
	// subtitle codec is accepted (provided Kinds allows subtitles).
	SubtitleCodecs map[string]bool
}

// Allows reports whether the container accepts a kept stream.
func (c Compatibility) Allows(stream probe.Stream) bool {
	if !c.Kinds[stream.Kind] {
		return false
	}
	if stream.Kind == probe.KindSubtitle && c.SubtitleCodecs != nil {
		return c.SubtitleCodecs[strings.ToLower(strings.TrimSpace(stream.Codec))]
	}
	return true
}

// Table maps container names to their compatibility rules.
type Table map[string]Compatibility

// Lookup returns the rules for a container, or an error when the table has
// no entry for it.
func (t Table) Lookup(container Container) (Compatibility, error) {
	if compat, ok := t[container.Name]; ok {
		return compat, nil
	}
	return Compatibility{}, fmt.Errorf("%w: no compatibility rules for container %q", ErrConfiguration, container.Name)
}

// mkvSubtitleCodecs follows FFmpeg's matroska muxer codec tag mapping.
var mkvSubtitleCodecs = map[string]bool{
	"subrip":             true,
	"srt":                true,
	"ass":                true,
	"ssa":                true,
	"text":               true,
	"dvd_subtitle":       true,
	"dvb_subtitle":       true,
	"hdmv_pgs_subtitle":  true,
	"hdmv_text_subtitle": true,
	"arib_caption":       true,
	"webvtt":             true,
}

// DefaultTable returns the built-in compatibility rules. Config may replace
// or extend individual entries.
func DefaultTable() Table {
	all := map[probe.Kind]bool{
		probe.KindVideo:    true,
		probe.KindAudio:    true,
		probe.KindSubtitle: true,
		probe.KindData:     true,
		probe.KindUnknown:  true,
	}
	av := map[probe.Kind]bool{
		probe.KindVideo: true,
		probe.KindAudio: true,
	}
	avs := map[probe.Kind]bool{
		probe.KindVideo:    true,
		probe.KindAudio:    true,
		probe.KindSubtitle: true,
	}
	return Table{
		"mkv": {Kinds: all, SubtitleCodecs: mkvSubtitleCodecs},
		"webm": {
			Kinds:          avs,
			SubtitleCodecs: map[string]bool{"webvtt": true},
		},
		"mp4": {
			Kinds:          avs,
			SubtitleCodecs: map[string]bool{"mov_text": true, "ttml": true},
		},
		"mov": {
			Kinds:          avs,
			SubtitleCodecs: map[string]bool{"mov_text": true},
		},
		"m2ts": {
			Kinds: av,
		},
	}
}
