package encoder

import "strings"

// Codec describes one encoder ffmpeg may expose, together with the knobs the
// argument builder can set for it. The preset/tune/profile lists follow what
// each encoder actually advertises; ffmpeg -h encoder=<name> is incomplete
// for libx265, so the registry is maintained by hand.
type Codec struct {
	Name             string
	Family           string
	Hardware         bool
	Presets          []string
	PreferredPreset  string
	Tunes            []string
	PreferredTune    string
	Profiles         []string
	PreferredProfile string
}

func (c Codec) String() string { return c.Name }

// HasPreset reports whether the encoder advertises the preset.
func (c Codec) HasPreset(preset string) bool { return contains(c.Presets, preset) }

// HasTune reports whether the encoder advertises the tune.
func (c Codec) HasTune(tune string) bool { return contains(c.Tunes, tune) }

// HasProfile reports whether the encoder advertises the profile.
func (c Codec) HasProfile(profile string) bool { return contains(c.Profiles, profile) }

func contains(values []string, value string) bool {
	for _, v := range values {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

var libx265 = Codec{
	Name:   "libx265",
	Family: "hevc",
	Presets: []string{
		"ultrafast", "superfast", "veryfast", "faster", "fast",
		"medium", "slow", "slower", "veryslow", "placebo",
	},
	PreferredPreset:  "slow",
	Tunes:            []string{"psnr", "ssim", "grain", "fastdecode", "zerolatency", "animation"},
	PreferredTune:    "grain",
	Profiles:         []string{"main", "main444-8", "main10", "main422-10", "main444-10", "main12", "main422-12", "main444-12"},
	PreferredProfile: "main",
}

var hevcNvenc = Codec{
	Name:     "hevc_nvenc",
	Family:   "hevc",
	Hardware: true,
	Presets: []string{
		"default", "slow", "medium", "fast", "hp", "hq", "bd",
		"ll", "llhq", "llhp", "lossless", "losslesshp",
		"p1", "p2", "p3", "p4", "p5", "p6", "p7",
	},
	PreferredPreset:  "p6",
	Tunes:            []string{"hq", "ll", "ull", "lossless"},
	PreferredTune:    "hq",
	Profiles:         []string{"main", "main10", "rext"},
	PreferredProfile: "main",
}

var hevcQSV = Codec{
	Name:             "hevc_qsv",
	Family:           "hevc",
	Hardware:         true,
	Presets:          []string{"veryfast", "faster", "fast", "medium", "slow", "slower", "veryslow"},
	PreferredPreset:  "slower",
	Tunes:            nil,
	PreferredTune:    "",
	Profiles:         []string{"main", "main10", "mainsp", "rext", "scc"},
	PreferredProfile: "main",
}

var hevcVAAPI = Codec{
	Name:             "hevc_vaapi",
	Family:           "hevc",
	Hardware:         true,
	Presets:          nil,
	PreferredPreset:  "",
	Tunes:            nil,
	PreferredTune:    "",
	Profiles:         []string{"main", "main10", "rext"},
	PreferredProfile: "main",
}

var hevcVideotoolbox = Codec{
	Name:             "hevc_videotoolbox",
	Family:           "hevc",
	Hardware:         true,
	Presets:          []string{"default", "slow", "medium", "fast", "faster", "fastest"},
	PreferredPreset:  "medium",
	Tunes:            []string{"default"},
	PreferredTune:    "default",
	Profiles:         []string{"main", "main10"},
	PreferredProfile: "main",
}

// Registry lists every encoder trimmux knows how to drive, in the order they
// are considered when no explicit preference matches.
var Registry = []Codec{libx265, hevcNvenc, hevcQSV, hevcVAAPI, hevcVideotoolbox}

// Lookup finds a registry codec by encoder name.
func Lookup(name string) (Codec, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, codec := range Registry {
		if codec.Name == name {
			return codec, true
		}
	}
	return Codec{}, false
}
