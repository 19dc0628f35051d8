package selection

import (
	"strings"

	"trimmux/internal/media/probe"
)

// Handling states how a stream travels into the output file.
type Handling string

const (
	HandleCopy     Handling = "copy"
	HandleReencode Handling = "reencode"
	HandleDrop     Handling = "drop"
)

// Policy supplies the knobs resolution needs beyond the rule list. Fallback
// and Unknown are required inputs; there is no hard-coded default for either.
type Policy struct {
	// Fallback applies to streams no rule matches.
	Fallback Action
	// Unknown applies to streams of unknown kind that no rule matches,
	// overriding Fallback for those streams.
	Unknown Action
	// VideoCodecFamily is the target video family (e.g. "hevc"). Kept video
	// streams already in this family are copied instead of re-encoded.
	VideoCodecFamily string
	// Handling per kind for kept streams. Zero values mean the conventional
	// defaults: video reencode, everything else copy.
	Video    Handling
	Audio    Handling
	Subtitle Handling
	Data     Handling
}

// Entry pairs a stream with its resolved handling.
type Entry struct {
	Stream   probe.Stream
	Handling Handling
	// MatchedRule is the position of the deciding rule, or -1 when the
	// fallback policy applied.
	MatchedRule int
}

// Resolution is the ordered outcome of applying rules to a stream list.
type Resolution struct {
	Entries []Entry
}

// Kept returns entries that survive into the output, in original index order.
func (r Resolution) Kept() []Entry {
	var kept []Entry
	for _, entry := range r.Entries {
		if entry.Handling != HandleDrop {
			kept = append(kept, entry)
		}
	}
	return kept
}

// Dropped returns entries excluded from the output.
func (r Resolution) Dropped() []Entry {
	var dropped []Entry
	for _, entry := range r.Entries {
		if entry.Handling == HandleDrop {
			dropped = append(dropped, entry)
		}
	}
	return dropped
}

// HasKind reports whether any kept stream is of the given kind.
func (r Resolution) HasKind(kind probe.Kind) bool {
	for _, entry := range r.Entries {
		if entry.Handling != HandleDrop && entry.Stream.Kind == kind {
			return true
		}
	}
	return false
}

// Resolve applies the ordered rule list to every stream and classifies kept
// streams as copy or re-encode. Evaluation is strictly first-match-wins:
// conflicting rules are settled by declaration order, never by specificity,
// and no ambiguity error exists. The function is pure; it performs no I/O
// and never fails, degenerate inputs just yield an empty resolution.
func Resolve(streams []probe.Stream, rules []Rule, policy Policy) Resolution {
	resolution := Resolution{}
	for _, stream := range streams {
		action, matched := decide(stream, rules, policy)
		entry := Entry{Stream: stream, MatchedRule: matched, Handling: HandleDrop}
		if action == ActionKeep {
			entry.Handling = classify(stream, policy)
		}
		resolution.Entries = append(resolution.Entries, entry)
	}
	return resolution
}

func decide(stream probe.Stream, rules []Rule, policy Policy) (Action, int) {
	for i, rule := range rules {
		if rule.Matches(stream) {
			return rule.Action, i
		}
	}
	if stream.Kind == probe.KindUnknown {
		return policy.Unknown, -1
	}
	return policy.Fallback, -1
}

func classify(stream probe.Stream, policy Policy) Handling {
	switch stream.Kind {
	case probe.KindVideo:
		handling := policy.Video
		if handling == "" {
			handling = HandleReencode
		}
		if handling == HandleReencode && codecInFamily(stream.Codec, policy.VideoCodecFamily) {
			return HandleCopy
		}
		return handling
	case probe.KindAudio:
		return defaultCopy(policy.Audio)
	case probe.KindSubtitle:
		return defaultCopy(policy.Subtitle)
	default:
		return defaultCopy(policy.Data)
	}
}

func defaultCopy(handling Handling) Handling {
	if handling == "" {
		return HandleCopy
	}
	return handling
}

// codecFamilies maps a target family name to the probe codec names that
// already satisfy it.
var codecFamilies = map[string][]string{
	"hevc": {"hevc", "h265", "x265"},
	"avc":  {"h264", "avc", "x264"},
	"av1":  {"av1"},
	"vp9":  {"vp9"},
}

func codecInFamily(codec, family string) bool {
	codec = strings.ToLower(strings.TrimSpace(codec))
	family = strings.ToLower(strings.TrimSpace(family))
	if codec == "" || family == "" {
		return false
	}
	members, ok := codecFamilies[family]
	if !ok {
		return codec == family
	}
	for _, member := range members {
		if strings.Contains(codec, member) {
			return true
		}
	}
	return false
}
