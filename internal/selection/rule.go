package selection

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"trimmux/internal/media/probe"
)

// RuleKind enumerates the closed set of selection predicates.
type RuleKind string

const (
	RuleByIndex      RuleKind = "index"
	RuleByStreamType RuleKind = "stream_type"
	RuleByLanguage   RuleKind = "language"
	RuleDefaultOnly  RuleKind = "default_only"
	RuleExcludeAll   RuleKind = "exclude_all"
)

// Action states what happens to a stream a rule matches.
type Action string

const (
	ActionKeep Action = "keep"
	ActionDrop Action = "drop"
)

// Rule is one user-visible selection predicate. Rules are evaluated in
// declared order and the first match decides a stream's fate.
type Rule struct {
	Kind       RuleKind
	Action     Action
	Index      int
	StreamType probe.Kind
	Language   string
}

// Matches reports whether the rule's predicate applies to the stream.
// A byIndex rule pointing outside the file's stream count simply never
// matches; it must not fail the whole resolution.
func (r Rule) Matches(stream probe.Stream) bool {
	switch r.Kind {
	case RuleByIndex:
		return stream.Index == r.Index
	case RuleByStreamType:
		return stream.Kind == r.StreamType
	case RuleByLanguage:
		return languagesEqual(r.Language, stream.Language)
	case RuleDefaultOnly:
		return stream.IsDefault
	case RuleExcludeAll:
		return true
	default:
		return false
	}
}

// Validate rejects malformed rules before resolution runs.
func (r Rule) Validate() error {
	switch r.Action {
	case ActionKeep, ActionDrop:
	default:
		return fmt.Errorf("rule action: unsupported value %q", r.Action)
	}
	switch r.Kind {
	case RuleByIndex:
		if r.Index < 0 {
			return fmt.Errorf("rule index: negative value %d", r.Index)
		}
	case RuleByStreamType:
		switch r.StreamType {
		case probe.KindVideo, probe.KindAudio, probe.KindSubtitle, probe.KindData, probe.KindUnknown:
		default:
			return fmt.Errorf("rule stream type: unsupported value %q", r.StreamType)
		}
	case RuleByLanguage:
		if strings.TrimSpace(r.Language) == "" {
			return fmt.Errorf("rule language: empty tag")
		}
	case RuleDefaultOnly, RuleExcludeAll:
	default:
		return fmt.Errorf("rule kind: unsupported value %q", r.Kind)
	}
	return nil
}

func (r Rule) String() string {
	switch r.Kind {
	case RuleByIndex:
		return fmt.Sprintf("%s index %d", r.Action, r.Index)
	case RuleByStreamType:
		return fmt.Sprintf("%s %s streams", r.Action, r.StreamType)
	case RuleByLanguage:
		return fmt.Sprintf("%s language %s", r.Action, r.Language)
	case RuleDefaultOnly:
		return fmt.Sprintf("%s default streams", r.Action)
	case RuleExcludeAll:
		return fmt.Sprintf("%s all streams", r.Action)
	default:
		return string(r.Kind)
	}
}

// languagesEqual compares two language tags by their base language, so
// "en" and "eng" match. Streams without a tag (or tagged "und") only match
// an explicit und rule.
func languagesEqual(ruleTag, streamTag string) bool {
	ruleTag = strings.ToLower(strings.TrimSpace(ruleTag))
	streamTag = strings.ToLower(strings.TrimSpace(streamTag))
	if streamTag == "" {
		streamTag = "und"
	}
	if ruleTag == streamTag {
		return true
	}
	if ruleTag == "und" || streamTag == "und" {
		return false
	}
	ruleParsed, err := language.Parse(ruleTag)
	if err != nil {
		return false
	}
	streamParsed, err := language.Parse(streamTag)
	if err != nil {
		return false
	}
	ruleBase, _ := ruleParsed.Base()
	streamBase, _ := streamParsed.Base()
	return ruleBase == streamBase
}
