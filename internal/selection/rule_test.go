package selection

import (
	"testing"

	"trimmux/internal/media/probe"
)

func TestLanguagesEqual(t *testing.T) {
	cases := []struct {
		rule, stream string
		want         bool
	}{
		{"eng", "eng", true},
		{"en", "eng", true},
		{"eng", "en-US", true},
		{"jpn", "eng", false},
		{"und", "und", true},
		{"und", "", true},
		{"eng", "", false},
		{"eng", "und", false},
		{"not-a-tag!!", "eng", false},
	}
	for _, tc := range cases {
		if got := languagesEqual(tc.rule, tc.stream); got != tc.want {
			t.Errorf("languagesEqual(%q, %q) = %v, want %v", tc.rule, tc.stream, got, tc.want)
		}
	}
}

func TestRuleValidate(t *testing.T) {
	valid := []Rule{
		{Kind: RuleByIndex, Index: 3, Action: ActionDrop},
		{Kind: RuleByStreamType, StreamType: probe.KindAudio, Action: ActionKeep},
		{Kind: RuleByLanguage, Language: "eng", Action: ActionKeep},
		{Kind: RuleDefaultOnly, Action: ActionKeep},
		{Kind: RuleExcludeAll, Action: ActionDrop},
	}
	for _, rule := range valid {
		if err := rule.Validate(); err != nil {
			t.Errorf("Validate(%v): unexpected error %v", rule, err)
		}
	}

	invalid := []Rule{
		{Kind: RuleByIndex, Index: -1, Action: ActionDrop},
		{Kind: RuleByStreamType, StreamType: "picture", Action: ActionKeep},
		{Kind: RuleByLanguage, Language: "  ", Action: ActionKeep},
		{Kind: "mood", Action: ActionKeep},
		{Kind: RuleExcludeAll, Action: "maybe"},
	}
	for _, rule := range invalid {
		if err := rule.Validate(); err == nil {
			t.Errorf("Validate(%v): expected error", rule)
		}
	}
}

func TestRuleMatchesDisposition(t *testing.T) {
	rule := Rule{Kind: RuleDefaultOnly, Action: ActionKeep}
	if rule.Matches(probe.Stream{Index: 0}) {
		t.Fatal("non-default stream should not match default_only")
	}
	if !rule.Matches(probe.Stream{Index: 0, IsDefault: true}) {
		t.Fatal("default stream should match default_only")
	}
}

func TestRuleString(t *testing.T) {
	rule := Rule{Kind: RuleByLanguage, Language: "jpn", Action: ActionDrop}
	if got := rule.String(); got != "drop language jpn" {
		t.Fatalf("unexpected String: %q", got)
	}
}
