package classify

import (
	"encoding/json"
	"regexp"
	"strings"

	"arenadb/pkg/labels"
)

var (
	fenceRe  = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)```")
	objectRe = regexp.MustCompile(`(?s)\{.*?\}`)
)

// StripCodeFences removes markdown code fences, retaining only the fenced
// content when fences are present, else the whole text.
func StripCodeFences(text string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(text, "$1"))
}

// LastObject returns the last non-greedy {...} substring of text, or "" when
// none is present. Models often think out loud before emitting the final
// structured answer, so the last match is authoritative.
func LastObject(text string) string {
	matches := objectRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}

// ParseLabel pulls a trailing label object out of noisy model output. The
// extraction runs on both the raw text and the fence-stripped text, trying
// raw candidates first so objects that are themselves fenced are not missed.
// Returns nil when no candidate parses and validates; callers treat that as
// a recoverable condition, not an error.
func ParseLabel(rawText string) *labels.Label {
	raw := rawText
	var candidates []string

	if c := LastObject(raw); c != "" {
		candidates = append(candidates, c)
	}
	if stripped := StripCodeFences(raw); stripped != raw {
		if c := LastObject(stripped); c != "" {
			candidates = append(candidates, c)
		}
	}

	for _, cand := range candidates {
		var obj map[string]any
		if err := json.Unmarshal([]byte(StripCodeFences(cand)), &obj); err != nil {
			continue
		}
		if l := labels.Validate(obj); l != nil {
			return l
		}
	}
	return nil
}
