package labels

import "testing"

func TestValidateAcceptsWellFormedLabel(t *testing.T) {
	l := Validate(map[string]any{
		"emotion":      "  Anxiety ",
		"intensity":    "LOW",
		"support_type": "both",
		"comment":      " 用户明显在担心 ",
	})
	if l == nil {
		t.Fatalf("expected label, got nil")
	}
	if l.Emotion != EmotionAnxiety || l.Intensity != IntensityLow || l.SupportType != SupportBoth {
		t.Fatalf("unexpected label: %+v", l)
	}
	if l.Comment != "用户明显在担心" {
		t.Fatalf("comment not trimmed: %q", l.Comment)
	}
}

func TestValidateRejectsOutOfEnum(t *testing.T) {
	cases := []map[string]any{
		{"emotion": "joy", "intensity": "low", "support_type": "both"},
		{"emotion": "happy", "intensity": "extreme", "support_type": "both"},
		{"emotion": "happy", "intensity": "low", "support_type": "mixed"},
		{"intensity": "low", "support_type": "both"},
		nil,
	}
	for i, c := range cases {
		if got := Validate(c); got != nil {
			t.Fatalf("case %d: expected nil, got %+v", i, got)
		}
	}
}

func TestValidateCoercesNeutralToMedium(t *testing.T) {
	for _, in := range []string{"low", "medium", "high"} {
		l := Validate(map[string]any{
			"emotion":      "neutral",
			"intensity":    in,
			"support_type": "emotional",
		})
		if l == nil {
			t.Fatalf("intensity %q: expected label", in)
		}
		if l.Intensity != IntensityMedium {
			t.Fatalf("intensity %q: neutral must coerce to medium, got %q", in, l.Intensity)
		}
	}
}
