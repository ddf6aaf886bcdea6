package templates

import "testing"

func TestSelectExactMatch(t *testing.T) {
	tpl := Select("anxiety", "low")
	if tpl == nil {
		t.Fatalf("expected template")
	}
	if tpl.TemplateID != "anxiety_low_v1" {
		t.Fatalf("unexpected template: %s", tpl.TemplateID)
	}
}

func TestSelectEmotionOnlyFallback(t *testing.T) {
	// No happy/high entry exists; the first happy entry must win over the
	// generic fallback.
	tpl := Select("happy", "high")
	if tpl == nil {
		t.Fatalf("expected emotion-only match, got nil")
	}
	if tpl.Emotion != "happy" {
		t.Fatalf("unexpected emotion: %s", tpl.Emotion)
	}
}

func TestSelectNoMatch(t *testing.T) {
	if tpl := Select("boredom", "low"); tpl != nil {
		t.Fatalf("expected nil for unknown emotion, got %+v", tpl)
	}
}

func TestCatalogCopy(t *testing.T) {
	c := Catalog()
	if len(c) == 0 {
		t.Fatalf("catalog must not be empty")
	}
	c[0].TemplateID = "mutated"
	if Catalog()[0].TemplateID == "mutated" {
		t.Fatalf("Catalog must return a copy")
	}
}
