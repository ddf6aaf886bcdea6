package validation

import (
	"encoding/json"
	"testing"

	"arenadb/pkg/models"
)

func TestNormalizeMessagesDropsMalformedEntries(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"role":"user","content":"hi"}`),
		json.RawMessage(`{"role":"tool","content":"nope"}`),
		json.RawMessage(`{"role":"assistant","content":42}`),
		json.RawMessage(`{"role":"assistant"}`),
		json.RawMessage(`"just a string"`),
		json.RawMessage(`{"role":"system","content":""}`),
	}
	got := NormalizeMessages(raw)
	want := []models.Message{
		{Role: "user", Content: "hi"},
		{Role: "system", Content: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("message %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}
