package validation

import (
	"encoding/json"

	"arenadb/pkg/models"
)

// NormalizeMessages accepts a raw message list from an untrusted request
// body and keeps only well-formed {role, content} entries with an accepted
// role and a string content. Everything else is dropped silently; this is
// input normalization, not an error path.
func NormalizeMessages(raw []json.RawMessage) []models.Message {
	out := make([]models.Message, 0, len(raw))
	for _, r := range raw {
		var m struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		}
		if err := json.Unmarshal(r, &m); err != nil {
			continue
		}
		if !models.ValidRole(m.Role) || m.Content == nil {
			continue
		}
		out = append(out, models.Message{Role: m.Role, Content: *m.Content})
	}
	return out
}
