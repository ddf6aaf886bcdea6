package models

// Roles accepted in a conversation history. Anything else is dropped during
// normalization rather than rejected.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry of a conversation history for one side.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ValidRole reports whether r is one of the accepted chat roles.
func ValidRole(r string) bool {
	return r == RoleSystem || r == RoleUser || r == RoleAssistant
}

// ModelRef selects the shared base model for both sides of a turn.
type ModelRef struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}
