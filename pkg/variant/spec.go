package variant

import (
	"fmt"
	"strings"
)

// Mode discriminates the three ways a side's system prompt is produced.
type Mode string

const (
	// ModeBaseline injects no system prompt.
	ModeBaseline Mode = "baseline"
	// ModeSystem injects a literal system prompt.
	ModeSystem Mode = "system"
	// ModeMethod delegates prompt construction to a named pipeline.
	ModeMethod Mode = "method"
)

// Spec is the tagged variant configuration for one side. Exactly one mode is
// active; SystemPrompt and MethodID are meaningful only for their modes.
type Spec struct {
	Mode         Mode   `json:"mode"`
	SystemPrompt string `json:"systemPrompt,omitempty"`
	MethodID     string `json:"methodId,omitempty"`
}

// Validate rejects unknown modes and method-mode specs without a method id.
func (s Spec) Validate() error {
	switch s.Mode {
	case ModeBaseline, ModeSystem:
		return nil
	case ModeMethod:
		if strings.TrimSpace(s.MethodID) == "" {
			return fmt.Errorf("variant mode %q requires methodId", s.Mode)
		}
		return nil
	default:
		return fmt.Errorf("unknown variant mode %q", s.Mode)
	}
}

// Snapshot returns the opaque form stored on a thread record. Blind tests
// rely on the store holding this verbatim without interpreting it.
func (s Spec) Snapshot() map[string]any {
	out := map[string]any{"mode": string(s.Mode)}
	if s.Mode == ModeSystem {
		out["systemPrompt"] = s.SystemPrompt
	}
	if s.Mode == ModeMethod {
		out["methodId"] = s.MethodID
	}
	return out
}
