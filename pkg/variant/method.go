package variant

import (
	"context"
	"errors"

	"arenadb/pkg/models"
	"arenadb/pkg/provider"
)

// ErrUnknownMethod marks a method-mode spec naming an unregistered pipeline.
// It fails the whole turn for that side.
var ErrUnknownMethod = errors.New("unknown variant method")

// Context carries everything a method may need to build its prompt for one
// side of one turn.
type Context struct {
	// Messages is the merged conversation history for this side, already
	// including the new user utterance when one was supplied.
	Messages []models.Message

	// Model is the base model shared by both sides.
	Model models.ModelRef

	// Client performs server-side classifier calls. A nil client (or one
	// without an origin) disables model-backed classification; methods fall
	// back to their deterministic paths.
	Client *provider.Client
}

// Result is a resolved system prompt plus internal audit metadata. The
// metadata is exported with the thread record and never shown to end users.
type Result struct {
	SystemPrompt string
	Internal     map[string]any
}

// Method builds the method-specific system prompt for a turn. Build must
// never fail because of classifier trouble; only genuine misconfiguration
// may return an error.
type Method interface {
	ID() string
	DisplayName() string
	Build(ctx context.Context, mctx Context) (Result, error)
}

var methods = map[string]Method{}

func register(m Method) { methods[m.ID()] = m }

// Lookup finds a registered method by id.
func Lookup(id string) (Method, bool) {
	m, ok := methods[id]
	return m, ok
}

// MethodIDs lists the registered method ids.
func MethodIDs() []string {
	out := make([]string, 0, len(methods))
	for id := range methods {
		out = append(out, id)
	}
	return out
}
