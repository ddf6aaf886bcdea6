package arena

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"arenadb/pkg/models"
	"arenadb/pkg/provider"
	"arenadb/pkg/validation"
	"arenadb/pkg/variant"
)

// ErrClientInput marks turn requests rejected before any network call:
// missing model selection, malformed specs, unknown variant methods.
var ErrClientInput = errors.New("invalid turn request")

// TurnRequest is the orchestrator-boundary request. Message lists arrive as
// raw JSON so malformed entries can be dropped instead of failing the
// decode.
type TurnRequest struct {
	MessagesA []json.RawMessage `json:"messagesA"`
	MessagesB []json.RawMessage `json:"messagesB"`

	// UserInput, when present, is appended as a user message to both sides.
	UserInput string `json:"userInput,omitempty"`

	A variant.Spec `json:"a"`
	B variant.Spec `json:"b"`

	Model models.ModelRef `json:"model"`
}

// TurnResult pairs the two responses of a successful turn. There is no
// partial result: if either side fails the whole turn fails.
type TurnResult struct {
	TextA string
	TextB string

	// Per-side audit metadata from variant resolution, for the caller to
	// attach to the thread record. Never user-visible.
	InternalA map[string]any
	InternalB map[string]any
}

// resolveFn matches variant.Resolve; injectable for tests.
type resolveFn func(context.Context, variant.Spec, variant.Context) (variant.Result, error)

// Orchestrator runs one comparison turn: resolve both variants' system
// prompts concurrently, then issue both completion calls concurrently.
type Orchestrator struct {
	resolve resolveFn
}

// New returns an orchestrator using the registered variant methods.
func New() *Orchestrator {
	return &Orchestrator{resolve: variant.Resolve}
}

// Turn executes one full A/B turn against the given provider client.
func (o *Orchestrator) Turn(ctx context.Context, client *provider.Client, req TurnRequest) (TurnResult, error) {
	if req.Model.Provider == "" || req.Model.Model == "" {
		return TurnResult{}, fmt.Errorf("%w: missing model.provider or model.model", ErrClientInput)
	}
	if err := req.A.Validate(); err != nil {
		return TurnResult{}, fmt.Errorf("%w: variant a: %v", ErrClientInput, err)
	}
	if err := req.B.Validate(); err != nil {
		return TurnResult{}, fmt.Errorf("%w: variant b: %v", ErrClientInput, err)
	}

	msgsA := validation.NormalizeMessages(req.MessagesA)
	msgsB := validation.NormalizeMessages(req.MessagesB)

	// The same utterance is appended independently: the two sides may have
	// diverged histories.
	if input := strings.TrimSpace(req.UserInput); input != "" {
		msgsA = append(msgsA, models.Message{Role: models.RoleUser, Content: input})
		msgsB = append(msgsB, models.Message{Role: models.RoleUser, Content: input})
	}

	ctxA := variant.Context{Messages: msgsA, Model: req.Model, Client: client}
	ctxB := variant.Context{Messages: msgsB, Model: req.Model, Client: client}

	// Resolve both sides concurrently; each may need a classifier
	// round-trip and neither may wait on the other.
	var resA, resB variant.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resA, err = o.resolve(gctx, req.A, ctxA)
		return err
	})
	g.Go(func() error {
		var err error
		resB, err = o.resolve(gctx, req.B, ctxB)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, variant.ErrUnknownMethod) {
			return TurnResult{}, fmt.Errorf("%w: %v", ErrClientInput, err)
		}
		return TurnResult{}, err
	}

	finalA := injectSystemPrompt(msgsA, resA.SystemPrompt)
	finalB := injectSystemPrompt(msgsB, resB.SystemPrompt)

	var textA, textB string
	g2, g2ctx := errgroup.WithContext(ctx)
	g2.Go(func() error {
		var err error
		textA, err = client.Complete(g2ctx, req.Model.Provider, provider.ChatRequest{
			Model: req.Model.Model, Messages: finalA, Stream: false,
		})
		return err
	})
	g2.Go(func() error {
		var err error
		textB, err = client.Complete(g2ctx, req.Model.Provider, provider.ChatRequest{
			Model: req.Model.Model, Messages: finalB, Stream: false,
		})
		return err
	})
	if err := g2.Wait(); err != nil {
		return TurnResult{}, err
	}

	return TurnResult{
		TextA:     textA,
		TextB:     textB,
		InternalA: resA.Internal,
		InternalB: resB.Internal,
	}, nil
}

// injectSystemPrompt places the resolved prompt at the head of the message
// sequence: an existing leading system message is replaced, otherwise a new
// one is inserted. An empty prompt leaves the history untouched.
func injectSystemPrompt(base []models.Message, systemPrompt string) []models.Message {
	sp := strings.TrimSpace(systemPrompt)
	if sp == "" {
		return base
	}
	if len(base) > 0 && base[0].Role == models.RoleSystem {
		out := make([]models.Message, len(base))
		copy(out, base)
		out[0] = models.Message{Role: models.RoleSystem, Content: sp}
		return out
	}
	out := make([]models.Message, 0, len(base)+1)
	out = append(out, models.Message{Role: models.RoleSystem, Content: sp})
	out = append(out, base...)
	return out
}
