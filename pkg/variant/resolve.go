package variant

import (
	"context"
	"fmt"
	"strings"
)

// Resolve produces the system-prompt text to inject for one side of one
// turn. Baseline resolves without any I/O; only method-mode specs may reach
// the network (for their classifier call), and even those swallow classifier
// failures internally.
func Resolve(ctx context.Context, spec Spec, mctx Context) (Result, error) {
	switch spec.Mode {
	case ModeBaseline:
		return Result{}, nil
	case ModeSystem:
		return Result{SystemPrompt: strings.TrimSpace(spec.SystemPrompt)}, nil
	case ModeMethod:
		m, ok := Lookup(spec.MethodID)
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownMethod, spec.MethodID)
		}
		res, err := m.Build(ctx, mctx)
		if err != nil {
			return Result{}, fmt.Errorf("method %s: %w", spec.MethodID, err)
		}
		res.SystemPrompt = strings.TrimSpace(res.SystemPrompt)
		return res, nil
	default:
		return Result{}, fmt.Errorf("unknown variant mode %q", spec.Mode)
	}
}
