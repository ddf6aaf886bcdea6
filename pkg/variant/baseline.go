package variant

import "context"

// baselineMethod injects nothing; the side runs on the bare base model.
type baselineMethod struct{}

func init() { register(baselineMethod{}) }

func (baselineMethod) ID() string          { return "baseline" }
func (baselineMethod) DisplayName() string { return "Baseline" }

func (baselineMethod) Build(context.Context, Context) (Result, error) {
	return Result{Internal: map[string]any{"methodId": "baseline"}}, nil
}
