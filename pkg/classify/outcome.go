package classify

import "arenadb/pkg/labels"

// Outcome is the result of a model-backed classification attempt. A failed
// or invalid attempt is Unavailable, never an error: classification must not
// be able to surface a failure into the main chat flow.
type Outcome struct {
	label *labels.Label
}

// Available wraps a validated label.
func Available(l *labels.Label) Outcome { return Outcome{label: l} }

// Unavailable marks the classifier as unreachable or its output unusable.
func Unavailable() Outcome { return Outcome{} }

// OK reports whether a validated label is present.
func (o Outcome) OK() bool { return o.label != nil }

// OrHeuristic resolves the outcome, falling back to the deterministic keyword
// classifier over the given utterance when no validated label is available.
func (o Outcome) OrHeuristic(text string) labels.Label {
	if o.label != nil {
		return *o.label
	}
	return Heuristic(text)
}
