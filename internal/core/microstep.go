package core

import "github.com/comalice/statechartx/internal/primitives"

// MicroStep records the exit/transition-action/entry decomposition of firing
// a single Transition. Transition is nil only for the initial micro-step
// that enters the root on the first ExecuteOnce.
type MicroStep struct {
	Transition *primitives.Transition
	Exited     []string
	Entered    []string
}

// MacroStep is the set of micro-steps produced by one ExecuteOnce: consuming
// a single event, including any trailing stabilization micro-steps. Event is
// nil for the initial step and for a step made only of eventless
// transitions.
type MacroStep struct {
	Event      *primitives.Event
	MicroSteps []MicroStep
}

// EnteredStates returns every state entered across the macro-step, in order.
func (m MacroStep) EnteredStates() []string {
	var out []string
	for _, s := range m.MicroSteps {
		out = append(out, s.Entered...)
	}
	return out
}

// ExitedStates returns every state exited across the macro-step, in order.
func (m MacroStep) ExitedStates() []string {
	var out []string
	for _, s := range m.MicroSteps {
		out = append(out, s.Exited...)
	}
	return out
}
