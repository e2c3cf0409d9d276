package core

import "github.com/comalice/statechartx/internal/primitives"

// stabilize repeatedly selects and fires eventless transitions until none
// remain enabled against the current active configuration — the
// fixed-point that settles a statechart into a stable configuration after
// any external or internal event has been processed, and also on startup
// after entering the initial configuration. Appends one MicroStep per fired
// transition to steps and returns the extended slice.
func (in *Interpreter) stabilize(steps []MicroStep) ([]MicroStep, error) {
	for {
		activeCopy := in.activeSnapshot()
		candidates := selectCandidates(in.chart, activeCopy, true, primitives.Event{}, in.eval, in.ctx)
		if len(candidates) == 0 {
			return steps, nil
		}
		selected, err := resolveConflicts(in.chart, activeCopy, "", candidates)
		if err != nil {
			return steps, err
		}
		for _, t := range selected {
			step, err := in.applyTransition(t, primitives.Event{})
			if err != nil {
				return steps, err
			}
			steps = append(steps, step)
		}
	}
}

// activeSnapshot returns a copy of the current active configuration set, so
// selection can iterate it without aliasing the map applyTransition mutates.
func (in *Interpreter) activeSnapshot() map[string]struct{} {
	cp := make(map[string]struct{}, len(in.active))
	for k := range in.active {
		cp[k] = struct{}{}
	}
	return cp
}
