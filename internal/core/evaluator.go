package core

import "github.com/comalice/statechartx/internal/primitives"

// Evaluator dispatches the GuardRef/ActionRef/Predicate values the model
// layer (internal/primitives) treats as opaque `any`. Mirrors the teacher's
// ActionRunner/GuardEvaluator split, collapsed into one interface since the
// interpreter always needs both together; internal/extensibility's
// ClosureEvaluator is the default implementation, dispatching plain Go
// closures instead of an embedded scripting language per the spec's
// resolution of that design choice.
type Evaluator interface {
	// EvalGuard reports whether guard holds for event against ctx. A nil
	// guard always holds.
	EvalGuard(ctx *primitives.Context, guard primitives.GuardRef, event primitives.Event) bool

	// RunAction executes action for event against ctx, returning any events
	// it raises internally (to be queued as Internal events at the end of
	// the current micro-step). A nil action is a no-op.
	RunAction(ctx *primitives.Context, action primitives.ActionRef, event primitives.Event) ([]primitives.Event, error)

	// EvalPredicate reports whether a contract Predicate holds. event is nil
	// for state invariants and eventless transitions.
	EvalPredicate(ctx *primitives.Context, pred primitives.Predicate, event *primitives.Event) bool
}
