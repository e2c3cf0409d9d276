package core

import "github.com/comalice/statechartx/internal/primitives"

// Option configures an Interpreter at construction, mirroring the teacher's
// functional-options pattern for Machine.
type Option func(*Interpreter)

// WithEvaluator overrides the default evaluator (built-in closure dispatch,
// the same dispatch as internal/extensibility's ClosureEvaluator) used to
// dispatch guards, actions and predicates.
func WithEvaluator(e Evaluator) Option {
	return func(in *Interpreter) { in.eval = e }
}

// WithClock overrides the default SystemClock, e.g. with a SimulatedClock
// for deterministic tests.
func WithClock(c Clock) Option {
	return func(in *Interpreter) { in.clock = c }
}

// WithIgnoreContract disables precondition/postcondition/invariant
// evaluation entirely, for hosts that want contract predicates present in
// the model (e.g. for documentation or external static analysis) without
// paying their runtime cost.
func WithIgnoreContract() Option {
	return func(in *Interpreter) { in.ignoreContract = true }
}

// WithContext seeds the interpreter's extended state instead of starting
// from an empty Context.
func WithContext(ctx *primitives.Context) Option {
	return func(in *Interpreter) { in.ctx = ctx }
}

// WithListener registers fn to be called with every event the interpreter
// raises internally and every event it consumes, in consumption order.
func WithListener(fn Listener) Option {
	return func(in *Interpreter) { in.listeners = append(in.listeners, fn) }
}

// WithQueueCapacityHint preallocates the event queue's backing slice to n,
// the Go equivalent of internal/config.EngineConfig.QueueCapacityHint.
func WithQueueCapacityHint(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.queue = NewEventQueueWithCapacity(n)
		}
	}
}
