// Package diagnostics provides a structured logging sink backed by
// github.com/rs/zerolog. The interpreter core and the runtime driver do not
// log through it; hosts such as cmd/demo wire it to interpreter listeners.
package diagnostics

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a structured logging surface for tracing step lifecycle,
// consumed events, and contract or property failures. A zero Logger discards everything, so callers that
// don't care about tracing can leave a field of this type unset.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger writing JSON lines to w at or above level.
func New(w io.Writer, level zerolog.Level) Logger {
	return Logger{z: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// NewConsole builds a Logger writing human-readable lines to os.Stderr, for
// interactive use (cmd/demo and friends).
func NewConsole(level zerolog.Level) Logger {
	return New(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

// Nop returns a Logger that discards every event.
func Nop() Logger { return Logger{z: zerolog.Nop()} }

// StepStarted traces the beginning of an ExecuteOnce macro-step.
func (l Logger) StepStarted(interpreterID, eventName string) {
	l.z.Debug().Str("interpreter_id", interpreterID).Str("event", eventName).Msg("step_started")
}

// EventConsumed traces the event a macro-step popped off the queue.
func (l Logger) EventConsumed(interpreterID, eventName string) {
	l.z.Info().Str("interpreter_id", interpreterID).Str("event", eventName).Msg("event_consumed")
}

// TransitionProcessed traces a single applied Transition within a macro-step.
func (l Logger) TransitionProcessed(interpreterID, source, target, event string) {
	l.z.Info().
		Str("interpreter_id", interpreterID).
		Str("source", source).
		Str("target", target).
		Str("event", event).
		Msg("transition_processed")
}

// ContractViolation traces a failed Precondition/Postcondition/Invariant.
func (l Logger) ContractViolation(interpreterID, kind, source, description string) {
	l.z.Error().
		Str("interpreter_id", interpreterID).
		Str("kind", kind).
		Str("source", source).
		Str("description", description).
		Msg("contract_violation")
}

// PropertyViolation traces a property monitor reaching its terminal state.
func (l Logger) PropertyViolation(interpreterID, monitor string) {
	l.z.Error().
		Str("interpreter_id", interpreterID).
		Str("monitor", monitor).
		Msg("property_violation")
}

// Errorf traces a generic runtime error, for cases §10.2's named events
// don't cover (e.g. actor-level backpressure in the runtime package).
func (l Logger) Errorf(interpreterID, msg string, err error) {
	l.z.Error().Str("interpreter_id", interpreterID).Err(err).Msg(msg)
}
