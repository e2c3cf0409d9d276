// Package core implements the synchronous statechart interpreter: event
// selection, transition selection and conflict detection, micro-step
// exit/action/entry decomposition, stabilization and property-monitor
// broadcast. Beyond the standard library the package depends only on
// github.com/google/uuid, for Interpreter instance IDs. Pluggable evaluators
// live in internal/extensibility, grounded on the same dispatch idiom the
// teacher used for its ActionRunner/GuardEvaluator; channel event sources
// live in the runtime package.
package core

import (
	"errors"
	"fmt"

	"github.com/comalice/statechartx/internal/primitives"
)

// Sentinel errors, comparable with errors.Is.
var (
	ErrQueueEmpty           = errors.New("statechartx: event queue is empty")
	ErrFinal                = errors.New("statechartx: interpreter has reached a final configuration")
	ErrNotBound             = errors.New("statechartx: no such bound property monitor")
	ErrReentrant            = errors.New("statechartx: interpreter is not reentrant (ExecuteOnce called while already executing)")
	ErrInvalidInternalEvent = errors.New("statechartx: queue rejects Internal-kind events, raise them via an action instead")
	ErrInvalidDelay         = errors.New("statechartx: queue rejects a Delayed event with a negative Delay")
)

// NonDeterminismError reports two or more transitions selected for firing in
// the same micro-step whose least common ancestor is not an Orthogonal
// state, i.e. they genuinely compete for the same region and Priority did
// not resolve which should fire.
type NonDeterminismError struct {
	Event       string
	Transitions []*primitives.Transition
}

func (e *NonDeterminismError) Error() string {
	return fmt.Sprintf("statechartx: %d non-deterministic transitions enabled for event %q", len(e.Transitions), e.Event)
}

// ConflictingTransitionsError reports two or more transitions whose least
// common ancestor is an Orthogonal state, but at least one of them targets a
// state outside its own region, crossing the parallel-region boundary the
// Orthogonal LCA is supposed to guarantee independence across.
type ConflictingTransitionsError struct {
	Event       string
	Transitions []*primitives.Transition
}

func (e *ConflictingTransitionsError) Error() string {
	return fmt.Sprintf("statechartx: %d transitions cross a parallel-region boundary for event %q", len(e.Transitions), e.Event)
}

// ContractKind identifies which of a Contracted's three predicate lists
// failed.
type ContractKind string

const (
	PreconditionFailure  ContractKind = "precondition"
	PostconditionFailure ContractKind = "postcondition"
	InvariantFailure     ContractKind = "invariant"
)

// ContractViolationError reports a failed Predicate attached to a state or
// transition. Source names the state or "source->target" transition the
// predicate was attached to.
type ContractViolationError struct {
	Kind        ContractKind
	Source      string
	Description string
}

func (e *ContractViolationError) Error() string {
	desc := e.Description
	if desc == "" {
		desc = "(no description)"
	}
	return fmt.Sprintf("statechartx: %s violated on %s: %s", e.Kind, e.Source, desc)
}

// PropertyViolationError reports that a bound property monitor reached a
// final configuration (its Final() reports true: every active leaf is a
// Final state; the configuration is not emptied), or that one of its own
// steps failed (Cause), i.e. the property it encodes was violated
// by the host's event sequence. Configuration carries the host's active
// state names at the moment of violation, since a monitor's own name alone
// does not tell a caller what the host was doing when it failed.
type PropertyViolationError struct {
	Monitor       string
	Configuration []string
	Cause         error
}

func (e *PropertyViolationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("statechartx: property monitor %q violated (host configuration %v): %v", e.Monitor, e.Configuration, e.Cause)
	}
	return fmt.Sprintf("statechartx: property monitor %q violated (host configuration %v)", e.Monitor, e.Configuration)
}

func (e *PropertyViolationError) Unwrap() error { return e.Cause }
