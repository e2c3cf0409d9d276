package primitives

import (
	"errors"
	"fmt"
)

// Transition defines an edge from Source to Target, fired when Event matches a
// queued event (or eventless, when Event == "") and Guard, if present, holds.
//
// Internal transitions (Internal set, or Target == "" meaning "stay") do
// not exit or re-enter Source; all other transitions, including self-loops
// where Target explicitly equals Source's own name, are external and run the
// full exit/entry sequence. This mirrors the distinction the spec draws
// between a transition that merely fires an action and one that leaves the
// state's region.
type Transition struct {
	Source string
	Target string // empty for an internal (actionless-region) transition
	Event  string // empty for an eventless transition

	Guard  GuardRef
	Action ActionRef

	// Internal marks this transition as staying within Source: no exit/entry
	// of Source occurs, even if Target == Source.
	Internal bool

	// Priority breaks ties between multiple enabled transitions from the same
	// source state; higher fires first, and every transition whose guard
	// passes within the highest-priority class that has a passing guard is a
	// candidate (not just one), so equal-priority transitions from the same
	// source can still conflict. Transitions attached to a deeper-nested
	// (more specific) source always win over Priority, per the inner-first
	// selection rule; Priority only discriminates within a single source
	// state's own transition list.
	Priority int

	PreconditionList  []Predicate
	PostconditionList []Predicate
	InvariantList     []Predicate
}

// NewTransition creates a Transition from source to target on the named
// event (empty for eventless).
func NewTransition(source, target, event string) *Transition {
	return &Transition{Source: source, Target: target, Event: event}
}

// Preconditions implements Contracted.
func (t *Transition) Preconditions() []Predicate { return t.PreconditionList }

// Postconditions implements Contracted.
func (t *Transition) Postconditions() []Predicate { return t.PostconditionList }

// Invariants implements Contracted.
func (t *Transition) Invariants() []Predicate { return t.InvariantList }

// IsEventless reports whether this transition fires without consuming an
// event, evaluated only once no eventless transition elsewhere has already
// fired in the current micro-step round.
func (t *Transition) IsEventless() bool { return t.Event == "" }

func (t *Transition) validate() error {
	if t.Source == "" {
		return errors.New("transition source is required")
	}
	if t.Internal && t.Target != "" && t.Target != t.Source {
		return fmt.Errorf("internal transition from %q cannot target a different state %q", t.Source, t.Target)
	}
	return nil
}
