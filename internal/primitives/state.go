// Package primitives defines the foundational data structures for the statechart engine.
// All implementations use only the Go standard library (stdlib-only): this keeps the
// data model free of third-party dependencies, while adapters (internal/extensibility,
// internal/production, builder) may depend on whatever the rest of the module needs.
//
// State represents a node in the statechart, supporting the six kinds required by
// the interpreter: Atomic, Compound, Orthogonal, Final, ShallowHistory and DeepHistory.
package primitives

import (
	"errors"
	"fmt"
)

// Kind defines the possible kinds of states in the statechart.
type Kind string

const (
	AtomicKind         Kind = "atomic"
	CompoundKind       Kind = "compound"
	OrthogonalKind     Kind = "orthogonal"
	FinalKind          Kind = "final"
	ShallowHistoryKind Kind = "shallowHistory"
	DeepHistoryKind    Kind = "deepHistory"
)

// ActionRef references an action: a func(*Context, Event) []Event, or a string ID
// reserved for a future registry-backed evaluator. GuardRef is the guard analogue.
type ActionRef any
type GuardRef any

// State defines a state, supporting hierarchical nesting via Children.
type State struct {
	Name    string
	Kind    Kind
	Initial string // direct child entered by default; only meaningful for Compound

	Children []*State // ordered; order matters for Orthogonal entry and tie-break

	OnEntry []ActionRef
	OnExit  []ActionRef

	PreconditionList  []Predicate
	PostconditionList []Predicate
	InvariantList     []Predicate

	// Transitions whose Source is this state's Name. Populated directly or via
	// the builder package; order only matters as a last-resort, deterministic
	// tie-break alongside Priority.
	Transitions []*Transition

	parent *State // resolved by Statechart construction
}

// NewState creates a State with the given name and kind.
func NewState(name string, kind Kind) *State {
	return &State{Name: name, Kind: kind}
}

// Preconditions implements Contracted.
func (s *State) Preconditions() []Predicate { return s.PreconditionList }

// Postconditions implements Contracted.
func (s *State) Postconditions() []Predicate { return s.PostconditionList }

// Invariants implements Contracted.
func (s *State) Invariants() []Predicate { return s.InvariantList }

// Parent returns the resolved parent state, or nil for the root.
func (s *State) Parent() *State { return s.parent }

// validate performs structural validation local to this state (kind-specific
// shape rules); cross-state rules (initial exists among children, duplicate
// names) are checked by Statechart.validate.
func (s *State) validate() error {
	if s.Name == "" {
		return errors.New("state name is required")
	}

	switch s.Kind {
	case AtomicKind, FinalKind:
		if len(s.Children) > 0 {
			return fmt.Errorf("%s state %q cannot have children", s.Kind, s.Name)
		}
		if s.Initial != "" {
			return fmt.Errorf("%s state %q cannot have an initial child", s.Kind, s.Name)
		}
	case CompoundKind:
		if len(s.Children) == 0 {
			return fmt.Errorf("compound state %q requires children", s.Name)
		}
		if s.Initial == "" {
			return fmt.Errorf("compound state %q requires an initial child", s.Name)
		}
		found := false
		for _, c := range s.Children {
			if c.Name == s.Initial {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("initial child %q not found among children of %q", s.Initial, s.Name)
		}
	case OrthogonalKind:
		if len(s.Children) == 0 {
			return fmt.Errorf("orthogonal state %q requires children", s.Name)
		}
		if s.Initial != "" {
			return fmt.Errorf("orthogonal state %q cannot have an initial child (all children are active)", s.Name)
		}
	case ShallowHistoryKind, DeepHistoryKind:
		if len(s.Children) > 0 {
			return fmt.Errorf("history state %q cannot have children", s.Name)
		}
	default:
		return fmt.Errorf("unknown state kind %q for state %q", s.Kind, s.Name)
	}

	for _, t := range s.Transitions {
		if t.Source != s.Name {
			return fmt.Errorf("transition attached to %q has mismatched source %q", s.Name, t.Source)
		}
		if err := t.validate(); err != nil {
			return fmt.Errorf("state %q: %w", s.Name, err)
		}
	}

	for _, c := range s.Children {
		if err := c.validate(); err != nil {
			return err
		}
	}

	return nil
}
