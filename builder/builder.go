// Package builder provides a fluent API for constructing a
// *primitives.Statechart, generalizing the teacher's two-kind
// (compound/atomic) MachineBuilder/StateBuilder pair to the full six-kind
// model (Compound, Orthogonal, Final, ShallowHistory, DeepHistory, Atomic)
// plus design-by-contract predicates and transition priority.
package builder

import (
	"github.com/comalice/statechartx/internal/primitives"
)

// StateBuilder accumulates a single state's shape before Build assembles
// the whole tree into a *primitives.State/*primitives.Statechart pair.
type StateBuilder struct {
	name     string
	kind     primitives.Kind
	initial  string
	children []*StateBuilder

	onEntry, onExit []primitives.ActionRef
	pre, post, inv  []primitives.Predicate
	transitions     []transitionSpec
}

type transitionSpec struct {
	event    string
	target   string
	internal bool
	guard    primitives.GuardRef
	action   primitives.ActionRef
	priority int
}

// Atomic starts a leaf state with no children.
func Atomic(name string) *StateBuilder {
	return &StateBuilder{name: name, kind: primitives.AtomicKind}
}

// Final starts a Final (terminal) state.
func Final(name string) *StateBuilder {
	return &StateBuilder{name: name, kind: primitives.FinalKind}
}

// Compound starts a state that has exactly one active child at a time,
// defaulting to initial on plain entry.
func Compound(name, initial string, children ...*StateBuilder) *StateBuilder {
	return &StateBuilder{name: name, kind: primitives.CompoundKind, initial: initial, children: children}
}

// Orthogonal starts a state whose children are all active simultaneously.
func Orthogonal(name string, children ...*StateBuilder) *StateBuilder {
	return &StateBuilder{name: name, kind: primitives.OrthogonalKind, children: children}
}

// ShallowHistory starts a shallow-history pseudo-state: on entry, resolves
// to the last active direct child of its parent, or the parent's Initial if
// none was ever recorded.
func ShallowHistory(name string) *StateBuilder {
	return &StateBuilder{name: name, kind: primitives.ShallowHistoryKind}
}

// DeepHistory starts a deep-history pseudo-state: on entry, resolves to the
// full set of active descendants last recorded under its parent.
func DeepHistory(name string) *StateBuilder {
	return &StateBuilder{name: name, kind: primitives.DeepHistoryKind}
}

// Children appends additional child StateBuilders, for composing a
// Compound/Orthogonal state incrementally instead of passing every child to
// Compound/Orthogonal up front.
func (sb *StateBuilder) Children(children ...*StateBuilder) *StateBuilder {
	sb.children = append(sb.children, children...)
	return sb
}

// OnEntry appends an action run whenever this state is entered.
func (sb *StateBuilder) OnEntry(action primitives.ActionRef) *StateBuilder {
	sb.onEntry = append(sb.onEntry, action)
	return sb
}

// OnExit appends an action run whenever this state is exited.
func (sb *StateBuilder) OnExit(action primitives.ActionRef) *StateBuilder {
	sb.onExit = append(sb.onExit, action)
	return sb
}

// Precondition attaches a contract predicate to this state. The state's
// PreconditionList is stored on the built chart; the interpreter does not
// evaluate state preconditions, only transition preconditions.
func (sb *StateBuilder) Precondition(description string, check func(*primitives.Context, *primitives.Event) bool) *StateBuilder {
	sb.pre = append(sb.pre, primitives.Predicate{Description: description, Check: check})
	return sb
}

// Postcondition attaches a contract predicate to this state. The state's
// PostconditionList is stored on the built chart; the interpreter does not
// evaluate state postconditions, only transition postconditions.
func (sb *StateBuilder) Postcondition(description string, check func(*primitives.Context, *primitives.Event) bool) *StateBuilder {
	sb.post = append(sb.post, primitives.Predicate{Description: description, Check: check})
	return sb
}

// Invariant attaches a contract predicate checked after a transition enters
// this state (or a descendant). The initial entry on the first ExecuteOnce
// does not check invariants.
func (sb *StateBuilder) Invariant(description string, check func(*primitives.Context, *primitives.Event) bool) *StateBuilder {
	sb.inv = append(sb.inv, primitives.Predicate{Description: description, Check: check})
	return sb
}

// TransitionOption configures an optional field of a transition added via
// On/OnEventless/OnInternal.
type TransitionOption func(*transitionSpec)

// WithGuard attaches guard to the transition.
func WithGuard(guard primitives.GuardRef) TransitionOption {
	return func(t *transitionSpec) { t.guard = guard }
}

// WithAction attaches action to the transition.
func WithAction(action primitives.ActionRef) TransitionOption {
	return func(t *transitionSpec) { t.action = action }
}

// WithPriority sets the transition's selection priority; higher values are
// preferred among multiple enabled candidates from the same source state.
func WithPriority(priority int) TransitionOption {
	return func(t *transitionSpec) { t.priority = priority }
}

// On adds an externally-triggered transition to target on event.
func (sb *StateBuilder) On(event, target string, opts ...TransitionOption) *StateBuilder {
	return sb.addTransition(event, target, false, opts)
}

// OnEventless adds an eventless transition to target, eligible for
// stabilization ahead of any externally-triggered transition.
func (sb *StateBuilder) OnEventless(target string, opts ...TransitionOption) *StateBuilder {
	return sb.addTransition("", target, false, opts)
}

// OnInternal adds an internal transition on event: its action runs but the
// state itself is never exited or re-entered.
func (sb *StateBuilder) OnInternal(event string, opts ...TransitionOption) *StateBuilder {
	return sb.addTransition(event, sb.name, true, opts)
}

func (sb *StateBuilder) addTransition(event, target string, internal bool, opts []TransitionOption) *StateBuilder {
	t := transitionSpec{event: event, target: target, internal: internal}
	for _, opt := range opts {
		opt(&t)
	}
	sb.transitions = append(sb.transitions, t)
	return sb
}

// Build assembles the StateBuilder tree rooted at sb into a
// *primitives.Statechart named id, running the same validation
// primitives.NewStatechart always runs (state shape, duplicate names,
// transition targets).
func (sb *StateBuilder) Build(id string) (*primitives.Statechart, error) {
	root := sb.toState()
	return primitives.NewStatechart(id, root)
}

func (sb *StateBuilder) toState() *primitives.State {
	s := primitives.NewState(sb.name, sb.kind)
	s.Initial = sb.initial
	s.OnEntry = sb.onEntry
	s.OnExit = sb.onExit
	s.PreconditionList = sb.pre
	s.PostconditionList = sb.post
	s.InvariantList = sb.inv

	for _, t := range sb.transitions {
		target := t.target
		if t.internal {
			target = sb.name
		}
		trans := primitives.NewTransition(sb.name, target, t.event)
		trans.Internal = t.internal
		trans.Guard = t.guard
		trans.Action = t.action
		trans.Priority = t.priority
		s.Transitions = append(s.Transitions, trans)
	}

	for _, child := range sb.children {
		s.Children = append(s.Children, child.toState())
	}
	return s
}
