package core

import (
	"sort"

	"github.com/comalice/statechartx/internal/primitives"
)

// applyTransition executes a single selected Transition against the current
// active configuration: evaluate preconditions, exit states from the active
// branch down to (not including) the LCA, run the transition's own action,
// enter states from the LCA down to the resolved target leaves, evaluate
// postconditions and state invariants, and record history along the way.
// Returns the MicroStep describing what was exited/entered.
func (in *Interpreter) applyTransition(t *primitives.Transition, event primitives.Event) (MicroStep, error) {
	sc := in.chart

	if !in.ignoreContract {
		for _, p := range t.Preconditions() {
			if !in.eval.EvalPredicate(in.ctx, p, &event) {
				return MicroStep{}, &ContractViolationError{Kind: PreconditionFailure, Source: t.Source + "->" + t.Target, Description: p.Description}
			}
		}
	}

	var boundary string
	var exited []string
	if !t.Internal && t.Target != "" {
		boundary = transitionBoundary(sc, t)
		exited = in.exitUnder(boundary)
	}

	if raised, err := in.eval.RunAction(in.ctx, t.Action, event); err != nil {
		return MicroStep{}, err
	} else {
		in.pending = append(in.pending, raised...)
	}

	var entered []string
	if !t.Internal && t.Target != "" {
		leaves := sc.LeavesOf(t.Target)
		if len(leaves) == 0 {
			leaves = []*primitives.State{sc.MustState(t.Target)}
		}
		for _, leaf := range leaves {
			entered = append(entered, in.enterUpTo(boundary, leaf.Name)...)
		}
	}

	if !in.ignoreContract {
		for _, p := range t.Postconditions() {
			if !in.eval.EvalPredicate(in.ctx, p, &event) {
				return MicroStep{}, &ContractViolationError{Kind: PostconditionFailure, Source: t.Source + "->" + t.Target, Description: p.Description}
			}
		}
		if err := in.checkInvariants(entered); err != nil {
			return MicroStep{}, err
		}
	}

	return MicroStep{Transition: t, Exited: exited, Entered: entered}, nil
}

// exitUnder removes from the active configuration every active state that
// is a strict descendant of boundary, or every active state at all when
// boundary is "" (ordering: deepest first, so OnExit actions run
// child-before-parent), recording history for any History-kind children
// encountered along the way. Returns the exited names in execution order.
func (in *Interpreter) exitUnder(boundary string) []string {
	sc := in.chart

	var toExit []string
	for name := range in.active {
		if boundary == "" || sc.IsAncestor(boundary, name) {
			toExit = append(toExit, name)
		}
	}

	// Pre-pass, over the pristine active snapshot: record history for any
	// History-kind children of states about to be exited. This must happen
	// before any OnExit/deletion below, since those run deepest-first and
	// would otherwise erase a child's active-ness before its own
	// compound/orthogonal parent is checked.
	for _, name := range toExit {
		for _, child := range sc.Children(name) {
			switch child.Kind {
			case primitives.ShallowHistoryKind:
				for _, sibling := range sc.Children(name) {
					if sibling.Name != child.Name && in.isActive(sibling.Name) {
						in.history.RecordShallow(child.Name, sibling.Name)
					}
				}
			case primitives.DeepHistoryKind:
				var descendants []string
				for _, d := range sc.Descendants(name) {
					if in.isActive(d.Name) {
						descendants = append(descendants, d.Name)
					}
				}
				in.history.RecordDeep(child.Name, descendants)
			}
		}
	}

	sort.Slice(toExit, func(i, j int) bool { return sc.Depth(toExit[i]) > sc.Depth(toExit[j]) })

	for _, name := range toExit {
		state := sc.MustState(name)
		for _, a := range state.OnExit {
			if raised, err := in.eval.RunAction(in.ctx, a, primitives.Event{}); err == nil {
				in.pending = append(in.pending, raised...)
			}
		}
		delete(in.active, name)
	}
	return toExit
}

// enterUpTo activates every state from boundary (exclusive) down to leaf
// (inclusive) — or from the root inclusive, when boundary is "" — running
// OnEntry actions parent-before-child. States strictly between boundary and
// leaf are entered "bare" (marked active, OnEntry run) without recursing
// into their own default initial child, since the path itself supplies the
// next state to enter; an Orthogonal ancestor on the path is the one
// exception, since entering one of its regions via the explicit path still
// requires every *other* region to be entered by its own default. The leaf
// itself (and any History pseudo-state encountered) is entered through
// enterStateDefault, expanding history memory or default-initial recursion
// as appropriate.
func (in *Interpreter) enterUpTo(boundary, leaf string) []string {
	sc := in.chart
	chain := sc.AncestorsInclusive(leaf)

	var path []*primitives.State
	for _, s := range chain {
		if boundary != "" && s.Name == boundary {
			break
		}
		path = append(path, s)
	}
	// chain is leaf-first; reverse so entry runs outer-first.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	var entered []string
	for i, s := range path {
		last := i == len(path)-1
		if last || s.Kind == primitives.ShallowHistoryKind || s.Kind == primitives.DeepHistoryKind {
			entered = append(entered, in.enterStateDefault(s)...)
			continue
		}

		in.active[s.Name] = struct{}{}
		entered = append(entered, s.Name)
		in.runEntry(s)

		if s.Kind == primitives.OrthogonalKind {
			next := path[i+1]
			for _, c := range s.Children {
				if c.Name != next.Name {
					entered = append(entered, in.enterStateDefault(c)...)
				}
			}
		}
	}
	return entered
}

// enterStateDefault activates a single state, expanding History
// pseudo-states into their recorded memory (or the region's default
// initial, if none), and Compound/Orthogonal states into their full default
// descendant set, running OnEntry top-down.
func (in *Interpreter) enterStateDefault(s *primitives.State) []string {
	switch s.Kind {
	case primitives.ShallowHistoryKind:
		parent := in.chart.Parent(s.Name)
		if child, ok := in.history.RestoreShallow(s.Name); ok {
			if cs, exists := in.chart.State(child); exists {
				return in.enterStateDefault(cs)
			}
		}
		if parent != nil && parent.Initial != "" {
			if cs, exists := in.chart.State(parent.Initial); exists {
				return in.enterStateDefault(cs)
			}
		}
		return nil
	case primitives.DeepHistoryKind:
		if names, ok := in.history.RestoreDeep(s.Name); ok {
			var entered []string
			byDepth := append([]string{}, names...)
			sort.Slice(byDepth, func(i, j int) bool { return in.chart.Depth(byDepth[i]) < in.chart.Depth(byDepth[j]) })
			for _, n := range byDepth {
				in.active[n] = struct{}{}
				entered = append(entered, n)
				if st, ok := in.chart.State(n); ok {
					in.runEntry(st)
				}
			}
			return entered
		}
		parent := in.chart.Parent(s.Name)
		if parent != nil {
			for _, leaf := range in.chart.LeavesOf(parent.Name) {
				return in.enterUpTo(parent.Name, leaf.Name)
			}
		}
		return nil
	}

	in.active[s.Name] = struct{}{}
	entered := []string{s.Name}
	in.runEntry(s)

	switch s.Kind {
	case primitives.CompoundKind:
		for _, c := range s.Children {
			if c.Name == s.Initial {
				entered = append(entered, in.enterStateDefault(c)...)
				break
			}
		}
	case primitives.OrthogonalKind:
		for _, c := range s.Children {
			entered = append(entered, in.enterStateDefault(c)...)
		}
	}
	return entered
}

func (in *Interpreter) runEntry(s *primitives.State) {
	for _, a := range s.OnEntry {
		if raised, err := in.eval.RunAction(in.ctx, a, primitives.Event{}); err == nil {
			in.pending = append(in.pending, raised...)
		}
	}
}

func (in *Interpreter) isActive(name string) bool {
	_, ok := in.active[name]
	return ok
}

// checkInvariants evaluates the Invariants of every currently active
// ancestor of the newly entered states (including the entered states
// themselves), returning the first violation found.
func (in *Interpreter) checkInvariants(entered []string) error {
	checked := map[string]struct{}{}
	for _, name := range entered {
		for _, s := range in.chart.AncestorsInclusive(name) {
			if _, done := checked[s.Name]; done {
				continue
			}
			checked[s.Name] = struct{}{}
			for _, p := range s.Invariants() {
				if !in.eval.EvalPredicate(in.ctx, p, nil) {
					return &ContractViolationError{Kind: InvariantFailure, Source: s.Name, Description: p.Description}
				}
			}
		}
	}
	return nil
}
