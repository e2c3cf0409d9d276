// Statechart is the validated, immutable-shape tree of States that the
// interpreter executes. Construction resolves parent pointers and precomputes
// the lookup tables (by name, ancestor chains) that the selection and
// conflict-detection algorithms rely on, mirroring the teacher's
// precomputePaths/stateCache/ancestorCache approach but generalized to the
// six state kinds and exposed as read-only accessors instead of private maps.
package primitives

import (
	"errors"
	"fmt"
)

// Statechart is the root of a validated state tree plus its derived indices.
type Statechart struct {
	ID   string
	Root *State

	byName     map[string]*State
	ancestors  map[string][]*State // self excluded, root last
	children   map[string][]*State
	depth      map[string]int
	parentName map[string]string
}

// NewStatechart builds and validates a Statechart rooted at root. The root
// itself is conventionally a Compound (or Orthogonal) pseudo-state named id;
// callers needing a single top-level atomic state should wrap it in a
// single-child Compound root, matching sismic/SCXML convention.
func NewStatechart(id string, root *State) (*Statechart, error) {
	if root == nil {
		return nil, errors.New("statechart requires a non-nil root state")
	}
	sc := &Statechart{
		ID:         id,
		Root:       root,
		byName:     map[string]*State{},
		ancestors:  map[string][]*State{},
		children:   map[string][]*State{},
		depth:      map[string]int{},
		parentName: map[string]string{},
	}
	if err := sc.index(root, nil, nil); err != nil {
		return nil, err
	}
	if err := root.validate(); err != nil {
		return nil, err
	}
	if err := sc.validateTransitionTargets(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *Statechart) index(s *State, parent *State, chain []*State) error {
	if _, dup := sc.byName[s.Name]; dup {
		return fmt.Errorf("duplicate state name %q", s.Name)
	}
	s.parent = parent
	sc.byName[s.Name] = s
	sc.ancestors[s.Name] = chain
	sc.depth[s.Name] = len(chain)
	if parent != nil {
		sc.parentName[s.Name] = parent.Name
		sc.children[parent.Name] = append(sc.children[parent.Name], s)
	}
	childChain := append(append([]*State{}, s), chain...)
	for _, c := range s.Children {
		if err := sc.index(c, s, childChain); err != nil {
			return err
		}
	}
	return nil
}

func (sc *Statechart) validateTransitionTargets() error {
	for name, s := range sc.byName {
		for _, t := range s.Transitions {
			if t.Target == "" {
				continue
			}
			if _, ok := sc.byName[t.Target]; !ok {
				return fmt.Errorf("state %q: transition target %q does not exist", name, t.Target)
			}
		}
	}
	return nil
}

// State resolves a state by name.
func (sc *Statechart) State(name string) (*State, bool) {
	s, ok := sc.byName[name]
	return s, ok
}

// MustState resolves a state by name, panicking if absent. Intended for
// internal callers that have already validated the name exists (e.g. after
// NewStatechart succeeded and the name came from the chart itself).
func (sc *Statechart) MustState(name string) *State {
	s, ok := sc.byName[name]
	if !ok {
		panic(fmt.Sprintf("primitives: state %q not found", name))
	}
	return s
}

// Depth returns the nesting depth of name, 0 for the root.
func (sc *Statechart) Depth(name string) int { return sc.depth[name] }

// Parent returns the direct parent state of name, or nil at the root.
func (sc *Statechart) Parent(name string) *State {
	p, ok := sc.parentName[name]
	if !ok {
		return nil
	}
	return sc.byName[p]
}

// Children returns the direct children of name in declaration order.
func (sc *Statechart) Children(name string) []*State {
	return sc.children[name]
}

// Ancestors returns the strict ancestor chain of name, nearest first, root
// last. The named state itself is excluded.
func (sc *Statechart) Ancestors(name string) []*State {
	return sc.ancestors[name]
}

// AncestorsInclusive returns Ancestors(name) with the named state prepended.
func (sc *Statechart) AncestorsInclusive(name string) []*State {
	s := sc.byName[name]
	if s == nil {
		return nil
	}
	out := make([]*State, 0, len(sc.ancestors[name])+1)
	out = append(out, s)
	out = append(out, sc.ancestors[name]...)
	return out
}

// IsAncestor reports whether ancestor is a strict ancestor of name.
func (sc *Statechart) IsAncestor(ancestor, name string) bool {
	for _, a := range sc.ancestors[name] {
		if a.Name == ancestor {
			return true
		}
	}
	return false
}

// Descendants returns every strict descendant of name, pre-order.
func (sc *Statechart) Descendants(name string) []*State {
	s, ok := sc.byName[name]
	if !ok {
		return nil
	}
	var out []*State
	var walk func(*State)
	walk = func(n *State) {
		for _, c := range n.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(s)
	return out
}

// LeavesOf returns the atomic, final and history states reachable from name by always
// descending via Initial (Compound) or all children (Orthogonal), i.e. the
// set of states actually entered when name is entered and nothing more
// specific is requested. name itself is returned if it is already a leaf.
func (sc *Statechart) LeavesOf(name string) []*State {
	s, ok := sc.byName[name]
	if !ok {
		return nil
	}
	var out []*State
	var walk func(*State)
	walk = func(n *State) {
		switch n.Kind {
		case AtomicKind, FinalKind, ShallowHistoryKind, DeepHistoryKind:
			out = append(out, n)
		case CompoundKind:
			for _, c := range n.Children {
				if c.Name == n.Initial {
					walk(c)
					return
				}
			}
		case OrthogonalKind:
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	walk(s)
	return out
}

// LeastCommonAncestor returns the deepest state that is an ancestor of, or
// equal to, every name in names: a single name is its own result, and a name
// that is an ancestor of all the others is the result. Returns the
// Statechart's root state if names is empty or no common ancestor is found.
func (sc *Statechart) LeastCommonAncestor(names ...string) *State {
	if len(names) == 0 {
		return sc.Root
	}
	common := sc.ancestorSet(names[0])
	for _, n := range names[1:] {
		next := sc.ancestorSet(n)
		common = intersectOrdered(common, next)
	}
	if len(common) == 0 {
		return sc.Root
	}
	return common[0]
}

// ancestorSet returns name's ancestor chain inclusive of name itself, nearest
// first, in a form suitable for intersectOrdered.
func (sc *Statechart) ancestorSet(name string) []*State {
	return sc.AncestorsInclusive(name)
}

// intersectOrdered returns the elements common to both chains (by Name),
// preserving a's order (nearest-first), so the first entry of the result is
// the deepest common ancestor.
func intersectOrdered(a, b []*State) []*State {
	bSet := make(map[string]struct{}, len(b))
	for _, s := range b {
		bSet[s.Name] = struct{}{}
	}
	var out []*State
	for _, s := range a {
		if _, ok := bSet[s.Name]; ok {
			out = append(out, s)
		}
	}
	return out
}

// TransitionsFrom returns the transitions declared directly on name.
func (sc *Statechart) TransitionsFrom(name string) []*Transition {
	s, ok := sc.byName[name]
	if !ok {
		return nil
	}
	return s.Transitions
}

// Transitions returns every transition in the chart, grouped by no
// particular order beyond source-state traversal order.
func (sc *Statechart) Transitions() []*Transition {
	var out []*Transition
	for _, s := range sc.byName {
		out = append(out, s.Transitions...)
	}
	return out
}

// Names returns every state name in the chart, including the root.
func (sc *Statechart) Names() []string {
	out := make([]string, 0, len(sc.byName))
	for n := range sc.byName {
		out = append(out, n)
	}
	return out
}
