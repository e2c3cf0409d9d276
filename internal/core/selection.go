package core

import (
	"sort"

	"github.com/comalice/statechartx/internal/primitives"
)

// orderedActiveStates returns the active state names sorted deepest-first,
// tie-broken alphabetically, so selection always proceeds inner-first and
// deterministically regardless of map iteration order.
func orderedActiveStates(sc *primitives.Statechart, active map[string]struct{}) []string {
	names := make([]string, 0, len(active))
	for n := range active {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		di, dj := sc.Depth(names[i]), sc.Depth(names[j])
		if di != dj {
			return di > dj
		}
		return names[i] < names[j]
	})
	return names
}

// selectCandidates returns every enabled Transition per active state: the
// active state's own transitions, filtered to eventless-only (when
// eventless is true) or to the given event name, grouped into
// Priority-equal classes sorted highest-first, and every transition whose
// Guard holds within the first (highest) class that has at least one
// passing guard — not just the first transition found. Active states are
// visited inner-first, and once a state contributes candidates every one of
// its ancestors is skipped, so a deeper source always wins over its
// ancestors' transitions regardless of Priority. Collecting every passing
// guard in the winning class,
// rather than stopping at the first, is what lets two equal-priority,
// simultaneously-enabled transitions from the same source reach
// resolveConflicts instead of silently picking one.
func selectCandidates(
	sc *primitives.Statechart,
	active map[string]struct{},
	eventless bool,
	event primitives.Event,
	eval Evaluator,
	ctx *primitives.Context,
) []*primitives.Transition {
	var out []*primitives.Transition
	shadowed := map[string]bool{}
	for _, name := range orderedActiveStates(sc, active) {
		if shadowed[name] {
			continue
		}
		state, ok := sc.State(name)
		if !ok {
			continue
		}
		candidates := make([]*primitives.Transition, 0, len(state.Transitions))
		for _, t := range state.Transitions {
			if eventless {
				if !t.IsEventless() {
					continue
				}
			} else if t.Event != event.Name {
				continue
			}
			candidates = append(candidates, t)
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Priority > candidates[j].Priority
		})

		i := 0
		for i < len(candidates) {
			j := i
			for j < len(candidates) && candidates[j].Priority == candidates[i].Priority {
				j++
			}
			var passing []*primitives.Transition
			for _, t := range candidates[i:j] {
				if eval.EvalGuard(ctx, t.Guard, event) {
					passing = append(passing, t)
				}
			}
			if len(passing) > 0 {
				out = append(out, passing...)
				for _, anc := range sc.Ancestors(name) {
					shadowed[anc.Name] = true
				}
				break
			}
			i = j
		}
	}
	return out
}

// transitionBoundary returns the name of the state above which nothing is
// torn down or rebuilt when t fires, or "" when the boundary is above the
// chart's root (t is a self-transition on the root itself, so the whole
// chart exits and re-enters). A transition that targets its own source
// exits and re-enters the source itself — the resolution the spec gives for
// a self-targeting transition from an ancestor state — so its boundary is
// the source's parent, not the source itself; every other transition's
// boundary is the ordinary least common ancestor of source and target.
func transitionBoundary(sc *primitives.Statechart, t *primitives.Transition) string {
	if t.Target == t.Source {
		if parent := sc.Parent(t.Source); parent != nil {
			return parent.Name
		}
		return ""
	}
	return sc.LeastCommonAncestor(t.Source, t.Target).Name
}

// domainOf returns the set of currently active states a Transition would
// tear down if fired: every active state that is a strict descendant of its
// transitionBoundary (the whole chart, when the boundary is ""). This is
// the full branch under the boundary, not just the ancestor chain up to
// Source, because exiting up to the boundary exits whatever is active under
// it, including states nested deeper than Source itself. Internal
// transitions (no target, or marked Internal) tear down nothing.
func domainOf(sc *primitives.Statechart, active map[string]struct{}, t *primitives.Transition) map[string]struct{} {
	domain := map[string]struct{}{}
	if t.Internal || t.Target == "" {
		return domain
	}
	boundary := transitionBoundary(sc, t)
	for name := range active {
		if boundary == "" || sc.IsAncestor(boundary, name) {
			domain[name] = struct{}{}
		}
	}
	return domain
}

// resolveConflicts reduces candidates to a non-conflicting firing set: when
// one candidate's teardown domain is a strict subset of another's, the more
// specific (narrower-domain, deeper-sourced) transition wins and the other
// is dropped, per the inner-first rule. Two internal transitions (both empty
// domains) never conflict. Anything else that is not cleanly ordered by
// subset — identical non-empty domains, or domains that intersect without
// either containing the other — is a genuine conflict, classified by
// classifyConflict into either NonDeterminismError or
// ConflictingTransitionsError depending on the pair's least common
// ancestor's Kind.
func resolveConflicts(sc *primitives.Statechart, active map[string]struct{}, eventName string, candidates []*primitives.Transition) ([]*primitives.Transition, error) {
	type entry struct {
		t      *primitives.Transition
		domain map[string]struct{}
	}
	entries := make([]entry, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, entry{t: c, domain: domainOf(sc, active, c)})
	}

	dropped := make([]bool, len(entries))
	for i := 0; i < len(entries); i++ {
		if dropped[i] {
			continue
		}
		for j := i + 1; j < len(entries); j++ {
			if dropped[j] {
				continue
			}
			a, b := entries[i].domain, entries[j].domain
			aSubB := isSubset(a, b)
			bSubA := isSubset(b, a)
			switch {
			case aSubB && bSubA:
				if len(a) == 0 {
					// both internal transitions: no conflict.
					continue
				}
				return nil, classifyConflict(sc, eventName, entries[i].t, entries[j].t)
			case aSubB:
				// i is the more specific (narrower) transition: it wins.
				dropped[j] = true
			case bSubA:
				dropped[i] = true
			default:
				if intersects(a, b) {
					return nil, classifyConflict(sc, eventName, entries[i].t, entries[j].t)
				}
			}
		}
	}

	var out []*primitives.Transition
	for i, e := range entries {
		if !dropped[i] {
			out = append(out, e.t)
		}
	}
	return out, nil
}

// classifyConflict decides which of the two conflict error kinds a
// conflicting pair (t1, t2) represents: when their least common ancestor is
// not an Orthogonal state, the two transitions genuinely compete for the
// same region and neither Priority nor domain nesting resolved it —
// NonDeterminism. When the least common ancestor is Orthogonal, the regions
// themselves are independent by construction, so reaching this function at
// all means at least one of the pair's targets escapes its own region,
// crossing the parallel-region boundary — ConflictingTransitions.
func classifyConflict(sc *primitives.Statechart, eventName string, t1, t2 *primitives.Transition) error {
	lca := sc.LeastCommonAncestor(t1.Source, t2.Source)
	if lca == nil || lca.Kind != primitives.OrthogonalKind {
		return &NonDeterminismError{Event: eventName, Transitions: []*primitives.Transition{t1, t2}}
	}
	return &ConflictingTransitionsError{Event: eventName, Transitions: []*primitives.Transition{t1, t2}}
}

func isSubset(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func intersects(a, b map[string]struct{}) bool {
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	for k := range small {
		if _, ok := big[k]; ok {
			return true
		}
	}
	return false
}
