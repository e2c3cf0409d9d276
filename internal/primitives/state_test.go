package primitives

import "testing"

func TestStateValidateKindShapes(t *testing.T) {
	cases := []struct {
		name    string
		state   *State
		wantErr bool
	}{
		{"atomic ok", NewState("a", AtomicKind), false},
		{"atomic with children", &State{Name: "a", Kind: AtomicKind, Children: []*State{NewState("b", AtomicKind)}}, true},
		{"compound needs children", NewState("c", CompoundKind), true},
		{"compound needs initial", &State{Name: "c", Kind: CompoundKind, Children: []*State{NewState("x", AtomicKind)}}, true},
		{"compound initial must match a child", &State{Name: "c", Kind: CompoundKind, Initial: "missing", Children: []*State{NewState("x", AtomicKind)}}, true},
		{"compound ok", &State{Name: "c", Kind: CompoundKind, Initial: "x", Children: []*State{NewState("x", AtomicKind)}}, false},
		{"orthogonal needs children", NewState("o", OrthogonalKind), true},
		{"orthogonal cannot have initial", &State{Name: "o", Kind: OrthogonalKind, Initial: "x", Children: []*State{NewState("x", AtomicKind)}}, true},
		{"orthogonal ok", &State{Name: "o", Kind: OrthogonalKind, Children: []*State{NewState("x", AtomicKind), NewState("y", AtomicKind)}}, false},
		{"history cannot have children", &State{Name: "h", Kind: ShallowHistoryKind, Children: []*State{NewState("x", AtomicKind)}}, true},
		{"history ok", NewState("h", DeepHistoryKind), false},
		{"final ok", NewState("f", FinalKind), false},
		{"empty name", NewState("", AtomicKind), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.state.validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestStateContractedAccessors(t *testing.T) {
	s := &State{
		Name:              "s",
		Kind:              AtomicKind,
		PreconditionList:  []Predicate{{Description: "pre"}},
		PostconditionList: []Predicate{{Description: "post"}},
		InvariantList:     []Predicate{{Description: "inv"}},
	}
	var c Contracted = s
	if len(c.Preconditions()) != 1 || c.Preconditions()[0].Description != "pre" {
		t.Error("Preconditions() mismatch")
	}
	if len(c.Postconditions()) != 1 || c.Postconditions()[0].Description != "post" {
		t.Error("Postconditions() mismatch")
	}
	if len(c.Invariants()) != 1 || c.Invariants()[0].Description != "inv" {
		t.Error("Invariants() mismatch")
	}
}

func TestStateTransitionSourceMismatch(t *testing.T) {
	s := &State{
		Name:        "s",
		Kind:        AtomicKind,
		Transitions: []*Transition{NewTransition("other", "t", "ev")},
	}
	if err := s.validate(); err == nil {
		t.Error("expected error for mismatched transition source")
	}
}
