package primitives

import "testing"

func TestTransitionIsEventless(t *testing.T) {
	eventless := NewTransition("a", "b", "")
	if !eventless.IsEventless() {
		t.Error("expected eventless transition")
	}
	withEvent := NewTransition("a", "b", "go")
	if withEvent.IsEventless() {
		t.Error("expected non-eventless transition")
	}
}

func TestTransitionValidate(t *testing.T) {
	if err := NewTransition("", "b", "go").validate(); err == nil {
		t.Error("expected error for missing source")
	}
	internalMismatch := &Transition{Source: "a", Target: "b", Internal: true}
	if err := internalMismatch.validate(); err == nil {
		t.Error("expected error for internal transition targeting another state")
	}
	internalSelf := &Transition{Source: "a", Target: "a", Internal: true}
	if err := internalSelf.validate(); err != nil {
		t.Errorf("unexpected error for internal self-targeting transition: %v", err)
	}
	internalNoTarget := &Transition{Source: "a", Internal: true}
	if err := internalNoTarget.validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTransitionContractedAccessors(t *testing.T) {
	tr := &Transition{
		Source:            "a",
		Target:            "b",
		PreconditionList:  []Predicate{{Description: "pre"}},
		PostconditionList: []Predicate{{Description: "post"}},
		InvariantList:     []Predicate{{Description: "inv"}},
	}
	var c Contracted = tr
	if len(c.Preconditions()) != 1 || len(c.Postconditions()) != 1 || len(c.Invariants()) != 1 {
		t.Error("Contracted accessors mismatch")
	}
}
