package primitives

import (
	"testing"
	"time"
)

func TestNewEvent(t *testing.T) {
	e := NewEvent("test", 42)
	if e.Name != "test" {
		t.Errorf("got Name=%q want test", e.Name)
	}
	if e.Kind != External {
		t.Errorf("got Kind=%v want External", e.Kind)
	}
	if v, ok := e.Data.(int); !ok || v != 42 {
		t.Errorf("got Data=%v (%T) want 42", e.Data, e.Data)
	}
}

func TestEventImmutability(t *testing.T) {
	e := NewEvent("test", 42)
	eCopy := e
	eCopy.Name = "modified"
	eCopy.Data = "changed"
	if e.Name != "test" {
		t.Error("original Name was mutated")
	}
	if v, ok := e.Data.(int); !ok || v != 42 {
		t.Error("original Data was mutated")
	}
}

func TestNewInternalAndMetaEvent(t *testing.T) {
	i := NewInternalEvent("done.state.s", nil)
	if i.Kind != Internal {
		t.Errorf("got Kind=%v want Internal", i.Kind)
	}
	m := NewMetaEvent("property violation", nil)
	if m.Kind != Meta {
		t.Errorf("got Kind=%v want Meta", m.Kind)
	}
}

func TestNewDelayedEvent(t *testing.T) {
	e := NewDelayedEvent("timeout", nil, 5*time.Second)
	if !e.Delayed || e.Delay != 5*time.Second {
		t.Errorf("got Delayed=%v Delay=%v want true, 5s", e.Delayed, e.Delay)
	}
}

func TestEventWithKind(t *testing.T) {
	internal := NewInternalEvent("done.state.s", "payload")
	external := internal.WithKind(External)
	if external.Kind != External || external.Name != internal.Name || external.Data != internal.Data {
		t.Errorf("WithKind changed more than Kind: %+v -> %+v", internal, external)
	}
	if internal.Kind != Internal {
		t.Error("WithKind mutated the receiver")
	}
}
