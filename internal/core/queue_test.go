package core

import (
	"testing"
	"time"

	"github.com/comalice/statechartx/internal/primitives"
)

func TestEventQueueOrdersByDueTime(t *testing.T) {
	q := NewEventQueue()
	base := time.Unix(0, 0)
	q.Push(primitives.NewEvent("late", nil), base.Add(2*time.Second))
	q.Push(primitives.NewEvent("early", nil), base.Add(1*time.Second))

	e, ok := q.PopDue(base.Add(3 * time.Second))
	if !ok || e.Name != "early" {
		t.Fatalf("got %v, %v; want early", e, ok)
	}
	e, ok = q.PopDue(base.Add(3 * time.Second))
	if !ok || e.Name != "late" {
		t.Fatalf("got %v, %v; want late", e, ok)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestEventQueueNotYetDue(t *testing.T) {
	q := NewEventQueue()
	base := time.Unix(0, 0)
	q.Push(primitives.NewEvent("future", nil), base.Add(10*time.Second))

	if _, ok := q.PopDue(base); ok {
		t.Error("expected no event due yet")
	}
	if _, ok := q.PopDue(base.Add(10 * time.Second)); !ok {
		t.Error("expected event due at exactly its scheduled time")
	}
}

func TestEventQueueFIFOTiebreak(t *testing.T) {
	q := NewEventQueue()
	base := time.Unix(0, 0)
	q.Push(primitives.NewEvent("first", nil), base)
	q.Push(primitives.NewEvent("second", nil), base)

	e1, _ := q.PopDue(base)
	e2, _ := q.PopDue(base)
	if e1.Name != "first" || e2.Name != "second" {
		t.Errorf("got %q, %q; want first, second", e1.Name, e2.Name)
	}
}
