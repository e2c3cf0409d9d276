package core

import (
	"container/heap"
	"time"

	"github.com/comalice/statechartx/internal/primitives"
)

// scheduledEvent pairs a queued Event with the time it becomes due and the
// insertion sequence used to break ties between equally-due events in FIFO
// order. No library in the example pack provides a typed priority queue
// suited to a (time, sequence) key, so the queue is built directly on
// container/heap, as the standard library intends.
type scheduledEvent struct {
	event    primitives.Event
	due      time.Time
	sequence uint64
}

// eventHeap implements container/heap.Interface ordered by due time, then by
// insertion sequence.
type eventHeap []*scheduledEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if !h[i].due.Equal(h[j].due) {
		return h[i].due.Before(h[j].due)
	}
	return h[i].sequence < h[j].sequence
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*scheduledEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// EventQueue is a time-ordered priority queue of scheduled events. It is not
// safe for concurrent use; the interpreter that owns it is itself
// single-threaded, per the synchronous execution model.
type EventQueue struct {
	heap eventHeap
	seq  uint64
}

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	heap.Init(&q.heap)
	return q
}

// NewEventQueueWithCapacity creates an empty EventQueue whose backing slice
// is preallocated to capacityHint, avoiding reallocation churn for hosts
// that know roughly how many events will be in flight at once.
func NewEventQueueWithCapacity(capacityHint int) *EventQueue {
	q := &EventQueue{heap: make(eventHeap, 0, capacityHint)}
	heap.Init(&q.heap)
	return q
}

// Push schedules event to become due at due.
func (q *EventQueue) Push(event primitives.Event, due time.Time) {
	q.seq++
	heap.Push(&q.heap, &scheduledEvent{event: event, due: due, sequence: q.seq})
}

// Len returns the number of events still scheduled.
func (q *EventQueue) Len() int { return q.heap.Len() }

// Peek returns the next due time without removing it, and false if empty.
func (q *EventQueue) Peek() (time.Time, bool) {
	if q.heap.Len() == 0 {
		return time.Time{}, false
	}
	return q.heap[0].due, true
}

// PopDue removes and returns the earliest-scheduled event if it is due at or
// before now, i.e. due <= now, mirroring sismic's `time <= self.time` check.
// Returns false if the queue is empty or the earliest event is not yet due.
func (q *EventQueue) PopDue(now time.Time) (primitives.Event, bool) {
	if q.heap.Len() == 0 {
		return primitives.Event{}, false
	}
	if q.heap[0].due.After(now) {
		return primitives.Event{}, false
	}
	se := heap.Pop(&q.heap).(*scheduledEvent)
	return se.event, true
}
