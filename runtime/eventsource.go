package runtime

import (
	"time"

	"github.com/comalice/statechartx/internal/primitives"
)

// EventSource feeds events into a Driver from outside the synchronous core,
// mirroring the teacher's channel-based feed into Machine.
type EventSource interface {
	Events() <-chan primitives.Event
}

// ChannelEventSource is an EventSource backed by a caller-owned channel, the
// simplest way to feed external events into a Driver.
type ChannelEventSource struct {
	ch chan primitives.Event
}

// NewChannelEventSource wraps ch as an EventSource. The channel should be
// buffered if backpressure handling is needed.
func NewChannelEventSource(ch chan primitives.Event) *ChannelEventSource {
	return &ChannelEventSource{ch: ch}
}

// Events returns the receive-only channel for events.
func (s *ChannelEventSource) Events() <-chan primitives.Event { return s.ch }

// TimerEventSource generates periodic events using time.Ticker, useful for
// timeout/heartbeat statecharts.
type TimerEventSource struct {
	ch     chan primitives.Event
	name   string
	data   any
	ticker *time.Ticker
	stop   chan struct{}
}

// NewTimerEventSource creates a TimerEventSource emitting name every d.
func NewTimerEventSource(name string, data any, d time.Duration) *TimerEventSource {
	ch := make(chan primitives.Event, 10)
	t := &TimerEventSource{
		ch:     ch,
		name:   name,
		data:   data,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimerEventSource) run() {
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- primitives.NewEvent(t.name, t.data):
			default:
				// drop if the consumer is behind; heartbeats are not queued for delivery.
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

// Events returns the event channel.
func (t *TimerEventSource) Events() <-chan primitives.Event { return t.ch }

// Stop stops the ticker and closes the channel.
func (t *TimerEventSource) Stop() { close(t.stop) }
