// Package production provides production integrations for the interpreter
// core: publishing consumed/raised events out to other systems and
// exporting a statechart's structure for visualization.
package production

import (
	"context"

	"github.com/comalice/statechartx/internal/primitives"
)

// Publisher forwards events the interpreter consumes or raises to an
// external sink. Bind it to an Interpreter via core.Interpreter.Bind, e.g.
// in.Bind(publisher.Publish).
type Publisher interface {
	Publish(event primitives.Event)
	Close() error
}

// ChannelPublisher is a stdlib-only Publisher that forwards events to a Go
// channel. Non-blocking: drops the event if the channel is saturated rather
// than stalling the interpreter's own goroutine.
type ChannelPublisher struct {
	ch chan<- primitives.Event
}

// NewChannelPublisher creates a ChannelPublisher with the given output
// channel.
func NewChannelPublisher(ch chan<- primitives.Event) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Publish satisfies core.Listener's signature so a ChannelPublisher can be
// passed directly to Interpreter.Bind.
func (p *ChannelPublisher) Publish(event primitives.Event) {
	select {
	case p.ch <- event:
	default:
		// drop on backpressure; publishing must never block the interpreter.
	}
}

// Close closes the output channel. Callers must stop sending through the
// bound Interpreter before calling Close.
func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}

// ContextPublisher forwards events through Publish while honoring ctx
// cancellation, for callers that want Close semantics tied to a
// context.Context instead of an explicit call.
type ContextPublisher struct {
	ChannelPublisher
	ctx context.Context
}

// NewContextPublisher creates a ContextPublisher that stops delivering once
// ctx is done.
func NewContextPublisher(ctx context.Context, ch chan<- primitives.Event) *ContextPublisher {
	return &ContextPublisher{ChannelPublisher: ChannelPublisher{ch: ch}, ctx: ctx}
}

// Publish delivers event unless ctx is already done.
func (p *ContextPublisher) Publish(event primitives.Event) {
	select {
	case <-p.ctx.Done():
		return
	default:
	}
	p.ChannelPublisher.Publish(event)
}
