// Package runtime wraps the synchronous, single-goroutine core.Interpreter
// in an actor that concurrent hosts can drive safely: Send events from any
// goroutine, read Configuration()/Context() snapshots, and attach
// EventSources that feed the actor without the caller ever touching the
// Interpreter directly. It is the concurrent-host counterpart to the
// teacher's channel/goroutine Machine, rebuilt on top of core.Interpreter
// instead of owning its own interpretation logic.
package runtime

import (
	"errors"
	"sync"
	"time"

	"github.com/comalice/statechartx/internal/core"
	"github.com/comalice/statechartx/internal/primitives"
)

// ErrQueueFull is returned by Send when the actor's inbox is saturated.
var ErrQueueFull = errors.New("runtime: event queue full (backpressure)")

// StepListener is notified after every MacroStep the Driver's Interpreter
// completes, including ones triggered by its own stabilization tick.
type StepListener func(*core.MacroStep)

// DriverOption configures a Driver at construction time.
type DriverOption func(*Driver)

// WithInbox sets the capacity of the actor's event inbox. Default 256.
func WithInbox(capacity int) DriverOption {
	return func(d *Driver) { d.inboxCap = capacity }
}

// WithTick sets how often the actor re-checks the Interpreter for due
// delayed events and eventless stabilization even without new Send calls.
// Default 20ms.
func WithTick(d2 time.Duration) DriverOption {
	return func(d *Driver) { d.tickEvery = d2 }
}

// WithStepListener registers fn to be called after each MacroStep.
func WithStepListener(fn StepListener) DriverOption {
	return func(d *Driver) { d.listeners = append(d.listeners, fn) }
}

// WithEventSource attaches an EventSource the Driver will forward into the
// Interpreter for the lifetime of the actor, mirroring the teacher's
// Machine.eventSource wiring in Start().
func WithEventSource(src EventSource) DriverOption {
	return func(d *Driver) { d.sources = append(d.sources, src) }
}

// Driver is a goroutine-safe actor around a *core.Interpreter. The wrapped
// Interpreter is only ever touched from the actor's own goroutine; all
// public methods communicate with it over channels or a snapshot lock.
type Driver struct {
	in *core.Interpreter

	inboxCap  int
	tickEvery time.Duration
	listeners []StepListener
	sources   []EventSource

	inbox     chan primitives.Event
	done      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once

	mu            sync.RWMutex
	lastErr       error
	configuration []string
}

// NewDriver wraps in. The Interpreter must not be used by any other caller
// once the Driver is started.
func NewDriver(in *core.Interpreter, opts ...DriverOption) *Driver {
	d := &Driver{
		in:        in,
		inboxCap:  256,
		tickEvery: 20 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.inbox = make(chan primitives.Event, d.inboxCap)
	d.done = make(chan struct{})
	d.configuration = in.Configuration()
	return d
}

// Start launches the actor goroutine. Safe to call once; a second call is a
// no-op.
func (d *Driver) Start() {
	d.startOnce.Do(func() {
		select {
		case <-d.done:
			return
		default:
		}
		d.wg.Add(1)
		go d.run()

		for _, src := range d.sources {
			src := src
			go func() {
				for event := range src.Events() {
					_ = d.Send(event)
				}
			}()
		}
	})
}

func (d *Driver) run() {
	defer d.wg.Done()
	ticker := time.NewTicker(d.tickEvery)
	defer ticker.Stop()

	for {
		select {
		case event := <-d.inbox:
			if err := d.in.Queue(event); err != nil {
				d.mu.Lock()
				d.lastErr = err
				d.mu.Unlock()
				continue
			}
			d.drain()
		case <-ticker.C:
			d.drain()
		case <-d.done:
			return
		}
	}
}

// drain runs the Interpreter to quiescence, publishing each MacroStep to
// registered listeners and refreshing the published Configuration snapshot.
func (d *Driver) drain() {
	steps, err := d.in.Execute()
	for _, step := range steps {
		for _, l := range d.listeners {
			l(step)
		}
	}
	d.mu.Lock()
	d.configuration = d.in.Configuration()
	if err != nil {
		d.lastErr = err
	}
	d.mu.Unlock()
}

// Send enqueues event for asynchronous processing by the actor. Returns
// ErrQueueFull if the inbox is saturated.
func (d *Driver) Send(event primitives.Event) error {
	select {
	case d.inbox <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Configuration returns a snapshot of the currently active state names.
func (d *Driver) Configuration() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.configuration))
	copy(out, d.configuration)
	return out
}

// Err returns the most recent error surfaced by the Interpreter (a
// NonDeterminismError, ConflictingTransitionsError or ContractViolationError,
// typically), or nil.
func (d *Driver) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastErr
}

// Context returns the Interpreter's extended state. Safe to read
// concurrently with the actor goroutine since primitives.Context is itself
// sync.Map-backed; mutation must still go through a Send'd action.
func (d *Driver) Context() *primitives.Context {
	return d.in.Context()
}

// Stop signals the actor to exit after its current iteration and waits for
// it to do so. Safe to call multiple times.
func (d *Driver) Stop() {
	select {
	case <-d.done:
		return
	default:
		close(d.done)
	}
	d.wg.Wait()
}
