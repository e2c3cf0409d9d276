package core

import (
	"github.com/google/uuid"

	"github.com/comalice/statechartx/internal/primitives"
)

// Listener is notified of every event the interpreter consumes or raises
// internally, in order, for logging/diagnostics hookup.
type Listener func(primitives.Event)

// Interpreter is the synchronous, non-reentrant statechart engine described
// by the execution model: a single goroutine drives it to completion one
// event at a time via ExecuteOnce/Execute. Concurrent hosts drive it through
// the runtime package's actor wrapper rather than calling it from multiple
// goroutines directly.
type Interpreter struct {
	id    uuid.UUID
	chart *primitives.Statechart
	ctx   *primitives.Context
	eval  Evaluator
	clock Clock

	queue   *EventQueue
	active  map[string]struct{}
	pending []primitives.Event
	history *HistoryManager

	ignoreContract bool
	listeners      []Listener
	monitors       []PropertyMonitor

	running     bool
	initialized bool
}

// NewInterpreter binds chart, an evaluator, a clock and the rest of the
// construction-time options, but leaves the interpreter uninitialized: an
// empty configuration, empty memory, empty queue. The initial micro step —
// entering the root and stabilizing — only happens on the first call to
// ExecuteOnce, which returns it as a MacroStep like any other step. This
// matters for callers that Bind a Listener or BindProperty a monitor after
// construction (the only time they can, since construction has already
// returned): they still observe the initial entry's lifecycle events.
func NewInterpreter(chart *primitives.Statechart, opts ...Option) (*Interpreter, error) {
	in := &Interpreter{
		id:      uuid.New(),
		chart:   chart,
		ctx:     primitives.NewContext(),
		clock:   SystemClock{},
		queue:   NewEventQueue(),
		active:  map[string]struct{}{},
		history: NewHistoryManager(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.eval == nil {
		in.eval = defaultEvaluator{}
	}
	return in, nil
}

// Queue schedules event to become due now, or at now+event.Delay if the
// event is Delayed. Internal-kind events are rejected — they are raised by
// actions and routed by flushPending, never queued directly — and a Delayed
// event's Delay must not be negative.
func (in *Interpreter) Queue(event primitives.Event) error {
	if event.Kind == primitives.Internal {
		return ErrInvalidInternalEvent
	}
	if event.Delayed && event.Delay < 0 {
		return ErrInvalidDelay
	}
	in.queueUnchecked(event)
	return nil
}

// queueUnchecked schedules event without the External/Delay validation
// Queue performs, for events the interpreter raises itself (flushPending)
// rather than ones an external caller supplies.
func (in *Interpreter) queueUnchecked(event primitives.Event) {
	due := in.clock.Now()
	if event.Delayed {
		due = due.Add(event.Delay)
	}
	in.queue.Push(event, due)
}

// Configuration returns the names of every currently active state,
// including ancestors, not just leaves.
func (in *Interpreter) Configuration() []string {
	out := make([]string, 0, len(in.active))
	for n := range in.active {
		out = append(out, n)
	}
	return out
}

// Context returns the interpreter's extended state.
func (in *Interpreter) Context() *primitives.Context { return in.ctx }

// ID returns the Interpreter's instance identifier, minted once at
// construction, for correlating log lines and property-violation reports
// across a host and the monitors bound to it.
func (in *Interpreter) ID() uuid.UUID { return in.id }

// Final reports whether the interpreter has been initialized (its first
// ExecuteOnce has run) and every currently active leaf state is of Final
// kind, i.e. the statechart (or property monitor) has run to completion. An
// uninitialized interpreter also has an empty configuration, but is not yet
// final — it simply hasn't started.
func (in *Interpreter) Final() bool {
	if !in.initialized || len(in.active) == 0 {
		return false
	}
	for name := range in.active {
		state, ok := in.chart.State(name)
		if !ok {
			continue
		}
		if len(in.chart.Children(name)) > 0 {
			continue // not a leaf
		}
		if state.Kind != primitives.FinalKind {
			return false
		}
	}
	return true
}

// Bind registers a Listener for all consumed/raised events.
func (in *Interpreter) Bind(fn Listener) {
	in.listeners = append(in.listeners, fn)
}

func (in *Interpreter) notify(event primitives.Event) {
	for _, l := range in.listeners {
		l(event)
	}
}

// ExecuteOnce consumes at most one macro-step: eventless transitions fire
// first, with priority over the event queue; only once no eventless
// transition is enabled does the earliest due event get popped and
// processed. Returns ErrQueueEmpty when there is nothing left to do — no
// eventless transition fires and either the queue is empty or its earliest
// event is not yet due.
func (in *Interpreter) ExecuteOnce() (*MacroStep, error) {
	if in.running {
		return nil, ErrReentrant
	}
	in.running = true
	defer func() { in.running = false }()

	if !in.initialized {
		in.initialized = true
		entered := in.enterStateDefault(in.chart.Root)
		steps := []MicroStep{{Entered: entered}}
		steps, err := in.stabilize(steps)
		if err != nil {
			return &MacroStep{MicroSteps: steps}, err
		}
		raised := in.flushPending()
		macro := &MacroStep{MicroSteps: steps}
		if err := in.broadcastMeta(nil, steps, raised); err != nil {
			return macro, err
		}
		return macro, nil
	}

	eventlessSteps, err := in.stabilize(nil)
	if err != nil {
		return nil, err
	}
	if len(eventlessSteps) > 0 {
		raised := in.flushPending()
		macro := &MacroStep{MicroSteps: eventlessSteps}
		if err := in.broadcastMeta(nil, eventlessSteps, raised); err != nil {
			return macro, err
		}
		return macro, nil
	}

	event, ok := in.queue.PopDue(in.clock.Now())
	if !ok {
		return nil, ErrQueueEmpty
	}
	in.notify(event)

	active := in.activeSnapshot()
	candidates := selectCandidates(in.chart, active, false, event, in.eval, in.ctx)
	selected, err := resolveConflicts(in.chart, active, event.Name, candidates)
	if err != nil {
		return nil, err
	}

	var steps []MicroStep
	for _, t := range selected {
		step, err := in.applyTransition(t, event)
		if err != nil {
			return &MacroStep{Event: &event, MicroSteps: steps}, err
		}
		steps = append(steps, step)
	}

	steps, err = in.stabilize(steps)
	if err != nil {
		return &MacroStep{Event: &event, MicroSteps: steps}, err
	}
	raised := in.flushPending()

	macro := &MacroStep{Event: &event, MicroSteps: steps}
	if err := in.broadcastMeta(&event, steps, raised); err != nil {
		return macro, err
	}
	return macro, nil
}

// Execute drains the queue, calling ExecuteOnce until it returns
// ErrQueueEmpty (a quiescent point where nothing is due), returning every
// MacroStep produced. A non-nil, non-ErrQueueEmpty error aborts early and is
// returned alongside the steps completed so far.
func (in *Interpreter) Execute() ([]*MacroStep, error) {
	var steps []*MacroStep
	for {
		step, err := in.ExecuteOnce()
		if err != nil {
			if err == ErrQueueEmpty {
				return steps, nil
			}
			return steps, err
		}
		steps = append(steps, step)
	}
}

// flushPending moves actions' internally-raised events into the queue,
// notifying listeners, clears the pending buffer, and returns the events
// moved, in emission order, so broadcastMeta can report "event sent"/
// "delayed event sent" for each.
func (in *Interpreter) flushPending() []primitives.Event {
	raised := in.pending
	for _, e := range raised {
		if e.Kind == primitives.Internal {
			in.notify(e.WithKind(primitives.External))
		} else {
			in.notify(e)
		}
		in.queueUnchecked(e)
	}
	in.pending = nil
	return raised
}

// defaultEvaluator treats every GuardRef/ActionRef as a plain Go closure,
// the shape internal/extensibility.ClosureEvaluator also implements; kept
// here so NewInterpreter never requires an explicit evaluator option for
// the common case.
type defaultEvaluator struct{}

func (defaultEvaluator) EvalGuard(ctx *primitives.Context, guard primitives.GuardRef, event primitives.Event) bool {
	if guard == nil {
		return true
	}
	if g, ok := guard.(func(*primitives.Context, primitives.Event) bool); ok {
		return g(ctx, event)
	}
	return false
}

func (defaultEvaluator) RunAction(ctx *primitives.Context, action primitives.ActionRef, event primitives.Event) ([]primitives.Event, error) {
	if action == nil {
		return nil, nil
	}
	switch a := action.(type) {
	case func(*primitives.Context, primitives.Event):
		a(ctx, event)
		return nil, nil
	case func(*primitives.Context, primitives.Event) []primitives.Event:
		return a(ctx, event), nil
	case func(*primitives.Context, primitives.Event) error:
		return nil, a(ctx, event)
	}
	return nil, nil
}

func (defaultEvaluator) EvalPredicate(ctx *primitives.Context, pred primitives.Predicate, event *primitives.Event) bool {
	if pred.Check == nil {
		return true
	}
	return pred.Check(ctx, event)
}
