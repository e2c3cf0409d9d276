package core

import "github.com/comalice/statechartx/internal/primitives"

// PropertyMonitor pairs a nested Interpreter with the name it was bound
// under, so a violation can be reported against a human-readable label
// instead of a pointer.
type PropertyMonitor struct {
	Name string
	In   *Interpreter
}

// The eight lifecycle meta-event kinds broadcast to bound property monitors,
// one per notification point in a macro-step: a step starts, the triggering
// event (if any) is consumed, each micro-step exits/transitions/enters
// states, raised events go out (immediately or delayed), and the step ends.
// Monitors pattern-match on these names directly; state/transition/event
// detail travels in the meta event's Data, not encoded into the name.
const (
	MetaStepStarted         = "step started"
	MetaEventConsumed       = "event consumed"
	MetaStateExited         = "state exited"
	MetaTransitionProcessed = "transition processed"
	MetaStateEntered        = "state entered"
	MetaEventSent           = "event sent"
	MetaDelayedEventSent    = "delayed event sent"
	MetaStepEnded           = "step ended"
)

// TransitionMeta is the Data payload of a "transition processed" meta event.
// Source and Target name the transition's endpoints (Target is empty for an
// internal transition); Event names the triggering event, empty for an
// eventless transition.
type TransitionMeta struct {
	Source string
	Target string
	Event  string
}

// BindProperty attaches monitor to in: monitor's clock is replaced with a
// SyncedClock reading in's clock, so delayed events raised inside the
// monitor become due on the same timeline as the host, and every micro-step
// the host takes is broadcast to monitor as Meta events (state entered,
// state exited, transition fired, and the event consumed). The monitor
// advances via in's own ExecuteOnce/Execute calls — it is never driven
// independently, so the host stays the single source of forward motion.
func (in *Interpreter) BindProperty(name string, monitor *Interpreter) {
	monitor.clock = NewSyncedClock(in.clock.Now)
	in.monitors = append(in.monitors, PropertyMonitor{Name: name, In: monitor})
}

// broadcastMeta delivers step's lifecycle signals to every bound property
// monitor and drains each monitor's queue. event is the triggering event
// (nil for the initial step or a pure stabilization step); raised is every
// event an action emitted during this step, in emission order, reported as
// "event sent" or "delayed event sent" depending on Delayed. A monitor whose
// Final() reports true (every active leaf is a Final state; its configuration
// is not emptied) has had its property violated by the event sequence so
// far, as has one whose own ExecuteOnce fails; the first such violation is
// returned, carrying the host's configuration at the moment of violation.
func (in *Interpreter) broadcastMeta(event *primitives.Event, steps []MicroStep, raised []primitives.Event) error {
	if len(in.monitors) == 0 {
		return nil
	}

	in.queueMeta(primitives.NewMetaEvent(MetaStepStarted, nil))
	if event != nil {
		in.queueMeta(primitives.NewMetaEvent(MetaEventConsumed, *event))
	}
	for _, s := range steps {
		for _, name := range s.Exited {
			in.queueMeta(primitives.NewMetaEvent(MetaStateExited, name))
		}
		if s.Transition != nil {
			meta := TransitionMeta{Source: s.Transition.Source, Target: s.Transition.Target}
			if event != nil {
				meta.Event = event.Name
			} else {
				meta.Event = s.Transition.Event
			}
			in.queueMeta(primitives.NewMetaEvent(MetaTransitionProcessed, meta))
		}
		for _, name := range s.Entered {
			in.queueMeta(primitives.NewMetaEvent(MetaStateEntered, name))
		}
	}
	for _, e := range raised {
		if e.Delayed {
			in.queueMeta(primitives.NewMetaEvent(MetaDelayedEventSent, e))
		} else {
			in.queueMeta(primitives.NewMetaEvent(MetaEventSent, e))
		}
	}
	in.queueMeta(primitives.NewMetaEvent(MetaStepEnded, nil))

	for _, pm := range in.monitors {
		for {
			if _, err := pm.In.ExecuteOnce(); err != nil {
				if err == ErrQueueEmpty {
					break
				}
				return &PropertyViolationError{Monitor: pm.Name, Configuration: in.Configuration(), Cause: err}
			}
		}
		if pm.In.Final() {
			return &PropertyViolationError{Monitor: pm.Name, Configuration: in.Configuration()}
		}
	}
	return nil
}

// queueMeta fans a meta event out to every bound monitor's own queue,
// bypassing the External/Delay validation Queue performs on caller-supplied
// events, since these are synthesized by the interpreter itself.
func (in *Interpreter) queueMeta(meta primitives.Event) {
	for _, pm := range in.monitors {
		pm.In.queueUnchecked(meta.WithKind(primitives.External))
	}
}
