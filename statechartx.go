// Package statechartx is a thin public facade over the engine's internal
// packages, mirroring the teacher's root-level package that exposed
// State/Context/Machine directly: callers that just want to build and run a
// statechart can depend on this package alone, without reaching into
// internal/core, internal/primitives or runtime themselves.
package statechartx

import (
	"github.com/comalice/statechartx/internal/core"
	"github.com/comalice/statechartx/internal/primitives"
	"github.com/comalice/statechartx/runtime"
)

// Re-exported model types, identical to their internal/primitives
// definitions. Construct these via the builder package rather than by hand.
type (
	Statechart = primitives.Statechart
	State      = primitives.State
	Transition = primitives.Transition
	Context    = primitives.Context
	Event      = primitives.Event
	Kind       = primitives.Kind
	Predicate  = primitives.Predicate
)

// State kinds, re-exported for callers assembling a chart without the
// builder package.
const (
	AtomicKind         = primitives.AtomicKind
	CompoundKind       = primitives.CompoundKind
	OrthogonalKind     = primitives.OrthogonalKind
	FinalKind          = primitives.FinalKind
	ShallowHistoryKind = primitives.ShallowHistoryKind
	DeepHistoryKind    = primitives.DeepHistoryKind
)

// NewEvent builds an externally-triggered event.
func NewEvent(name string, data any) Event { return primitives.NewEvent(name, data) }

// Interpreter is the synchronous, non-reentrant statechart engine. Use it
// directly for single-threaded hosts, or wrap it in a Driver for concurrent
// ones.
type Interpreter = core.Interpreter

// Option configures an Interpreter at construction.
type Option = core.Option

// NewInterpreter constructs an Interpreter ready to execute chart. It does
// not validate chart; charts built via the builder package or
// primitives.NewStatechart are validated there.
func NewInterpreter(chart *Statechart, opts ...Option) (*Interpreter, error) {
	return core.NewInterpreter(chart, opts...)
}

// Driver runs an Interpreter concurrently, forwarding events from an inbox
// channel and/or registered EventSources and publishing each MacroStep to
// registered StepListeners.
type (
	Driver       = runtime.Driver
	EventSource  = runtime.EventSource
	StepListener = runtime.StepListener
	DriverOption = runtime.DriverOption
)

// NewDriver wraps in in a Driver; call Start to begin running it.
func NewDriver(in *Interpreter, opts ...DriverOption) *Driver {
	return runtime.NewDriver(in, opts...)
}
