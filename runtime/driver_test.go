package runtime

import (
	"testing"
	"time"

	"github.com/comalice/statechartx/internal/core"
	"github.com/comalice/statechartx/internal/primitives"
)

func buildToggleChart(t *testing.T) *primitives.Statechart {
	t.Helper()
	off := primitives.NewState("off", primitives.AtomicKind)
	on := primitives.NewState("on", primitives.AtomicKind)
	off.Transitions = []*primitives.Transition{primitives.NewTransition("off", "on", "flip")}
	on.Transitions = []*primitives.Transition{primitives.NewTransition("on", "off", "flip")}

	root := primitives.NewState("root", primitives.CompoundKind)
	root.Initial = "off"
	root.Children = []*primitives.State{off, on}

	sc, err := primitives.NewStatechart("toggle", root)
	if err != nil {
		t.Fatalf("NewStatechart: %v", err)
	}
	return sc
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func TestDriverStartsInInitialConfiguration(t *testing.T) {
	sc := buildToggleChart(t)
	in, err := core.NewInterpreter(sc)
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}

	d := NewDriver(in, WithTick(5*time.Millisecond))
	d.Start()
	defer d.Stop()

	// The Interpreter only performs its initial micro step on the first
	// ExecuteOnce the Driver's tick triggers, not at construction, so the
	// initial configuration arrives asynchronously rather than immediately.
	deadline := time.After(500 * time.Millisecond)
	for {
		cfg := d.Configuration()
		if contains(cfg, "off") {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for off, last configuration %v", cfg)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestDriverSendDrivesTransition(t *testing.T) {
	sc := buildToggleChart(t)
	in, err := core.NewInterpreter(sc)
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}

	var steps []*core.MacroStep
	d := NewDriver(in,
		WithTick(5*time.Millisecond),
		WithStepListener(func(s *core.MacroStep) { steps = append(steps, s) }),
	)
	d.Start()
	defer d.Stop()

	if err := d.Send(primitives.NewEvent("flip", nil)); err != nil {
		t.Fatalf("Send: %v", err)
	}

	deadline := time.After(500 * time.Millisecond)
	for {
		cfg := d.Configuration()
		if contains(cfg, "on") {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for on, last configuration %v", cfg)
		case <-time.After(5 * time.Millisecond):
		}
	}

	if len(steps) == 0 {
		t.Error("expected at least one MacroStep to be published")
	}
}

func TestDriverSendFeedsThroughEventSource(t *testing.T) {
	sc := buildToggleChart(t)
	in, err := core.NewInterpreter(sc)
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}

	ch := make(chan primitives.Event, 1)
	d := NewDriver(in,
		WithTick(5*time.Millisecond),
		WithEventSource(NewChannelEventSource(ch)),
	)
	d.Start()
	defer d.Stop()

	ch <- primitives.NewEvent("flip", nil)

	deadline := time.After(500 * time.Millisecond)
	for {
		cfg := d.Configuration()
		if contains(cfg, "on") {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for on, last configuration %v", cfg)
		case <-time.After(5 * time.Millisecond):
		}
	}
}
