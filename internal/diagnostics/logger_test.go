package diagnostics

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestStepStartedWritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zerolog.DebugLevel)
	l.StepStarted("abc-123", "toggle")

	var fields map[string]any
	if err := json.Unmarshal(buf.Bytes(), &fields); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if fields["message"] != "step_started" {
		t.Errorf("message = %v, want step_started", fields["message"])
	}
	if fields["interpreter_id"] != "abc-123" {
		t.Errorf("interpreter_id = %v, want abc-123", fields["interpreter_id"])
	}
	if fields["event"] != "toggle" {
		t.Errorf("event = %v, want toggle", fields["event"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zerolog.ErrorLevel)
	l.StepStarted("x", "y") // Debug level, should be filtered out
	if buf.Len() != 0 {
		t.Errorf("expected debug-level event to be filtered, got %q", buf.String())
	}

	l.ContractViolation("x", "precondition", "s1", "must be ready")
	if !strings.Contains(buf.String(), "contract_violation") {
		t.Error("expected error-level event to pass the filter")
	}
}

func TestNopDiscardsEverything(t *testing.T) {
	l := Nop()
	l.PropertyViolation("x", "never-on") // must not panic
}
