package extensibility

import (
	"testing"

	"github.com/comalice/statechartx/internal/primitives"
)

func TestClosureEvaluatorEvalGuardFunc(t *testing.T) {
	ctx := primitives.NewContext()
	event := primitives.NewEvent("test", nil)
	called := false
	guard := func(c *primitives.Context, e primitives.Event) bool {
		called = true
		return true
	}
	e := ClosureEvaluator{}
	if !e.EvalGuard(ctx, guard, event) {
		t.Error("func guard returned false")
	}
	if !called {
		t.Error("guard func not called")
	}
}

func TestClosureEvaluatorEvalGuardNil(t *testing.T) {
	e := ClosureEvaluator{}
	if !e.EvalGuard(primitives.NewContext(), nil, primitives.NewEvent("test", nil)) {
		t.Error("nil guard should be true")
	}
}

func TestClosureEvaluatorEvalGuardUnrecognized(t *testing.T) {
	e := ClosureEvaluator{}
	if e.EvalGuard(primitives.NewContext(), "unknown", primitives.NewEvent("test", nil)) {
		t.Error("unrecognized guard type should fail closed")
	}
}

func TestClosureEvaluatorRunActionVariants(t *testing.T) {
	e := ClosureEvaluator{}
	ctx := primitives.NewContext()
	event := primitives.NewEvent("test", nil)

	ran := false
	if _, err := e.RunAction(ctx, func(c *primitives.Context, ev primitives.Event) { ran = true }, event); err != nil || !ran {
		t.Errorf("plain action: ran=%v err=%v", ran, err)
	}

	raised, err := e.RunAction(ctx, func(c *primitives.Context, ev primitives.Event) []primitives.Event {
		return []primitives.Event{primitives.NewEvent("raised", nil)}
	}, event)
	if err != nil || len(raised) != 1 || raised[0].Name != "raised" {
		t.Errorf("raising action: raised=%v err=%v", raised, err)
	}

	if _, err := e.RunAction(ctx, func(c *primitives.Context, ev primitives.Event) error {
		return errBoom
	}, event); err != errBoom {
		t.Errorf("erroring action: err=%v", err)
	}
}

func TestClosureEvaluatorEvalPredicate(t *testing.T) {
	e := ClosureEvaluator{}
	ctx := primitives.NewContext()
	pred := primitives.Predicate{Description: "always", Check: func(c *primitives.Context, ev *primitives.Event) bool { return true }}
	if !e.EvalPredicate(ctx, pred, nil) {
		t.Error("expected predicate to hold")
	}
	if !e.EvalPredicate(ctx, primitives.Predicate{}, nil) {
		t.Error("nil Check should default to holding")
	}
}

func TestExpressionEvaluatorNumericComparisons(t *testing.T) {
	e := NewExpressionEvaluator()
	ctx := primitives.NewContext()
	ctx.Set("temp", 30.0)
	event := primitives.NewEvent("test", nil)

	if !e.EvalGuard(ctx, "temp == 30", event) {
		t.Error("30 == 30")
	}
	if e.EvalGuard(ctx, "temp == 31", event) {
		t.Error("30 != 31")
	}
	if !e.EvalGuard(ctx, "temp > 20", event) {
		t.Error("30 > 20")
	}
	if !e.EvalGuard(ctx, "temp < 40", event) {
		t.Error("30 < 40")
	}
	if !e.EvalGuard(ctx, "temp != 31", event) {
		t.Error("30 != 31")
	}
}

func TestExpressionEvaluatorBoolAndMissingKey(t *testing.T) {
	e := NewExpressionEvaluator()
	ctx := primitives.NewContext()
	ctx.Set("loggedIn", true)
	event := primitives.NewEvent("test", nil)

	if !e.EvalGuard(ctx, "loggedIn == true", event) {
		t.Error("loggedIn == true")
	}
	if e.EvalGuard(ctx, "missing == true", event) {
		t.Error("missing key should fail closed")
	}
}

func TestExpressionEvaluatorMalformed(t *testing.T) {
	e := NewExpressionEvaluator()
	ctx := primitives.NewContext()
	event := primitives.NewEvent("test", nil)
	if e.EvalGuard(ctx, "not an expression with too many words", event) {
		t.Error("malformed expression should fail closed")
	}
}

func TestExpressionEvaluatorFallsThroughToClosure(t *testing.T) {
	e := NewExpressionEvaluator()
	ctx := primitives.NewContext()
	event := primitives.NewEvent("test", nil)
	called := false
	guard := func(c *primitives.Context, ev primitives.Event) bool {
		called = true
		return true
	}
	if !e.EvalGuard(ctx, guard, event) || !called {
		t.Error("non-string guard should fall through to ClosureEvaluator")
	}
}

func TestExpressionEvaluatorPredicateUsesDescription(t *testing.T) {
	e := NewExpressionEvaluator()
	ctx := primitives.NewContext()
	ctx.Set("ready", true)
	pred := primitives.Predicate{Description: "ready == true"}
	if !e.EvalPredicate(ctx, pred, nil) {
		t.Error("expected description-as-expression predicate to hold")
	}
}

type boomError struct{}

func (boomError) Error() string { return "boom" }

var errBoom = boomError{}
