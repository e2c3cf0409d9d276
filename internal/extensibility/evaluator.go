// Package extensibility provides pluggable core.Evaluator implementations:
// ClosureEvaluator, the documented default that dispatches plain Go
// closures, and ExpressionEvaluator, which evaluates small string
// expressions against a Context for callers building statecharts from data
// rather than Go source.
package extensibility

import (
	"strconv"
	"strings"

	"github.com/comalice/statechartx/internal/primitives"
)

// ClosureEvaluator implements core.Evaluator by type-switching GuardRef,
// ActionRef and Predicate.Check as plain Go closures. It is the same
// dispatch core.NewInterpreter falls back to when no Evaluator option is
// given; it exists as an exported type so callers that also want to wrap or
// delegate to it (e.g. chaining with ExpressionEvaluator) have something to
// embed.
type ClosureEvaluator struct{}

// NewClosureEvaluator constructs a ClosureEvaluator.
func NewClosureEvaluator() *ClosureEvaluator { return &ClosureEvaluator{} }

// EvalGuard reports whether guard holds. A nil guard always holds; an
// unrecognized guard type fails closed.
func (ClosureEvaluator) EvalGuard(ctx *primitives.Context, guard primitives.GuardRef, event primitives.Event) bool {
	if guard == nil {
		return true
	}
	if g, ok := guard.(func(*primitives.Context, primitives.Event) bool); ok {
		return g(ctx, event)
	}
	return false
}

// RunAction executes action, collecting any events it raises.
func (ClosureEvaluator) RunAction(ctx *primitives.Context, action primitives.ActionRef, event primitives.Event) ([]primitives.Event, error) {
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

// EvalPredicate evaluates pred.Check directly; a Predicate with a nil Check
// always holds.
func (ClosureEvaluator) EvalPredicate(ctx *primitives.Context, pred primitives.Predicate, event *primitives.Event) bool {
	if pred.Check == nil {
		return true
	}
	return pred.Check(ctx, event)
}

// ExpressionEvaluator evaluates guards written as small string expressions
// of the form "key op value" (e.g. "temp > 30", "loggedIn == true") against
// the interpreter's Context, for statecharts assembled from data rather
// than Go source. Actions are not expressible this way and fall through to
// ClosureEvaluator so the two can be composed freely; an ExpressionEvaluator
// zero value is ready to use.
type ExpressionEvaluator struct {
	actions ClosureEvaluator
}

// NewExpressionEvaluator constructs an ExpressionEvaluator.
func NewExpressionEvaluator() *ExpressionEvaluator { return &ExpressionEvaluator{} }

// EvalGuard evaluates guard as a closure if it is one, else as a "key op
// value" string expression over ctx. Malformed or unresolvable expressions
// fail closed.
func (e *ExpressionEvaluator) EvalGuard(ctx *primitives.Context, guard primitives.GuardRef, event primitives.Event) bool {
	if guard == nil {
		return true
	}
	str, ok := guard.(string)
	if !ok {
		return e.actions.EvalGuard(ctx, guard, event)
	}
	return evalExpression(ctx, str)
}

// RunAction delegates to ClosureEvaluator; expressions have no side effects
// to run as actions.
func (e *ExpressionEvaluator) RunAction(ctx *primitives.Context, action primitives.ActionRef, event primitives.Event) ([]primitives.Event, error) {
	return e.actions.RunAction(ctx, action, event)
}

// EvalPredicate evaluates pred as a closure, or as a "key op value" string
// expression when pred.Check is nil and pred.Description itself is the
// expression — lets data-defined contracts reuse the same mini-language as
// guards.
func (e *ExpressionEvaluator) EvalPredicate(ctx *primitives.Context, pred primitives.Predicate, event *primitives.Event) bool {
	if pred.Check != nil {
		return pred.Check(ctx, event)
	}
	return evalExpression(ctx, pred.Description)
}

func evalExpression(ctx *primitives.Context, expr string) bool {
	parts := strings.Fields(expr)
	if len(parts) != 3 {
		return false
	}
	key, op, valStr := parts[0], parts[1], parts[2]

	v, hasKey := ctx.Get(key)
	if !hasKey {
		return false
	}

	switch op {
	case "==":
		return compareEqual(v, valStr)
	case "!=":
		return !compareEqual(v, valStr)
	case ">":
		return compareNumeric(v, valStr, func(a, b float64) bool { return a > b })
	case "<":
		return compareNumeric(v, valStr, func(a, b float64) bool { return a < b })
	case ">=":
		return compareNumeric(v, valStr, func(a, b float64) bool { return a >= b })
	case "<=":
		return compareNumeric(v, valStr, func(a, b float64) bool { return a <= b })
	default:
		return false
	}
}

func compareEqual(v any, valStr string) bool {
	switch valStr {
	case "true":
		return v == true
	case "false":
		return v == false
	case "nil":
		return v == nil
	}
	if f, err := strconv.ParseFloat(valStr, 64); err == nil {
		switch n := v.(type) {
		case float64:
			return n == f
		case int:
			return float64(n) == f
		}
	}
	if s, ok := v.(string); ok {
		return s == valStr
	}
	return false
}

func compareNumeric(v any, valStr string, cmp func(a, b float64) bool) bool {
	f, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return false
	}
	switch n := v.(type) {
	case float64:
		return cmp(n, f)
	case int:
		return cmp(float64(n), f)
	}
	return false
}
