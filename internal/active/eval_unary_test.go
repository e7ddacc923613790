package active

import (
	"reflect"
	"testing"

	"github.com/epiforge/activeexpr/expr"
)

func TestUnary_Negate(t *testing.T) {
	ctx := newTestContext()
	e := &expr.Unary{Operand: constInt(5), Op: expr.UnaryNegate, ResultType: reflect.TypeOf(0)}
	n := mustCreate(t, ctx, e, nil)
	if n.Value() != int64(-5) {
		t.Fatalf("expected -5, got %v (%T)", n.Value(), n.Value())
	}
	n.Dispose()
}

func TestUnary_Not(t *testing.T) {
	ctx := newTestContext()
	e := &expr.Unary{Operand: constBool(false), Op: expr.UnaryNot, ResultType: reflect.TypeOf(false)}
	n := mustCreate(t, ctx, e, nil)
	if n.Value() != true {
		t.Fatalf("expected !false == true, got %v", n.Value())
	}
	n.Dispose()
}

func TestUnary_NotOnNonBoolFaults(t *testing.T) {
	ctx := newTestContext()
	e := &expr.Unary{Operand: constInt(1), Op: expr.UnaryNot, ResultType: reflect.TypeOf(false)}
	n := mustCreate(t, ctx, e, nil)
	if n.Fault() == nil {
		t.Fatalf("expected a fault applying ! to a non-bool operand")
	}
	n.Dispose()
}
