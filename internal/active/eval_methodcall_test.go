package active

import (
	"reflect"
	"testing"

	"github.com/epiforge/activeexpr/expr"
)

type greeter struct{ prefix string }

func (g *greeter) Greet(name string) string { return g.prefix + name }

func TestMethodCall_InstanceMethod(t *testing.T) {
	ctx := newTestContext()
	g := &greeter{prefix: "hi "}
	e := &expr.MethodCall{
		Object: &expr.Parameter{Name: "g", ParamType: reflect.TypeOf(g), Value: g},
		Method: &expr.MethodInfo{
			Name:          "Greet",
			DeclaringType: reflect.TypeOf(g),
			ParamTypes:    []reflect.Type{reflect.TypeOf("")},
			ReturnType:    reflect.TypeOf(""),
		},
		Arguments: []expr.Expression{&expr.Constant{ValueType: reflect.TypeOf(""), Value: "bob"}},
	}
	n := mustCreate(t, ctx, e, nil)
	defer n.Dispose()

	if n.Value() != "hi bob" {
		t.Fatalf("expected \"hi bob\", got %v", n.Value())
	}
}

func TestMethodCall_StaticMethod(t *testing.T) {
	ctx := newTestContext()
	e := &expr.MethodCall{
		Method: &expr.MethodInfo{
			Name:       "double",
			IsStatic:   true,
			ReturnType: reflect.TypeOf(0),
			Func:       func(n int) int { return n * 2 },
		},
		Arguments: []expr.Expression{constInt(21)},
	}
	n := mustCreate(t, ctx, e, nil)
	defer n.Dispose()

	if n.Value() != 42 {
		t.Fatalf("expected 42, got %v", n.Value())
	}
}

func TestMethodCall_NoMethodFaults(t *testing.T) {
	ctx := newTestContext()
	g := &greeter{}
	e := &expr.MethodCall{
		Object: &expr.Parameter{Name: "g", ParamType: reflect.TypeOf(g), Value: g},
		Method: &expr.MethodInfo{
			Name:          "NoSuchMethod",
			DeclaringType: reflect.TypeOf(g),
			ReturnType:    reflect.TypeOf(""),
		},
	}
	n := mustCreate(t, ctx, e, nil)
	defer n.Dispose()

	if n.Fault() == nil {
		t.Fatalf("expected fault for unresolvable method")
	}
}

// TestMethodCall_FaultPropagatesFromArgument verifies that a faulting
// argument's Fault dominates the whole call, the same fault-dominance
// path any other eager (non-short-circuit) node relies on for its
// children — MethodCall never resolves or invokes the method at all
// once an argument is already faulted.
func TestMethodCall_FaultPropagatesFromArgument(t *testing.T) {
	ctx := newTestContext()
	g := &greeter{prefix: "hi "}
	badArg := &expr.Member{
		Source: nil,
		Info: &expr.MemberInfo{
			Name:          "Nope",
			DeclaringType: reflect.TypeOf(0),
			IsField:       true,
		},
		ResultType: reflect.TypeOf(0),
	}
	e := &expr.MethodCall{
		Object: &expr.Parameter{Name: "g", ParamType: reflect.TypeOf(g), Value: g},
		Method: &expr.MethodInfo{
			Name:          "Greet",
			DeclaringType: reflect.TypeOf(g),
			ReturnType:    reflect.TypeOf(""),
		},
		Arguments: []expr.Expression{
			&expr.Constant{ValueType: reflect.TypeOf(""), Value: "ok"},
			badArg,
		},
	}
	n := mustCreate(t, ctx, e, nil)
	defer n.Dispose()

	if n.Fault() == nil {
		t.Fatalf("expected the faulting argument's Fault to dominate the call")
	}
}

func TestInvocation_CallsTargetDelegate(t *testing.T) {
	ctx := newTestContext()
	var fn any = func(a, b int) int { return a + b }
	e := &expr.Invocation{
		Target:     &expr.Parameter{Name: "fn", ParamType: reflect.TypeOf(fn), Value: fn},
		Arguments:  []expr.Expression{constInt(2), constInt(3)},
		ResultType: reflect.TypeOf(0),
	}
	n := mustCreate(t, ctx, e, nil)
	defer n.Dispose()

	if n.Value() != 5 {
		t.Fatalf("expected 5, got %v", n.Value())
	}
}

func TestInvocation_NonFuncTargetFaults(t *testing.T) {
	ctx := newTestContext()
	e := &expr.Invocation{
		Target:     constInt(7),
		Arguments:  nil,
		ResultType: reflect.TypeOf(0),
	}
	n := mustCreate(t, ctx, e, nil)
	defer n.Dispose()

	if n.Fault() == nil {
		t.Fatalf("expected fault: target is not callable")
	}
}
