package active

import (
	"reflect"
	"testing"

	"github.com/epiforge/activeexpr/expr"
	"github.com/epiforge/activeexpr/notify"
)

// testModel is a PropertyChanged/CollectionChanged source used across
// this package's tests to exercise Member's instance subscription.
type testModel struct {
	Name    string
	Tags    []string
	changed notify.Broadcaster
}

func (m *testModel) OnPropertyChanged(h notify.PropertyChangedHandler) (unsubscribe func()) {
	return m.changed.Subscribe(h)
}

func (m *testModel) setName(name string) {
	m.Name = name
	m.changed.Fire("Name")
}

func newTestContext() *Context {
	return NewContext(expr.DefaultEq{})
}

func mustCreate(t *testing.T, ctx *Context, e expr.Expression, opts *Options) *Node {
	t.Helper()
	n, err := Create(ctx, e, opts, false)
	if err != nil {
		t.Fatalf("Create(%v) failed: %v", e, err)
	}
	return n
}

func constInt(v int) *expr.Constant {
	return &expr.Constant{ValueType: reflect.TypeOf(0), Value: v}
}

func constBool(v bool) *expr.Constant {
	return &expr.Constant{ValueType: reflect.TypeOf(false), Value: v}
}

func TestCreate_ConstantEvaluatesImmediately(t *testing.T) {
	ctx := newTestContext()
	n := mustCreate(t, ctx, constInt(42), nil)
	if n.Value() != 42 {
		t.Fatalf("expected Value 42, got %v", n.Value())
	}
	if n.Fault() != nil {
		t.Fatalf("expected no fault, got %v", n.Fault())
	}
}

func TestCreate_InternsStructurallyEqualExpressions(t *testing.T) {
	ctx := newTestContext()
	e1 := &expr.Binary{Left: constInt(1), Right: constInt(2), Op: expr.BinaryAdd, ResultType: reflect.TypeOf(0)}
	e2 := &expr.Binary{Left: constInt(1), Right: constInt(2), Op: expr.BinaryAdd, ResultType: reflect.TypeOf(0)}

	n1 := mustCreate(t, ctx, e1, nil)
	n2 := mustCreate(t, ctx, e2, nil)

	if n1 != n2 {
		t.Fatalf("expected structurally equal expressions to intern to the same node")
	}
	n1.Dispose()
	n2.Dispose()
}

func TestCreate_DifferentOptionsDoNotIntern(t *testing.T) {
	ctx := newTestContext()
	e1 := constInt(1)
	e2 := constInt(1)

	n1 := mustCreate(t, ctx, e1, nil)
	n2 := mustCreate(t, ctx, e2, &Options{DisposeStaticMethodReturnValues: true})

	if n1 == n2 {
		t.Fatalf("expected different options to produce distinct nodes")
	}
	n1.Dispose()
	n2.Dispose()
}

func TestDispose_RemovesFromCacheOnLastRelease(t *testing.T) {
	ctx := newTestContext()
	e := constInt(7)
	n1 := mustCreate(t, ctx, e, nil)
	n2 := mustCreate(t, ctx, e, nil)

	if n1 != n2 {
		t.Fatalf("expected same node for repeated Create")
	}
	if n1.Dispose() {
		t.Fatalf("expected first Dispose (refcount 2->1) to not remove the node")
	}
	if !n2.Dispose() {
		t.Fatalf("expected last Dispose (refcount 1->0) to remove the node")
	}

	n3 := mustCreate(t, ctx, constInt(7), nil)
	if n3 == n1 {
		t.Fatalf("expected a fresh node after the prior one was fully disposed")
	}
	n3.Dispose()
}

func TestBinary_RecomputesWhenChildChanges(t *testing.T) {
	ctx := newTestContext()
	model := &testModel{Name: "a"}
	memberExpr := &expr.Member{
		Source:     &expr.Parameter{Name: "m", ParamType: reflect.TypeOf(model), Value: model},
		Info:       &expr.MemberInfo{Name: "Name", DeclaringType: reflect.TypeOf(model), IsField: true},
		ResultType: reflect.TypeOf(""),
	}
	e := &expr.Binary{
		Left:       memberExpr,
		Right:      &expr.Constant{ValueType: reflect.TypeOf(""), Value: "a"},
		Op:         expr.BinaryEqual,
		ResultType: reflect.TypeOf(false),
	}
	n := mustCreate(t, ctx, e, nil)
	if n.Value() != true {
		t.Fatalf("expected initial comparison true, got %v", n.Value())
	}

	model.setName("b")
	if n.Value() != false {
		t.Fatalf("expected recomputed comparison false after source change, got %v", n.Value())
	}
	n.Dispose()
}

// TestAndAlso_ShortCircuitsWithoutForcingRight verifies that a false left
// operand never forces the right operand: Right reads a nonexistent field
// and would fault if evaluated, so the overall AndAlso only comes back
// fault-free if Right's deferred evaluation was truly skipped.
func TestAndAlso_ShortCircuitsWithoutForcingRight(t *testing.T) {
	ctx := newTestContext()
	model := &testModel{Name: "a"}
	faultingRight := &expr.Member{
		Source:     &expr.Parameter{Name: "m", ParamType: reflect.TypeOf(model), Value: model},
		Info:       &expr.MemberInfo{Name: "NoSuchField", DeclaringType: reflect.TypeOf(model), IsField: true},
		ResultType: reflect.TypeOf(""),
	}
	e := &expr.AndAlso{Left: constBool(false), Right: &expr.Binary{
		Left:       faultingRight,
		Right:      &expr.Constant{ValueType: reflect.TypeOf(""), Value: "x"},
		Op:         expr.BinaryEqual,
		ResultType: reflect.TypeOf(false),
	}}
	n := mustCreate(t, ctx, e, nil)

	if n.Value() != false {
		t.Fatalf("expected AndAlso with false left to short-circuit to false, got %v", n.Value())
	}
	if n.Fault() != nil {
		t.Fatalf("expected no fault: right operand's fault must not surface when short-circuited, got %v", n.Fault())
	}
	n.Dispose()
}

func TestFault_PropagatesFromChildInOperandOrder(t *testing.T) {
	ctx := newTestContext()
	model := &testModel{Name: "a"}
	badMember := &expr.Member{
		Source:     &expr.Parameter{Name: "m", ParamType: reflect.TypeOf(model), Value: model},
		Info:       &expr.MemberInfo{Name: "NoSuchField", DeclaringType: reflect.TypeOf(model), IsField: true},
		ResultType: reflect.TypeOf(""),
	}
	e := &expr.Binary{
		Left:       badMember,
		Right:      &expr.Constant{ValueType: reflect.TypeOf(""), Value: "x"},
		Op:         expr.BinaryEqual,
		ResultType: reflect.TypeOf(false),
	}
	n := mustCreate(t, ctx, e, nil)
	if n.Fault() == nil {
		t.Fatalf("expected a fault reading a nonexistent field")
	}
	n.Dispose()
}

func TestSubscribe_FiresOnValueChange(t *testing.T) {
	ctx := newTestContext()
	model := &testModel{Name: "x"}
	e := &expr.Member{
		Source:     &expr.Parameter{Name: "m", ParamType: reflect.TypeOf(model), Value: model},
		Info:       &expr.MemberInfo{Name: "Name", DeclaringType: reflect.TypeOf(model), IsField: true},
		ResultType: reflect.TypeOf(""),
	}
	n := mustCreate(t, ctx, e, nil)

	var got []string
	unsubscribe := n.Subscribe(func(prop string) { got = append(got, prop) })

	model.setName("y")
	if len(got) != 1 || got[0] != "Value" {
		t.Fatalf("expected one Value notification, got %v", got)
	}

	unsubscribe()
	model.setName("z")
	if len(got) != 1 {
		t.Fatalf("expected no further notifications after unsubscribe, got %v", got)
	}
	n.Dispose()
}
