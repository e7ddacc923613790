package active

import (
	"reflect"
	"testing"

	"github.com/epiforge/activeexpr/expr"
)

func TestNewArrayInit_BuildsSliceFromInitializers(t *testing.T) {
	ctx := newTestContext()
	e := &expr.NewArrayInit{
		ElementType:  reflect.TypeOf(0),
		Initializers: []expr.Expression{constInt(1), constInt(2), constInt(3)},
	}
	n := mustCreate(t, ctx, e, nil)
	defer n.Dispose()

	got, ok := n.Value().([]int)
	if !ok {
		t.Fatalf("expected []int, got %T", n.Value())
	}
	want := []int{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNewArrayInit_RecomputesWhenInitializerChanges(t *testing.T) {
	ctx := newTestContext()
	model := &testModel{Name: "a"}
	member := &expr.Member{
		Source:     &expr.Parameter{Name: "m", ParamType: reflect.TypeOf(model), Value: model},
		Info:       &expr.MemberInfo{Name: "Name", DeclaringType: reflect.TypeOf(model), IsField: true},
		ResultType: reflect.TypeOf(""),
	}
	e := &expr.NewArrayInit{
		ElementType:  reflect.TypeOf(""),
		Initializers: []expr.Expression{member, &expr.Constant{ValueType: reflect.TypeOf(""), Value: "z"}},
	}
	n := mustCreate(t, ctx, e, nil)
	defer n.Dispose()

	if got := n.Value().([]string); got[0] != "a" || got[1] != "z" {
		t.Fatalf("expected [a z], got %v", got)
	}
	model.setName("b")
	if got := n.Value().([]string); got[0] != "b" {
		t.Fatalf("expected recompute to [b z], got %v", got)
	}
}
