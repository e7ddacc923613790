package active

import (
	"reflect"
	"strings"
	"testing"

	"github.com/epiforge/activeexpr/expr"
)

type point struct {
	X, Y int
}

func newPoint(x, y int) *point { return &point{X: x, Y: y} }

func TestNew_InvokesConstructorFunc(t *testing.T) {
	ctx := newTestContext()
	e := &expr.New{
		Constructor: &expr.MethodInfo{
			Name:          "newPoint",
			DeclaringType: reflect.TypeOf(point{}),
			ParamTypes:    []reflect.Type{reflect.TypeOf(0), reflect.TypeOf(0)},
			ReturnType:    reflect.TypeOf(&point{}),
			Func:          newPoint,
		},
		Arguments:  []expr.Expression{constInt(3), constInt(4)},
		ResultType: reflect.TypeOf(&point{}),
	}
	n := mustCreate(t, ctx, e, nil)
	defer n.Dispose()

	p, ok := n.Value().(*point)
	if !ok || p.X != 3 || p.Y != 4 {
		t.Fatalf("expected constructed *point{3,4}, got %#v", n.Value())
	}
	if n.Fault() != nil {
		t.Fatalf("unexpected fault: %v", n.Fault())
	}
}

func TestNew_NoFuncOnNilInstanceFaults(t *testing.T) {
	ctx := newTestContext()
	e := &expr.New{
		Constructor: &expr.MethodInfo{
			Name:          "newPoint",
			DeclaringType: reflect.TypeOf(point{}),
			ReturnType:    reflect.TypeOf(&point{}),
		},
		ResultType: reflect.TypeOf(&point{}),
	}
	n := mustCreate(t, ctx, e, nil)
	defer n.Dispose()

	if n.Fault() == nil {
		t.Fatalf("expected fault: no constructor Func and no instance for reflect to resolve against")
	}
	if !strings.Contains(n.Fault().Error(), expr.KindNew.String()) {
		t.Fatalf("expected fault tagged with KindNew, got %v", n.Fault())
	}
}

func TestNew_RecomputesWhenArgumentChanges(t *testing.T) {
	ctx := newTestContext()
	model := &testModel{Name: "a"}
	arg := &expr.Member{
		Source:     &expr.Parameter{Name: "m", ParamType: reflect.TypeOf(model), Value: model},
		Info:       &expr.MemberInfo{Name: "Name", DeclaringType: reflect.TypeOf(model), IsField: true},
		ResultType: reflect.TypeOf(""),
	}
	e := &expr.New{
		Constructor: &expr.MethodInfo{
			Name:          "newTagged",
			DeclaringType: reflect.TypeOf(""),
			ReturnType:    reflect.TypeOf(""),
			Func:          func(s string) string { return "<" + s + ">" },
		},
		Arguments:  []expr.Expression{arg},
		ResultType: reflect.TypeOf(""),
	}
	n := mustCreate(t, ctx, e, nil)
	defer n.Dispose()

	if n.Value() != "<a>" {
		t.Fatalf("expected <a>, got %v", n.Value())
	}
	model.setName("b")
	if n.Value() != "<b>" {
		t.Fatalf("expected recompute to <b>, got %v", n.Value())
	}
}
