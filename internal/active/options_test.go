package active

import (
	"reflect"
	"testing"

	"github.com/epiforge/activeexpr/expr"
)

func TestOptions_EqualIgnoresSetOrder(t *testing.T) {
	intType := reflect.TypeOf(0)
	strType := reflect.TypeOf("")

	a := &Options{
		DisposeConstructedTypes: []ConstructedTypeKey{
			{Type: intType, ParamTypes: nil},
			{Type: strType, ParamTypes: []reflect.Type{intType}},
		},
	}
	b := &Options{
		DisposeConstructedTypes: []ConstructedTypeKey{
			{Type: strType, ParamTypes: []reflect.Type{intType}},
			{Type: intType, ParamTypes: nil},
		},
	}

	if !a.Equal(b) {
		t.Fatalf("expected options with reordered set entries to compare equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("expected options with reordered set entries to hash equal")
	}
}

func TestOptions_EqualDetectsDifference(t *testing.T) {
	a := &Options{DisposeStaticMethodReturnValues: true}
	b := &Options{DisposeStaticMethodReturnValues: false}

	if a.Equal(b) {
		t.Fatalf("expected differing options to compare unequal")
	}
}

func TestOptions_ShouldDisposeConstructed(t *testing.T) {
	intType := reflect.TypeOf(0)
	o := &Options{DisposeConstructedTypes: []ConstructedTypeKey{{Type: intType, ParamTypes: nil}}}

	if !o.shouldDisposeConstructed(intType, nil) {
		t.Fatalf("expected matching constructed type to require disposal")
	}
	if o.shouldDisposeConstructed(reflect.TypeOf(""), nil) {
		t.Fatalf("expected non-matching type to not require disposal")
	}
}

func TestOptions_ShouldDisposeMethodReturn(t *testing.T) {
	declType := reflect.TypeOf(struct{}{})
	method := &expr.MethodInfo{Name: "Load", DeclaringType: declType}

	o := &Options{DisposeMethodReturnValues: []*expr.MethodInfo{method}}
	if !o.shouldDisposeMethodReturn(method) {
		t.Fatalf("expected listed method to require disposal")
	}

	other := &expr.MethodInfo{Name: "Save", DeclaringType: declType}
	if o.shouldDisposeMethodReturn(other) {
		t.Fatalf("expected unlisted method to not require disposal")
	}

	staticOpt := &Options{DisposeStaticMethodReturnValues: true}
	staticMethod := &expr.MethodInfo{Name: "Parse", DeclaringType: declType, IsStatic: true}
	if !staticOpt.shouldDisposeMethodReturn(staticMethod) {
		t.Fatalf("expected static-method broad opt-in to require disposal")
	}
}

func TestOptions_NilIsComparable(t *testing.T) {
	var o *Options
	if o.shouldDisposeConstructed(reflect.TypeOf(0), nil) {
		t.Fatalf("nil options should never require disposal")
	}
	if o.Hash() == "" {
		t.Fatalf("expected a stable non-empty hash for nil options")
	}
}
