package expr

import (
	"reflect"
	"strings"
)

// MethodCall is an instance or static method invocation. Object is nil
// for a static method call.
type MethodCall struct {
	Object    Expression
	Method    *MethodInfo
	Arguments []Expression
}

func (mc *MethodCall) expressionNode() {}
func (mc *MethodCall) Kind() Kind      { return KindMethodCall }
func (mc *MethodCall) Type() reflect.Type {
	return mc.Method.ReturnType
}
func (mc *MethodCall) String() string {
	args := make([]string, len(mc.Arguments))
	for i, a := range mc.Arguments {
		args[i] = a.String()
	}
	receiver := ""
	if mc.Object != nil {
		receiver = mc.Object.String() + "."
	}
	return receiver + mc.Method.Name + "(" + strings.Join(args, ", ") + ")"
}

// Invocation calls a delegate/closure value produced by Target, e.g. a
// lambda captured in a Member or Parameter.
type Invocation struct {
	Target     Expression
	Arguments  []Expression
	ResultType reflect.Type
}

func (inv *Invocation) expressionNode() {}
func (inv *Invocation) Kind() Kind      { return KindInvocation }
func (inv *Invocation) Type() reflect.Type {
	return inv.ResultType
}
func (inv *Invocation) String() string {
	args := make([]string, len(inv.Arguments))
	for i, a := range inv.Arguments {
		args[i] = a.String()
	}
	return inv.Target.String() + "(" + strings.Join(args, ", ") + ")"
}
