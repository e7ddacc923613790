package expr

import (
	"reflect"
	"strings"
)

// New is a constructor invocation. ResultType is the
// constructed type; it together with Constructor.ParamTypes forms the
// Options.disposeConstructedTypes lookup key.
type New struct {
	Constructor *MethodInfo
	Arguments   []Expression
	ResultType  reflect.Type
}

func (n *New) expressionNode() {}
func (n *New) Kind() Kind      { return KindNew }
func (n *New) Type() reflect.Type {
	return n.ResultType
}
func (n *New) String() string {
	args := make([]string, len(n.Arguments))
	for i, a := range n.Arguments {
		args[i] = a.String()
	}
	return "new " + n.ResultType.Name() + "(" + strings.Join(args, ", ") + ")"
}
