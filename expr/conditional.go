package expr

import "reflect"

// Conditional is the ternary node (`test ? ifTrue : ifFalse`). IfTrue and
// IfFalse are constructed with deferEvaluation=true.
type Conditional struct {
	Test, IfTrue, IfFalse Expression
	ResultType            reflect.Type
}

func (c *Conditional) expressionNode() {}
func (c *Conditional) Kind() Kind      { return KindConditional }
func (c *Conditional) Type() reflect.Type {
	return c.ResultType
}
func (c *Conditional) String() string {
	return "(" + c.Test.String() + " ? " + c.IfTrue.String() + " : " + c.IfFalse.String() + ")"
}
