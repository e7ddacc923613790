package expr

import "reflect"

// Coalesce is the null-coalescing node (`left ?? right`). Right is always
// constructed with deferEvaluation=true. Conversion,
// when present, is applied to whichever side supplies the result.
type Coalesce struct {
	Left, Right Expression
	Conversion  *MethodInfo
	ResultType  reflect.Type
}

func (c *Coalesce) expressionNode() {}
func (c *Coalesce) Kind() Kind      { return KindCoalesce }
func (c *Coalesce) Type() reflect.Type {
	return c.ResultType
}
func (c *Coalesce) String() string {
	return "(" + c.Left.String() + " ?? " + c.Right.String() + ")"
}
