package expr

import "reflect"

// AndAlso is the short-circuit logical-and node. Right is always
// constructed with deferEvaluation=true by the active core.
type AndAlso struct {
	Left, Right Expression
}

func (a *AndAlso) expressionNode()      {}
func (a *AndAlso) Kind() Kind           { return KindAndAlso }
func (a *AndAlso) Type() reflect.Type   { return reflect.TypeOf(false) }
func (a *AndAlso) String() string       { return "(" + a.Left.String() + " && " + a.Right.String() + ")" }

// OrElse is the short-circuit logical-or node. Right is always
// constructed with deferEvaluation=true by the active core.
type OrElse struct {
	Left, Right Expression
}

func (o *OrElse) expressionNode()    {}
func (o *OrElse) Kind() Kind         { return KindOrElse }
func (o *OrElse) Type() reflect.Type { return reflect.TypeOf(false) }
func (o *OrElse) String() string     { return "(" + o.Left.String() + " || " + o.Right.String() + ")" }
