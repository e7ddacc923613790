package expr

import "reflect"

// Parameter is a leaf whose value is supplied externally, by whatever
// built this tree, rather than computed by this node; no enclosing
// Invocation rebinds it. Value plays the same role here
// that Constant.Value plays for a literal: it is part of the expression
// as handed to Create, not something the active core discovers later, so
// re-binding a Parameter to a new value means building a new Expression,
// the same way changing a literal means building a new Constant.
type Parameter struct {
	Name      string
	ParamType reflect.Type
	Value     any
}

func (p *Parameter) expressionNode() {}
func (p *Parameter) Kind() Kind      { return KindParameter }
func (p *Parameter) Type() reflect.Type {
	return p.ParamType
}
func (p *Parameter) String() string { return p.Name }
