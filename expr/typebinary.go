package expr

import "reflect"

// TypeBinary is a type-is or type-as test/cast over Operand. IsTypeIs selects between a boolean "is" test and an "as"
// cast that yields a (possibly nil) TypeOperand-typed value.
type TypeBinary struct {
	Operand    Expression
	TypeOperand reflect.Type
	IsTypeIs   bool
}

func (tb *TypeBinary) expressionNode() {}
func (tb *TypeBinary) Kind() Kind      { return KindTypeBinary }
func (tb *TypeBinary) Type() reflect.Type {
	if tb.IsTypeIs {
		return reflect.TypeOf(false)
	}
	return tb.TypeOperand
}
func (tb *TypeBinary) String() string {
	op := "as"
	if tb.IsTypeIs {
		op = "is"
	}
	return "(" + tb.Operand.String() + " " + op + " " + tb.TypeOperand.Name() + ")"
}
