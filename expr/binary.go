package expr

import "reflect"

// BinaryOp is the closed set of non-short-circuit binary operators the
// operator delegate cache (C4) knows how to compile. AndAlso, OrElse and
// Coalesce are modeled as their own node kinds because they
// need bespoke short-circuit evaluation, not a compiled delegate.
type BinaryOp int

const (
	BinaryAdd BinaryOp = iota
	BinarySubtract
	BinaryMultiply
	BinaryDivide
	BinaryModulo
	BinaryEqual
	BinaryNotEqual
	BinaryLessThan
	BinaryLessThanOrEqual
	BinaryGreaterThan
	BinaryGreaterThanOrEqual
	BinaryAnd
	BinaryOr
	BinaryXor
)

func (op BinaryOp) String() string {
	names := [...]string{"+", "-", "*", "/", "%", "==", "!=", "<", "<=", ">", ">=", "&", "|", "^"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Binary is a non-short-circuit binary operator application. Both
// operands are evaluated eagerly.
type Binary struct {
	Left, Right    Expression
	Op             BinaryOp
	Method         *MethodInfo
	IsLiftedToNull bool
	ResultType     reflect.Type
}

func (b *Binary) expressionNode() {}
func (b *Binary) Kind() Kind      { return KindBinary }
func (b *Binary) Type() reflect.Type {
	return b.ResultType
}
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}
