// Package expr defines the compile-time expression tree that the active
// expression core consumes. In the system this package models, the tree
// is supplied by the embedding platform's own expression library; this
// package is a reference implementation of that contract, shaped to
// match the closed set of node kinds the core recognizes.
package expr

import "reflect"

// Kind tags the closed set of expression node kinds the core understands.
// It is carried unchanged onto the ActiveNode built from a node of that
// kind, so NodeType and Kind are the same value by construction.
type Kind int

const (
	KindConstant Kind = iota
	KindParameter
	KindMember
	KindUnary
	KindBinary
	KindAndAlso
	KindOrElse
	KindCoalesce
	KindIndex
	KindMethodCall
	KindInvocation
	KindNew
	KindNewArrayInit
	KindConditional
	KindTypeBinary
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "Constant"
	case KindParameter:
		return "Parameter"
	case KindMember:
		return "Member"
	case KindUnary:
		return "Unary"
	case KindBinary:
		return "Binary"
	case KindAndAlso:
		return "AndAlso"
	case KindOrElse:
		return "OrElse"
	case KindCoalesce:
		return "Coalesce"
	case KindIndex:
		return "Index"
	case KindMethodCall:
		return "MethodCall"
	case KindInvocation:
		return "Invocation"
	case KindNew:
		return "New"
	case KindNewArrayInit:
		return "NewArrayInit"
	case KindConditional:
		return "Conditional"
	case KindTypeBinary:
		return "TypeBinary"
	default:
		return "Unknown"
	}
}

// Node is the base of every expression tree node.
type Node interface {
	// Kind reports which of the closed set of node kinds this node is.
	Kind() Kind

	// Type is the node's static result type, carried from the source
	// expression.
	Type() reflect.Type

	// String renders the node using node-specific syntax, for debugging.
	String() string
}

// Expression is any Node that produces a value. Every concrete node type
// in this package implements it.
type Expression interface {
	Node
	expressionNode()
}

// Children returns an expression's direct operand expressions in operand
// order (left-to-right, receiver-before-arguments). Leaves (Constant,
// Parameter) return nil. Used by Eq's linearizing walk.
func Children(e Expression) []Expression {
	switch n := e.(type) {
	case *Constant:
		return nil
	case *Parameter:
		return nil
	case *Member:
		if n.Source == nil {
			return nil
		}
		return []Expression{n.Source}
	case *Unary:
		return []Expression{n.Operand}
	case *Binary:
		return []Expression{n.Left, n.Right}
	case *AndAlso:
		return []Expression{n.Left, n.Right}
	case *OrElse:
		return []Expression{n.Left, n.Right}
	case *Coalesce:
		return []Expression{n.Left, n.Right}
	case *Index:
		children := make([]Expression, 0, 1+len(n.Arguments))
		children = append(children, n.Object)
		children = append(children, n.Arguments...)
		return children
	case *MethodCall:
		children := make([]Expression, 0, 1+len(n.Arguments))
		if n.Object != nil {
			children = append(children, n.Object)
		}
		children = append(children, n.Arguments...)
		return children
	case *Invocation:
		children := make([]Expression, 0, 1+len(n.Arguments))
		children = append(children, n.Target)
		children = append(children, n.Arguments...)
		return children
	case *New:
		return n.Arguments
	case *NewArrayInit:
		return n.Initializers
	case *Conditional:
		return []Expression{n.Test, n.IfTrue, n.IfFalse}
	case *TypeBinary:
		return []Expression{n.Operand}
	default:
		return nil
	}
}
