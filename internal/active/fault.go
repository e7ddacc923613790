package active

import (
	"fmt"

	"github.com/epiforge/activeexpr/expr"
)

// Fault is a captured exception. It is never propagated as a Go panic out
// of Evaluate; it is always returned/stored as a value, the way the
// evaluator's own binary-expression handling returns an error Value
// instead of panicking (internal/interp/expressions_binary.go's
// isError-checked-before-use convention) rather than the
// formatted-with-source-context style of internal/errors.CompilerError,
// which has no analogue here since there is no source text to point a
// caret at.
type Fault struct {
	// Kind identifies which node kind's evaluation produced this fault.
	Kind expr.Kind

	// Expr is a one-line rendering of the (sub)expression that faulted,
	// for the diagnostic suffix tag on Node.String.
	Expr string

	// Cause is the underlying error: a reflectutil/Getter/Caller error,
	// an operator-delegate error, or a panic converted to an error. A
	// child's Fault is propagated to its parent as the same *Fault value,
	// not wrapped as a Cause.
	Cause error
}

// NewFault wraps cause as a Fault attributed to a node of the given kind
// rendering as exprString.
func NewFault(kind expr.Kind, exprString string, cause error) *Fault {
	if cause == nil {
		return nil
	}
	return &Fault{Kind: kind, Expr: exprString, Cause: cause}
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s %q: %v", f.Kind, f.Expr, f.Cause)
}

// Unwrap lets errors.Is/errors.As see through to Cause.
func (f *Fault) Unwrap() error {
	return f.Cause
}

// recoverToFault converts a panic (e.g. a nil-pointer deref inside a
// compiled operator delegate or a reflection call) into a Fault, the Go
// equivalent of catching an arbitrary exception from in-process
// evaluation.
func recoverToFault(kind expr.Kind, exprString string, faultOut **Fault) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("%v", r)
		}
		*faultOut = NewFault(kind, exprString, err)
	}
}
