package expr

import (
	"reflect"
	"strings"
)

// Index is array or indexed-property access: Object[Arguments...]. Indexer
// is non-nil for an indexed property access.
type Index struct {
	Object     Expression
	Arguments  []Expression
	Indexer    *MethodInfo
	ResultType reflect.Type
}

func (ix *Index) expressionNode() {}
func (ix *Index) Kind() Kind      { return KindIndex }
func (ix *Index) Type() reflect.Type {
	return ix.ResultType
}
func (ix *Index) String() string {
	args := make([]string, len(ix.Arguments))
	for i, a := range ix.Arguments {
		args[i] = a.String()
	}
	return ix.Object.String() + "[" + strings.Join(args, ", ") + "]"
}
