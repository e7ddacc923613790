package expr

import (
	"reflect"
	"strings"
)

// NewArrayInit allocates a new array literal; its length is fixed by the
// initializer count.
type NewArrayInit struct {
	ElementType  reflect.Type
	Initializers []Expression
}

func (na *NewArrayInit) expressionNode() {}
func (na *NewArrayInit) Kind() Kind      { return KindNewArrayInit }
func (na *NewArrayInit) Type() reflect.Type {
	return reflect.SliceOf(na.ElementType)
}
func (na *NewArrayInit) String() string {
	items := make([]string, len(na.Initializers))
	for i, it := range na.Initializers {
		items[i] = it.String()
	}
	return "new " + na.ElementType.Name() + "[] {" + strings.Join(items, ", ") + "}"
}
