package expr

import (
	"fmt"
	"reflect"
)

// Constant is a compile-time literal value. It never changes and never
// subscribes to anything.
type Constant struct {
	ValueType reflect.Type
	Value     any
}

func (c *Constant) expressionNode() {}
func (c *Constant) Kind() Kind      { return KindConstant }
func (c *Constant) Type() reflect.Type {
	return c.ValueType
}
func (c *Constant) String() string {
	return fmt.Sprintf("%v", c.Value)
}
