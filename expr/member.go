package expr

import "reflect"

// Member accesses a field or property, optionally on a source expression
// (a nil Source means a static/capture-free access; the active core's
// getters need an instance, so such a Member evaluates to a Fault). The
// active core
// implements a compiler-generated-capture-class special case on top of
// this node.
type Member struct {
	Source     Expression
	Info       *MemberInfo
	ResultType reflect.Type
}

func (m *Member) expressionNode() {}
func (m *Member) Kind() Kind      { return KindMember }
func (m *Member) Type() reflect.Type {
	return m.ResultType
}
func (m *Member) String() string {
	if m.Source == nil {
		return m.Info.Name
	}
	return m.Source.String() + "." + m.Info.Name
}
