package expr

import "reflect"

// MemberInfo stands in for the platform's reflection handle to a field or
// property. The active core never touches reflection directly for member
// access — it hands MemberInfo to the reflectutil package, which owns the
// fast-getter cache.
type MemberInfo struct {
	// Name is the member's name as declared on DeclaringType.
	Name string

	// DeclaringType is the type the member is declared on.
	DeclaringType reflect.Type

	// IsField is true for a plain field, false for a property-like
	// accessor method pair.
	IsField bool

	// DoNotListenForPropertyChanges mirrors a marker the platform may put
	// on a property to suppress Member's instance-level subscription.
	DoNotListenForPropertyChanges bool
}

// MethodInfo stands in for the platform's reflection handle to a method
// or constructor. ParamTypes is ordered to match Expression's argument
// list for the call/new/index site that references it.
type MethodInfo struct {
	Name          string
	DeclaringType reflect.Type
	ParamTypes    []reflect.Type
	ReturnType    reflect.Type
	IsStatic      bool

	// Func is the Go func value reflect should invoke directly when there
	// is no receiver instance to resolve a method off of — every
	// constructor (New) and every static method call. Instance method
	// calls leave this nil and resolve via reflect.ValueOf(instance).
	Func any
}

// Equal reports whether two MethodInfo values identify the same method,
// used by Options' DisposeMethodReturnValues set.
func (m *MethodInfo) Equal(other *MethodInfo) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Name != other.Name || m.DeclaringType != other.DeclaringType || m.IsStatic != other.IsStatic {
		return false
	}
	if len(m.ParamTypes) != len(other.ParamTypes) {
		return false
	}
	for i := range m.ParamTypes {
		if m.ParamTypes[i] != other.ParamTypes[i] {
			return false
		}
	}
	return true
}
