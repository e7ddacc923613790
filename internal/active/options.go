package active

import (
	"reflect"
	"sort"
	"strings"

	"github.com/epiforge/activeexpr/expr"
)

// ConstructedTypeKey identifies a constructor by the type it produces and
// its parameter list, for Options.DisposeConstructedTypes.
type ConstructedTypeKey struct {
	Type       reflect.Type
	ParamTypes []reflect.Type
}

func (k ConstructedTypeKey) String() string {
	names := make([]string, len(k.ParamTypes))
	for i, t := range k.ParamTypes {
		names[i] = t.String()
	}
	return k.Type.String() + "(" + strings.Join(names, ",") + ")"
}

// Options is the structurally-compared configuration object.
// Two Options values with equal fields are treated as the same intern-key
// component, the way interp.Options is a small concrete struct
// satisfying a capability interface at the internal/pkg boundary
// (internal/interp/options.go) — here there is no import-cycle to break,
// so Options lives directly in this package and the public façade
// aliases it.
type Options struct {
	// DisposeConstructedTypes: a NewExpression whose (Type, ParamTypes)
	// matches an entry has its produced value disposed before
	// re-evaluation and on teardown.
	DisposeConstructedTypes []ConstructedTypeKey

	// DisposeMethodReturnValues: as above, for method-call and
	// property-getter results, keyed by method identity.
	DisposeMethodReturnValues []*expr.MethodInfo

	// DisposeStaticMethodReturnValues is a broad opt-in covering every
	// static method's return value, without needing each one listed in
	// DisposeMethodReturnValues.
	DisposeStaticMethodReturnValues bool

	// MemberExpressionsListenToGeneratedTypesFieldValuesForCollectionChanged
	// enables Member's special-case attach-to-collection-change on a
	// compiler-generated capture-class field's value.
	MemberExpressionsListenToGeneratedTypesFieldValuesForCollectionChanged bool

	// MemberExpressionsListenToGeneratedTypesFieldValuesForDictionaryChanged
	// is the dictionary-change analogue.
	MemberExpressionsListenToGeneratedTypesFieldValuesForDictionaryChanged bool
}

// shouldDisposeConstructed reports whether a New node's produced value
// for (typ, paramTypes) must be disposed.
func (o *Options) shouldDisposeConstructed(typ reflect.Type, paramTypes []reflect.Type) bool {
	if o == nil {
		return false
	}
	for _, k := range o.DisposeConstructedTypes {
		if k.Type == typ && sameTypes(k.ParamTypes, paramTypes) {
			return true
		}
	}
	return false
}

// shouldDisposeMethodReturn reports whether a MethodCall/property-getter
// node's produced value for method must be disposed.
func (o *Options) shouldDisposeMethodReturn(method *expr.MethodInfo) bool {
	if o == nil || method == nil {
		return false
	}
	if method.IsStatic && o.DisposeStaticMethodReturnValues {
		return true
	}
	for _, m := range o.DisposeMethodReturnValues {
		if m.Equal(method) {
			return true
		}
	}
	return false
}

func sameTypes(a, b []reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Equal reports structural equality between two Options, ignoring the
// order of the set-valued fields, so semantically-equal configurations
// intern to the same cache key. The approach — sort a stable string rendering
// of each set member, then compare — is the same
// render-then-compare idiom openconfig-ygot's struct diffing uses for
// order-insensitive comparison (ygot/diff.go), adapted from struct
// fields to Options' two slice fields.
func (o *Options) Equal(other *Options) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.DisposeStaticMethodReturnValues != other.DisposeStaticMethodReturnValues ||
		o.MemberExpressionsListenToGeneratedTypesFieldValuesForCollectionChanged != other.MemberExpressionsListenToGeneratedTypesFieldValuesForCollectionChanged ||
		o.MemberExpressionsListenToGeneratedTypesFieldValuesForDictionaryChanged != other.MemberExpressionsListenToGeneratedTypesFieldValuesForDictionaryChanged {
		return false
	}
	return sameSet(constructedTypeKeyStrings(o.DisposeConstructedTypes), constructedTypeKeyStrings(other.DisposeConstructedTypes)) &&
		sameSet(methodInfoStrings(o.DisposeMethodReturnValues), methodInfoStrings(other.DisposeMethodReturnValues))
}

// Hash folds Options into a stable string usable as an intern-key
// component. Order-insensitive for the same reason Equal is.
func (o *Options) Hash() string {
	if o == nil {
		return "<nil-options>"
	}
	ctk := constructedTypeKeyStrings(o.DisposeConstructedTypes)
	mrv := methodInfoStrings(o.DisposeMethodReturnValues)
	sort.Strings(ctk)
	sort.Strings(mrv)
	return strings.Join([]string{
		strings.Join(ctk, ","),
		strings.Join(mrv, ","),
		boolStr(o.DisposeStaticMethodReturnValues),
		boolStr(o.MemberExpressionsListenToGeneratedTypesFieldValuesForCollectionChanged),
		boolStr(o.MemberExpressionsListenToGeneratedTypesFieldValuesForDictionaryChanged),
	}, "|")
}

func constructedTypeKeyStrings(keys []ConstructedTypeKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func methodInfoStrings(methods []*expr.MethodInfo) []string {
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = methodInfoKey(m)
	}
	return out
}

// methodInfoKey renders a MethodInfo as a stable, comparable string.
func methodInfoKey(m *expr.MethodInfo) string {
	if m == nil {
		return "<nil-method>"
	}
	names := make([]string, len(m.ParamTypes))
	for i, t := range m.ParamTypes {
		names[i] = t.String()
	}
	return m.DeclaringType.String() + "." + m.Name + "(" + strings.Join(names, ",") + ")"
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]string(nil), a...)
	sb := append([]string(nil), b...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
