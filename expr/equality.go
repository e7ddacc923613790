package expr

import (
	"fmt"
	"hash/fnv"
	"reflect"
)

// Eq is the ExprEq capability: structural equality and hashing
// over raw expression trees, used by the intern cache's InternKey. The
// core depends only on this interface, never on a concrete comparer, the
// same way it treats FastGetter/FastCaller as opaque platform capabilities.
type Eq interface {
	Equal(a, b Expression) bool
	Hash(e Expression) uint64
}

// DefaultEq is the reference ExprEq implementation: two trees are equal
// iff they have the same linearized sequence of (Kind, operator,
// member/method identity, literal value) elements — the same
// walk-then-compare idiom openconfig-ygot's reflect-based structural
// diffing uses over Go struct trees (ygot/diff.go, util/reflect.go),
// adapted here to walk Expression.Children instead of struct fields.
type DefaultEq struct{}

// Equal reports whether a and b are structurally congruent.
func (DefaultEq) Equal(a, b Expression) bool {
	return Equal(a, b)
}

// Hash folds the linearized element list of e into a single hash value.
func (DefaultEq) Hash(e Expression) uint64 {
	return Hash(e)
}

// Equal is the package-level helper DefaultEq.Equal delegates to.
func Equal(a, b Expression) bool {
	la, lb := linearize(a), linearize(b)
	if len(la) != len(lb) {
		return false
	}
	for i := range la {
		if la[i] != lb[i] {
			return false
		}
	}
	return true
}

// Hash folds the linearized element list of e into a single hash value.
func Hash(e Expression) uint64 {
	h := fnv.New64a()
	for _, el := range linearize(e) {
		fmt.Fprint(h, el)
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// linearize walks e depth-first and emits one comparable string element
// per node, capturing everything that distinguishes two expressions that
// are not structurally congruent: kind, operator/member/method identity,
// and literal constant values. Children are walked by the generic
// Children accessor so this function never needs to change when a new
// node kind's *shape* changes, only when its identity-bearing fields do.
func linearize(e Expression) []string {
	if e == nil {
		return []string{"<nil>"}
	}
	var out []string
	var walk func(Expression)
	walk = func(n Expression) {
		if n == nil {
			out = append(out, "<nil>")
			return
		}
		out = append(out, fmt.Sprintf("%s:%s", n.Kind(), elementKey(n)))
		for _, c := range Children(n) {
			walk(c)
		}
	}
	walk(e)
	return out
}

// elementKey renders the identity-bearing fields of n that Children does
// not already capture (operators, member/method handles, literal values,
// types). Open question: a Constant's key mixes Value only,
// not its declared Type — two differently-typed constants with an equal
// printed value collide, intentionally, preserving the documented
// upstream behavior rather than silently fixing it.
func elementKey(n Expression) string {
	switch v := n.(type) {
	case *Constant:
		return fmt.Sprintf("%v", v.Value)
	case *Parameter:
		return v.Name + ":" + typeName(v.ParamType) + fmt.Sprintf("=%v", v.Value)
	case *Member:
		return v.Info.Name + "@" + typeName(v.Info.DeclaringType)
	case *Unary:
		return v.Op.String() + "/" + methodKey(v.Method)
	case *Binary:
		return v.Op.String() + "/" + methodKey(v.Method) + fmt.Sprintf("/%v", v.IsLiftedToNull)
	case *AndAlso, *OrElse:
		return ""
	case *Coalesce:
		return methodKey(v.Conversion)
	case *Index:
		return methodKey(v.Indexer)
	case *MethodCall:
		return methodKey(v.Method)
	case *Invocation:
		return ""
	case *New:
		return methodKey(v.Constructor)
	case *NewArrayInit:
		return typeName(v.ElementType) + fmt.Sprintf("/%d", len(v.Initializers))
	case *Conditional:
		return ""
	case *TypeBinary:
		return typeName(v.TypeOperand) + fmt.Sprintf("/%v", v.IsTypeIs)
	default:
		return ""
	}
}

func methodKey(m *MethodInfo) string {
	if m == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s@%s/%v", m.Name, typeName(m.DeclaringType), m.ParamTypes)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
