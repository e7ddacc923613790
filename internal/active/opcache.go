package active

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/epiforge/activeexpr/expr"
	"github.com/epiforge/activeexpr/reflectutil"
)

// compiledBinary is a compiled binary-operator delegate: given the two
// already-evaluated operand values, produce the result or an error.
type compiledBinary func(left, right any) (any, error)

// compiledUnary is the unary analogue.
type compiledUnary func(operand any) (any, error)

// opKey identifies one compiled delegate slot: the operator, its static operand/result types,
// and (for a user-overloaded operator) the method that implements it.
// Two Binary/Unary nodes sharing an opKey share one compiled closure
// regardless of which intern-cache entry they belong to — this cache
// outlives any single node.
type opKey struct {
	op         int
	leftType   reflect.Type
	rightType  reflect.Type
	resultType reflect.Type
	method     string // "" unless Method is set; DeclaringType.String() + "." + Name
}

// opCache is the operator delegate cache. Each Context owns one; the
// façade's package-level Context makes it process-wide in practice.
type opCache struct {
	methods *reflectutil.Cache

	mu      sync.Mutex
	binary  map[opKey]compiledBinary
	unary   map[opKey]compiledUnary
}

func newOpCache(methods *reflectutil.Cache) *opCache {
	return &opCache{
		methods: methods,
		binary:  make(map[opKey]compiledBinary),
		unary:   make(map[opKey]compiledUnary),
	}
}

func binaryOpKey(b *expr.Binary, leftType, rightType reflect.Type) opKey {
	k := opKey{op: int(b.Op) + 1, leftType: leftType, rightType: rightType, resultType: b.ResultType}
	if b.Method != nil {
		k.method = b.Method.DeclaringType.String() + "." + b.Method.Name
	}
	return k
}

func unaryOpKey(u *expr.Unary, operandType reflect.Type) opKey {
	k := opKey{op: -(int(u.Op) + 1), leftType: operandType, resultType: u.ResultType}
	if u.Method != nil {
		k.method = u.Method.DeclaringType.String() + "." + u.Method.Name
	}
	return k
}

// binaryDelegate returns the compiled closure for b, compiling and
// caching it on first use. The lock is held only long enough to check
// for and, on miss, insert the entry — compilation itself (building the
// closure) is cheap and pure, so doing it under the lock on a miss is
// fine and avoids a second "construct outside, adopt inside" dance like
// the intern cache needs for recursive node construction; there is no
// recursion here.
func (c *opCache) binaryDelegate(b *expr.Binary, leftType, rightType reflect.Type) compiledBinary {
	key := binaryOpKey(b, leftType, rightType)

	c.mu.Lock()
	defer c.mu.Unlock()
	if d, ok := c.binary[key]; ok {
		return d
	}
	d := c.compileBinary(b, leftType, rightType)
	c.binary[key] = d
	return d
}

func (c *opCache) unaryDelegate(u *expr.Unary, operandType reflect.Type) compiledUnary {
	key := unaryOpKey(u, operandType)

	c.mu.Lock()
	defer c.mu.Unlock()
	if d, ok := c.unary[key]; ok {
		return d
	}
	d := c.compileUnary(u, operandType)
	c.unary[key] = d
	return d
}

// compileBinary builds the delegate for a user-overloaded operator
// (Method set) by reflect-invoking that method, or for a built-in
// operator by dispatching to the numeric/string/comparison family its
// operand kind requires.
func (c *opCache) compileBinary(b *expr.Binary, leftType, rightType reflect.Type) compiledBinary {
	if b.Method != nil {
		caller := c.methods.MethodCaller(b.Method.DeclaringType, b.Method.Name)
		return func(left, right any) (any, error) {
			return caller.Invoke(left, []any{right})
		}
	}
	return builtinBinary(b.Op)
}

func (c *opCache) compileUnary(u *expr.Unary, operandType reflect.Type) compiledUnary {
	if u.Method != nil {
		caller := c.methods.MethodCaller(u.Method.DeclaringType, u.Method.Name)
		return func(operand any) (any, error) {
			return caller.Invoke(operand, nil)
		}
	}
	return builtinUnary(u.Op)
}

// builtinBinary compiles the closure for a non-overloaded binary
// operator by reflecting over the operand kinds at call time — the Go
// analogue of `evalBinaryOp`'s numeric-family dispatch
// (internal/interp/expressions_binary.go), generalized from the
// interpreter's fixed `Value` union to arbitrary `any` operands.
func builtinBinary(op expr.BinaryOp) compiledBinary {
	return func(left, right any) (any, error) {
		lv, rv := reflect.ValueOf(left), reflect.ValueOf(right)
		switch op {
		case expr.BinaryAdd:
			if ls, ok := left.(string); ok {
				rs, ok := right.(string)
				if !ok {
					return nil, fmt.Errorf("active: cannot add string and %T", right)
				}
				return ls + rs, nil
			}
			return numericBinary(op, lv, rv)
		case expr.BinarySubtract, expr.BinaryMultiply, expr.BinaryDivide, expr.BinaryModulo,
			expr.BinaryAnd, expr.BinaryOr, expr.BinaryXor:
			return numericBinary(op, lv, rv)
		case expr.BinaryEqual:
			return reflect.DeepEqual(left, right), nil
		case expr.BinaryNotEqual:
			return !reflect.DeepEqual(left, right), nil
		case expr.BinaryLessThan, expr.BinaryLessThanOrEqual, expr.BinaryGreaterThan, expr.BinaryGreaterThanOrEqual:
			return compareNumeric(op, lv, rv)
		default:
			return nil, fmt.Errorf("active: unsupported binary operator %s", op)
		}
	}
}

func numericBinary(op expr.BinaryOp, lv, rv reflect.Value) (any, error) {
	if isFloatKind(lv.Kind()) || isFloatKind(rv.Kind()) {
		l, r := toFloat64(lv), toFloat64(rv)
		switch op {
		case expr.BinaryAdd:
			return l + r, nil
		case expr.BinarySubtract:
			return l - r, nil
		case expr.BinaryMultiply:
			return l * r, nil
		case expr.BinaryDivide:
			if r == 0 {
				return nil, fmt.Errorf("active: division by zero")
			}
			return l / r, nil
		default:
			return nil, fmt.Errorf("active: operator %s not defined over floating-point operands", op)
		}
	}
	if isUnsignedKind(lv.Kind()) && isUnsignedKind(rv.Kind()) {
		l, r := lv.Uint(), rv.Uint()
		switch op {
		case expr.BinaryAdd:
			return l + r, nil
		case expr.BinarySubtract:
			return l - r, nil
		case expr.BinaryMultiply:
			return l * r, nil
		case expr.BinaryDivide:
			if r == 0 {
				return nil, fmt.Errorf("active: division by zero")
			}
			return l / r, nil
		case expr.BinaryModulo:
			if r == 0 {
				return nil, fmt.Errorf("active: division by zero")
			}
			return l % r, nil
		case expr.BinaryAnd:
			return l & r, nil
		case expr.BinaryOr:
			return l | r, nil
		case expr.BinaryXor:
			return l ^ r, nil
		}
	}
	l, r := toInt64(lv), toInt64(rv)
	switch op {
	case expr.BinaryAdd:
		return l + r, nil
	case expr.BinarySubtract:
		return l - r, nil
	case expr.BinaryMultiply:
		return l * r, nil
	case expr.BinaryDivide:
		if r == 0 {
			return nil, fmt.Errorf("active: division by zero")
		}
		return l / r, nil
	case expr.BinaryModulo:
		if r == 0 {
			return nil, fmt.Errorf("active: division by zero")
		}
		return l % r, nil
	case expr.BinaryAnd:
		return l & r, nil
	case expr.BinaryOr:
		return l | r, nil
	case expr.BinaryXor:
		return l ^ r, nil
	default:
		return nil, fmt.Errorf("active: operator %s not defined over integral operands", op)
	}
}

func compareNumeric(op expr.BinaryOp, lv, rv reflect.Value) (any, error) {
	l, r := toFloat64(lv), toFloat64(rv)
	switch op {
	case expr.BinaryLessThan:
		return l < r, nil
	case expr.BinaryLessThanOrEqual:
		return l <= r, nil
	case expr.BinaryGreaterThan:
		return l > r, nil
	case expr.BinaryGreaterThanOrEqual:
		return l >= r, nil
	default:
		return nil, fmt.Errorf("active: operator %s is not a comparison", op)
	}
}

// builtinUnary compiles a non-overloaded unary operator's closure.
func builtinUnary(op expr.UnaryOp) compiledUnary {
	return func(operand any) (any, error) {
		switch op {
		case expr.UnaryNot:
			b, ok := operand.(bool)
			if !ok {
				return nil, fmt.Errorf("active: ! requires a bool operand, got %T", operand)
			}
			return !b, nil
		case expr.UnaryNegate:
			v := reflect.ValueOf(operand)
			if isFloatKind(v.Kind()) {
				return -toFloat64(v), nil
			}
			return -toInt64(v), nil
		case expr.UnaryPlus:
			return operand, nil
		default:
			return nil, fmt.Errorf("active: unsupported unary operator %s", op)
		}
	}
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func toFloat64(v reflect.Value) float64 {
	switch {
	case v.CanFloat():
		return v.Float()
	case v.CanInt():
		return float64(v.Int())
	case v.CanUint():
		return float64(v.Uint())
	default:
		return 0
	}
}

func toInt64(v reflect.Value) int64 {
	switch {
	case v.CanInt():
		return v.Int()
	case v.CanUint():
		return int64(v.Uint())
	case v.CanFloat():
		return int64(v.Float())
	default:
		return 0
	}
}
