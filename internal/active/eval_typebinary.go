package active

import (
	"reflect"

	"github.com/epiforge/activeexpr/expr"
)

// typeBinaryPayload is a type-is test or type-as cast: no operator delegate needed, just a runtime
// reflect.TypeOf/assignability check.
type typeBinaryPayload struct {
	operand    *Node
	typeOp     reflect.Type
	isTypeIs   bool
}

func (p *typeBinaryPayload) evaluate(*Node) (any, *Fault) {
	v := p.operand.Value()
	if v == nil {
		if p.isTypeIs {
			return false, nil
		}
		return reflect.Zero(p.typeOp).Interface(), nil
	}
	actual := reflect.TypeOf(v)
	matches := actual == p.typeOp || (p.typeOp.Kind() == reflect.Interface && actual.Implements(p.typeOp))
	if p.isTypeIs {
		return matches, nil
	}
	if matches {
		return v, nil
	}
	return reflect.Zero(p.typeOp).Interface(), nil
}

func (p *typeBinaryPayload) initialize(*Node) error          { return nil }
func (p *typeBinaryPayload) teardown(*Node)                    {}
func (p *typeBinaryPayload) childNodes() []*Node                { return []*Node{p.operand} }
func (p *typeBinaryPayload) shouldDisposeValue(*Options) bool    { return false }
func (p *typeBinaryPayload) render(n *Node) string               { return n.src.String() }

func buildTypeBinary(ctx *Context, e *expr.TypeBinary, opts *Options, deferEvaluation bool) (*Node, error) {
	operand, err := Create(ctx, e.Operand, opts, deferEvaluation)
	if err != nil {
		return nil, err
	}
	node := newNode(expr.KindTypeBinary, e.Type(), opts, e, ctx.cache, deferEvaluation)
	p := &typeBinaryPayload{operand: operand, typeOp: e.TypeOperand, isTypeIs: e.IsTypeIs}
	set := &subscriptionSet{}
	subscribeChild(set, node, operand)
	return finishConstruction(node, p, set, []*Node{operand})
}
