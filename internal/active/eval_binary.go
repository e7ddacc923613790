package active

import (
	"reflect"

	"github.com/epiforge/activeexpr/expr"
)

// binaryPayload is a non-short-circuit Binary node:
// both operands evaluated eagerly (fault collection handled generically
// by Node.performEvaluate), then the cached compiled delegate runs and its
// result is converted to the node's static result type where Go allows it.
type binaryPayload struct {
	left, right *Node
	delegate    compiledBinary
}

func (p *binaryPayload) evaluate(n *Node) (any, *Fault) {
	v, err := p.delegate(p.left.Value(), p.right.Value())
	if err != nil {
		return nil, NewFault(expr.KindBinary, n.payload.render(n), err)
	}
	if rv := reflect.ValueOf(v); rv.IsValid() && n.typ != nil && rv.Type() != n.typ &&
		n.typ.Kind() != reflect.String && rv.Type().ConvertibleTo(n.typ) {
		v = rv.Convert(n.typ).Interface()
	}
	return v, nil
}

func (p *binaryPayload) initialize(*Node) error          { return nil }
func (p *binaryPayload) teardown(*Node)                    {}
func (p *binaryPayload) childNodes() []*Node                { return []*Node{p.left, p.right} }
func (p *binaryPayload) shouldDisposeValue(*Options) bool    { return false }
func (p *binaryPayload) render(n *Node) string               { return n.src.String() }

func buildBinary(ctx *Context, e *expr.Binary, opts *Options, deferEvaluation bool) (*Node, error) {
	left, err := Create(ctx, e.Left, opts, deferEvaluation)
	if err != nil {
		return nil, err
	}
	right, err := Create(ctx, e.Right, opts, deferEvaluation)
	if err != nil {
		left.Dispose()
		return nil, err
	}
	node := newNode(expr.KindBinary, e.ResultType, opts, e, ctx.cache, deferEvaluation)
	p := &binaryPayload{left: left, right: right, delegate: ctx.ops.binaryDelegate(e, left.Type(), right.Type())}
	set := &subscriptionSet{}
	subscribeChild(set, node, left)
	subscribeChild(set, node, right)
	return finishConstruction(node, p, set, []*Node{left, right})
}
