package active

import "github.com/epiforge/activeexpr/expr"

// unaryPayload is the Unary node: fault propagates from
// operand (handled generically by Node.performEvaluate); otherwise the
// cached operator delegate is invoked.
type unaryPayload struct {
	operand  *Node
	delegate compiledUnary
}

func (p *unaryPayload) evaluate(n *Node) (any, *Fault) {
	v, err := p.delegate(p.operand.Value())
	if err != nil {
		return nil, NewFault(expr.KindUnary, n.payload.render(n), err)
	}
	return v, nil
}

func (p *unaryPayload) initialize(*Node) error          { return nil }
func (p *unaryPayload) teardown(*Node)                    {}
func (p *unaryPayload) childNodes() []*Node                { return []*Node{p.operand} }
func (p *unaryPayload) shouldDisposeValue(*Options) bool    { return false }
func (p *unaryPayload) render(n *Node) string               { return n.src.String() }

func buildUnary(ctx *Context, e *expr.Unary, opts *Options, deferEvaluation bool) (*Node, error) {
	operand, err := Create(ctx, e.Operand, opts, deferEvaluation)
	if err != nil {
		return nil, err
	}
	node := newNode(expr.KindUnary, e.ResultType, opts, e, ctx.cache, deferEvaluation)
	p := &unaryPayload{operand: operand, delegate: ctx.ops.unaryDelegate(e, operand.Type())}
	set := &subscriptionSet{}
	subscribeChild(set, node, operand)
	return finishConstruction(node, p, set, []*Node{operand})
}
