package active

import "github.com/epiforge/activeexpr/expr"

// andAlsoPayload is the short-circuit logical-and node. Right is always constructed deferred and is only forced the
// first time left evaluates true.
type andAlsoPayload struct {
	left, right *Node
}

func (p *andAlsoPayload) isShortCircuit() {}

func (p *andAlsoPayload) evaluate(*Node) (any, *Fault) {
	if f := p.left.Fault(); f != nil {
		return nil, f
	}
	if lv, _ := p.left.Value().(bool); !lv {
		return false, nil
	}
	p.right.ForceEvaluation()
	if f := p.right.Fault(); f != nil {
		return nil, f
	}
	rv, _ := p.right.Value().(bool)
	return rv, nil
}

func (p *andAlsoPayload) initialize(*Node) error          { return nil }
func (p *andAlsoPayload) teardown(*Node)                    {}
func (p *andAlsoPayload) childNodes() []*Node                { return []*Node{p.left, p.right} }
func (p *andAlsoPayload) shouldDisposeValue(*Options) bool    { return false }
func (p *andAlsoPayload) render(n *Node) string               { return n.src.String() }

func buildAndAlso(ctx *Context, e *expr.AndAlso, opts *Options, deferEvaluation bool) (*Node, error) {
	left, err := Create(ctx, e.Left, opts, deferEvaluation)
	if err != nil {
		return nil, err
	}
	right, err := Create(ctx, e.Right, opts, true)
	if err != nil {
		left.Dispose()
		return nil, err
	}
	node := newNode(expr.KindAndAlso, e.Type(), opts, e, ctx.cache, deferEvaluation)
	p := &andAlsoPayload{left: left, right: right}
	set := &subscriptionSet{}
	subscribeChild(set, node, left)
	subscribeChild(set, node, right)
	return finishConstruction(node, p, set, []*Node{left, right})
}

// orElsePayload is the short-circuit logical-or node.
type orElsePayload struct {
	left, right *Node
}

func (p *orElsePayload) isShortCircuit() {}

func (p *orElsePayload) evaluate(*Node) (any, *Fault) {
	if f := p.left.Fault(); f != nil {
		return nil, f
	}
	if lv, _ := p.left.Value().(bool); lv {
		return true, nil
	}
	p.right.ForceEvaluation()
	if f := p.right.Fault(); f != nil {
		return nil, f
	}
	rv, _ := p.right.Value().(bool)
	return rv, nil
}

func (p *orElsePayload) initialize(*Node) error          { return nil }
func (p *orElsePayload) teardown(*Node)                    {}
func (p *orElsePayload) childNodes() []*Node                { return []*Node{p.left, p.right} }
func (p *orElsePayload) shouldDisposeValue(*Options) bool    { return false }
func (p *orElsePayload) render(n *Node) string               { return n.src.String() }

func buildOrElse(ctx *Context, e *expr.OrElse, opts *Options, deferEvaluation bool) (*Node, error) {
	left, err := Create(ctx, e.Left, opts, deferEvaluation)
	if err != nil {
		return nil, err
	}
	right, err := Create(ctx, e.Right, opts, true)
	if err != nil {
		left.Dispose()
		return nil, err
	}
	node := newNode(expr.KindOrElse, e.Type(), opts, e, ctx.cache, deferEvaluation)
	p := &orElsePayload{left: left, right: right}
	set := &subscriptionSet{}
	subscribeChild(set, node, left)
	subscribeChild(set, node, right)
	return finishConstruction(node, p, set, []*Node{left, right})
}
