package active

import "github.com/epiforge/activeexpr/expr"

// conditionalPayload is the ternary node. Both
// branches are constructed deferred; each evaluation forces only the
// live one, so the inactive branch never subscribes to anything beyond
// its own construction-time wiring, and its own children stay dormant
// until forced.
type conditionalPayload struct {
	test, ifTrue, ifFalse *Node
}

func (p *conditionalPayload) isShortCircuit() {}

func (p *conditionalPayload) evaluate(*Node) (any, *Fault) {
	if f := p.test.Fault(); f != nil {
		return nil, f
	}
	tv, _ := p.test.Value().(bool)
	branch := p.ifFalse
	if tv {
		branch = p.ifTrue
	}
	branch.ForceEvaluation()
	if f := branch.Fault(); f != nil {
		return nil, f
	}
	return branch.Value(), nil
}

func (p *conditionalPayload) initialize(*Node) error          { return nil }
func (p *conditionalPayload) teardown(*Node)                    {}
func (p *conditionalPayload) childNodes() []*Node                { return []*Node{p.test, p.ifTrue, p.ifFalse} }
func (p *conditionalPayload) shouldDisposeValue(*Options) bool    { return false }
func (p *conditionalPayload) render(n *Node) string               { return n.src.String() }

func buildConditional(ctx *Context, e *expr.Conditional, opts *Options, deferEvaluation bool) (*Node, error) {
	test, err := Create(ctx, e.Test, opts, deferEvaluation)
	if err != nil {
		return nil, err
	}
	ifTrue, err := Create(ctx, e.IfTrue, opts, true)
	if err != nil {
		test.Dispose()
		return nil, err
	}
	ifFalse, err := Create(ctx, e.IfFalse, opts, true)
	if err != nil {
		disposeAll(test, ifTrue)
		return nil, err
	}
	node := newNode(expr.KindConditional, e.ResultType, opts, e, ctx.cache, deferEvaluation)
	p := &conditionalPayload{test: test, ifTrue: ifTrue, ifFalse: ifFalse}
	set := &subscriptionSet{}
	subscribeChild(set, node, test)
	subscribeChild(set, node, ifTrue)
	subscribeChild(set, node, ifFalse)
	return finishConstruction(node, p, set, []*Node{test, ifTrue, ifFalse})
}
