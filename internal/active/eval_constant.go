package active

import "github.com/epiforge/activeexpr/expr"

// constantPayload is the Constant leaf.
type constantPayload struct {
	value any
}

func (p *constantPayload) evaluate(*Node) (any, *Fault)       { return p.value, nil }
func (p *constantPayload) initialize(*Node) error              { return nil }
func (p *constantPayload) teardown(*Node)                       {}
func (p *constantPayload) childNodes() []*Node                  { return nil }
func (p *constantPayload) shouldDisposeValue(*Options) bool      { return false }
func (p *constantPayload) render(n *Node) string                 { return n.src.String() }

func buildConstant(ctx *Context, e *expr.Constant, opts *Options) (*Node, error) {
	node := newNode(expr.KindConstant, e.ValueType, opts, e, ctx.cache, false)
	return finishConstruction(node, &constantPayload{value: e.Value}, &subscriptionSet{}, nil)
}
