package active

import (
	"fmt"

	"github.com/epiforge/activeexpr/expr"
)

// parameterPayload is the Parameter leaf. A Parameter's Value is part of
// the Expression handed to Create (the same way a Constant's is) rather
// than something bound later by a separate invocation-binding call — so
// evaluation is a pure readback, identical in shape to Constant's.
type parameterPayload struct {
	name  string
	value any
}

func (p *parameterPayload) evaluate(*Node) (any, *Fault)  { return p.value, nil }
func (p *parameterPayload) initialize(*Node) error         { return nil }
func (p *parameterPayload) teardown(*Node)                  {}
func (p *parameterPayload) childNodes() []*Node             { return nil }
func (p *parameterPayload) shouldDisposeValue(*Options) bool { return false }
func (p *parameterPayload) render(n *Node) string            { return fmt.Sprintf("%s", n.src.String()) }

func buildParameter(ctx *Context, e *expr.Parameter, opts *Options) (*Node, error) {
	node := newNode(expr.KindParameter, e.ParamType, opts, e, ctx.cache, false)
	return finishConstruction(node, &parameterPayload{name: e.Name, value: e.Value}, &subscriptionSet{}, nil)
}
