package active

import (
	"reflect"

	"github.com/epiforge/activeexpr/expr"
)

// newArrayInitPayload allocates a new slice literal; length is fixed by the initializer count.
type newArrayInitPayload struct {
	initializers []*Node
	elementType  reflect.Type
}

func (p *newArrayInitPayload) evaluate(*Node) (any, *Fault) {
	result := reflect.MakeSlice(reflect.SliceOf(p.elementType), len(p.initializers), len(p.initializers))
	for i, init := range p.initializers {
		v := init.Value()
		if v == nil {
			continue
		}
		result.Index(i).Set(reflect.ValueOf(v))
	}
	return result.Interface(), nil
}

func (p *newArrayInitPayload) initialize(*Node) error          { return nil }
func (p *newArrayInitPayload) teardown(*Node)                    {}
func (p *newArrayInitPayload) childNodes() []*Node                { return p.initializers }
func (p *newArrayInitPayload) shouldDisposeValue(*Options) bool    { return false }
func (p *newArrayInitPayload) render(n *Node) string                { return n.src.String() }

func buildNewArrayInit(ctx *Context, e *expr.NewArrayInit, opts *Options, deferEvaluation bool) (*Node, error) {
	initializers, err := createAll(ctx, e.Initializers, opts, deferEvaluation)
	if err != nil {
		return nil, err
	}
	node := newNode(expr.KindNewArrayInit, e.Type(), opts, e, ctx.cache, deferEvaluation)
	p := &newArrayInitPayload{initializers: initializers, elementType: e.ElementType}
	set := &subscriptionSet{}
	for _, init := range initializers {
		subscribeChild(set, node, init)
	}
	return finishConstruction(node, p, set, initializers)
}
