package active

import (
	"reflect"

	"github.com/epiforge/activeexpr/expr"
	"github.com/epiforge/activeexpr/reflectutil"
)

// newPayload is a constructor invocation. Disposal of
// the produced value is governed by Options.disposeConstructedTypes,
// keyed on (Type, parameterTypes).
type newPayload struct {
	arguments       []*Node
	constructor     reflectutil.Caller
	constructedType reflect.Type
	paramTypes      []reflect.Type
}

func (p *newPayload) evaluate(n *Node) (any, *Fault) {
	args := make([]any, len(p.arguments))
	for i, a := range p.arguments {
		args[i] = a.Value()
	}
	v, err := p.constructor.Invoke(nil, args)
	if err != nil {
		return nil, NewFault(expr.KindNew, n.payload.render(n), err)
	}
	return v, nil
}

func (p *newPayload) initialize(*Node) error { return nil }
func (p *newPayload) teardown(*Node)           {}
func (p *newPayload) childNodes() []*Node      { return p.arguments }
func (p *newPayload) shouldDisposeValue(opts *Options) bool {
	return opts.shouldDisposeConstructed(p.constructedType, p.paramTypes)
}
func (p *newPayload) render(n *Node) string { return n.src.String() }

func buildNew(ctx *Context, e *expr.New, opts *Options, deferEvaluation bool) (*Node, error) {
	arguments, err := createAll(ctx, e.Arguments, opts, deferEvaluation)
	if err != nil {
		return nil, err
	}
	constructor := ctx.methods.MethodCaller(e.Constructor.DeclaringType, e.Constructor.Name, e.Constructor.Func)
	node := newNode(expr.KindNew, e.ResultType, opts, e, ctx.cache, deferEvaluation)
	p := &newPayload{
		arguments:       arguments,
		constructor:     constructor,
		constructedType: e.ResultType,
		paramTypes:      e.Constructor.ParamTypes,
	}
	set := &subscriptionSet{}
	for _, a := range arguments {
		subscribeChild(set, node, a)
	}
	return finishConstruction(node, p, set, arguments)
}
