package active

import (
	"fmt"
	"reflect"

	"github.com/epiforge/activeexpr/expr"
	"github.com/epiforge/activeexpr/reflectutil"
)

// methodCallPayload is an instance or static method invocation. Object
// is nil for a static call.
type methodCallPayload struct {
	object    *Node
	arguments []*Node
	method    *expr.MethodInfo
	caller    reflectutil.Caller
}

func (p *methodCallPayload) evaluate(n *Node) (any, *Fault) {
	var instance any
	if p.object != nil {
		instance = p.object.Value()
	}
	args := make([]any, len(p.arguments))
	for i, a := range p.arguments {
		args[i] = a.Value()
	}
	v, err := p.caller.Invoke(instance, args)
	if err != nil {
		return nil, NewFault(expr.KindMethodCall, n.payload.render(n), err)
	}
	return v, nil
}

func (p *methodCallPayload) initialize(*Node) error { return nil }
func (p *methodCallPayload) teardown(*Node)           {}
func (p *methodCallPayload) childNodes() []*Node {
	out := make([]*Node, 0, 1+len(p.arguments))
	if p.object != nil {
		out = append(out, p.object)
	}
	out = append(out, p.arguments...)
	return out
}
func (p *methodCallPayload) shouldDisposeValue(opts *Options) bool { return opts.shouldDisposeMethodReturn(p.method) }
func (p *methodCallPayload) render(n *Node) string                  { return n.src.String() }

func buildMethodCall(ctx *Context, e *expr.MethodCall, opts *Options, deferEvaluation bool) (*Node, error) {
	var object *Node
	if e.Object != nil {
		var err error
		object, err = Create(ctx, e.Object, opts, deferEvaluation)
		if err != nil {
			return nil, err
		}
	}
	arguments, err := createAll(ctx, e.Arguments, opts, deferEvaluation, object)
	if err != nil {
		return nil, err
	}

	caller := ctx.methods.MethodCaller(e.Method.DeclaringType, e.Method.Name, e.Method.Func)
	node := newNode(expr.KindMethodCall, e.Type(), opts, e, ctx.cache, deferEvaluation)
	p := &methodCallPayload{object: object, arguments: arguments, method: e.Method, caller: caller}
	set := &subscriptionSet{}
	if object != nil {
		subscribeChild(set, node, object)
	}
	for _, a := range arguments {
		subscribeChild(set, node, a)
	}
	children := childrenOf(object)
	children = append(children, arguments...)
	return finishConstruction(node, p, set, children)
}

// invocationPayload calls a delegate/closure value produced by Target.
type invocationPayload struct {
	target    *Node
	arguments []*Node
}

func (p *invocationPayload) evaluate(n *Node) (any, *Fault) {
	fn := reflect.ValueOf(p.target.Value())
	if fn.Kind() != reflect.Func {
		return nil, NewFault(expr.KindInvocation, n.payload.render(n), fmt.Errorf("active: target is not callable (%T)", p.target.Value()))
	}
	args := make([]reflect.Value, len(p.arguments))
	for i, a := range p.arguments {
		args[i] = reflect.ValueOf(a.Value())
	}
	results, err := callSafely(fn, args)
	if err != nil {
		return nil, NewFault(expr.KindInvocation, n.payload.render(n), err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0].Interface(), nil
}

func callSafely(fn reflect.Value, args []reflect.Value) (results []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("active: invocation panicked: %v", r)
		}
	}()
	return fn.Call(args), nil
}

func (p *invocationPayload) initialize(*Node) error { return nil }
func (p *invocationPayload) teardown(*Node)           {}
func (p *invocationPayload) childNodes() []*Node {
	out := make([]*Node, 0, 1+len(p.arguments))
	out = append(out, p.target)
	out = append(out, p.arguments...)
	return out
}
func (p *invocationPayload) shouldDisposeValue(*Options) bool { return false }
func (p *invocationPayload) render(n *Node) string              { return n.src.String() }

func buildInvocation(ctx *Context, e *expr.Invocation, opts *Options, deferEvaluation bool) (*Node, error) {
	target, err := Create(ctx, e.Target, opts, deferEvaluation)
	if err != nil {
		return nil, err
	}
	arguments, err := createAll(ctx, e.Arguments, opts, deferEvaluation, target)
	if err != nil {
		return nil, err
	}

	node := newNode(expr.KindInvocation, e.ResultType, opts, e, ctx.cache, deferEvaluation)
	p := &invocationPayload{target: target, arguments: arguments}
	set := &subscriptionSet{}
	subscribeChild(set, node, target)
	for _, a := range arguments {
		subscribeChild(set, node, a)
	}
	children := append([]*Node{target}, arguments...)
	return finishConstruction(node, p, set, children)
}

// createAll creates each of exprs' child nodes in order, rolling back
// (disposing) already-created siblings and alreadyCreated on the first
// failure.
func createAll(ctx *Context, exprs []expr.Expression, opts *Options, deferEvaluation bool, alreadyCreated ...*Node) ([]*Node, error) {
	out := make([]*Node, 0, len(exprs))
	for _, e := range exprs {
		n, err := Create(ctx, e, opts, deferEvaluation)
		if err != nil {
			disposeAll(alreadyCreated...)
			disposeAll(out...)
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
