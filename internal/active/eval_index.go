package active

import (
	"fmt"
	"reflect"

	"github.com/epiforge/activeexpr/expr"
	"github.com/epiforge/activeexpr/reflectutil"
)

// indexPayload is array/slice/map/indexed-property access. Indexer non-nil means an indexed property; otherwise a plain
// reflect.Value Index/MapIndex.
type indexPayload struct {
	object    *Node
	arguments []*Node
	indexer   reflectutil.Caller
}

func (p *indexPayload) evaluate(n *Node) (any, *Fault) {
	args := make([]any, len(p.arguments))
	for i, a := range p.arguments {
		args[i] = a.Value()
	}
	if p.indexer != nil {
		v, err := p.indexer.Invoke(p.object.Value(), args)
		if err != nil {
			return nil, NewFault(expr.KindIndex, n.payload.render(n), err)
		}
		return v, nil
	}
	v, err := genericIndex(p.object.Value(), args)
	if err != nil {
		return nil, NewFault(expr.KindIndex, n.payload.render(n), err)
	}
	return v, nil
}

func genericIndex(object any, args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("active: index out of range or invalid: %v", r)
		}
	}()
	v := reflect.ValueOf(object)
	switch v.Kind() {
	case reflect.Map:
		key := reflect.ValueOf(args[0])
		item := v.MapIndex(key)
		if !item.IsValid() {
			return nil, fmt.Errorf("active: no entry for key %v", args[0])
		}
		return item.Interface(), nil
	case reflect.Slice, reflect.Array, reflect.String:
		i := reflect.ValueOf(args[0])
		idx := int(i.Int())
		return v.Index(idx).Interface(), nil
	default:
		return nil, fmt.Errorf("active: %s is not indexable", v.Kind())
	}
}

func (p *indexPayload) initialize(*Node) error       { return nil }
func (p *indexPayload) teardown(*Node)                 {}
func (p *indexPayload) childNodes() []*Node {
	out := make([]*Node, 0, 1+len(p.arguments))
	out = append(out, p.object)
	out = append(out, p.arguments...)
	return out
}
func (p *indexPayload) shouldDisposeValue(*Options) bool { return false }
func (p *indexPayload) render(n *Node) string             { return n.src.String() }

func buildIndex(ctx *Context, e *expr.Index, opts *Options, deferEvaluation bool) (*Node, error) {
	object, err := Create(ctx, e.Object, opts, deferEvaluation)
	if err != nil {
		return nil, err
	}
	arguments, err := createAll(ctx, e.Arguments, opts, deferEvaluation, object)
	if err != nil {
		return nil, err
	}

	var indexer reflectutil.Caller
	if e.Indexer != nil {
		indexer = ctx.methods.MethodCaller(e.Indexer.DeclaringType, e.Indexer.Name, e.Indexer.Func)
	}

	node := newNode(expr.KindIndex, e.ResultType, opts, e, ctx.cache, deferEvaluation)
	p := &indexPayload{object: object, arguments: arguments, indexer: indexer}
	set := &subscriptionSet{}
	subscribeChild(set, node, object)
	for _, a := range arguments {
		subscribeChild(set, node, a)
	}
	children := append([]*Node{object}, arguments...)
	return finishConstruction(node, p, set, children)
}
