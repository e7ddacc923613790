package active

import (
	"reflect"
	"strings"

	"github.com/epiforge/activeexpr/expr"
	"github.com/epiforge/activeexpr/reflectutil"
)

// memberPayload is the Member node: a field or
// property read off an optional source child, with the source's own
// instance subscribed to for change notification when it supports the
// protocol.
type memberPayload struct {
	source *Node
	info   *expr.MemberInfo
	getter reflectutil.Getter
}

func (p *memberPayload) evaluate(*Node) (any, *Fault) {
	var instance any
	if p.source != nil {
		instance = p.source.Value()
	}
	v, err := p.getter.Get(instance)
	if err != nil {
		return nil, NewFault(expr.KindMember, p.info.Name, err)
	}
	return v, nil
}

func (p *memberPayload) initialize(n *Node) error {
	if p.source == nil || p.info.DoNotListenForPropertyChanges {
		return nil
	}
	set := &subscriptionSet{}
	instance := p.source.Value()
	if instance != nil {
		subscribeSource(set, n, instance, n.options)
		if isGeneratedCaptureType(p.source.Type()) {
			subscribeGeneratedCollectionValue(set, n, instance, p.info.Name, n.options)
		}
	}
	set.commit(n)
	return nil
}

func (p *memberPayload) teardown(*Node)           {}
func (p *memberPayload) childNodes() []*Node       { return childrenOf(p.source) }
func (p *memberPayload) shouldDisposeValue(*Options) bool { return false }
func (p *memberPayload) render(n *Node) string     { return n.src.String() }

// isGeneratedCaptureType reports whether t's name marks it as a
// compiler-synthesized capture class.
func isGeneratedCaptureType(t reflect.Type) bool {
	return t != nil && strings.HasPrefix(t.Name(), "<")
}

// subscribeGeneratedCollectionValue attaches to the collection/dictionary
// change event of a capture-class field's current value, when the
// matching Option enables it, so a mutation of the captured collection
// itself (not a reassignment of the field) triggers re-evaluation.
func subscribeGeneratedCollectionValue(set *subscriptionSet, n *Node, instance any, fieldName string, opts *Options) {
	if opts == nil || instance == nil {
		return
	}
	v := reflect.ValueOf(instance)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	fv := v.FieldByName(fieldName)
	if !fv.IsValid() || !fv.CanInterface() {
		return
	}
	value := fv.Interface()
	if value == nil {
		return
	}
	subscribeSource(set, n, value, opts)
}

func childrenOf(nodes ...*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func buildMember(ctx *Context, e *expr.Member, opts *Options, deferEvaluation bool) (*Node, error) {
	var source *Node
	if e.Source != nil {
		var err error
		source, err = Create(ctx, e.Source, opts, deferEvaluation)
		if err != nil {
			return nil, err
		}
	}

	var getter reflectutil.Getter
	if e.Info.IsField {
		getter = ctx.methods.FieldGetter(e.Info.DeclaringType, e.Info.Name)
	} else {
		getter = ctx.methods.PropertyGetter(e.Info.DeclaringType, e.Info.Name)
	}

	node := newNode(expr.KindMember, e.ResultType, opts, e, ctx.cache, deferEvaluation)
	p := &memberPayload{source: source, info: e.Info, getter: getter}
	set := &subscriptionSet{}
	if source != nil {
		subscribeChild(set, node, source)
	}
	return finishConstruction(node, p, set, childrenOf(source))
}
