package active

import (
	"github.com/epiforge/activeexpr/expr"
	"github.com/epiforge/activeexpr/reflectutil"
)

// coalescePayload is the null-coalescing node.
// Right is always constructed deferred, forced only the first time left
// evaluates nil.
type coalescePayload struct {
	left, right *Node
	conversion  reflectutil.Caller
}

func (p *coalescePayload) isShortCircuit() {}

func (p *coalescePayload) evaluate(n *Node) (any, *Fault) {
	if f := p.left.Fault(); f != nil {
		return nil, f
	}
	leftValue := p.left.Value()
	if leftValue != nil {
		return p.convert(n, leftValue)
	}
	p.right.ForceEvaluation()
	if f := p.right.Fault(); f != nil {
		return nil, f
	}
	return p.convert(n, p.right.Value())
}

func (p *coalescePayload) convert(n *Node, value any) (any, *Fault) {
	if p.conversion == nil {
		return value, nil
	}
	v, err := p.conversion.Invoke(value, nil)
	if err != nil {
		return nil, NewFault(expr.KindCoalesce, n.payload.render(n), err)
	}
	return v, nil
}

func (p *coalescePayload) initialize(*Node) error          { return nil }
func (p *coalescePayload) teardown(*Node)                    {}
func (p *coalescePayload) childNodes() []*Node                { return []*Node{p.left, p.right} }
func (p *coalescePayload) shouldDisposeValue(*Options) bool    { return false }
func (p *coalescePayload) render(n *Node) string               { return n.src.String() }

func buildCoalesce(ctx *Context, e *expr.Coalesce, opts *Options, deferEvaluation bool) (*Node, error) {
	left, err := Create(ctx, e.Left, opts, deferEvaluation)
	if err != nil {
		return nil, err
	}
	right, err := Create(ctx, e.Right, opts, true)
	if err != nil {
		left.Dispose()
		return nil, err
	}
	var conversion reflectutil.Caller
	if e.Conversion != nil {
		conversion = ctx.methods.MethodCaller(e.Conversion.DeclaringType, e.Conversion.Name, e.Conversion.Func)
	}
	node := newNode(expr.KindCoalesce, e.ResultType, opts, e, ctx.cache, deferEvaluation)
	p := &coalescePayload{left: left, right: right, conversion: conversion}
	set := &subscriptionSet{}
	subscribeChild(set, node, left)
	subscribeChild(set, node, right)
	return finishConstruction(node, p, set, []*Node{left, right})
}
