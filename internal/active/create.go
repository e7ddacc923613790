package active

import (
	"fmt"

	"github.com/epiforge/activeexpr/expr"
	"github.com/epiforge/activeexpr/reflectutil"
)

// Context bundles the shared caches every Create call threads
// through recursive construction: the intern cache (C3), the operator
// delegate cache (C4), and the fast-getter/fast-caller cache the
// reflectutil package owns. The façade (activeexpr.go) holds one
// package-level Context shared by every Create call and every node built,
// matching the intern cache's and operator cache's "shared globally,
// never evicted" design.
type Context struct {
	cache   *Cache
	ops     *opCache
	methods *reflectutil.Cache
	eq      expr.Eq
}

// NewContext builds a fresh Context with its own intern cache, operator
// delegate cache, and reflection cache, all keyed off eq for structural
// expression comparison. The façade package holds one process-wide
// Context so structurally-equal expressions intern to the same node
// across independent Create calls.
func NewContext(eq expr.Eq) *Context {
	methods := reflectutil.NewCache()
	return &Context{
		cache:   NewCache(eq),
		ops:     newOpCache(methods),
		methods: methods,
		eq:      eq,
	}
}

// Create lowers e into a live ActiveNode, reusing an existing node for
// the same (kind, e, opts) if one is already live. deferEvaluation suppresses the node's first Evaluate
// until a caller (typically a short-circuit/Coalesce/Conditional parent)
// calls ForceEvaluation on it.
func Create(ctx *Context, e expr.Expression, opts *Options, deferEvaluation bool) (*Node, error) {
	kind := e.Kind()
	if node, ok := ctx.cache.lookup(kind, e, opts); ok {
		return node, nil
	}

	node, err := construct(ctx, e, opts, deferEvaluation)
	if err != nil {
		return nil, err
	}

	adopted := ctx.cache.insertOrAdopt(kind, e, opts, node)
	if adopted == node {
		node.EvaluateIfNotDeferred()
	}
	return adopted, nil
}

// construct builds a brand new node (and its children, recursively) for
// e. It never touches the intern cache directly beyond what its children
// do via their own Create calls — the caller (Create above) is solely
// responsible for publishing the result.
func construct(ctx *Context, e expr.Expression, opts *Options, deferEvaluation bool) (*Node, error) {
	switch ex := e.(type) {
	case *expr.Constant:
		return buildConstant(ctx, ex, opts)
	case *expr.Parameter:
		return buildParameter(ctx, ex, opts)
	case *expr.Member:
		return buildMember(ctx, ex, opts, deferEvaluation)
	case *expr.Unary:
		return buildUnary(ctx, ex, opts, deferEvaluation)
	case *expr.Binary:
		return buildBinary(ctx, ex, opts, deferEvaluation)
	case *expr.AndAlso:
		return buildAndAlso(ctx, ex, opts, deferEvaluation)
	case *expr.OrElse:
		return buildOrElse(ctx, ex, opts, deferEvaluation)
	case *expr.Coalesce:
		return buildCoalesce(ctx, ex, opts, deferEvaluation)
	case *expr.Index:
		return buildIndex(ctx, ex, opts, deferEvaluation)
	case *expr.MethodCall:
		return buildMethodCall(ctx, ex, opts, deferEvaluation)
	case *expr.Invocation:
		return buildInvocation(ctx, ex, opts, deferEvaluation)
	case *expr.New:
		return buildNew(ctx, ex, opts, deferEvaluation)
	case *expr.NewArrayInit:
		return buildNewArrayInit(ctx, ex, opts, deferEvaluation)
	case *expr.Conditional:
		return buildConditional(ctx, ex, opts, deferEvaluation)
	case *expr.TypeBinary:
		return buildTypeBinary(ctx, ex, opts, deferEvaluation)
	default:
		return nil, fmt.Errorf("active: unrecognized expression kind %T", e)
	}
}

// finishConstruction wires p onto node, runs its initialize (subscribing
// via set), and on success commits set's subscriptions to node for
// teardown-time cleanup. On failure it rolls back both the partial
// subscriptions and the already-created children.
func finishConstruction(node *Node, p payload, set *subscriptionSet, children []*Node) (*Node, error) {
	node.payload = p
	if err := p.initialize(node); err != nil {
		set.rollback()
		for _, c := range children {
			c.Dispose()
		}
		return nil, err
	}
	set.commit(node)
	return node, nil
}

// disposeAll is the rollback helper used when a later sibling fails to
// construct after earlier siblings already succeeded.
func disposeAll(nodes ...*Node) {
	for _, n := range nodes {
		if n != nil {
			n.Dispose()
		}
	}
}
