package active

import (
	"io"
	"reflect"
	"sync"

	"github.com/epiforge/activeexpr/expr"
	"github.com/epiforge/activeexpr/notify"
)

// Disposable is the DisposePolicy capability: a value produced
// by a New/MethodCall node that Options marks for disposal implements
// this to release its own resources synchronously.
type Disposable interface {
	Dispose() error
}

// AsyncDisposable is the asynchronous half of DisposePolicy. The core
// blocks on the returned channel before freeing the slot (blocked to sync by the caller)").
type AsyncDisposable interface {
	DisposeAsync() <-chan error
}

func disposeValue(v any) error {
	if v == nil {
		return nil
	}
	switch d := v.(type) {
	case Disposable:
		return d.Dispose()
	case AsyncDisposable:
		return <-d.DisposeAsync()
	case io.Closer:
		return d.Close()
	default:
		return nil
	}
}

// payload holds the per-kind behavior of an ActiveNode. The design
// favors a closed kind hierarchy expressed as a tagged variant over open
// polymorphism: Node.kind is the exhaustive tag consumers switch on for
// diagnostics, while payload supplies the one piece of real per-variant
// behavior (how to evaluate, what to subscribe to, how to render)
// without every call site needing its own type switch.
type payload interface {
	// evaluate computes this node's new Value and Fault, assuming
	// children are already current, and returns them rather than writing
	// Node's fields directly — Node alone owns the write path (under its
	// own lock) so payloads never need their own synchronization. A panic
	// raised here is recovered by Node.performEvaluate into a Fault, not
	// by the payload itself.
	evaluate(n *Node) (value any, fault *Fault)

	// initialize attaches whatever subscriptions this kind needs beyond
	// the generic child-changed wiring the per-kind build function has
	// already attached (subscribeChild) for each child. Returning an error
	// aborts construction and rolls back.
	initialize(n *Node) error

	// teardown detaches whatever initialize attached, and disposes any
	// non-Value resource the payload privately owns. Node handles
	// generic child subscription teardown and Value disposal itself.
	teardown(n *Node)

	// childNodes returns this node's ActiveNode children in operand
	// order, used for disposal and (for eager kinds) fault collection.
	childNodes() []*Node

	// shouldDisposeValue reports whether this node's computed Value must
	// be disposed before being replaced and on teardown.
	shouldDisposeValue(opts *Options) bool

	// render produces node-specific ToString syntax.
	render(n *Node) string
}

// shortCircuit is implemented by the kinds whose evaluation order is not
// "evaluate all children eagerly, propagate first fault" — AndAlso,
// OrElse, Coalesce, Conditional. Their payload.evaluate
// handles fault propagation and deferred-child forcing itself; Node's
// generic eager-child-fault-collection step is skipped for them.
type shortCircuit interface {
	isShortCircuit()
}

// Node is the ActiveNode base. Exactly one live Node exists
// per (kind, InternKey) at a time (Invariant 1); callers reach it only
// through Create/Dispose, never direct construction from outside this
// package.
type Node struct {
	kind    expr.Kind
	typ     reflect.Type
	options *Options
	src     expr.Expression
	cache   *Cache
	payload payload

	mu        sync.Mutex
	value     any
	fault     *Fault
	deferring bool
	quiet     bool // next setResult stores without firing; set by ForceEvaluation
	subs      []func()
	changed   notify.Broadcaster
	refcount  int

	// evalMu serializes this node's own evaluate calls; see performEvaluate.
	evalMu sync.Mutex
}

// newNode allocates a bare Node; payload and subscriptions are wired by
// the per-kind constructor in create.go before the node is published to
// the cache. deferEvaluation suppresses this node's own first Evaluate
// (see EvaluateIfNotDeferred/ForceEvaluation) — used for the Right operand
// of AndAlso/OrElse/Coalesce and the two branches of Conditional, so a
// short-circuited operand/branch never runs its own evaluate or fires a
// notification until its parent actually forces it. Subscriptions are
// still attached during construction regardless of deferEvaluation; only
// the first Evaluate is held back.
func newNode(kind expr.Kind, typ reflect.Type, options *Options, src expr.Expression, cache *Cache, deferEvaluation bool) *Node {
	return &Node{
		kind:      kind,
		typ:       typ,
		options:   options,
		src:       src,
		cache:     cache,
		deferring: deferEvaluation,
	}
}

// Kind reports the node's NodeType tag.
func (n *Node) Kind() expr.Kind { return n.kind }

// Type reports the node's static result type.
func (n *Node) Type() reflect.Type { return n.typ }

// Value returns the last computed result. Its meaning is undefined when
// Fault is non-nil.
func (n *Node) Value() any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}

// Fault returns the last captured fault, or nil if the node's last
// evaluation succeeded.
func (n *Node) Fault() *Fault {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.fault
}

// IsDeferringEvaluation reports whether this node has not yet run its
// first Evaluate.
func (n *Node) IsDeferringEvaluation() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.deferring
}

// Subscribe registers handler to be invoked (with "Value" or "Fault")
// whenever this node's Value or Fault changes.
func (n *Node) Subscribe(handler notify.PropertyChangedHandler) (unsubscribe func()) {
	return n.changed.Subscribe(handler)
}

// String renders the node using its kind-specific syntax followed by a
// diagnostic suffix tag; not part of the equality contract.
func (n *Node) String() string {
	s := n.payload.render(n)
	if f := n.Fault(); f != nil {
		return s + " {Fault: " + f.Error() + "}"
	}
	return s
}

// track registers an unsubscribe func to be called on teardown. Safe to call during initialize
// only (construction is single-threaded).
func (n *Node) track(unsubscribe func()) {
	n.subs = append(n.subs, unsubscribe)
}

// EvaluateIfNotDeferred runs the node's first Evaluate unless it was
// constructed with deferEvaluation=true, in which case it is a no-op
// until ForceEvaluation clears the flag.
func (n *Node) EvaluateIfNotDeferred() {
	n.mu.Lock()
	deferring := n.deferring
	n.mu.Unlock()
	if deferring {
		return
	}
	n.performEvaluate()
}

// ForceEvaluation clears IsDeferringEvaluation and, if this is the first
// time, runs Evaluate. Used by AndAlso/OrElse/Coalesce/Conditional to
// produce a deferred operand's initial value the first time it is
// actually needed. Still-deferred children are forced first (for a
// short-circuit kind only its first operand), and this first Evaluate
// fires no notification: the parent that forced it reads the result
// directly, from inside its own evaluation.
func (n *Node) ForceEvaluation() {
	if !n.IsDeferringEvaluation() {
		return
	}
	children := n.payload.childNodes()
	if _, isShort := n.payload.(shortCircuit); isShort && len(children) > 0 {
		children = children[:1]
	}
	for _, c := range children {
		c.ForceEvaluation()
	}
	n.mu.Lock()
	wasDeferring := n.deferring
	n.deferring = false
	n.quiet = wasDeferring
	n.mu.Unlock()
	if wasDeferring {
		n.performEvaluate()
	}
}

// onChildChanged is the handler subscribeChild installs on every child's
// PropertyChanged while a per-kind build function (eval_*.go) constructs
// the node. A still-deferring node
// ignores child changes until ForceEvaluation is called on it (it is not
// yet "live" from its parent's point of view).
func (n *Node) onChildChanged(string) {
	n.mu.Lock()
	deferring := n.deferring
	n.mu.Unlock()
	if deferring {
		return
	}
	n.performEvaluate()
}

// performEvaluate runs the Evaluation protocol: for eager
// kinds, collect child faults in operand order first; otherwise dispatch
// straight to the payload (short-circuit kinds decide for themselves
// which children to force and how faults propagate). A panic from the
// payload (e.g. a reflection call or compiled operator delegate) is
// recovered into a Fault, never escapes as a Go panic.
func (n *Node) performEvaluate() {
	var newValue any
	var newFault *Fault

	func() {
		defer recoverToFault(n.kind, n.payload.render(n), &newFault)

		if _, isShort := n.payload.(shortCircuit); !isShort {
			if childFault := firstChildFault(n.payload.childNodes()); childFault != nil {
				newFault = childFault
				return
			}
		}

		if n.payload.shouldDisposeValue(n.options) {
			if prev := n.peekValue(); prev != nil {
				_ = disposeValue(prev)
			}
		}

		// Holding n.evalMu (not n.mu) for the duration of the payload call
		// serializes concurrent triggers of this node's own evaluation
		// (e.g. two children changing on different goroutines at once)
		// without holding the state lock across child Value()/Fault()
		// reads, which each take the child's own mu. The payload never
		// touches n.value/n.fault itself; it only returns the new pair.
		n.evalMu.Lock()
		defer n.evalMu.Unlock()
		newValue, newFault = n.payload.evaluate(n)
	}()

	n.setResult(newValue, newFault)
}

// peekValue reads the current Value without requiring the caller to hold
// n.mu (used only from within performEvaluate's single-threaded-per-node
// evaluation path).
func (n *Node) peekValue() any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}

// setResult atomically updates Value and Fault (Invariant 5: both fields
// are only ever updated together) and fires PropertyChanged exactly once
// per change, after both fields have settled, never while n.mu is held.
// The first Evaluate run by ForceEvaluation stores without firing.
func (n *Node) setResult(value any, fault *Fault) {
	n.mu.Lock()
	oldFault, oldValue := n.fault, n.value
	n.value = value
	n.fault = fault
	quiet := n.quiet
	n.quiet = false
	n.mu.Unlock()
	if quiet {
		return
	}

	faultChanged := oldFault != fault
	valueChanged := fault == nil && (faultChanged || !reflect.DeepEqual(oldValue, value))

	if faultChanged {
		n.changed.Fire("Fault")
	}
	if valueChanged {
		n.changed.Fire("Value")
	}
}

// firstChildFault returns the first non-nil Fault among children, in
// operand order (Invariant 3: fault dominance).
func firstChildFault(children []*Node) *Fault {
	for _, c := range children {
		if f := c.Fault(); f != nil {
			return f
		}
	}
	return nil
}

// teardownRedundant is called on a node that lost the intern-cache
// insertion race (cache.go insertOrAdopt): it was fully built (children
// created, subscriptions attached) but never published, so it must be
// torn down exactly like a normal zero-refcount Dispose, just without
// ever having been reachable from the table.
func (n *Node) teardownRedundant() {
	n.teardownLocked()
}

// teardownLocked detaches this node's own subscriptions, disposes its
// final Value if mandated, tears down the payload's private resources,
// and releases (Dispose) every child. It does not touch the intern
// table — callers decide separately whether this node is being removed
// from one.
func (n *Node) teardownLocked() {
	n.mu.Lock()
	subs := n.subs
	n.subs = nil
	value := n.value
	n.mu.Unlock()

	for _, unsub := range subs {
		unsub()
	}

	if n.payload.shouldDisposeValue(n.options) {
		_ = disposeValue(value)
	}

	n.payload.teardown(n)

	for _, child := range n.payload.childNodes() {
		child.Dispose()
	}
}

// Dispose decrements this node's reference count and, if it reaches
// zero, tears it down and removes it from the intern cache. It reports whether this call was the one that
// actually tore the node down.
func (n *Node) Dispose() bool {
	removed := n.cache.release(n.kind, n.src, n.options, n)
	if removed {
		n.teardownLocked()
	}
	return removed
}
