// Package activeexpr turns a compile-time expression tree into a live
// computation graph whose root value re-evaluates automatically whenever
// any observable leaf changes. See internal/active for the node kinds,
// intern cache, and evaluation engine this package is a thin façade over.
package activeexpr

import (
	"github.com/epiforge/activeexpr/expr"
	"github.com/epiforge/activeexpr/internal/active"
	"github.com/epiforge/activeexpr/notify"
)

// defaultContext is the process-wide Context (intern cache, operator
// delegate cache, reflection cache) every Create call shares, so
// structurally-equal expressions intern to the same node across
// independent Create calls, the way a package-level builtins table is
// shared across every evaluation rather than rebuilt per call.
var defaultContext = active.NewContext(expr.DefaultEq{})

// RootHandle is the caller-facing handle onto a live computation-graph
// node. Two handles compare equal (by comparing RootHandle.node, not
// the RootHandle value itself — see Equal) exactly when they share the
// same underlying node, matching the intern cache's identity.
type RootHandle struct {
	node *active.Node
}

// Create lowers root into a live computation graph and returns a handle
// onto it, reusing an existing node for a structurally-equal root and
// options pair if one is already live.
func Create(root expr.Expression, opts *Options) (*RootHandle, error) {
	node, err := active.Create(defaultContext, root, opts, false)
	if err != nil {
		return nil, err
	}
	return &RootHandle{node: node}, nil
}

// Value returns the root's last computed result. Its meaning is
// undefined when Fault is non-nil — check Fault first.
func (h *RootHandle) Value() any { return h.node.Value() }

// Fault returns the root's last captured fault, or nil if its last
// evaluation succeeded.
func (h *RootHandle) Fault() *Fault { return h.node.Fault() }

// Kind reports the root node's kind tag.
func (h *RootHandle) Kind() expr.Kind { return h.node.Kind() }

// Subscribe registers handler to be invoked (with "Value" or "Fault")
// whenever the root's Value or Fault changes. The returned func detaches
// the subscription; it is safe to call more than once.
func (h *RootHandle) Subscribe(handler notify.PropertyChangedHandler) (unsubscribe func()) {
	return h.node.Subscribe(handler)
}

// Dispose decrements the root's refcount, propagating to children, and
// reports whether this call was the one that tore the graph down.
func (h *RootHandle) Dispose() bool {
	return h.node.Dispose()
}

// Equal reports whether h and other are handles onto the same
// underlying node.
func (h *RootHandle) Equal(other *RootHandle) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.node == other.node
}

// String renders the root using its kind-specific syntax followed by a
// diagnostic fault tag; debugging only, not part of
// the equality contract.
func (h *RootHandle) String() string {
	return h.node.String()
}
