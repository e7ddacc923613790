package active

import (
	"sync"

	"github.com/epiforge/activeexpr/expr"
)

// Cache is the per-kind intern cache: at most one live
// node exists for a given (kind, InternKey) at any moment (Invariant 1),
// reference-counted (Invariant 2), and evicted on last release.
//
// Each kind gets its own sync.Mutex. Create never holds a kind's lock across a
// recursive call into another Create — see insertOrAdopt for why: the node
// is *built* outside the lock and only *inserted* while holding it, so a
// kind's own Create calls never nest under its own lock even when a node
// of that kind is its own child's child.
type Cache struct {
	eq     expr.Eq
	tables [numKinds]kindTable
}

type kindTable struct {
	mu      sync.Mutex
	entries map[InternKey][]*internEntry
}

const numKinds = int(expr.KindTypeBinary) + 1

// NewCache creates an empty intern cache using eq as the ExprEq
// capability for structural comparison.
func NewCache(eq expr.Eq) *Cache {
	c := &Cache{eq: eq}
	for i := range c.tables {
		c.tables[i].entries = make(map[InternKey][]*internEntry)
	}
	return c
}

// lookup returns the live node for (kind, e, opts) and bumps its
// refcount, or reports a miss.
func (c *Cache) lookup(kind expr.Kind, e expr.Expression, opts *Options) (*Node, bool) {
	table := &c.tables[kind]
	key := newInternKey(c.eq, e, opts)

	table.mu.Lock()
	defer table.mu.Unlock()
	for _, entry := range table.entries[key] {
		if c.eq.Equal(entry.expr, e) && entry.node.options.Equal(opts) {
			entry.node.refcount++
			return entry.node, true
		}
	}
	return nil, false
}

// insertOrAdopt inserts node under (kind, e, opts) if no concurrent
// creator has already done so, else tears down node (it was built
// redundantly) and returns the winner. Either way the returned node's
// refcount has been bumped by exactly 1 on behalf of the caller.
func (c *Cache) insertOrAdopt(kind expr.Kind, e expr.Expression, opts *Options, node *Node) *Node {
	table := &c.tables[kind]
	key := newInternKey(c.eq, e, opts)

	table.mu.Lock()
	for _, entry := range table.entries[key] {
		if c.eq.Equal(entry.expr, e) && entry.node.options.Equal(opts) {
			entry.node.refcount++
			table.mu.Unlock()
			node.teardownRedundant()
			return entry.node
		}
	}
	node.refcount = 1
	table.entries[key] = append(table.entries[key], &internEntry{key: key, expr: e, node: node})
	table.mu.Unlock()
	return node
}

// release decrements node's refcount and, if it reaches zero, removes it
// from its kind's table. It reports whether node was removed (i.e. this
// was the last reference), matching Dispose's contract of "returns true
// when disposalCount hits zero".
func (c *Cache) release(kind expr.Kind, e expr.Expression, opts *Options, node *Node) bool {
	table := &c.tables[kind]
	key := newInternKey(c.eq, e, opts)

	table.mu.Lock()
	node.refcount--
	removed := false
	if node.refcount <= 0 {
		bucket := table.entries[key]
		for i, entry := range bucket {
			if entry.node == node {
				bucket = append(bucket[:i], bucket[i+1:]...)
				removed = true
				break
			}
		}
		if len(bucket) == 0 {
			delete(table.entries, key)
		} else {
			table.entries[key] = bucket
		}
	}
	table.mu.Unlock()
	return removed
}
