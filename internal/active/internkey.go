package active

import (
	"github.com/epiforge/activeexpr/expr"
)

// InternKey identifies one interned node within its kind's table as the
// pair (structural-expression-key, Options). Two keys compare equal
// (as plain Go map keys, via ==) iff their expressions hash-collide
// under ExprEq.Hash and their Options hash-collide under Options.Hash.
// A hash collision is only a fast-path candidate; Cache.lookup and
// Cache.insertOrAdopt still confirm with expr.Eq.Equal before treating
// two hash-equal keys as the same identity.
type InternKey string

// newInternKey builds the key for e under opts using eq as the ExprEq
// capability.
func newInternKey(eq expr.Eq, e expr.Expression, opts *Options) InternKey {
	return InternKey(hashString(eq.Hash(e)) + "/" + opts.Hash())
}

func hashString(h uint64) string {
	const hextable = "0123456789abcdef"
	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = hextable[h&0xf]
		h >>= 4
	}
	return string(buf)
}

// internEntry is one slot of a kind's table. Two different expressions
// can collide on the same InternKey, so the entry keeps the expression
// itself for the cache to confirm with expr.Eq.Equal before treating a
// key match as an identity match.
type internEntry struct {
	key  InternKey
	expr expr.Expression
	node *Node
}
