package active

import "github.com/epiforge/activeexpr/notify"

// subscriptionSet is the scoped subscribe/unsubscribe guard: a
// payload's initialize attaches subscriptions into one of these as it
// goes, then either commits them onto the node (construction succeeded)
// or rolls them all back (construction failed partway through — a node
// that never finishes construction must leave no observer registered
// anywhere). The same rollback-on-failure discipline cache.go's
// insertOrAdopt applies to a whole redundant node applies here to a
// partially-wired one.
type subscriptionSet struct {
	unsubs []func()
}

// add records an unsubscribe func without yet attaching it to any node.
func (s *subscriptionSet) add(unsubscribe func()) {
	if unsubscribe != nil {
		s.unsubs = append(s.unsubs, unsubscribe)
	}
}

// commit hands every recorded subscription to n for teardown-time
// cleanup (Node.track) and clears the set.
func (s *subscriptionSet) commit(n *Node) {
	for _, u := range s.unsubs {
		n.track(u)
	}
	s.unsubs = nil
}

// rollback immediately unsubscribes everything recorded so far, for the
// construction-failed path.
func (s *subscriptionSet) rollback() {
	for _, u := range s.unsubs {
		u()
	}
	s.unsubs = nil
}

// subscribeChild wires n to re-evaluate whenever child's Value or Fault
// changes — the generic child-changed plumbing every payload.initialize
// uses for each of its operand nodes.
func subscribeChild(set *subscriptionSet, n *Node, child *Node) {
	set.add(child.Subscribe(n.onChildChanged))
}

// subscribeSource attaches to whichever change-notification capability
// source implements — PropertyChangedSource always, and
// CollectionChangedSource/DictionaryChangedSource when opts enables the
// generated-type special case — so
// Member re-evaluates not only when its own source's property changes
// but, for the special case, when a captured collection/dictionary's
// contents do. A source implementing none of these simply contributes no
// subscription; Member still evaluates once at construction, it just
// never refreshes on an external mutation the source can't announce.
func subscribeSource(set *subscriptionSet, n *Node, source any, opts *Options) {
	if pc, ok := source.(notify.PropertyChangedSource); ok {
		set.add(pc.OnPropertyChanged(func(string) { n.onChildChanged("") }))
	}
	if opts != nil && opts.MemberExpressionsListenToGeneratedTypesFieldValuesForCollectionChanged {
		if cc, ok := source.(notify.CollectionChangedSource); ok {
			set.add(cc.OnCollectionChanged(func() { n.onChildChanged("") }))
		}
	}
	if opts != nil && opts.MemberExpressionsListenToGeneratedTypesFieldValuesForDictionaryChanged {
		if dc, ok := source.(notify.DictionaryChangedSource); ok {
			set.add(dc.OnDictionaryChanged(func() { n.onChildChanged("") }))
		}
	}
}
