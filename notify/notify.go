// Package notify defines the change-notification capabilities a source
// object may implement, plus a small multi-observer broadcaster the active
// core uses to fan out its own PropertyChanged notifications.
//
// The registration shape is grounded on
// runtime.RefCountManager.SetDestructorCallback's single-callback slot
// (internal/interp/runtime/refcount.go), generalized here from one
// callback to a fan-out list: a simple vector of observer callbacks
// protected by a short lock.
package notify

import "sync"

// PropertyChangedHandler is invoked with the name of the property that
// changed. An empty name means "multiple or unspecified properties
// changed" (matching the platform convention of firing a bare
// notification for compound changes).
type PropertyChangedHandler func(propertyName string)

// PropertyChangedSource is implemented by source objects that can notify
// observers when one of their properties changes. Member
// attaches to this capability on its source object instance.
type PropertyChangedSource interface {
	OnPropertyChanged(handler PropertyChangedHandler) (unsubscribe func())
}

// CollectionChangedHandler is invoked when a collection's contents
// change. The platform's own event arguments are opaque to the core; it
// only needs to know that *a* change happened, to trigger re-evaluation.
type CollectionChangedHandler func()

// CollectionChangedSource is implemented by collection-valued objects
// that support change notification.
type CollectionChangedSource interface {
	OnCollectionChanged(handler CollectionChangedHandler) (unsubscribe func())
}

// DictionaryChangedHandler is the dictionary analogue of
// CollectionChangedHandler.
type DictionaryChangedHandler func()

// DictionaryChangedSource is implemented by dictionary-valued objects
// that support change notification.
type DictionaryChangedSource interface {
	OnDictionaryChanged(handler DictionaryChangedHandler) (unsubscribe func())
}

// Broadcaster is a thread-safe multi-observer fan-out list. ActiveNode
// (C5) embeds one to implement its own PropertyChanged notification.
// Delivery never happens while the lock is held.
type Broadcaster struct {
	mu       sync.Mutex
	handlers map[int]PropertyChangedHandler
	nextID   int
}

// Subscribe registers handler and returns an idempotent unsubscribe func.
func (b *Broadcaster) Subscribe(handler PropertyChangedHandler) (unsubscribe func()) {
	b.mu.Lock()
	if b.handlers == nil {
		b.handlers = make(map[int]PropertyChangedHandler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.handlers, id)
			b.mu.Unlock()
		})
	}
}

// Fire invokes every currently-registered handler with propertyName. The
// handler list is snapshotted under the lock and then called outside it,
// so a handler that subscribes/unsubscribes during delivery never
// deadlocks and never observes a torn handler set.
func (b *Broadcaster) Fire(propertyName string) {
	b.mu.Lock()
	snapshot := make([]PropertyChangedHandler, 0, len(b.handlers))
	for _, h := range b.handlers {
		snapshot = append(snapshot, h)
	}
	b.mu.Unlock()

	for _, h := range snapshot {
		h(propertyName)
	}
}

// Len reports the number of currently-registered handlers. Used by tests
// to assert "no dangling subscriptions".
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}
