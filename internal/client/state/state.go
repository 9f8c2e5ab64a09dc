// Package state provides a small subscribable current-value container. Each
// repository publishes its snapshot (items, loading, offline, last error)
// through one of these instead of mutating ambient global state.
package state

import "sync"

// Value holds the latest snapshot of type T. Get returns the current value;
// Set publishes a new one to the holder and to all subscribers.
//
// Subscriber channels are buffered with capacity one and a slow subscriber
// loses intermediate snapshots rather than blocking the publisher: observers
// always converge on the latest value.
type Value[T any] struct {
	mu   sync.RWMutex
	cur  T
	subs map[int]chan T
	next int
}

// NewValue returns a container seeded with the given snapshot.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{cur: initial, subs: make(map[int]chan T)}
}

// Get returns the current snapshot.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cur
}

// Set publishes a new snapshot.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = val
	for _, ch := range v.subs {
		select {
		case ch <- val:
		default:
			// Replace the stale queued snapshot with the new one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- val:
			default:
			}
		}
	}
}

// Subscribe registers an observer. The returned cancel function must be
// called when the observer is done; the channel is closed by cancel.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.next
	v.next++
	ch := make(chan T, 1)
	v.subs[id] = ch

	cancel := func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if _, ok := v.subs[id]; ok {
			delete(v.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}
