// Package store provides the process-wide state containers: an explicit
// snapshot store with subscribe semantics, plus the schema and submission
// collections built on it. Stores are injected into callers rather than
// reached for as ambient singletons; persistence attaches as a subscriber.
package store

import "sync"

// Store holds one snapshot of type T. Mutations run under a write lock and
// notify subscribers with a copy of the new snapshot. Concurrent sessions
// are last-writer-wins; there is no transaction boundary.
type Store[T any] struct {
	mu    sync.RWMutex
	state T
	clone func(T) T
	subs  map[int]func(T)
	next  int
}

// New creates a store seeded with the initial snapshot. clone produces the
// copies handed to readers and subscribers; pass nil for value-type
// snapshots that are safe to share.
func New[T any](initial T, clone func(T) T) *Store[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Store[T]{
		state: initial,
		clone: clone,
		subs:  make(map[int]func(T)),
	}
}

// Read returns a copy of the current snapshot.
func (s *Store[T]) Read() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clone(s.state)
}

// Mutate applies fn to the snapshot under the write lock, then notifies
// every subscriber with a copy of the result.
func (s *Store[T]) Mutate(fn func(*T)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.clone(s.state)
	subs := make([]func(T), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
}

// Subscribe registers fn to run after every mutation. The returned cancel
// detaches it.
func (s *Store[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
