package store

import (
	"sync"
	"testing"
)

func TestStoreConcurrentMutations(t *testing.T) {
	s := New(0, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Mutate(func(n *int) { *n++ })
		}()
	}
	wg.Wait()

	if got := s.Read(); got != 50 {
		t.Fatalf("counter = %d, want 50", got)
	}
}

func TestStoreSubscriberSeesSnapshot(t *testing.T) {
	type snap struct{ items []string }
	s := New(snap{}, func(v snap) snap {
		return snap{items: append([]string(nil), v.items...)}
	})

	var seen snap
	cancel := s.Subscribe(func(v snap) { seen = v })
	defer cancel()

	s.Mutate(func(v *snap) { v.items = append(v.items, "a") })

	// Mutating the delivered snapshot must not reach the store.
	seen.items[0] = "tampered"
	if got := s.Read(); got.items[0] != "a" {
		t.Fatalf("subscriber copy leaked, state = %v", got.items)
	}
}
