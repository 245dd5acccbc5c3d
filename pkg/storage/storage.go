// Package storage is the external persistence collaborator: a keyed byte
// medium with whole-document overwrite semantics, plus a typed JSON
// collection binding on top. The core functions purely in memory when no
// medium is available, so every implementation here is optional.
package storage

import "sync"

// Medium stores one opaque document per key. Save replaces the whole
// document; there is no row-level upsert at this layer.
type Medium interface {
	// Load returns the document for key. ok is false when the key has never
	// been saved, which callers treat as an empty collection, not an error.
	Load(key string) (data []byte, ok bool, err error)
	// Save replaces the document for key.
	Save(key string, data []byte) error
}

// Noop discards writes and never finds anything. It is the graceful
// fallback for headless contexts with no persistent medium.
type Noop struct{}

// Load always reports the key as absent.
func (Noop) Load(string) ([]byte, bool, error) {
	return nil, false, nil
}

// Save discards the document.
func (Noop) Save(string, []byte) error {
	return nil
}

// Memory keeps documents in an in-process map. Safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemory creates an empty in-memory medium.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Load(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (m *Memory) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.docs[key] = stored
	return nil
}
