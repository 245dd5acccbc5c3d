package storage

import (
	"encoding/json"
	"fmt"
)

// Collection binds a snapshot type to one key of a medium with a JSON codec.
// Load-all on start, save-all on every mutation.
type Collection[T any] struct {
	medium Medium
	key    string
}

// NewCollection wires a typed collection. A nil medium degrades to Noop so
// the core keeps working without a persistent backing.
func NewCollection[T any](medium Medium, key string) *Collection[T] {
	if medium == nil {
		medium = Noop{}
	}
	return &Collection[T]{medium: medium, key: key}
}

// Load reads and decodes the snapshot. ok is false when nothing has been
// saved yet.
func (c *Collection[T]) Load() (snapshot T, ok bool, err error) {
	var zero T
	data, found, err := c.medium.Load(c.key)
	if err != nil {
		return zero, false, err
	}
	if !found {
		return zero, false, nil
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return zero, false, fmt.Errorf("storage: decode %s: %w", c.key, err)
	}
	return snapshot, true, nil
}

// Save encodes and replaces the whole snapshot.
func (c *Collection[T]) Save(snapshot T) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", c.key, err)
	}
	return c.medium.Save(c.key, data)
}
