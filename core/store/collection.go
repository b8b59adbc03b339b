package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

// collection is one JSON document holding a top-level array of records.
type collection[T any] struct {
	name  string
	key   func(*T) string
	items []T

	loaded  bool
	dirty   bool
	existed bool
	raw     []byte
}

func (c *collection[T]) load(ctx context.Context, blob Blob) error {
	if c.loaded {
		return nil
	}

	data, err := blob.Read(ctx, c.name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.items = nil
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", c.name, err)
	default:
		c.existed = true
		c.raw = data
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &c.items); err != nil {
				return fmt.Errorf("failed to decode %s: %w", c.name, err)
			}
		}
	}

	c.loaded = true
	return nil
}

func (c *collection[T]) index(key string) int {
	for i := range c.items {
		if c.key(&c.items[i]) == key {
			return i
		}
	}
	return -1
}

func (c *collection[T]) get(key string) (T, bool) {
	if i := c.index(key); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *collection[T]) put(item T) {
	if i := c.index(c.key(&item)); i >= 0 {
		c.items[i] = item
	} else {
		c.items = append(c.items, item)
	}
	c.dirty = true
}

func (c *collection[T]) remove(key string) bool {
	i := c.index(key)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.dirty = true
	return true
}

func (c *collection[T]) list() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) encode() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []T{}
	}
	return json.MarshalIndent(items, "", "  ")
}
