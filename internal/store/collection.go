package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// Collection is an ordered in-memory sequence of one domain's records.
// A single mutex serializes every mutation; readers get copies. When a
// collection is bound to the KV port, each successful mutation writes
// the full JSON-encoded slice back — last write wins.
type Collection[T any] struct {
	mu     sync.Mutex
	name   string
	prefix string
	idOf   func(T) string
	seed   []T
	items  []T
	kv     KV
	key    string
}

// NewCollection builds a collection seeded from fixtures.
func NewCollection[T any](name, prefix string, idOf func(T) string, seed []T) *Collection[T] {
	items := make([]T, len(seed))
	copy(items, seed)
	return &Collection[T]{
		name:   name,
		prefix: prefix,
		idOf:   idOf,
		seed:   seed,
		items:  items,
	}
}

// Bind attaches the persistence port. Call Load afterwards to replace
// the fixture seed with whatever the port holds.
func (c *Collection[T]) Bind(kv KV, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kv = kv
	c.key = key
}

// Load reads the bound key. An absent key seeds the fixtures and writes
// them back; a value that fails to parse is treated the same way rather
// than aborting startup.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv == nil {
		return nil
	}

	raw, err := c.kv.Load(ctx, c.key)
	if err != nil && err != ErrNoKey {
		return fmt.Errorf("load %s: %w", c.name, err)
	}
	if err == nil {
		var items []T
		if jsonErr := json.Unmarshal(raw, &items); jsonErr == nil {
			c.items = items
			return nil
		}
		log.Printf("store: %s: discarding unparseable persisted value, reseeding fixtures", c.name)
	}

	c.items = make([]T, len(c.seed))
	copy(c.items, c.seed)
	return c.saveLocked(ctx)
}

// Items returns a copy of the collection in insertion order.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make([]T, len(c.items))
	copy(copied, c.items)
	return copied
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if c.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// NewID synthesizes the next <PREFIX>-<YEAR>-<SEQ> identifier from the
// current length. Deleting a record frees its sequence number, so a
// later create can reuse it — observed upstream behavior, kept as is.
func (c *Collection[T]) NewID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("%s-%d-%03d", c.prefix, time.Now().Year(), len(c.items)+1)
}

// Insert appends a record and persists.
func (c *Collection[T]) Insert(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	return c.saveLocked(ctx)
}

// Replace swaps the record with the same identifier in place; the
// updated record keeps its position. Returns false when the identifier
// is unknown.
func (c *Collection[T]) Replace(ctx context.Context, id string, item T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = item
			return true, c.saveLocked(ctx)
		}
	}
	return false, nil
}

// Remove deletes by identifier. Returns false when the identifier is
// unknown.
func (c *Collection[T]) Remove(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	filtered := c.items[:0:0]
	found := false
	for _, item := range c.items {
		if c.idOf(item) == id {
			found = true
			continue
		}
		filtered = append(filtered, item)
	}
	if !found {
		return false, nil
	}
	c.items = filtered
	return true, c.saveLocked(ctx)
}

// Append adds a batch of records in one mutation (import flow).
func (c *Collection[T]) Append(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, items...)
	return c.saveLocked(ctx)
}

func (c *Collection[T]) saveLocked(ctx context.Context) error {
	if c.kv == nil {
		return nil
	}
	raw, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.kv.Save(ctx, c.key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", c.name, err)
	}
	return nil
}
