package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNoKey is returned by Load when a key has never been written.
var ErrNoKey = errors.New("key not found")

// KV is the persistence port for collections that survive a restart.
// Values are JSON documents; writes are last-write-wins with no
// read-modify-write coordination between processes.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// MemoryKV is an in-process KV used by tests and by deployments that
// accept fixture-only state.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

func (m *MemoryKV) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return nil, ErrNoKey
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (m *MemoryKV) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]byte, len(value))
	copy(copied, value)
	m.values[key] = copied
	return nil
}
