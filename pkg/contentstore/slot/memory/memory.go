package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tendant/content-items/pkg/contentstore"
)

// Backend is an in-memory implementation of the contentstore.Slot interface
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New creates a new in-memory slot backend
func New() *Backend {
	return &Backend{
		values: make(map[string][]byte),
	}
}

// Load returns a copy of the value stored under key
func (b *Backend) Load(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.values[key]
	if !exists {
		return nil, fmt.Errorf("key %s: %w", key, contentstore.ErrSlotNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data under key
func (b *Backend) Save(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.values[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes key
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.values, key)
	return nil
}
