package plans

import (
	"context"
	"errors"
	"sync"
)

// Storage is a string key-value store with the semantics of a browser's
// local storage. The plan store keeps its whole list under one key.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

var ErrQuotaExceeded = errors.New("storage quota exceeded")

// MemoryStorage keeps items in process memory. A positive QuotaBytes caps the
// total size of keys plus values, like a browser's per-origin quota.
type MemoryStorage struct {
	QuotaBytes int

	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[key]
	return value, ok, nil
}

func (m *MemoryStorage) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.items == nil {
		m.items = make(map[string]string)
	}
	if m.QuotaBytes > 0 {
		size := len(key) + len(value)
		for k, v := range m.items {
			if k != key {
				size += len(k) + len(v)
			}
		}
		if size > m.QuotaBytes {
			return ErrQuotaExceeded
		}
	}
	m.items[key] = value
	return nil
}

func (m *MemoryStorage) RemoveItem(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
