package storage

import (
	"context"
	"sync"

	"github.com/yourusername/caviar-shop/internal/domain/repository"
)

type memoryKeyValueStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryKeyValueStore in-memory kalit-qiymat ombori yaratish
func NewMemoryKeyValueStore() repository.KeyValueStore {
	return &memoryKeyValueStore{
		values: make(map[string][]byte),
	}
}

// Get qiymatni olish
func (m *memoryKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Set qiymatni yozish
func (m *memoryKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Delete qiymatni o'chirish
func (m *memoryKeyValueStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

type namespacedStore struct {
	inner  repository.KeyValueStore
	prefix string
}

// Namespace umumiy omborni alohida "brauzer" slotiga ajratish.
// Har bir kalit "<namespace>/" prefiksi bilan saqlanadi.
func Namespace(inner repository.KeyValueStore, namespace string) repository.KeyValueStore {
	return &namespacedStore{inner: inner, prefix: namespace + "/"}
}

func (n *namespacedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespacedStore) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *namespacedStore) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}
