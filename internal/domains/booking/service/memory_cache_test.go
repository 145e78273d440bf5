package service_test

import (
	"context"
	"encoding/json"
	"hotel/shared/cache"
	"strings"
	"sync"
)

// memoryCache is a map backed cache.RedisCache with the same JSON round trip
// and miss semantics as the redis implementation.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

var _ cache.RedisCache = (*memoryCache)(nil)

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Save(_ context.Context, key string, value any, _ int) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = payload

	return nil
}

func (m *memoryCache) Get(_ context.Context, key string, value any) error {
	m.mu.Lock()
	payload, ok := m.entries[key]
	m.mu.Unlock()

	if !ok {
		return cache.Nil
	}

	return json.Unmarshal(payload, value)
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)

	return nil
}

func (m *memoryCache) Clear(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")

	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}

	return nil
}

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.entries[key]

	return ok
}
