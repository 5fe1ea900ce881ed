package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is the default in-process CacheRepository: a size-bounded LRU
// whose entries also expire after ttl.
type MemoryCache struct {
	lru *expirable.LRU[string, string]
}

// NewMemoryCache holds at most size entries. A zero ttl keeps entries until
// they are evicted.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	val, ok := m.lru.Get(key)
	return val, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.lru.Add(key, value)
	return nil
}

// Len reports the number of cached entries, expired ones included until
// they are purged.
func (m *MemoryCache) Len() int {
	return m.lru.Len()
}
