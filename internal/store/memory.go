package store

import (
	"context"
	"sync"
)

// MemoryKeyCache is a concurrency-safe in-memory forecast.KeyCache.
type MemoryKeyCache struct {
	mu sync.RWMutex

	// key: cache key, value: resolved identifier
	data map[string]string
}

func NewMemoryKeyCache() *MemoryKeyCache {
	return &MemoryKeyCache{data: make(map[string]string)}
}

// Get returns the identifier stored under key.
func (s *MemoryKeyCache) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	return v, ok, nil
}

// Put stores value under key. The first write for a key wins.
func (s *MemoryKeyCache) Put(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		s.data[key] = value
	}
	return nil
}

// Len reports the number of cached entries.
func (s *MemoryKeyCache) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
