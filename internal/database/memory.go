package database

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// MemoryKVStore keeps data in memory. When size is exceeded, least recently used keys are evicted.
type MemoryKVStore struct {
	cache *lru.Cache
}

// NewMemoryKVStore creates new MemoryKVStore instance.
func NewMemoryKVStore(size int) (*MemoryKVStore, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}

	return &MemoryKVStore{
		cache: cache,
	}, nil
}

// ReadKey returns data saved for given key. Returns nil if there's no data stored.
func (s *MemoryKVStore) ReadKey(_ context.Context, key []byte) ([]byte, error) {
	v, ok := s.cache.Get(string(key))
	if !ok {
		return nil, nil
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("invalid value type %T", v)
	}

	return append([]byte{}, data...), nil
}

// UpdateKey stores given data under given key.
func (s *MemoryKVStore) UpdateKey(_ context.Context, key []byte, data []byte) error {
	s.cache.Add(string(key), append([]byte{}, data...))
	return nil
}

// DeleteKey removes data stored under given key.
func (s *MemoryKVStore) DeleteKey(_ context.Context, key []byte) error {
	s.cache.Remove(string(key))
	return nil
}

// Len returns number of stored keys.
func (s *MemoryKVStore) Len() int {
	return s.cache.Len()
}
