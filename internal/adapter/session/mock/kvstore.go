package mock

import (
	"context"
	"sync"
)

// KVStore mocks session.KVStore.
type KVStore struct {
	// Err is returned from every call when set.
	Err error

	data    map[string][]byte
	reads   int
	updates int
	deletes int
	m       sync.Mutex
}

// NewKVStore creates new KVStore instance with given data.
func NewKVStore(data map[string][]byte) *KVStore {
	if data == nil {
		data = make(map[string][]byte)
	}
	return &KVStore{
		data: data,
	}
}

// ReadKey returns data saved for given key.
func (s *KVStore) ReadKey(_ context.Context, key []byte) ([]byte, error) {
	s.m.Lock()
	defer s.m.Unlock()

	s.reads++
	if s.Err != nil {
		return nil, s.Err
	}

	return s.data[string(key)], nil
}

// UpdateKey stores given data under given key.
func (s *KVStore) UpdateKey(_ context.Context, key []byte, data []byte) error {
	s.m.Lock()
	defer s.m.Unlock()

	s.updates++
	if s.Err != nil {
		return s.Err
	}
	s.data[string(key)] = data

	return nil
}

// DeleteKey removes data stored under given key.
func (s *KVStore) DeleteKey(_ context.Context, key []byte) error {
	s.m.Lock()
	defer s.m.Unlock()

	s.deletes++
	if s.Err != nil {
		return s.Err
	}
	delete(s.data, string(key))

	return nil
}

// Keys returns number of stored keys.
func (s *KVStore) Keys() int {
	s.m.Lock()
	defer s.m.Unlock()

	return len(s.data)
}

// Reads returns read call count.
func (s *KVStore) Reads() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.reads
}

// Updates returns update call count.
func (s *KVStore) Updates() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.updates
}

// Deletes returns delete call count.
func (s *KVStore) Deletes() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.deletes
}
