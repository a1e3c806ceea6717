package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKVStore stores data in redis. Keys are prefixed and expire after ttl.
type RedisKVStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisKVStore creates new RedisKVStore instance and checks connection.
// Zero ttl means keys never expire.
func NewRedisKVStore(ctx context.Context, client redis.UniversalClient, prefix string, ttl time.Duration) (*RedisKVStore, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisKVStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

// ReadKey returns data saved for given key. Returns nil if there's no data stored.
func (s *RedisKVStore) ReadKey(ctx context.Context, key []byte) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading from redis: %w", err)
	}

	return data, nil
}

// UpdateKey stores given data under given key.
func (s *RedisKVStore) UpdateKey(ctx context.Context, key []byte, data []byte) error {
	if err := s.client.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing to redis: %w", err)
	}

	return nil
}

// DeleteKey removes data stored under given key.
func (s *RedisKVStore) DeleteKey(ctx context.Context, key []byte) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("deleting from redis: %w", err)
	}

	return nil
}

// Close closes redis connection.
func (s *RedisKVStore) Close() error {
	return s.client.Close()
}

func (s *RedisKVStore) key(key []byte) string {
	return s.prefix + string(key)
}
