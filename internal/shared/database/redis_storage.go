package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage adapts a Redis client to fiber's Storage interface so the
// rate limiter middleware can share counters across instances. Keys are
// namespaced with a fixed prefix to keep the database shareable.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage creates a storage adapter over an existing Redis client.
func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{
		client: client,
		prefix: "notes-block-api:limiter:",
	}
}

// NewRedisClient creates a Redis client for the given address with
// connection timeouts suitable for per-request middleware use.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})
}

// Get retrieves the value for the given key, or nil if it does not exist.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), s.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

// Set stores the value under the given key with an optional expiration.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.client.Set(context.Background(), s.prefix+key, val, exp).Err()
}

// Delete removes the given key. Deleting a missing key is a no-op.
func (s *RedisStorage) Delete(key string) error {
	return s.client.Del(context.Background(), s.prefix+key).Err()
}

// Reset removes all keys managed by this storage.
func (s *RedisStorage) Reset() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close releases the underlying client connection pool.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
