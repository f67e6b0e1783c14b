package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStorage connects to a local Redis instance, skipping the test when
// one is not available.
func newTestStorage(t *testing.T) *RedisStorage {
	t.Helper()

	client := NewRedisClient("localhost:6379", "", 1)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis not available for testing")
	}

	storage := NewRedisStorage(client)
	t.Cleanup(func() {
		storage.Reset()
		storage.Close()
	})
	return storage
}

func TestRedisStorage_SetGetDelete(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.Set("key1", []byte("value1"), 0))

	val, err := storage.Get("key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value1"), val)

	require.NoError(t, storage.Delete("key1"))

	val, err = storage.Get("key1")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorage_GetMissingKeyReturnsNil(t *testing.T) {
	storage := newTestStorage(t)

	val, err := storage.Get("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorage_Expiration(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.Set("ephemeral", []byte("x"), 50*time.Millisecond))
	time.Sleep(100 * time.Millisecond)

	val, err := storage.Get("ephemeral")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorage_Reset(t *testing.T) {
	storage := newTestStorage(t)

	require.NoError(t, storage.Set("a", []byte("1"), 0))
	require.NoError(t, storage.Set("b", []byte("2"), 0))
	require.NoError(t, storage.Reset())

	val, err := storage.Get("a")
	require.NoError(t, err)
	assert.Nil(t, val)
}
