// Package syncstore adapts a remote key-value store for ledger snapshots.
package syncstore

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore stores ledger snapshots as opaque byte blobs in Redis.
// Snapshots carry no TTL: the remote copy lives until the next push.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore for the given address and database.
// The password is the sync access token (may be empty for open instances).
func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Get returns the snapshot blob for key. The second return value reports
// whether the key existed.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set stores the snapshot blob under key.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Ping verifies connectivity to the remote store.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
