package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/minh2003vt/OkiMart/internal/usecase"
)

// RedisStore is the state-store backend for deployments that want the
// snapshots off the local disk. Same contract as FileStore: whole blob
// per key, synchronous writes, no TTL.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *RedisStore) Write(ctx context.Context, key string, data []byte) error {
	return s.rdb.Set(ctx, key, data, 0).Err()
}

var _ usecase.StateStore = (*RedisStore)(nil)
