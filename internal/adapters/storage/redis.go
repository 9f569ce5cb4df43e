package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/zerr"
)

// RedisStore keeps values as redis strings, shared by every process
// connected to the same server.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the server at redisURL and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStorageConnectFailed.Error())
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageConnectFailed.Error()), "addr", opts.Addr)
	}

	return &RedisStore{client: client}, nil
}

// Get returns the stored value of key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrStorageReadFailed.Error()), "key", key)
	}
	return data, true, nil
}

// Set writes value under key without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageWriteFailed.Error()), "key", key)
	}
	return nil
}

// Close closes the connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
