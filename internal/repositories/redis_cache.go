package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
)

// RedisCacheRepository stores cache entries in Redis, relying on key TTLs for expiry.
type RedisCacheRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisCacheRepository creates a repository whose keys are namespaced by prefix.
func NewRedisCacheRepository(client *redis.Client, prefix string) *RedisCacheRepository {
	return &RedisCacheRepository{
		client: client,
		prefix: prefix,
	}
}

// Get fetches the value stored under key.
func (r *RedisCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		logger.Log.Errorw("redis get failed", "key", r.prefix+key, "error", err)
		return nil, err
	}

	logger.Log.Debugw("redis get", "key", r.prefix+key, "size", len(val))
	return val, nil
}

// Set stores value under key with expiration ttl. A non-positive ttl never expires.
func (r *RedisCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	err := r.client.Set(ctx, r.prefix+key, value, ttl).Err()

	logger.Log.Debugw("redis set",
		"key", r.prefix+key,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// Delete removes key.
func (r *RedisCacheRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
