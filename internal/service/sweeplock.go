package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sweepLockTTL = 5 * time.Minute

// RedisRunLock implements RunLocker with a redis SETNX lease so a
// scheduled trigger and an operator trigger don't both sweep at once.
type RedisRunLock struct {
	client *redis.Client
	key    string
}

// NewRedisRunLock creates a run lock keyed per deployment
func NewRedisRunLock(client *redis.Client, key string) *RedisRunLock {
	if key == "" {
		key = "pawfect:purge:lock"
	}
	return &RedisRunLock{client: client, key: key}
}

// Acquire takes the lease; false means another sweep holds it
func (r *RedisRunLock) Acquire(ctx context.Context) (bool, error) {
	return r.client.SetNX(ctx, r.key, 1, sweepLockTTL).Result()
}

// Release drops the lease
func (r *RedisRunLock) Release(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
