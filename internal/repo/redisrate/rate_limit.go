// Package redisrate counts requests per client identity in Redis so the
// limit holds across server instances.
package redisrate

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	// Allow reports whether another request under key fits inside the
	// window. Counting is fixed-window: the first request in a window sets
	// the key with the window as its TTL.
	Allow(ctx context.Context, key string, requests int, window time.Duration) (bool, error)
}

type RedisLimiter struct {
	client *redis.Client
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, requests int, window time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// Hash the key so raw client identities never land in Redis.
	sum := sha256.Sum256([]byte(key))
	rk := fmt.Sprintf("ratelimit:%x", sum)

	count, err := l.client.Incr(ctx, rk).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, rk, window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(requests), nil
}
