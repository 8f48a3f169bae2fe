package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces fixed per-second and per-minute request windows per
// key, shared across instances through Redis.
//
// Counters are stored as:
//
//	INCR ratelimit:{key}:s:{unixSecond}  EX 2s
//	INCR ratelimit:{key}:m:{unixMinute}  EX 2m
type RateLimiter struct {
	client    *redis.Client
	perSecond int
	perMinute int
	clock     func() time.Time
}

func NewRateLimiter(client *redis.Client, perSecond, perMinute int) *RateLimiter {
	return &RateLimiter{
		client:    client,
		perSecond: perSecond,
		perMinute: perMinute,
		clock:     time.Now,
	}
}

// Allow reports whether another request under key fits in both windows.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := l.clock().Unix()
	secKey := "ratelimit:" + key + ":s:" + strconv.FormatInt(now, 10)
	minKey := "ratelimit:" + key + ":m:" + strconv.FormatInt(now/60, 10)

	pipe := l.client.Pipeline()
	secCount := pipe.Incr(ctx, secKey)
	pipe.Expire(ctx, secKey, 2*time.Second)
	minCount := pipe.Incr(ctx, minKey)
	pipe.Expire(ctx, minKey, 2*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return secCount.Val() <= int64(l.perSecond) && minCount.Val() <= int64(l.perMinute), nil
}
