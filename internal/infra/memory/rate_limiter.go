package memory

import (
	"context"
	"sync"
	"time"
)

// RateLimiter enforces fixed per-second and per-minute request windows per
// key, entirely in-process. Used when no Redis is configured.
type RateLimiter struct {
	perSecond int
	perMinute int
	clock     func() time.Time

	mu      sync.Mutex
	seconds window
	minutes window
}

type window struct {
	stamp  int64
	counts map[string]int
}

func NewRateLimiter(perSecond, perMinute int) *RateLimiter {
	return &RateLimiter{
		perSecond: perSecond,
		perMinute: perMinute,
		clock:     time.Now,
		seconds:   window{counts: make(map[string]int)},
		minutes:   window{counts: make(map[string]int)},
	}
}

// Allow reports whether another request under key fits in both windows.
func (l *RateLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.clock().Unix()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.seconds.stamp != now {
		l.seconds = window{stamp: now, counts: make(map[string]int)}
	}
	if l.minutes.stamp != now/60 {
		l.minutes = window{stamp: now / 60, counts: make(map[string]int)}
	}

	l.seconds.counts[key]++
	l.minutes.counts[key]++
	return l.seconds.counts[key] <= l.perSecond && l.minutes.counts[key] <= l.perMinute, nil
}
