package service

import (
	"sync"
	"time"
)

// RateLimiter is an in-memory per-key token bucket, used to throttle
// the unauthenticated auth endpoints by client IP. It is safe for
// concurrent use. Stale buckets are pruned opportunistically during
// Allow calls, so no background goroutine is needed.
type RateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	rate        float64 // tokens added per second
	capacity    float64 // maximum tokens per bucket
	lastPrune   time.Time
	staleAfter  time.Duration
	pruneEvery  time.Duration
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter creates a limiter refilling at rate tokens per second
// with the given burst capacity per key.
func NewRateLimiter(rate, capacity float64) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		capacity:   capacity,
		lastPrune:  time.Now(),
		staleAfter: 10 * time.Minute,
		pruneEvery: 5 * time.Minute,
	}
}

// Allow reports whether the key may proceed, consuming one token.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastPrune) >= rl.pruneEvery {
		rl.prune(now)
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.capacity, last: now}
		rl.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*rl.rate, rl.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// prune removes buckets not touched within staleAfter. Caller holds mu.
func (rl *RateLimiter) prune(now time.Time) {
	cutoff := now.Add(-rl.staleAfter)
	for key, b := range rl.buckets {
		if b.last.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
	rl.lastPrune = now
}
