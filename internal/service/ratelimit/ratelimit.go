// Package ratelimit throttles auth-sensitive operations with fixed-window
// counters keyed by client identity. Buckets are process-local and
// disposable: losing them on restart only resets throttling, never
// correctness.
package ratelimit

import (
	"sync"
	"time"
)

// Result is the outcome of one Check call, with the machine-readable
// metadata callers surface on a denied request.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter is the throttling contract. The in-process implementation below is
// the default; an external-store implementation can replace it without
// touching call sites.
type Limiter interface {
	Check(key string, limit int, window time.Duration) Result
}

type bucket struct {
	count   int
	resetAt time.Time
}

// InMemory is a Limiter backed by a mutex-guarded bucket map. Expired
// buckets are replaced on touch and swept periodically.
type InMemory struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewInMemory creates a limiter and starts a background sweep that drops
// expired buckets every sweepEvery. A zero sweepEvery disables the sweeper
// (tests use this).
func NewInMemory(sweepEvery time.Duration) *InMemory {
	l := &InMemory{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}

	if sweepEvery > 0 {
		go l.sweep(sweepEvery)
	}

	return l
}

// Check counts one request against the key's current window. The first
// request of a window starts a bucket with resetAt = now + window; requests
// past the limit are denied until the window rolls over.
func (l *InMemory) Check(key string, limit int, window time.Duration) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = &bucket{count: 0, resetAt: now.Add(window)}
		l.buckets[key] = b
	}

	if b.count >= limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: b.resetAt}
	}

	b.count++
	return Result{Allowed: true, Remaining: limit - b.count, ResetAt: b.resetAt}
}

func (l *InMemory) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		now := l.now()
		l.mu.Lock()
		for k, b := range l.buckets {
			if !now.Before(b.resetAt) {
				delete(l.buckets, k)
			}
		}
		l.mu.Unlock()
	}
}
