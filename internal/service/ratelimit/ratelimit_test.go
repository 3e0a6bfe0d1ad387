package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fixed clock the tests can advance by hand.
func newTestLimiter() (*InMemory, *time.Time) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	l := NewInMemory(0)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestExactLimitWithinWindow(t *testing.T) {
	l, _ := newTestLimiter()

	const limit = 5
	window := time.Minute

	for i := 0; i < limit; i++ {
		res := l.Check("login:ip:10.0.0.1", limit, window)
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if res.Remaining != limit-i-1 {
			t.Fatalf("request %d: remaining = %d, want %d", i+1, res.Remaining, limit-i-1)
		}
	}

	res := l.Check("login:ip:10.0.0.1", limit, window)
	if res.Allowed {
		t.Fatal("request past the limit must be denied")
	}
	if res.Remaining != 0 {
		t.Fatalf("denied request remaining = %d, want 0", res.Remaining)
	}
	if res.ResetAt.IsZero() {
		t.Fatal("denied request must carry the window reset time")
	}
}

func TestWindowRollover(t *testing.T) {
	l, now := newTestLimiter()

	window := time.Minute

	first := l.Check("logout:ip:10.0.0.2", 1, window)
	if !first.Allowed {
		t.Fatal("first request should be allowed")
	}
	if l.Check("logout:ip:10.0.0.2", 1, window).Allowed {
		t.Fatal("second request in the same window should be denied")
	}

	*now = first.ResetAt // window boundary is exclusive of the old bucket

	res := l.Check("logout:ip:10.0.0.2", 1, window)
	if !res.Allowed {
		t.Fatal("first request of a fresh window should be allowed")
	}
	if res.Remaining != 0 {
		t.Fatalf("fresh window counter should restart at 1 used, remaining = %d", res.Remaining)
	}
	if !res.ResetAt.Equal(now.Add(window)) {
		t.Fatalf("fresh window resetAt = %v, want %v", res.ResetAt, now.Add(window))
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter()

	if !l.Check("login:ip:a", 1, time.Minute).Allowed {
		t.Fatal("key a first request should pass")
	}
	if l.Check("login:ip:a", 1, time.Minute).Allowed {
		t.Fatal("key a second request should be denied")
	}
	if !l.Check("login:ip:b", 1, time.Minute).Allowed {
		t.Fatal("key b must have its own budget")
	}
	if !l.Check("register:ip:a", 1, time.Minute).Allowed {
		t.Fatal("a different operation prefix must have its own budget")
	}
}

func TestNoUnboundedBypassUnderConcurrency(t *testing.T) {
	l := NewInMemory(0)

	const limit = 50
	const attempts = 200

	var allowed int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Check("login:ip:shared", limit, time.Hour).Allowed {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}
	wg.Wait()

	if allowed != limit {
		t.Fatalf("allowed %d requests, want exactly %d", allowed, limit)
	}
}
