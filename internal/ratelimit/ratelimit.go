// Package ratelimit provides fixed-window admission control keyed by
// client identity. It bounds the request rate per client to protect the
// backing store from bulk scraping. Counters are process-local and
// volatile; a multi-process deployment would need a shared counter store
// behind the same CounterStore interface.
package ratelimit

import "time"

// CounterStore tracks per-key request counts within a fixed window.
// Increment must be atomic per key under concurrent access: it bumps the
// counter for the key, resetting it first when the current window has
// elapsed, and returns the post-increment count together with the start
// of the window it was counted in.
type CounterStore interface {
	Increment(key string, now time.Time, window time.Duration) (count int, windowStart time.Time)
}

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed    bool          // Whether the request is admitted.
	Remaining  int           // Checks left in the current window, 0 when denied.
	RetryAfter time.Duration // How long until the window resets, meaningful only when denied.
}

// Limiter enforces a fixed quota of admitted checks per window per
// distinct client key.
type Limiter struct {
	store  CounterStore
	quota  int
	window time.Duration
	now    func() time.Time
}

// NewLimiter creates a Limiter enforcing quota admitted checks per window
// against the given counter store.
func NewLimiter(store CounterStore, quota int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		quota:  quota,
		window: window,
		now:    time.Now,
	}
}

// Check records a request from the given client key and decides whether
// it is admitted. Exactly quota checks per key succeed within a window;
// the next one is denied with a positive RetryAfter estimating when the
// window resets.
func (l *Limiter) Check(key string) Decision {
	now := l.now()
	count, windowStart := l.store.Increment(key, now, l.window)

	if count > l.quota {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: windowStart.Add(l.window).Sub(now),
		}
	}

	return Decision{
		Allowed:   true,
		Remaining: l.quota - count,
	}
}

// Quota returns the configured number of admitted checks per window.
func (l *Limiter) Quota() int { return l.quota }

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration { return l.window }
