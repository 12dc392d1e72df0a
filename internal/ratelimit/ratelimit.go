// Package ratelimit provides a fixed-window per-key request limiter held
// in process memory. State is per instance and vanishes on restart, which
// matches the abuse-throttling intent: this is not a billing meter.
package ratelimit

import (
	"sync"
	"time"
)

// Result reports one admission decision.
type Result struct {
	Allowed   bool
	Remaining int
	// Reset is when the current window expires.
	Reset time.Time
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter admits up to max requests per key within each window. Expired
// windows are evicted lazily on the next check for that key, plus a full
// sweep when the map grows past a threshold, so memory stays bounded by
// the set of recently active keys.
type Limiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	entries map[string]*entry
	now     func() time.Time
}

// sweepThreshold triggers a full expired-entry sweep.
const sweepThreshold = 10000

// New returns a limiter admitting max requests per window.
func New(window time.Duration, max int) *Limiter {
	return &Limiter{
		window:  window,
		max:     max,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Check records one request attempt for key and reports whether it is
// admitted. Rejected attempts do not extend the window.
func (l *Limiter) Check(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if len(l.entries) > sweepThreshold {
		for k, e := range l.entries {
			if now.After(e.resetAt) {
				delete(l.entries, k)
			}
		}
	}

	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &entry{resetAt: now.Add(l.window)}
		l.entries[key] = e
	}

	if e.count >= l.max {
		return Result{Allowed: false, Remaining: 0, Reset: e.resetAt}
	}
	e.count++
	return Result{Allowed: true, Remaining: l.max - e.count, Reset: e.resetAt}
}

// Reset clears the window for key. Used by tests and manual unblocking.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}
