package ratelimit

import (
	"sync"
	"time"
)

// attemptEntry tracks failed attempts for one key.
type attemptEntry struct {
	count int
	last  time.Time
}

// Attempts is a decaying failure counter used to slow brute-force
// password guessing. A key is blocked once it accumulates threshold
// failures and stays blocked until window elapses after the last
// failure; the counter then resets to zero on the next check.
// Successful attempts never touch the state.
type Attempts struct {
	mu        sync.Mutex
	threshold int
	window    time.Duration
	entries   map[string]*attemptEntry
}

// NewAttempts creates an attempt counter with the given block
// threshold and reset window.
func NewAttempts(threshold int, window time.Duration) *Attempts {
	return &Attempts{
		threshold: threshold,
		window:    window,
		entries:   make(map[string]*attemptEntry),
	}
}

// RecordFailure registers a failed attempt for key at now.
func (a *Attempts) RecordFailure(key string, now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if ent, ok := a.entries[key]; ok {
		ent.count++
		ent.last = now
		return
	}
	a.entries[key] = &attemptEntry{count: 1, last: now}
}

// IsBlocked reports whether key is currently blocked at now. When the
// window has elapsed since the last failure of an over-threshold key,
// the counter resets and the key is evaluated fresh again.
func (a *Attempts) IsBlocked(key string, now time.Time) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	ent, ok := a.entries[key]
	if !ok || ent.count < a.threshold {
		return false
	}
	if now.Sub(ent.last) < a.window {
		return true
	}
	ent.count = 0
	return false
}

// Sweep evicts entries whose last failure is older than the cutoff.
func (a *Attempts) Sweep(cutoff time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for k, ent := range a.entries {
		if ent.last.Before(cutoff) {
			delete(a.entries, k)
		}
	}
}

// Len returns the number of tracked keys.
func (a *Attempts) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}
