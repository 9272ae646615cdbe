package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle is a keyed token-bucket store used as a coarse per-client
// guard in front of the write endpoints. One bucket per key, created
// lazily; idle buckets are evicted by the janitor.
type Throttle struct {
	mu      sync.Mutex
	entries map[string]*throttleEntry
	rps     rate.Limit
	burst   int
}

type throttleEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewThrottle creates a throttle store allowing rps sustained requests
// per key with the given burst.
func NewThrottle(rps float64, burst int) *Throttle {
	return &Throttle{
		entries: make(map[string]*throttleEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

// Allow reports whether one request for key may proceed now.
func (t *Throttle) Allow(key string) bool {
	now := time.Now()

	t.mu.Lock()
	ent, ok := t.entries[key]
	if !ok {
		ent = &throttleEntry{lim: rate.NewLimiter(t.rps, t.burst)}
		t.entries[key] = ent
	}
	ent.lastSeen = now
	lim := ent.lim
	t.mu.Unlock()

	return lim.Allow()
}

// Sweep evicts buckets not seen since the cutoff.
func (t *Throttle) Sweep(cutoff time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for k, ent := range t.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(t.entries, k)
		}
	}
}

// Len returns the number of tracked keys.
func (t *Throttle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
