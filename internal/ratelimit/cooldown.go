// Package ratelimit holds the in-memory throttling state for the
// service: a per-identity comment cooldown, a per-IP decaying counter
// for password attempts, and a per-IP token-bucket throttle. All
// state is volatile and resets on restart; multi-instance
// coordination is out of scope.
package ratelimit

import (
	"sync"
	"time"
)

// Cooldown enforces a minimum interval between accepted actions from
// the same key. The check-then-record sequence is atomic per call, so
// two near-simultaneous requests for the same key cannot both pass.
type Cooldown struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[string]time.Time
}

// NewCooldown creates a cooldown limiter with the given minimum
// interval between accepted actions.
func NewCooldown(interval time.Duration) *Cooldown {
	return &Cooldown{
		interval: interval,
		last:     make(map[string]time.Time),
	}
}

// Authorize reports whether an action from key is allowed at now.
// The first action for a key is always allowed. On allow, now is
// recorded as the key's last accepted time; on deny, state is left
// unchanged.
func (c *Cooldown) Authorize(key string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if last, ok := c.last[key]; ok && now.Sub(last) < c.interval {
		return false
	}
	c.last[key] = now
	return true
}

// Sweep evicts entries whose last accepted time is older than the
// cutoff. Called periodically by the janitor; without it the map
// grows with every distinct identity ever seen.
func (c *Cooldown) Sweep(cutoff time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, last := range c.last {
		if last.Before(cutoff) {
			delete(c.last, k)
		}
	}
}

// Len returns the number of tracked keys.
func (c *Cooldown) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.last)
}
