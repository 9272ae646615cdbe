package ratelimit

import (
	"context"
	"time"
)

// Sweepable is anything holding keyed state that can evict entries
// older than a cutoff.
type Sweepable interface {
	Sweep(cutoff time.Time)
}

// StartJanitor periodically sweeps the given stores, evicting entries
// idle for longer than idleTTL. It runs until ctx is cancelled.
func StartJanitor(ctx context.Context, every, idleTTL time.Duration, stores ...Sweepable) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				cutoff := time.Now().Add(-idleTTL)
				for _, s := range stores {
					s.Sweep(cutoff)
				}
			}
		}
	}()
}
