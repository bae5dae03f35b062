package rest

import (
	"context"
	"sync"
	"time"
)

// tokenBucket holds a single token that refills every interval, so callers are
// spaced at least interval apart regardless of how many goroutines wait on it.
type tokenBucket struct {
	interval time.Duration
	refillAt time.Time
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error
	mu       sync.Mutex
}

func newTokenBucket(interval time.Duration, now func() time.Time, sleep func(context.Context, time.Duration) error) *tokenBucket {
	if now == nil {
		now = time.Now
	}
	if sleep == nil {
		sleep = sleepContext
	}
	return &tokenBucket{
		interval: interval,
		now:      now,
		sleep:    sleep,
	}
}

// take blocks until the token is available and reports how long it waited.
func (b *tokenBucket) take(ctx context.Context) (time.Duration, error) {
	if b.interval <= 0 {
		return 0, nil
	}

	waited := time.Duration(0)
	for {
		if err := ctx.Err(); err != nil {
			return waited, err
		}
		b.mu.Lock()
		now := b.now()
		if !now.Before(b.refillAt) {
			b.refillAt = now.Add(b.interval)
			b.mu.Unlock()
			return waited, nil
		}
		wait := b.refillAt.Sub(now)
		b.mu.Unlock()

		err := b.sleep(ctx, wait)
		waited += wait
		if err != nil {
			return waited, err
		}
	}
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
