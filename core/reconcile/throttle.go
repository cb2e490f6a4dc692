package reconcile

import (
	"context"
	"sync"
	"time"
)

// Clock abstracts time so cooldowns can be tested without sleeping.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

type wallClock struct{}

func (wallClock) Now() time.Time {
	return time.Now()
}

func (wallClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Throttle shares the FDC request budget between pipelines.
// Once any lookup reports a budget under the low-water mark, every pipeline
// waits until the cooldown window has passed before its next lookup.
type Throttle struct {
	mu       sync.Mutex
	clock    Clock
	lowWater int
	cooldown time.Duration
	resumeAt time.Time
}

// NewThrottle creates a throttle. A nil clock uses the wall clock.
func NewThrottle(lowWater int, cooldown time.Duration, clock Clock) *Throttle {
	if clock == nil {
		clock = wallClock{}
	}
	return &Throttle{
		clock:    clock,
		lowWater: lowWater,
		cooldown: cooldown,
	}
}

// Low reports whether remaining is under the low-water mark.
func (t *Throttle) Low(remaining int) bool {
	return remaining < t.lowWater
}

// Observe records the budget reported by a lookup. A low budget opens a cooldown
// window; overlapping windows extend it, they never shorten it.
func (t *Throttle) Observe(remaining int) {
	if !t.Low(remaining) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	until := t.clock.Now().Add(t.cooldown)
	if until.After(t.resumeAt) {
		t.resumeAt = until
	}
}

// Wait blocks until the current cooldown window, if any, has passed.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	d := t.resumeAt.Sub(t.clock.Now())
	t.mu.Unlock()
	if d <= 0 {
		return nil
	}
	return t.clock.Sleep(ctx, d)
}

// Cooldown pauses the calling pipeline for the full cooldown.
func (t *Throttle) Cooldown(ctx context.Context) error {
	return t.clock.Sleep(ctx, t.cooldown)
}

// Duration returns the configured cooldown.
func (t *Throttle) Duration() time.Duration {
	return t.cooldown
}
