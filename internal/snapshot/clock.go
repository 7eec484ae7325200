package snapshot

import (
	"context"
	"log/slog"
	"time"
)

// Advancer is anything with a tick counter to advance.
type Advancer interface {
	Advance() int64
}

// Clock advances a tick counter at a fixed interval.
type Clock struct {
	target   Advancer
	interval time.Duration
}

// NewClock creates a clock for target. Non-positive intervals default to 600ms.
func NewClock(target Advancer, interval time.Duration) *Clock {
	if interval <= 0 {
		interval = 600 * time.Millisecond
	}
	return &Clock{target: target, interval: interval}
}

// Run ticks until ctx is cancelled.
func (c *Clock) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	slog.Info("tick clock started", "interval", c.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("tick clock stopped")
			return nil
		case <-ticker.C:
			c.target.Advance()
		}
	}
}
