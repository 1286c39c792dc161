package api

import (
	"context"
	"time"
)

// RetryPolicy defines the bounded linear backoff used by bulk saves:
// MaxRetries extra attempts with Delay × attempt between them.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
	MaxDelay   time.Duration
}

// NextDelay returns the wait before retrying after a given attempt
// (1-based). The delay grows linearly and is clamped to MaxDelay.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := r.Delay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	d := time.Duration(attempt) * delay
	if r.MaxDelay > 0 && d > r.MaxDelay {
		d = r.MaxDelay
	}
	return d
}

// wait sleeps for d or returns early when ctx is canceled.
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
