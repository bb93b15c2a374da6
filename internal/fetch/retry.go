package fetch

import (
	"context"
	"time"
)

// fetchSleepFunc waits between attempts. Tests replace it.
var fetchSleepFunc = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RetryPolicy decides how often and when a failed call is repeated
type RetryPolicy struct {
	MaxRetries int           // Extra attempts after the first
	Backoff    time.Duration // First delay, doubled for each further retry
	Retryable  func(error) bool
}

// DefaultRetryPolicy retries transient errors twice, after 1s and 2s
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		Backoff:    time.Second,
		Retryable:  IsRetryable,
	}
}

// Delay returns the wait before retry number n (0-based)
func (p RetryPolicy) Delay(n int) time.Duration {
	return p.Backoff * time.Duration(1<<n)
}

// Retry runs fn until it succeeds, returns a non-retryable error, or the policy is exhausted
func Retry[T any](ctx context.Context, p RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}

	var (
		out T
		err error
	)
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			if serr := fetchSleepFunc(ctx, p.Delay(attempt-1)); serr != nil {
				return out, err
			}
		}

		out, err = fn(ctx)
		if err == nil || !retryable(err) || ctx.Err() != nil {
			return out, err
		}
	}
	return out, err
}
