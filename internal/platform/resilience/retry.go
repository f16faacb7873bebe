package resilience

import (
	"context"
	"time"
)

// Retry calls fn until it succeeds, the policy is exhausted, or ctx ends. The last error
// from fn is returned.
func Retry(ctx context.Context, policy RetryPolicy, fn func(context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= policy.Attempts {
			return err
		}
		if policy.Retryable != nil && !policy.Retryable(err) {
			return err
		}

		timer := time.NewTimer(policy.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}
