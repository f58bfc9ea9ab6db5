package pipeline

import (
	"context"
	"time"
)

// RetryPolicy describes a stage's retry budget: total attempts and the
// fixed delay between them.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// delays expands the policy into a delay table with one entry per retry.
func (p RetryPolicy) delays() []time.Duration {
	if p.Attempts <= 1 {
		return nil
	}
	delays := make([]time.Duration, p.Attempts-1)
	for i := range delays {
		delays[i] = p.Delay
	}
	return delays
}

// Policies holds the per-stage retry policies.
type Policies struct {
	Metadata   RetryPolicy
	Content    RetryPolicy
	Summary    RetryPolicy
	Screenshot RetryPolicy
}

// DefaultPolicies returns the standard per-stage retry budgets.
// The summary stage gets a single attempt since its failures are swallowed.
func DefaultPolicies() Policies {
	return Policies{
		Metadata:   RetryPolicy{Attempts: 3, Delay: 1 * time.Minute},
		Content:    RetryPolicy{Attempts: 2, Delay: 2 * time.Minute},
		Summary:    RetryPolicy{Attempts: 1, Delay: 5 * time.Minute},
		Screenshot: RetryPolicy{Attempts: 2, Delay: 3 * time.Minute},
	}
}

// attemptFunc is a single attempt of a stage's work.
type attemptFunc func(ctx context.Context) error

// runWithDelays runs attempt until it succeeds, sleeping after each failure
// per the delay table: len(delays)+1 total attempts. The onRetry callback, if
// provided, is called with the 1-based number of the attempt that failed
// before each retry. Returns the last attempt's error on exhaustion.
func runWithDelays(ctx context.Context, delays []time.Duration, attempt attemptFunc, onRetry func(attempt int, err error)) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		err := attempt(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		// Don't sleep after the last attempt
		if i >= maxAttempts-1 {
			break
		}

		if onRetry != nil {
			onRetry(i+1, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[i]):
		}
	}

	return lastErr
}
