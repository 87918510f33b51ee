// Package retry holds the fixed-delay retry policy shared by lock acquisition
// and the update-check phases.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy retries an operation up to MaxAttempts times with a constant Delay
// between attempts.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Once is the default policy: one retry after a short pause.
func Once(delay time.Duration) Policy {
	return Policy{MaxAttempts: 2, Delay: delay}
}

// Notify is called after a failed attempt that will be retried.
type Notify func(attempt int, err error, next time.Duration)

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op until it succeeds, returns a Permanent error, the attempts are
// exhausted or ctx is done. The attempt number passed to op starts at 1.
func (p Policy) Do(ctx context.Context, op func(attempt int) error, notify Notify) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var b backoff.BackOff = backoff.NewConstantBackOff(p.Delay)
	b = backoff.WithMaxRetries(b, uint64(attempts-1))
	b = backoff.WithContext(b, ctx)

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		return op(attempt)
	}, b, func(err error, next time.Duration) {
		if notify != nil {
			notify(attempt, err, next)
		}
	})
}
