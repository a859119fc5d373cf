// Package retry runs an operation again when it fails with a transient storage
// error, using bounded exponential backoff.
package retry

import (
	"context"
	"errors"
	"time"

	"freight/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts     = 3
	DefaultInitialInterval = 50 * time.Millisecond
	DefaultMaxInterval     = 500 * time.Millisecond
)

// Policy bounds how often and how fast an operation is retried.
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPolicy retries up to three attempts in total.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     DefaultMaxAttempts,
		InitialInterval: DefaultInitialInterval,
		MaxInterval:     DefaultMaxInterval,
	}
}

// NewBackOff returns the policy's schedule for callers that drive their own
// loop: exponential waits, then backoff.Stop once MaxAttempts-1 retries are
// spent. Reset starts the budget over.
func (p Policy) NewBackOff() backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = 0

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return backoff.WithMaxRetries(exp, uint64(attempts-1))
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(p.NewBackOff(), ctx)
}

// Do calls op until it succeeds, fails with a non-transient error, or the
// attempt budget is spent. Only errors matching errs.ErrTransientStorageFailure
// are retried; when the budget runs out the last one is wrapped in
// errs.RetriesExhaustedError.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		opErr := op(ctx)
		if opErr == nil {
			return nil
		}
		if !errors.Is(opErr, errs.ErrTransientStorageFailure) {
			return backoff.Permanent(opErr)
		}
		return opErr
	}, p.backOff(ctx))

	if err != nil && errors.Is(err, errs.ErrTransientStorageFailure) {
		return errs.NewRetriesExhaustedError(attempts, err)
	}
	return err
}
