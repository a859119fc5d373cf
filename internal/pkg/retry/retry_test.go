package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/retry"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) retry.Policy {
	return retry.Policy{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func TestDo(t *testing.T) {
	t.Run("returns nil on first success", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), fastPolicy(3), func(context.Context) error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures until success", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), fastPolicy(3), func(context.Context) error {
			calls++
			if calls < 3 {
				return errs.NewTransientStorageError("commit", errors.New("deadlock detected"))
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops after max attempts with retries exhausted", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), fastPolicy(3), func(context.Context) error {
			calls++
			return errs.NewTransientStorageError("lock", errors.New("lock timeout"))
		})

		require.Error(t, err)
		assert.Equal(t, 3, calls)
		require.ErrorIs(t, err, errs.ErrRetriesExhausted)
		require.ErrorIs(t, err, errs.ErrTransientStorageFailure)

		var exhausted *errs.RetriesExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, 3, exhausted.Attempts)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		permanent := errs.NewInvalidStateTransitionError("order", "Delivered", "Pending")
		err := retry.Do(t.Context(), fastPolicy(3), func(context.Context) error {
			calls++
			return permanent
		})

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, 1, calls)
	})

	t.Run("treats non-positive attempts as one", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), fastPolicy(0), func(context.Context) error {
			calls++
			return errs.NewTransientStorageError("commit", errors.New("serialization failure"))
		})

		require.ErrorIs(t, err, errs.ErrRetriesExhausted)
		assert.Equal(t, 1, calls)
	})
}

func TestPolicy_NewBackOff(t *testing.T) {
	b := fastPolicy(3).NewBackOff()

	assert.NotEqual(t, backoff.Stop, b.NextBackOff())
	assert.NotEqual(t, backoff.Stop, b.NextBackOff())
	assert.Equal(t, backoff.Stop, b.NextBackOff())

	b.Reset()
	assert.NotEqual(t, backoff.Stop, b.NextBackOff())
}
