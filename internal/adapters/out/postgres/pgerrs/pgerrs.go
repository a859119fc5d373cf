// Package pgerrs maps PostgreSQL failures that a retry can cure onto
// errs.ErrTransientStorageFailure.
package pgerrs

import (
	"errors"

	"freight/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeLockNotAvailable     = "55P03"
)

// IsTransient reports whether err carries a serialization failure, a detected
// deadlock or an expired lock_timeout.
func IsTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case CodeSerializationFailure, CodeDeadlockDetected, CodeLockNotAvailable:
		return true
	default:
		return false
	}
}

// Classify wraps transient failures in errs.TransientStorageError and returns
// every other error unchanged.
func Classify(operation string, err error) error {
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		return errs.NewTransientStorageError(operation, err)
	}
	return err
}
