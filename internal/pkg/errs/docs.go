// Package errs provides standardized error types for the freight allocation engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: constructor validation
//   - ObjectNotFoundError: repository lookups that miss
//   - InvalidStateTransitionError: a state machine was asked for an undefined transition (fatal)
//   - TransientStorageError: a storage failure that may succeed when retried
//   - RetriesExhaustedError: every retry attempt failed transiently
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() for formatting and Unwrap() so errors.Is matches the sentinel
//
// Business-rule rejections of an allocation candidate are not errors: they are
// reported as data by the constraint validator (see package services).
package errs
