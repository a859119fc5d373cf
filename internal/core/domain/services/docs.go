// Package services provides the domain services of the allocation engine,
// the logic that spans several aggregates.
//
// The package includes:
//   - ResourceLedger: reserves and releases trip, store and truck capacity
//   - LaborLedger: weekly-hour and consecutive-day rules, booking worker hours
//   - ConstraintValidator: the pure rule check shared by preview and commit
//   - AllocationCoordinator: commit, cancel and advance over loaded aggregates
//
// Business rule failures are returned as Violations, never as errors, so a
// caller can try another candidate. Errors mean a malformed input or a
// broken invariant.
package services
