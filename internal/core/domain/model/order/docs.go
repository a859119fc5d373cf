// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: a customer order with destination, required date and space units
//   - Status: the lifecycle Pending -> Allocated -> InTransit -> Delivered,
//     with Cancelled reachable from every pre-delivery state
//
// Key business rules:
//   - Orders are created by the intake collaborator; the engine never creates them
//   - Space units are positive and already summed over the order's items
//   - Transitions are driven by the allocation coordinator and delivery events only
//   - Illegal transitions fail with errs.InvalidStateTransitionError
package order
