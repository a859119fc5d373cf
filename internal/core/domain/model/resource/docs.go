// Package resource provides the capacity-bearing aggregates an allocation
// reserves: TrainTrip, Store and Truck.
//
// All three implement Reservable. Reserve either takes the whole amount or
// fails with an error wrapping ErrCapacityExceeded and leaves the aggregate
// unchanged; Release gives an earlier reservation back.
package resource
