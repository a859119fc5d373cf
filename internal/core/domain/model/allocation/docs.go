// Package allocation provides the Allocation aggregate: one order bound to a
// train trip, a store, a truck, a driver and an assistant on a given date.
package allocation
