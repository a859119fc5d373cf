// Package kernel provides the value objects shared by every aggregate of the
// allocation engine.
//
// The package includes:
//   - UUID: identifier of orders, trips, stores, trucks, workers and allocations
//   - Date: a civil calendar day; labor rules compare Dates, never instants
//   - Calendar: the week boundary and time zone used by the weekly-hour rule
//   - City: case-insensitive destination and location names
//
// Values are immutable and safe for concurrent use. Zero values are invalid
// and report so from Validate.
package kernel
