// Package labor provides the Worker aggregate shared by drivers and assistants.
//
// A worker's role fixes its weekly-hour cap (Driver 40, Assistant 60) and the
// longest run of calendar-adjacent working days (Driver 1, Assistant 2).
// Hours are decimal.Decimal so fractional durations add up exactly.
package labor
