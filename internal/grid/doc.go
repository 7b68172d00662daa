// Package grid computes the day sequence for a calendar month.
//
// Everything in this package is a pure function of its inputs:
//   - DaysInMonth / StartOfMonth / DaysArray derive the month layout
//   - PrevMonth / NextMonth move the reference date between months
//   - SameDay / DayKey are the day-matching primitives used to bucket
//     events onto grid days
//
// The day sequence is recomputed on every call, never cached. Callers that
// navigate between months regenerate the grid from the new reference date;
// there is no hidden state to invalidate.
//
// All functions operate on civil dates: the year/month/day of the input in
// its own location. Time-of-day components on inputs are incidental and do
// not affect results.
package grid
