// Package event defines the Event record and the error taxonomy shared by
// the store, codec and the outer surfaces.
//
// An Event is the unit of user data: an id assigned at creation, a non-empty
// title, a free-form description and a calendar date. Only the civil day of
// the date is significant; time-of-day is incidental.
//
// Errors fall into three categories:
//   - validation errors (empty title): surfaced to the user, operation aborted
//   - decode errors (malformed persisted data): recovered as an empty
//     collection, never surfaced
//   - not-found update/delete: silent no-op, can only arise from stale UI state
//
// Titles and descriptions are NFC-normalized on construction so that
// equality checks and day-bucket display do not depend on whether the input
// arrived composed or decomposed.
package event
