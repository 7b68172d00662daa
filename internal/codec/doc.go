// Package codec serializes the event collection to the flat text blob held
// by the persistence bridge, and parses it back.
//
// The encoded form is a JSON array of records:
//
//	[{"id": 1710000000000, "title": "...", "desc": "...",
//	  "date": "2024-03-15T00:00:00.000Z"}, ...]
//
// The date field is typed by its position in the schema. Only the "date"
// field is parsed as a timestamp; title and desc pass through unchanged even
// when their contents happen to match the timestamp pattern. This replaces
// the fragile alternative of pattern-sniffing every string value, which can
// silently corrupt a title that merely looks like a date.
//
// The timestamp format is a strict ISO-8601 UTC instant with millisecond
// precision: YYYY-MM-DDTHH:MM:SS.sssZ. Payloads are validated against an
// embedded CUE schema before any record is materialized.
//
// Decode never propagates a failure: absent, empty or malformed input yields
// an empty collection. The error return is diagnostic only.
package codec
