package codec

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/almanac/internal/event"
)

// TimestampLayout is the canonical wire format for date fields: a strict
// ISO-8601 UTC instant with a millisecond fraction.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// wireEvent is the storage shape of a single event. The date field is the
// only field with timestamp semantics; it is declared as such here rather
// than detected heuristically at parse time.
type wireEvent struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Date  string `json:"date"`
}

// Encode serializes the collection to the persistable blob, preserving
// collection order. Dates are converted to UTC instants at millisecond
// precision.
func Encode(events []event.Event) (string, error) {
	wire := make([]wireEvent, 0, len(events))
	for _, ev := range events {
		wire = append(wire, wireEvent{
			ID:    ev.ID,
			Title: ev.Title,
			Desc:  ev.Desc,
			Date:  ev.Date.UTC().Format(TimestampLayout),
		})
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encode events: %w", err)
	}
	return string(data), nil
}

// Decode parses a blob produced by Encode back into the event collection.
//
// Recovery contract: any failure (absent input, invalid JSON, a payload
// that does not satisfy the schema, an unparsable timestamp) yields an
// empty collection. The returned error describes the failure for logging;
// callers must not treat it as fatal.
func Decode(blob string) ([]event.Event, error) {
	if strings.TrimSpace(blob) == "" {
		return []event.Event{}, nil
	}

	data := []byte(blob)
	if err := validateSchema(data); err != nil {
		return []event.Event{}, &DecodeError{Reason: "schema", Err: err}
	}

	var wire []wireEvent
	if err := json.Unmarshal(data, &wire); err != nil {
		return []event.Event{}, &DecodeError{Reason: "json", Err: err}
	}

	events := make([]event.Event, 0, len(wire))
	for i, w := range wire {
		date, err := time.Parse(TimestampLayout, w.Date)
		if err != nil {
			return []event.Event{}, &DecodeError{
				Reason: "timestamp",
				Err:    fmt.Errorf("record %d: %w", i, err),
			}
		}
		events = append(events, event.Event{
			ID:    w.ID,
			Title: w.Title,
			Desc:  w.Desc,
			Date:  date,
		})
	}
	return events, nil
}

// DecodeError explains why a blob was rejected. It exists for diagnostics
// only; the accompanying empty collection is the recovery.
type DecodeError struct {
	// Reason is one of "schema", "json", "timestamp".
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode events (%s): %v", e.Reason, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
