package harness

import (
	"fmt"
	"time"

	"github.com/roach88/almanac/internal/bridge"
	"github.com/roach88/almanac/internal/codec"
	"github.com/roach88/almanac/internal/event"
	"github.com/roach88/almanac/internal/store"
	"github.com/roach88/almanac/internal/testutil"
)

// EvaluateAssertions checks every assertion against the final store and
// bridge state. Returns one message per failed assertion.
func EvaluateAssertions(st *store.Store, b *testutil.ScriptedBridge, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if msg := evaluate(st, b, &a); msg != "" {
			failures = append(failures, fmt.Sprintf("assertions[%d] %s: %s", i, a.Type, msg))
		}
	}
	return failures
}

func evaluate(st *store.Store, b *testutil.ScriptedBridge, a *Assertion) string {
	switch a.Type {
	case AssertDayEvents:
		day, err := time.Parse(stepDayLayout, a.Date)
		if err != nil {
			return fmt.Sprintf("invalid date %q", a.Date)
		}
		return compareTitles(a.Titles, st.EventsOnDay(day))

	case AssertCollectionOrder:
		return compareTitles(a.Titles, st.Events())

	case AssertEventCount:
		if got := len(st.Events()); got != a.Count {
			return fmt.Sprintf("expected %d events, got %d", a.Count, got)
		}
		return ""

	case AssertWriteCount:
		if b.SetCalls != a.Count {
			return fmt.Sprintf("expected %d writes, got %d", a.Count, b.SetCalls)
		}
		return ""

	case AssertPersistedRoundTrip:
		return checkRoundTrip(st, b)

	default:
		return fmt.Sprintf("unknown assertion type %q", a.Type)
	}
}

func compareTitles(want []string, events []event.Event) string {
	got := make([]string, 0, len(events))
	for _, ev := range events {
		got = append(got, ev.Title)
	}
	if len(got) != len(want) {
		return fmt.Sprintf("expected titles %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Sprintf("expected titles %v, got %v", want, got)
		}
	}
	return ""
}

// checkRoundTrip decodes the persisted payload and compares it field by
// field against the in-memory collection.
func checkRoundTrip(st *store.Store, b *testutil.ScriptedBridge) string {
	inMemory := st.Events()

	blob, ok := b.Stored(bridge.EventsKey)
	if !ok {
		if len(inMemory) == 0 {
			return ""
		}
		return fmt.Sprintf("%d events in memory but nothing persisted", len(inMemory))
	}

	decoded, err := codec.Decode(blob)
	if err != nil {
		return fmt.Sprintf("persisted payload does not decode: %v", err)
	}
	if len(decoded) != len(inMemory) {
		return fmt.Sprintf("persisted %d events, in-memory %d", len(decoded), len(inMemory))
	}
	for i := range inMemory {
		want, got := inMemory[i], decoded[i]
		if want.ID != got.ID || want.Title != got.Title || want.Desc != got.Desc || !want.Date.Equal(got.Date) {
			return fmt.Sprintf("event %d differs after round trip: %+v vs %+v", i, want, got)
		}
	}
	return ""
}
