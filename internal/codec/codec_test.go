package codec

import (
	"fmt"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/almanac/internal/event"
)

func sampleEvents() []event.Event {
	return []event.Event{
		{
			ID:    1700000000000,
			Title: "Team sync",
			Desc:  "weekly",
			Date:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:    1700000000001,
			Title: "Dentist",
			Desc:  "",
			Date:  time.Date(2023, time.December, 31, 23, 30, 0, 0, time.FixedZone("UTC+2", 2*60*60)),
		},
	}
}

func TestEncode_Golden(t *testing.T) {
	blob, err := Encode(sampleEvents())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "encoded_events", []byte(blob))
}

func TestEncode_EmptyCollection(t *testing.T) {
	blob, err := Encode(nil)
	require.NoError(t, err)

	assert.Equal(t, "[]", blob)
}

func TestEncode_DateConvertedToUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	blob, err := Encode([]event.Event{{
		ID:    1,
		Title: "Late show",
		Date:  time.Date(2024, time.June, 1, 22, 0, 0, 0, loc),
	}})
	require.NoError(t, err)

	assert.Contains(t, blob, `"2024-06-02T03:00:00.000Z"`)
}

func TestRoundTrip(t *testing.T) {
	original := sampleEvents()

	blob, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)
	require.Len(t, decoded, len(original))

	for i := range original {
		assert.Equal(t, original[i].ID, decoded[i].ID)
		assert.Equal(t, original[i].Title, decoded[i].Title)
		assert.Equal(t, original[i].Desc, decoded[i].Desc)
		// Date equality at day granularity, compared in UTC. Sub-day
		// precision may shift through the zone conversion.
		assert.Equal(t, original[i].Date.UTC().Year(), decoded[i].Date.Year())
		assert.Equal(t, original[i].Date.UTC().Month(), decoded[i].Date.Month())
		assert.Equal(t, original[i].Date.UTC().Day(), decoded[i].Date.Day())
	}
}

func TestDecode_AbsentInput(t *testing.T) {
	for _, blob := range []string{"", "   ", "\n\t"} {
		events, err := Decode(blob)

		assert.NoError(t, err)
		assert.Empty(t, events)
	}
}

func TestDecode_MalformedInput(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", "{{{"},
		{"wrong top-level shape", `{"id": 1}`},
		{"missing date field", `[{"id": 1, "title": "x", "desc": ""}]`},
		{"date without millis", `[{"id": 1, "title": "x", "desc": "", "date": "2024-03-15T00:00:00Z"}]`},
		{"date without utc marker", `[{"id": 1, "title": "x", "desc": "", "date": "2024-03-15T00:00:00.000"}]`},
		{"date with offset zone", `[{"id": 1, "title": "x", "desc": "", "date": "2024-03-15T00:00:00.000+02:00"}]`},
		{"id is a string", `[{"id": "1", "title": "x", "desc": "", "date": "2024-03-15T00:00:00.000Z"}]`},
		{"bare date string", `["2024-03-15T00:00:00.000Z"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := Decode(tt.blob)

			assert.Error(t, err)
			assert.NotNil(t, events)
			assert.Empty(t, events, "malformed input must recover to an empty collection")
		})
	}
}

func TestDecode_TitleMatchingTimestampPatternSurvives(t *testing.T) {
	// A title that happens to look like a timestamp must pass through
	// unchanged: only the date field has timestamp semantics.
	lookalike := "2024-03-15T00:00:00.000Z"
	blob, err := Encode([]event.Event{{
		ID:    7,
		Title: lookalike,
		Desc:  lookalike,
		Date:  time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	assert.Equal(t, lookalike, decoded[0].Title)
	assert.Equal(t, lookalike, decoded[0].Desc)
	assert.Equal(t, time.April, decoded[0].Date.Month())
}

func TestDecode_PreservesCollectionOrder(t *testing.T) {
	var events []event.Event
	for i := 0; i < 10; i++ {
		events = append(events, event.Event{
			ID:    int64(100 + i),
			Title: fmt.Sprintf("event %d", i),
			Date:  time.Date(2024, time.March, 20-i, 0, 0, 0, 0, time.UTC),
		})
	}

	blob, err := Encode(events)
	require.NoError(t, err)
	decoded, err := Decode(blob)
	require.NoError(t, err)

	require.Len(t, decoded, 10)
	for i := range events {
		assert.Equal(t, events[i].ID, decoded[i].ID, "insertion order preserved, not date order")
	}
}

func TestDecodeError_Unwrap(t *testing.T) {
	_, err := Decode("{{{")

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "schema", de.Reason)
	assert.Error(t, de.Unwrap())
}
