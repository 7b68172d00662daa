package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/almanac/internal/event"
	"github.com/roach88/almanac/internal/store"
	"github.com/roach88/almanac/internal/testutil"
)

var serverNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func newInput(title, desc string, date time.Time) event.NewEventInput {
	return event.NewEventInput{Title: title, Desc: desc, Date: date}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func copyBody(dst io.Writer, resp *http.Response) (int64, error) {
	return io.Copy(dst, resp.Body)
}

func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, *store.Store) {
	t.Helper()
	st := store.New(testutil.NewScriptedBridge(), store.WithClock(testutil.NewFixedClock(serverNow)))
	require.NoError(t, st.Load())
	st.EnableAutosave()

	opts = append(opts, withNow(func() time.Time { return serverNow }))
	ts := httptest.NewServer(New(st, opts...).Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestAddEvent(t *testing.T) {
	ts, st := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/events", "application/json",
		strings.NewReader(`{"title":"Team sync","desc":"weekly","date":"2024-03-20"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created wireEvent
	decodeBody(t, resp, &created)
	assert.Equal(t, "Team sync", created.Title)
	assert.Equal(t, "2024-03-20", created.Date)
	assert.NotZero(t, created.ID)

	require.Len(t, st.Events(), 1)
}

func TestAddEvent_BlankTitleRejected(t *testing.T) {
	ts, st := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/events", "application/json",
		strings.NewReader(`{"title":"   ","date":"2024-03-20"}`))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, st.Events())
}

func TestAddEvent_BadDate(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/events", "application/json",
		strings.NewReader(`{"title":"x","date":"20th of March"}`))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMonth_DefaultsToCurrentMonth(t *testing.T) {
	ts, st := newTestServer(t)

	_, err := st.Add(newInput("Review", "", time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/api/month")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var month monthPayload
	decodeBody(t, resp, &month)
	assert.Equal(t, "March 2024", month.Label)
	assert.Equal(t, "2024-03", month.Ref)
	require.Len(t, month.Days, 31)

	assert.Equal(t, "2024-03-07", month.Days[6].Date)
	require.Len(t, month.Days[6].Events, 1)
	assert.Equal(t, "Review", month.Days[6].Events[0].Title)
	assert.Empty(t, month.Days[5].Events)
}

func TestMonth_RefParam(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/month?ref=2023-02")
	require.NoError(t, err)

	var month monthPayload
	decodeBody(t, resp, &month)
	assert.Equal(t, "February 2023", month.Label)
	assert.Len(t, month.Days, 28)
}

func TestMonth_BadRef(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/month?ref=March")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListEvents_ByDay(t *testing.T) {
	ts, st := newTestServer(t)

	day := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	_, err := st.Add(newInput("On day", "", day))
	require.NoError(t, err)
	_, err = st.Add(newInput("Other day", "", day.AddDate(0, 0, 1)))
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/api/events?day=2024-03-20")
	require.NoError(t, err)

	var events []wireEvent
	decodeBody(t, resp, &events)
	require.Len(t, events, 1)
	assert.Equal(t, "On day", events[0].Title)
}

func TestUpdateEvent(t *testing.T) {
	ts, st := newTestServer(t)

	added, err := st.Add(newInput("Before", "", serverNow))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/events/"+formatID(added.ID),
		strings.NewReader(`{"title":"After","desc":"","date":"2024-03-22"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	got, ok := st.Get(added.ID)
	require.True(t, ok)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, 22, got.Date.Day())
}

func TestUpdateEvent_UnknownID(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/events/404",
		strings.NewReader(`{"title":"x","date":"2024-03-22"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteEvent(t *testing.T) {
	ts, st := newTestServer(t)

	added, err := st.Add(newInput("Doomed", "", serverNow))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/events/"+formatID(added.ID), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, st.Events())
}

func TestExportICS(t *testing.T) {
	ts, st := newTestServer(t)

	_, err := st.Add(newInput("Offsite", "", serverNow))
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/api/export.ics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/calendar")

	var buf strings.Builder
	_, err = copyBody(&buf, resp)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "BEGIN:VEVENT")
	assert.Contains(t, buf.String(), "SUMMARY:Offsite")
}
