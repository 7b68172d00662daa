package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/roach88/almanac/internal/config"
	"github.com/roach88/almanac/internal/event"
	"github.com/roach88/almanac/internal/grid"
	"github.com/roach88/almanac/internal/ics"
	"github.com/roach88/almanac/internal/store"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Server holds the HTTP surface over a loaded store.
type Server struct {
	store   *store.Store
	auth    *config.AuthConfig
	calName string
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithAuth enables Basic Auth with the given credentials.
func WithAuth(auth *config.AuthConfig) Option {
	return func(s *Server) { s.auth = auth }
}

// WithCalendarName sets the label used in ICS exports.
func WithCalendarName(name string) Option {
	return func(s *Server) { s.calName = name }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

func withNow(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server over the given store.
func New(st *store.Store, opts ...Option) *Server {
	s := &Server{
		store:   st,
		calName: "almanac",
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the route table. Everything under /api/ sits behind auth
// when credentials are configured; /health stays open for probes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/month", s.handleMonth)
	api.HandleFunc("GET /api/events", s.handleListEvents)
	api.HandleFunc("POST /api/events", s.handleAddEvent)
	api.HandleFunc("PUT /api/events/{id}", s.handleUpdateEvent)
	api.HandleFunc("DELETE /api/events/{id}", s.handleDeleteEvent)
	api.HandleFunc("GET /api/export.ics", s.handleExport)

	mux.Handle("/api/", s.requireAuth(api))
	return mux
}

// wireEvent is the JSON shape events take on the API. Dates travel as plain
// day strings; the grid never uses the time of day.
type wireEvent struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Date  string `json:"date"`
}

func toWire(ev event.Event) wireEvent {
	out := wireEvent{ID: ev.ID, Title: ev.Title, Desc: ev.Desc}
	if ev.HasDate() {
		out.Date = ev.Date.UTC().Format(dayLayout)
	}
	return out
}

func toWireList(events []event.Event) []wireEvent {
	out := make([]wireEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, toWire(ev))
	}
	return out
}

type dayPayload struct {
	Date   string      `json:"date"`
	Events []wireEvent `json:"events"`
}

type monthPayload struct {
	Label string       `json:"label"`
	Ref   string       `json:"ref"`
	Days  []dayPayload `json:"days"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMonth returns the full grid for the month named by ?ref=YYYY-MM,
// defaulting to the current month.
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	reference := grid.StartOfMonth(s.now().UTC())
	if ref := r.URL.Query().Get("ref"); ref != "" {
		parsed, err := time.Parse(monthLayout, ref)
		if err != nil {
			http.Error(w, "invalid ref, want YYYY-MM", http.StatusBadRequest)
			return
		}
		reference = grid.StartOfMonth(parsed)
	}

	days := grid.DaysArray(reference)
	payload := monthPayload{
		Label: reference.Format("January 2006"),
		Ref:   reference.Format(monthLayout),
		Days:  make([]dayPayload, 0, len(days)),
	}
	for _, day := range days {
		payload.Days = append(payload.Days, dayPayload{
			Date:   day.Format(dayLayout),
			Events: toWireList(s.store.EventsOnDay(day)),
		})
	}
	s.writeJSON(w, http.StatusOK, payload)
}

// handleListEvents returns the whole collection, or one day's bucket when
// ?day=YYYY-MM-DD is given.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	if day := r.URL.Query().Get("day"); day != "" {
		parsed, err := time.Parse(dayLayout, day)
		if err != nil {
			http.Error(w, "invalid day, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		s.writeJSON(w, http.StatusOK, toWireList(s.store.EventsOnDay(parsed)))
		return
	}
	s.writeJSON(w, http.StatusOK, toWireList(s.store.Events()))
}

type eventRequest struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Date  string `json:"date"`
}

func (req eventRequest) parseDate() (time.Time, error) {
	return time.Parse(dayLayout, req.Date)
}

func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := req.parseDate()
	if err != nil {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	added, err := s.store.Add(event.NewEventInput{Title: req.Title, Desc: req.Desc, Date: date})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Info("event added", "id", added.ID, "date", req.Date)
	s.writeJSON(w, http.StatusCreated, toWire(added))
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}
	if _, ok := s.store.Get(id); !ok {
		http.Error(w, fmt.Sprintf("no event with id %d", id), http.StatusNotFound)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	date, err := req.parseDate()
	if err != nil {
		http.Error(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	updated := event.Event{ID: id, Title: req.Title, Desc: req.Desc, Date: date}
	if err := s.store.Update(updated); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Info("event updated", "id", id)
	s.writeJSON(w, http.StatusOK, toWire(updated))
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}
	if err := s.store.Delete(id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Info("event deleted", "id", id)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="almanac.ics"`)
	if err := ics.Export(w, s.store.Events(), s.calName, s.now()); err != nil {
		s.logger.Error("ics export failed", "error", err)
	}
}

// writeStoreError maps store failures onto status codes: validation problems
// are the caller's fault, anything else is a persistence failure.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if event.IsValidationError(err) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.logger.Error("store operation failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response failed", "error", err)
	}
}
