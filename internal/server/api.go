package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"hancal/config"
	"hancal/internal/calendar"
	"hancal/internal/clients/caldav"
	"hancal/internal/domain"
	"hancal/internal/ics"
	"hancal/internal/service"
)

// APIResponse is the envelope for every JSON reply.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// WeekResponse describes one week view window.
type WeekResponse struct {
	Label string   `json:"label"`
	Dates []string `json:"dates"`
}

// MonthResponse describes one month view grid.
type MonthResponse struct {
	Label string   `json:"label"`
	Weeks [][7]int `json:"weeks"`
}

// Server exposes the events API consumed by the browser client.
type Server struct {
	cfg      *config.Config
	events   *service.EventService
	notifier *service.NotifierService
	caldav   *caldav.Client
	mux      *http.ServeMux
}

func New(cfg *config.Config, events *service.EventService, notifier *service.NotifierService, caldavClient *caldav.Client) *Server {
	s := &Server{
		cfg:      cfg,
		events:   events,
		notifier: notifier,
		caldav:   caldavClient,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/events", s.basicAuth(s.apiEvents))
	s.mux.HandleFunc("/api/events/ics", s.basicAuth(s.apiEventsICS))
	s.mux.HandleFunc("/api/event/", s.basicAuth(s.apiEvent))

	s.mux.HandleFunc("/api/calendar/week", s.basicAuth(s.apiCalendarWeek))
	s.mux.HandleFunc("/api/calendar/month", s.basicAuth(s.apiCalendarMonth))
	s.mux.HandleFunc("/api/calendar/sync", s.basicAuth(s.apiCalendarSync))
	s.mux.HandleFunc("/api/calendar/collections", s.basicAuth(s.apiCalendarCollections))

	s.mux.HandleFunc("/api/notifications", s.basicAuth(s.apiNotifications))
	s.mux.HandleFunc("/api/health", s.apiHealth)
}

// Handler returns the root handler, exported for tests and main.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) ListenAndServe() error {
	addr := ":" + s.cfg.ServerPort
	log.Printf("API listening on %s", addr)
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APIUsername == "" || s.cfg.APIPassword == "" {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.cfg.APIUsername || pass != s.cfg.APIPassword {
			w.Header().Set("WWW-Authenticate", `Basic realm="hancal"`)
			s.jsonError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func (s *Server) jsonError(w http.ResponseWriter, err string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{Success: false, Error: err})
}

func (s *Server) apiHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, map[string]string{"status": "ok"})
}

// referenceDate resolves the ?date= query parameter, defaulting to today in
// the configured timezone.
func (s *Server) referenceDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now().In(s.cfg.Timezone), nil
	}
	d := calendar.ParseDateTime(raw, "00:00")
	if d.IsZero() {
		return time.Time{}, fmt.Errorf("invalid date: %s", raw)
	}
	return d, nil
}

func (s *Server) apiEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listEvents(w, r)
	case http.MethodPost:
		s.saveEvent(w, r, domain.Event{})
	default:
		s.jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.List()
	if err != nil {
		s.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if viewParam := r.URL.Query().Get("view"); viewParam != "" {
		view, ok := domain.ParseView(viewParam)
		if !ok {
			s.jsonError(w, "view must be week or month", http.StatusBadRequest)
			return
		}
		ref, err := s.referenceDate(r)
		if err != nil {
			s.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		events = calendar.FilteredEvents(events, r.URL.Query().Get("search"), ref, view)
	} else if term := r.URL.Query().Get("search"); term != "" {
		events = calendar.FilterBySearch(events, term)
	}

	s.jsonResponse(w, events)
}

// saveEvent runs the two-phase save: the attempt reports conflicts with 409,
// the confirmed retry passes force=true and commits past the check.
func (s *Server) saveEvent(w http.ResponseWriter, r *http.Request, base domain.Event) {
	draft := base
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if base.ID != "" && draft.ID != base.ID {
		s.jsonError(w, "event id mismatch", http.StatusBadRequest)
		return
	}

	force := r.URL.Query().Get("force") == "true"

	if force {
		saved, err := s.events.ForceSave(draft)
		if err != nil {
			s.jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.notifier.Forget(saved.ID)
		s.jsonResponse(w, saved)
		return
	}

	result, err := s.events.AttemptSave(draft)
	if err != nil {
		s.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(result.Conflicts) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(APIResponse{
			Success: false,
			Error:   "일정 겹침",
			Data:    map[string]interface{}{"conflicts": result.Conflicts},
		})
		return
	}

	s.notifier.Forget(result.Event.ID)
	s.jsonResponse(w, result.Event)
}

func (s *Server) apiEvent(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/event/")
	if id == "" || strings.Contains(id, "/") {
		s.jsonError(w, "invalid event id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		e, err := s.events.Get(id)
		if err != nil {
			s.jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		s.jsonResponse(w, e)

	case http.MethodPut:
		if _, err := s.events.Get(id); err != nil {
			s.jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		s.saveEvent(w, r, domain.Event{ID: id})

	case http.MethodDelete:
		if err := s.events.Delete(id); err != nil {
			s.jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		s.notifier.Forget(id)
		// Mirror removal is best effort; failures are logged, not surfaced.
		if s.caldav != nil && s.caldav.IsConfigured() {
			if err := s.caldav.RemoveEvent(r.Context(), id); err != nil {
				log.Printf("Error removing CalDAV object for %s: %v", id, err)
			}
		}
		s.jsonResponse(w, map[string]string{"deleted": id})

	default:
		s.jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiCalendarWeek(w http.ResponseWriter, r *http.Request) {
	ref, err := s.referenceDate(r)
	if err != nil {
		s.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	week := calendar.WeekDates(ref)
	dates := make([]string, 0, len(week))
	for _, d := range week {
		dates = append(dates, calendar.FormatDate(d))
	}

	s.jsonResponse(w, WeekResponse{
		Label: calendar.FormatWeek(ref),
		Dates: dates,
	})
}

func (s *Server) apiCalendarMonth(w http.ResponseWriter, r *http.Request) {
	ref, err := s.referenceDate(r)
	if err != nil {
		s.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.jsonResponse(w, MonthResponse{
		Label: calendar.FormatMonth(ref),
		Weeks: calendar.WeeksAtMonth(ref),
	})
}

func (s *Server) apiEventsICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	events, err := s.events.List()
	if err != nil {
		s.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := ics.Encode(events)
	if err != nil {
		s.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="hancal.ics"`)
	w.Write(data)
}

func (s *Server) apiCalendarSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.caldav == nil || !s.caldav.IsConfigured() {
		s.jsonError(w, "CalDAV is not configured", http.StatusServiceUnavailable)
		return
	}

	events, err := s.events.List()
	if err != nil {
		s.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pushed, err := s.caldav.PushAll(r.Context(), events)
	if err != nil {
		s.jsonError(w, fmt.Sprintf("pushed %d of %d: %v", pushed, len(events), err),
			http.StatusBadGateway)
		return
	}

	s.jsonResponse(w, map[string]int{"pushed": pushed})
}

func (s *Server) apiCalendarCollections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.caldav == nil || !s.caldav.IsConfigured() {
		s.jsonError(w, "CalDAV is not configured", http.StatusServiceUnavailable)
		return
	}

	calendars, err := s.caldav.DiscoverCalendars(r.Context())
	if err != nil {
		s.jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.jsonResponse(w, calendars)
}

func (s *Server) apiNotifications(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, s.notifier.Recent())
}
