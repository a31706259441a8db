package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sam-maryland/court-league-server/internal/service"
	"github.com/sirupsen/logrus"
)

// Server exposes the league service as a JSON HTTP API
type Server struct {
	service *service.LeagueService
	logger  *logrus.Logger
}

func NewServer(svc *service.LeagueService, logger *logrus.Logger) *Server {
	return &Server{service: svc, logger: logger}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/leagues", func(r chi.Router) {
		r.Get("/", s.handleLeagueList)
		r.Post("/", s.handleLeagueCreate)
		r.Route("/{leagueID}", func(r chi.Router) {
			r.Get("/", s.handleLeagueShow)
			r.Get("/standings", s.handleStandings)
			r.Get("/head-to-head", s.handleHeadToHead)
			r.Route("/days/{day}", func(r chi.Router) {
				r.Get("/matchups", s.handleDayMatchups)
				r.Get("/courts", s.handleCourtGroups)
				r.Put("/results", s.handleResultPut)
				r.Put("/attendance", s.handleAttendancePut)
				r.Put("/lock", s.handleLockPut)
				r.Post("/moves", s.handleMovePost)
				r.Post("/swaps", s.handleSwapPost)
			})
		})
	})

	return r
}

type errorBody struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case service.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDayLocked), errors.Is(err, service.ErrReadOnly):
		return http.StatusConflict
	case errors.Is(err, service.ErrPlayerNotFound):
		return http.StatusNotFound
	default:
		var leagueErr *service.LeagueError
		if errors.As(err, &leagueErr) {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}
	var leagueErr *service.LeagueError
	if errors.As(err, &leagueErr) {
		body.Type = leagueErr.Type
	}
	entry := s.logger.WithError(err).WithField("path", r.URL.Path)
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}
	writeJSON(w, status, body)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
