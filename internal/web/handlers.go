package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sam-maryland/court-league-server/internal/handlers"
	"github.com/sam-maryland/court-league-server/internal/league"
	"github.com/sam-maryland/court-league-server/internal/store"
)

type resultRequest struct {
	Court     string            `json:"court"`
	GameIndex int               `json:"gameIndex"`
	Result    league.GameResult `json:"result"`
}

type attendanceRequest struct {
	PlayerID  int   `json:"playerId"`
	GameIndex *int  `json:"gameIndex,omitempty"`
	Present   *bool `json:"present"`
}

type lockRequest struct {
	Locked *bool `json:"locked"`
}

type moveRequest struct {
	Court     string `json:"court"`
	GameIndex int    `json:"gameIndex"`
	PlayerID  int    `json:"playerId"`
}

type swapRequest struct {
	GameIndex int `json:"gameIndex"`
	PlayerA   int `json:"playerA"`
	PlayerB   int `json:"playerB"`
}

func dayParam(r *http.Request) (int, bool) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	return day, err == nil
}

// queryInt reads an optional integer query parameter
func queryInt(r *http.Request, key string, def int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleLeagueList(w http.ResponseWriter, r *http.Request) {
	leagues, err := s.service.ListLeagues(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leagues)
}

func (s *Server) handleLeagueCreate(w http.ResponseWriter, r *http.Request) {
	var l store.League
	if !decodeBody(w, r, &l) {
		return
	}
	created, err := s.service.CreateLeague(r.Context(), l)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleLeagueShow(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	l, err := s.service.GetLeague(r.Context(), leagueID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	courts, err := s.service.CourtNames(r.Context(), leagueID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, handlers.LeagueInfo{League: l, Courts: courts})
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	day, ok := queryInt(r, "day", 0)
	if !ok {
		badRequest(w, "day must be an integer")
		return
	}
	ranked, err := s.service.Standings(r.Context(), chi.URLParam(r, "leagueID"), day)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, handlers.RankEntries(ranked))
}

func (s *Server) handleHeadToHead(w http.ResponseWriter, r *http.Request) {
	a, okA := queryInt(r, "a", 0)
	b, okB := queryInt(r, "b", 0)
	day, okDay := queryInt(r, "day", 0)
	if !okA || !okB || !okDay || a == 0 || b == 0 {
		badRequest(w, "a and b must be player IDs")
		return
	}
	record, err := s.service.HeadToHead(r.Context(), chi.URLParam(r, "leagueID"), a, b, day)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDayMatchups(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(r)
	if !ok {
		badRequest(w, "day must be an integer")
		return
	}
	leagueID := chi.URLParam(r, "leagueID")
	matchups, err := s.service.DayMatchups(r.Context(), leagueID, day)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	courts, err := s.service.CourtNames(r.Context(), leagueID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, handlers.OrderedCourts(courts, matchups))
}

func (s *Server) handleCourtGroups(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(r)
	if !ok {
		badRequest(w, "day must be an integer")
		return
	}
	groups, err := s.service.CourtGroups(r.Context(), chi.URLParam(r, "leagueID"), day)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, handlers.CourtGroupEntries(groups))
}

func (s *Server) handleResultPut(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(r)
	if !ok {
		badRequest(w, "day must be an integer")
		return
	}
	var req resultRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Court == "" {
		badRequest(w, "court is required")
		return
	}
	if err := s.service.RecordResult(r.Context(), chi.URLParam(r, "leagueID"), day, req.Court, req.GameIndex, req.Result); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleAttendancePut(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(r)
	if !ok {
		badRequest(w, "day must be an integer")
		return
	}
	var req attendanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Present == nil {
		badRequest(w, "present is required")
		return
	}
	gameIndex := -1
	if req.GameIndex != nil {
		gameIndex = *req.GameIndex
	}
	if err := s.service.SetAttendance(r.Context(), chi.URLParam(r, "leagueID"), day, req.PlayerID, gameIndex, *req.Present); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLockPut(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(r)
	if !ok {
		badRequest(w, "day must be an integer")
		return
	}
	var req lockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Locked == nil {
		badRequest(w, "locked is required")
		return
	}
	l, err := s.service.SetDayLock(r.Context(), chi.URLParam(r, "leagueID"), day, *req.Locked)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleMovePost(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(r)
	if !ok {
		badRequest(w, "day must be an integer")
		return
	}
	var req moveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.service.MovePlayer(r.Context(), chi.URLParam(r, "leagueID"), day, req.Court, req.GameIndex, req.PlayerID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSwapPost(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(r)
	if !ok {
		badRequest(w, "day must be an integer")
		return
	}
	var req swapRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.service.SwapPlayers(r.Context(), chi.URLParam(r, "leagueID"), day, req.GameIndex, req.PlayerA, req.PlayerB); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
