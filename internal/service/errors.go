package service

import (
	"errors"
	"fmt"
)

var (
	ErrDayLocked      = errors.New("day is locked")
	ErrReadOnly       = errors.New("league is read-only")
	ErrInvalidDay     = errors.New("invalid day")
	ErrUnknownCourt   = errors.New("unknown court")
	ErrInvalidGame    = errors.New("invalid game")
	ErrInvalidScore   = errors.New("invalid score")
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidLeague  = errors.New("invalid league")
)

var errorTypes = map[error]string{
	ErrDayLocked:      "day_locked",
	ErrReadOnly:       "read_only",
	ErrInvalidDay:     "invalid_day",
	ErrUnknownCourt:   "unknown_court",
	ErrInvalidGame:    "invalid_game",
	ErrInvalidScore:   "invalid_score",
	ErrPlayerNotFound: "player_not_found",
	ErrInvalidLeague:  "invalid_league",
}

// LeagueError is a rejected request against a league
type LeagueError struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	LeagueID string `json:"league_id,omitempty"`
	kind     error
}

func (e *LeagueError) Error() string {
	return e.Message
}

func (e *LeagueError) Unwrap() error {
	return e.kind
}

func newLeagueError(kind error, leagueID, format string, args ...interface{}) *LeagueError {
	return &LeagueError{
		Type:     errorTypes[kind],
		Message:  fmt.Sprintf(format, args...),
		LeagueID: leagueID,
		kind:     kind,
	}
}
