package store

import (
	"context"
	"errors"
	"time"

	"github.com/sam-maryland/court-league-server/internal/league"
)

// ErrNotFound is returned when a league does not exist
var ErrNotFound = errors.New("league not found")

// League is the persisted league document
type League struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Players       []league.Player `json:"players"`
	Config        league.Config   `json:"config"`
	LockedDays    map[int]bool    `json:"lockedDays,omitempty"`
	DaySchedules  map[int]string  `json:"daySchedules,omitempty"`
	Announcements string          `json:"announcements,omitempty"`
	ReadOnly      bool            `json:"readOnly,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// IsDayLocked reports whether edits to a day are blocked
func (l League) IsDayLocked(day int) bool {
	return l.LockedDays[day]
}

// Player looks up a roster entry by ID
func (l League) Player(id int) (league.Player, bool) {
	for _, p := range l.Players {
		if p.ID == id {
			return p, true
		}
	}
	return league.Player{}, false
}

// Day is everything recorded for one league day
type Day struct {
	Matchups   league.CourtMatchups   `json:"matchups,omitempty"`
	Results    league.DailyResults    `json:"results,omitempty"`
	Attendance league.DailyAttendance `json:"attendance,omitempty"`
}

// HasMatchups reports whether matchups were already generated for the day
func (d Day) HasMatchups() bool {
	return len(d.Matchups) > 0
}

// History converts stored days into the engine's history shape
func History(days map[int]Day) league.History {
	h := league.History{
		Matchups:   league.MatchupHistory{},
		Results:    league.ResultHistory{},
		Attendance: league.AttendanceHistory{},
	}
	for n, d := range days {
		if d.Matchups != nil {
			h.Matchups[n] = d.Matchups
		}
		if d.Results != nil {
			h.Results[n] = d.Results
		}
		if d.Attendance != nil {
			h.Attendance[n] = d.Attendance
		}
	}
	return h
}

// Store persists leagues and their day-by-day data.
// InsertMatchups must be atomic: only the first writer for a day succeeds.
type Store interface {
	ListLeagues(ctx context.Context) ([]League, error)
	GetLeague(ctx context.Context, id string) (League, error)
	CreateLeague(ctx context.Context, l League) (League, error)
	UpdateLeague(ctx context.Context, l League) error

	GetDay(ctx context.Context, leagueID string, day int) (Day, error)
	ListDays(ctx context.Context, leagueID string) (map[int]Day, error)
	InsertMatchups(ctx context.Context, leagueID string, day int, m league.CourtMatchups) (bool, error)
	ReplaceMatchups(ctx context.Context, leagueID string, day int, m league.CourtMatchups) error
	SetResult(ctx context.Context, leagueID string, day int, court string, gameIndex int, result league.GameResult) error
	SetAttendance(ctx context.Context, leagueID string, day, playerID, gameIndex int, present bool) error

	Close() error
}

// setResultAt stores a result at a game index, padding gaps with unplayed games
func setResultAt(results []league.GameResult, gameIndex int, result league.GameResult) []league.GameResult {
	for len(results) <= gameIndex {
		results = append(results, league.Unplayed())
	}
	results[gameIndex] = result
	return results
}

// setAttendanceAt stores a presence flag, padding gaps as present
func setAttendanceAt(flags []bool, gameIndex int, present bool) []bool {
	for len(flags) <= gameIndex {
		flags = append(flags, true)
	}
	flags[gameIndex] = present
	return flags
}
