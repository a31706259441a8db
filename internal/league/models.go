package league

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LeagueType selects how daily matchups are generated
type LeagueType string

const (
	LeagueTypeStandard LeagueType = "standard"
	LeagueTypeCustom   LeagueType = "custom"
)

// Player is a roster entry. Players are immutable once created.
type Player struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Grade *int   `json:"grade,omitempty"`
}

// PlayerStats is a player's aggregated record for one computation pass
type PlayerStats struct {
	Player
	GamesPlayed       int         `json:"gamesPlayed"`
	Wins              int         `json:"wins"`
	Losses            int         `json:"losses"`
	Ties              int         `json:"ties"`
	PointsFor         int         `json:"pointsFor"`
	PointsAgainst     int         `json:"pointsAgainst"`
	PointDifferential int         `json:"pointDifferential"`
	LeaguePoints      int         `json:"leaguePoints"`
	DailyPoints       map[int]int `json:"dailyPoints"`
}

// Clone returns a deep copy of the stats
func (p PlayerStats) Clone() PlayerStats {
	out := p
	out.DailyPoints = make(map[int]int, len(p.DailyPoints))
	for day, pts := range p.DailyPoints {
		out.DailyPoints[day] = pts
	}
	return out
}

// Team is an ordered list of players on one side of a game
type Team []Player

// Contains reports whether the team includes the player
func (t Team) Contains(playerID int) bool {
	for _, p := range t {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// GameMatchup is a single game between two disjoint teams
type GameMatchup struct {
	TeamA Team `json:"teamA"`
	TeamB Team `json:"teamB"`
}

// IsEmpty reports whether neither side has players
func (m GameMatchup) IsEmpty() bool {
	return len(m.TeamA) == 0 && len(m.TeamB) == 0
}

// CourtMatchups maps a court name to its games for one day, indexed by game index
type CourtMatchups map[string][]GameMatchup

// Clone returns a deep copy of the matchups
func (c CourtMatchups) Clone() CourtMatchups {
	if c == nil {
		return nil
	}
	out := make(CourtMatchups, len(c))
	for court, games := range c {
		copied := make([]GameMatchup, len(games))
		for i, g := range games {
			copied[i] = GameMatchup{
				TeamA: append(Team{}, g.TeamA...),
				TeamB: append(Team{}, g.TeamB...),
			}
		}
		out[court] = copied
	}
	return out
}

// GameResult is either unplayed or a pair of scores, each of which may still be missing
type GameResult struct {
	Unplayed   bool
	TeamAScore *int
	TeamBScore *int
}

// Unplayed is the sentinel result for a game with no score entry
func Unplayed() GameResult {
	return GameResult{Unplayed: true}
}

// Score builds a fully entered result
func Score(teamA, teamB int) GameResult {
	return GameResult{TeamAScore: &teamA, TeamBScore: &teamB}
}

// Played reports whether both scores have been entered
func (r GameResult) Played() bool {
	return !r.Unplayed && r.TeamAScore != nil && r.TeamBScore != nil
}

type scorePair struct {
	TeamAScore *int `json:"teamAScore"`
	TeamBScore *int `json:"teamBScore"`
}

const unplayedLiteral = "unplayed"

// MarshalJSON encodes unplayed games as the string "unplayed"
func (r GameResult) MarshalJSON() ([]byte, error) {
	if r.Unplayed {
		return json.Marshal(unplayedLiteral)
	}
	return json.Marshal(scorePair{TeamAScore: r.TeamAScore, TeamBScore: r.TeamBScore})
}

// UnmarshalJSON accepts "unplayed", null, or a score object
func (r *GameResult) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*r = Unplayed()
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if s != unplayedLiteral {
			return fmt.Errorf("unknown game result %q", s)
		}
		*r = Unplayed()
		return nil
	}
	var pair scorePair
	if err := json.Unmarshal(trimmed, &pair); err != nil {
		return fmt.Errorf("failed to decode game result: %w", err)
	}
	*r = GameResult{TeamAScore: pair.TeamAScore, TeamBScore: pair.TeamBScore}
	return nil
}

// DailyResults maps a court name to its results for one day, indexed by game index
type DailyResults map[string][]GameResult

// DailyAttendance maps a player ID to presence flags indexed by game index
type DailyAttendance map[int][]bool

// Present reports attendance for a game; missing records count as present
func (a DailyAttendance) Present(playerID, gameIndex int) bool {
	flags, ok := a[playerID]
	if !ok || gameIndex < 0 || gameIndex >= len(flags) {
		return true
	}
	return flags[gameIndex]
}

// MatchupHistory maps a day number to that day's matchups
type MatchupHistory map[int]CourtMatchups

// ResultHistory maps a day number to that day's results
type ResultHistory map[int]DailyResults

// AttendanceHistory maps a day number to that day's attendance
type AttendanceHistory map[int]DailyAttendance

// History bundles everything recorded for a league so far
type History struct {
	Matchups   MatchupHistory
	Results    ResultHistory
	Attendance AttendanceHistory
}

// Config is the engine-facing part of a league's configuration
type Config struct {
	LeagueType     LeagueType          `json:"leagueType"`
	NumCourts      int                 `json:"numCourts"`
	PlayersPerTeam int                 `json:"playersPerTeam"`
	GamesPerDay    int                 `json:"gamesPerDay"`
	TotalDays      int                 `json:"totalDays"`
	CourtNames     []string            `json:"courtNames,omitempty"`
	SeededStats    map[int]PlayerStats `json:"seededStats,omitempty"`
	SeedThroughDay int                 `json:"seedThroughDay,omitempty"`
}

// PlayersPerCourt is the number of players needed to fill one game on a court
func (c Config) PlayersPerCourt() int {
	return c.PlayersPerTeam * 2
}

// StartDay is the first day recomputed from recorded results
func (c Config) StartDay() int {
	if len(c.SeededStats) == 0 || c.SeedThroughDay < 1 {
		return 1
	}
	return c.SeedThroughDay + 1
}
