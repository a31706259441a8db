package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sam-maryland/court-league-server/internal/league"
	"github.com/sam-maryland/court-league-server/internal/store"
)

// LeagueSettings describes a league to create at startup
type LeagueSettings struct {
	ID             string                     `json:"id"`
	Title          string                     `json:"title"`
	LeagueType     string                     `json:"league_type"`
	NumCourts      int                        `json:"num_courts"`
	PlayersPerTeam int                        `json:"players_per_team"`
	GamesPerDay    int                        `json:"games_per_day"`
	TotalDays      int                        `json:"total_days"`
	CourtNames     []string                   `json:"court_names,omitempty"`
	Players        []league.Player            `json:"players"`
	SeedThroughDay int                        `json:"seed_through_day,omitempty"`
	SeededStats    map[int]league.PlayerStats `json:"seeded_stats,omitempty"`
	DaySchedules   map[int]string             `json:"day_schedules,omitempty"`
	Announcements  string                     `json:"announcements,omitempty"`
	ReadOnly       bool                       `json:"read_only,omitempty"`
}

// LeagueConfig represents the entire league configuration file
type LeagueConfig struct {
	Instructions string           `json:"_instructions,omitempty"`
	Leagues      []LeagueSettings `json:"leagues"`
}

// LoadLeagueSettings loads the bootstrap leagues file. An empty path searches
// the usual configs/ locations; a missing file yields no leagues.
func LoadLeagueSettings(path string) (*LeagueConfig, error) {
	configPaths := []string{path}
	if path == "" {
		configPaths = []string{
			"configs/leagues.json",
			"../configs/leagues.json",
			"../../configs/leagues.json",
		}
	}

	var configData []byte
	var foundPath string

	for _, p := range configPaths {
		if _, err := os.Stat(p); err == nil {
			var readErr error
			configData, readErr = os.ReadFile(p)
			if readErr == nil {
				foundPath = p
				break
			}
		}
	}

	if foundPath == "" {
		return &LeagueConfig{Leagues: []LeagueSettings{}}, nil
	}

	var config LeagueConfig
	if err := json.Unmarshal(configData, &config); err != nil {
		return nil, fmt.Errorf("failed to parse league settings from %s: %w", foundPath, err)
	}

	return &config, nil
}

// League converts settings into a league record ready to store
func (s LeagueSettings) League() store.League {
	return store.League{
		ID:      s.ID,
		Title:   s.Title,
		Players: s.Players,
		Config: league.Config{
			LeagueType:     league.LeagueType(s.LeagueType),
			NumCourts:      s.NumCourts,
			PlayersPerTeam: s.PlayersPerTeam,
			GamesPerDay:    s.GamesPerDay,
			TotalDays:      s.TotalDays,
			CourtNames:     s.CourtNames,
			SeededStats:    s.SeededStats,
			SeedThroughDay: s.SeedThroughDay,
		},
		DaySchedules:  s.DaySchedules,
		Announcements: s.Announcements,
		ReadOnly:      s.ReadOnly,
	}
}
