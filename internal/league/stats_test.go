package league

import (
	"reflect"
	"testing"
)

// fourPlayerDay builds the single-court, one-game day used by several tests:
// players 1 and 2 on team A, players 3 and 4 on team B.
func fourPlayerDay() ([]Player, CourtMatchups) {
	players := makePlayers(4)
	matchups := CourtMatchups{
		"Court A": {
			{TeamA: Team{players[0], players[1]}, TeamB: Team{players[2], players[3]}},
		},
	}
	return players, matchups
}

func TestProcessDayResults_Scenario(t *testing.T) {
	players, matchups := fourPlayerDay()
	results := DailyResults{"Court A": {Score(21, 15)}}

	stats := ProcessDayResults(InitializePlayerStats(players), 1, results, matchups, nil)

	for _, id := range []int{1, 2} {
		p := stats[id]
		if p.Wins != 1 || p.PointsFor != 21 || p.PointsAgainst != 15 || p.GamesPlayed != 1 {
			t.Errorf("Unexpected team A stats for player %d: %+v", id, p)
		}
		if pts, ok := p.DailyPoints[1]; !ok || pts != 3 {
			t.Errorf("Expected 3 day points for player %d, got %v", id, p.DailyPoints)
		}
		if p.LeaguePoints != 3 || p.PointDifferential != 6 {
			t.Errorf("Expected 3 league points and +6 differential for player %d, got %+v", id, p)
		}
	}
	for _, id := range []int{3, 4} {
		p := stats[id]
		if p.Losses != 1 || p.PointsFor != 15 || p.PointsAgainst != 21 {
			t.Errorf("Unexpected team B stats for player %d: %+v", id, p)
		}
		if pts, ok := p.DailyPoints[1]; !ok || pts != 0 {
			t.Errorf("Expected an explicit zero day entry for player %d, got %v", id, p.DailyPoints)
		}
	}
}

func TestProcessDayResults_AbsentPlayer(t *testing.T) {
	players, matchups := fourPlayerDay()
	results := DailyResults{"Court A": {Score(21, 15)}}
	attendance := DailyAttendance{4: {false}}

	stats := ProcessDayResults(InitializePlayerStats(players), 1, results, matchups, attendance)

	absent := stats[4]
	if absent.GamesPlayed != 0 || absent.PointsFor != 0 || absent.PointsAgainst != 0 || absent.Losses != 0 || absent.Wins != 0 {
		t.Errorf("Expected absent player stats to stay zero, got %+v", absent)
	}
	if pts, ok := absent.DailyPoints[1]; !ok || pts != 0 {
		t.Errorf("Expected an explicit zero day entry for absent player, got %v", absent.DailyPoints)
	}
	if stats[3].Losses != 1 {
		t.Errorf("Expected present teammate to be scored, got %+v", stats[3])
	}
}

func TestProcessDayResults_PointScale(t *testing.T) {
	tests := []struct {
		name        string
		result      GameResult
		wantTeamA   int
		wantTeamB   int
		wantTiesA   int
		wantPlayedA int
	}{
		{"team A wins", Score(11, 5), 3, 0, 0, 1},
		{"team B wins", Score(5, 11), 0, 3, 0, 1},
		{"tie", Score(9, 9), 1, 1, 1, 1},
		{"zero-zero tie", Score(0, 0), 1, 1, 1, 1},
		{"unplayed", Unplayed(), 0, 0, 0, 0},
		{"partial score", GameResult{TeamAScore: intPtr(5)}, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players, matchups := fourPlayerDay()
			results := DailyResults{"Court A": {tt.result}}

			stats := ProcessDayResults(InitializePlayerStats(players), 1, results, matchups, nil)

			if got := stats[1].DailyPoints[1]; got != tt.wantTeamA {
				t.Errorf("Expected team A day points %d, got %d", tt.wantTeamA, got)
			}
			if got := stats[3].DailyPoints[1]; got != tt.wantTeamB {
				t.Errorf("Expected team B day points %d, got %d", tt.wantTeamB, got)
			}
			if stats[1].Ties != tt.wantTiesA {
				t.Errorf("Expected %d ties, got %d", tt.wantTiesA, stats[1].Ties)
			}
			if stats[1].GamesPlayed != tt.wantPlayedA {
				t.Errorf("Expected %d games played, got %d", tt.wantPlayedA, stats[1].GamesPlayed)
			}
		})
	}
}

func TestProcessDayResults_DuplicatePlayerCountedOnce(t *testing.T) {
	players := makePlayers(7)
	// Player 1 is wrongly listed on both courts for game 0.
	matchups := CourtMatchups{
		"Court A": {{TeamA: Team{players[0], players[1]}, TeamB: Team{players[2], players[3]}}},
		"Court B": {{TeamA: Team{players[4], players[0]}, TeamB: Team{players[5], players[6]}}},
	}
	results := DailyResults{
		"Court A": {Score(21, 10)},
		"Court B": {Score(21, 10)},
	}

	stats := ProcessDayResults(InitializePlayerStats(players), 1, results, matchups, nil)

	p := stats[1]
	if p.GamesPlayed != 1 || p.Wins != 1 || p.PointsFor != 21 {
		t.Errorf("Expected player 1 counted once, got %+v", p)
	}
	if p.DailyPoints[1] != 3 {
		t.Errorf("Expected 3 day points, got %d", p.DailyPoints[1])
	}
}

func TestProcessDayResults_Idempotent(t *testing.T) {
	players, matchups := fourPlayerDay()
	results := DailyResults{"Court A": {Score(21, 15)}}
	fresh := InitializePlayerStats(players)

	first := ProcessDayResults(fresh, 1, results, matchups, nil)
	second := ProcessDayResults(fresh, 1, results, matchups, nil)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output, got %+v and %+v", first, second)
	}
	if fresh[1].GamesPlayed != 0 || len(fresh[1].DailyPoints) != 0 {
		t.Errorf("Expected input stats to be untouched, got %+v", fresh[1])
	}
}

func TestProcessDayResults_MissingData(t *testing.T) {
	players, matchups := fourPlayerDay()
	results := DailyResults{"Court A": {Score(21, 15)}}
	stats := InitializePlayerStats(players)

	if got := ProcessDayResults(stats, 1, nil, matchups, nil); !reflect.DeepEqual(got, stats) {
		t.Errorf("Expected no-op without results, got %+v", got)
	}
	if got := ProcessDayResults(stats, 1, results, nil, nil); !reflect.DeepEqual(got, stats) {
		t.Errorf("Expected no-op without matchups, got %+v", got)
	}
}

func TestProcessDayResults_PlayerNotScheduledGetsNoEntry(t *testing.T) {
	players, matchups := fourPlayerDay()
	players = append(players, Player{ID: 9, Name: "Bench"})
	results := DailyResults{"Court A": {Score(21, 15)}}

	stats := ProcessDayResults(InitializePlayerStats(players), 2, results, matchups, nil)

	if _, ok := stats[9].DailyPoints[2]; ok {
		t.Errorf("Expected no day entry for an unscheduled player, got %v", stats[9].DailyPoints)
	}
}

func TestComputeStandings_WithSeed(t *testing.T) {
	players, matchups := fourPlayerDay()
	cfg := Config{
		SeedThroughDay: 3,
		SeededStats: map[int]PlayerStats{
			3: {LeaguePoints: 10, Wins: 3, GamesPlayed: 4, PointsFor: 80, PointsAgainst: 70, DailyPoints: map[int]int{1: 4}},
		},
	}
	history := History{
		Matchups: MatchupHistory{2: matchups, 4: matchups},
		Results: ResultHistory{
			2: {"Court A": {Score(21, 0)}},
			4: {"Court A": {Score(21, 15)}},
		},
	}

	stats := ComputeStandings(players, cfg, history, 4)

	seeded := stats[3]
	if seeded.LeaguePoints != 10 {
		t.Errorf("Expected seeded points plus a day-4 loss to total 10, got %d", seeded.LeaguePoints)
	}
	if seeded.GamesPlayed != 5 || seeded.PointsFor != 95 || seeded.PointsAgainst != 91 {
		t.Errorf("Unexpected seeded player totals: %+v", seeded)
	}
	if _, ok := seeded.DailyPoints[1]; ok {
		t.Error("Expected seeded daily points to be reset")
	}
	if _, ok := stats[1].DailyPoints[2]; ok {
		t.Error("Expected days inside the seed boundary to be skipped")
	}
	if stats[1].LeaguePoints != 3 {
		t.Errorf("Expected 3 league points for player 1, got %d", stats[1].LeaguePoints)
	}
}

func TestComputeStandings_LeaguePointsInvariant(t *testing.T) {
	players, matchups := fourPlayerDay()
	history := History{
		Matchups: MatchupHistory{1: matchups, 2: matchups, 3: matchups},
		Results: ResultHistory{
			1: {"Court A": {Score(21, 15)}},
			2: {"Court A": {Score(10, 10)}},
			3: {"Court A": {Score(3, 21)}},
		},
	}

	stats := ComputeStandings(players, Config{}, history, 3)

	for id, p := range stats {
		sum := 0
		for _, pts := range p.DailyPoints {
			sum += pts
		}
		if p.LeaguePoints != sum {
			t.Errorf("Player %d: league points %d != sum of daily points %d", id, p.LeaguePoints, sum)
		}
		if p.PointDifferential != p.PointsFor-p.PointsAgainst {
			t.Errorf("Player %d: differential %d does not match totals", id, p.PointDifferential)
		}
	}
	if stats[1].LeaguePoints != 4 || stats[3].LeaguePoints != 4 {
		t.Errorf("Expected 4 points each, got %d and %d", stats[1].LeaguePoints, stats[3].LeaguePoints)
	}
}

func intPtr(v int) *int {
	return &v
}
