package league

import (
	"math"
	"testing"
)

func stat(id, leaguePoints, pointsFor, pointsAgainst int) PlayerStats {
	return PlayerStats{
		Player:        Player{ID: id, Name: "Player"},
		LeaguePoints:  leaguePoints,
		PointsFor:     pointsFor,
		PointsAgainst: pointsAgainst,
		DailyPoints:   map[int]int{},
	}
}

func ids(players []PlayerStats) []int {
	out := make([]int, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}

func TestPointsRatio(t *testing.T) {
	tests := []struct {
		name string
		p    PlayerStats
		want float64
	}{
		{"regular", stat(1, 0, 30, 20), 1.5},
		{"nothing against", stat(1, 0, 30, 0), math.Inf(1)},
		{"nothing at all", stat(1, 0, 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointsRatio(tt.p); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSortPlayersWithTieBreaking_Cascade(t *testing.T) {
	tests := []struct {
		name    string
		players []PlayerStats
		want    []int
	}{
		{
			name:    "league points first",
			players: []PlayerStats{stat(1, 3, 100, 10), stat(2, 6, 10, 100)},
			want:    []int{2, 1},
		},
		{
			name:    "ratio beats raw points",
			players: []PlayerStats{stat(1, 6, 100, 90), stat(2, 6, 40, 20)},
			want:    []int{2, 1},
		},
		{
			name:    "infinite ratio ranks first",
			players: []PlayerStats{stat(1, 6, 50, 10), stat(2, 6, 5, 0)},
			want:    []int{2, 1},
		},
		{
			name:    "points for when ratios match",
			players: []PlayerStats{stat(1, 6, 20, 10), stat(2, 6, 40, 20)},
			want:    []int{2, 1},
		},
		{
			name:    "fewer points against when everything else matches",
			players: []PlayerStats{stat(1, 0, 0, 20), stat(2, 0, 0, 10)},
			want:    []int{2, 1},
		},
		{
			name:    "player id as final tiebreak",
			players: []PlayerStats{stat(3, 6, 20, 10), stat(1, 6, 20, 10), stat(2, 6, 20, 10)},
			want:    []int{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(SortPlayersWithTieBreaking(tt.players, nil, nil, 0))
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("Expected order %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestSortPlayersWithTieBreaking_HeadToHead(t *testing.T) {
	p := makePlayers(4)
	// Player 4 beats player 2 on day 1; player 2 beats player 4 twice on day 2.
	matchups := MatchupHistory{
		1: {"Court A": {{TeamA: Team{p[3], p[0]}, TeamB: Team{p[1], p[2]}}}},
		2: {"Court A": {
			{TeamA: Team{p[1], p[0]}, TeamB: Team{p[3], p[2]}},
			{TeamA: Team{p[3], p[0]}, TeamB: Team{p[1], p[2]}},
		}},
	}
	results := ResultHistory{
		1: {"Court A": {Score(21, 10)}},
		2: {"Court A": {Score(21, 10), Score(5, 21)}},
	}
	tied := []PlayerStats{stat(4, 6, 20, 10), stat(2, 6, 20, 10)}

	allDays := ids(SortPlayersWithTieBreaking(tied, matchups, results, 0))
	if allDays[0] != 2 {
		t.Errorf("Expected player 2 first on head-to-head, got %v", allDays)
	}

	dayOne := ids(SortPlayersWithTieBreaking(tied, matchups, results, 1))
	if dayOne[0] != 4 {
		t.Errorf("Expected player 4 first when limited to day 1, got %v", dayOne)
	}
}

func TestSortPlayersWithTieBreaking_HeadToHeadIgnoresUnplayed(t *testing.T) {
	p := makePlayers(2)
	matchups := MatchupHistory{1: {"Court A": {{TeamA: Team{p[1]}, TeamB: Team{p[0]}}}}}
	results := ResultHistory{1: {"Court A": {{TeamAScore: intPtr(21)}}}}
	tied := []PlayerStats{stat(2, 0, 0, 0), stat(1, 0, 0, 0)}

	got := ids(SortPlayersWithTieBreaking(tied, matchups, results, 0))
	if got[0] != 1 {
		t.Errorf("Expected id order without a played meeting, got %v", got)
	}
}

func TestSortPlayersWithTieBreaking_TotalOrder(t *testing.T) {
	players := []PlayerStats{
		stat(5, 3, 10, 10), stat(2, 3, 10, 10), stat(9, 0, 0, 0),
		stat(1, 9, 40, 5), stat(7, 3, 12, 10), stat(4, 0, 0, 0),
	}
	ranker := NewRanker(nil, nil, 0)

	sorted := SortPlayersWithTieBreaking(players, nil, nil, 0)

	for i := 0; i < len(sorted); i++ {
		for j := 0; j < len(sorted); j++ {
			c := ranker.Compare(sorted[i], sorted[j])
			switch {
			case i == j && c != 0:
				t.Errorf("Expected a player to compare equal to itself")
			case i < j && c >= 0:
				t.Errorf("Expected %d to rank above %d", sorted[i].ID, sorted[j].ID)
			case i > j && c <= 0:
				t.Errorf("Expected %d to rank below %d", sorted[i].ID, sorted[j].ID)
			}
		}
	}
}

func TestSortPlayersWithTieBreaking_DoesNotModifyInput(t *testing.T) {
	players := []PlayerStats{stat(1, 0, 0, 0), stat(2, 9, 0, 0)}

	SortPlayersWithTieBreaking(players, nil, nil, 0)

	if players[0].ID != 1 {
		t.Errorf("Expected input order to be preserved, got %v", ids(players))
	}
}

func TestHeadToHead(t *testing.T) {
	p := makePlayers(2)
	matchups := MatchupHistory{1: {"Court A": {
		{TeamA: Team{p[0]}, TeamB: Team{p[1]}},
		{TeamA: Team{p[1]}, TeamB: Team{p[0]}},
		{TeamA: Team{p[0]}, TeamB: Team{p[1]}},
	}}}
	results := ResultHistory{1: {"Court A": {Score(21, 5), Score(21, 5), Score(7, 7)}}}

	record := HeadToHead(1, 2, matchups, results, 0)

	if record.WinsA != 1 || record.WinsB != 1 || record.Ties != 1 || record.Games != 3 {
		t.Errorf("Unexpected record: %+v", record)
	}
}
