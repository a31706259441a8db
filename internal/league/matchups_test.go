package league

import (
	"math/rand/v2"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func makePlayers(n int) []Player {
	players := make([]Player, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, Player{ID: i, Name: "Player"})
	}
	return players
}

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		name string
		day  int
		cfg  Config
		want Strategy
	}{
		{"standard day one", 1, Config{LeagueType: LeagueTypeStandard}, StrategyDiscovery},
		{"standard later day", 2, Config{LeagueType: LeagueTypeStandard}, StrategyRankedTier},
		{"custom later day", 5, Config{LeagueType: LeagueTypeCustom}, StrategyDiscovery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StrategyFor(tt.day, tt.cfg); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestGenerateDailyMatchups_DiscoveryCoverage(t *testing.T) {
	cfg := Config{LeagueType: LeagueTypeStandard, NumCourts: 3, PlayersPerTeam: 2, GamesPerDay: 6}
	players := makePlayers(cfg.NumCourts * cfg.PlayersPerCourt())

	matchups := GenerateDailyMatchups(1, players, cfg, testRand())

	if len(matchups) != cfg.NumCourts {
		t.Fatalf("Expected %d courts, got %d", cfg.NumCourts, len(matchups))
	}
	for court, games := range matchups {
		if len(games) != cfg.GamesPerDay {
			t.Errorf("Expected %d games on %s, got %d", cfg.GamesPerDay, court, len(games))
		}
		for i, game := range games {
			if len(game.TeamA) != 2 || len(game.TeamB) != 2 {
				t.Errorf("Expected full teams on %s game %d, got %v", court, i, game)
			}
		}
	}

	// Every player plays exactly once per game index.
	for game := 0; game < cfg.GamesPerDay; game++ {
		seen := map[int]bool{}
		for _, games := range matchups {
			for _, p := range append(append(Team{}, games[game].TeamA...), games[game].TeamB...) {
				if seen[p.ID] {
					t.Errorf("Player %d scheduled twice in game %d", p.ID, game)
				}
				seen[p.ID] = true
			}
		}
		if len(seen) != len(players) {
			t.Errorf("Expected %d players in game %d, got %d", len(players), game, len(seen))
		}
	}
}

func TestGenerateDailyMatchups_DiscoveryShortPool(t *testing.T) {
	cfg := Config{LeagueType: LeagueTypeCustom, NumCourts: 2, PlayersPerTeam: 2, GamesPerDay: 3}
	players := makePlayers(5)

	matchups := GenerateDailyMatchups(4, players, cfg, testRand())

	names := AllCourtNames(cfg)
	for _, game := range matchups[names[0]] {
		if game.IsEmpty() {
			t.Error("Expected the first court to be filled")
		}
	}
	second := matchups[names[1]]
	if len(second) != cfg.GamesPerDay {
		t.Fatalf("Expected %d placeholder games, got %d", cfg.GamesPerDay, len(second))
	}
	for i, game := range second {
		if !game.IsEmpty() {
			t.Errorf("Expected empty matchup for game %d, got %v", i, game)
		}
		if game.TeamA == nil || game.TeamB == nil {
			t.Errorf("Expected empty teams to be non-nil for game %d", i)
		}
	}
}

func TestGenerateDailyMatchups_RankedTierStability(t *testing.T) {
	cfg := Config{LeagueType: LeagueTypeStandard, NumCourts: 3, PlayersPerTeam: 2, GamesPerDay: 4}
	sorted := makePlayers(cfg.NumCourts * cfg.PlayersPerCourt())

	matchups := GenerateDailyMatchups(2, sorted, cfg, testRand())

	for i, name := range AllCourtNames(cfg) {
		games, ok := matchups[name]
		if !ok {
			t.Fatalf("Expected court %s to be scheduled", name)
		}
		low := i*cfg.PlayersPerCourt() + 1
		high := low + cfg.PlayersPerCourt() - 1
		for g, game := range games {
			for _, p := range append(append(Team{}, game.TeamA...), game.TeamB...) {
				if p.ID < low || p.ID > high {
					t.Errorf("Court %s game %d has player %d outside tier %d-%d", name, g, p.ID, low, high)
				}
			}
		}
	}
}

func TestGenerateDailyMatchups_RankedTierOmitsIncompleteCourt(t *testing.T) {
	cfg := Config{LeagueType: LeagueTypeStandard, NumCourts: 2, PlayersPerTeam: 2, GamesPerDay: 2}

	matchups := GenerateDailyMatchups(3, makePlayers(6), cfg, testRand())

	if len(matchups) != 1 {
		t.Fatalf("Expected only one court, got %d", len(matchups))
	}
	if _, ok := matchups["Foundation Court"]; ok {
		t.Error("Expected the incomplete bottom court to be omitted")
	}
}

func TestGenerateDailyMatchups_NoCourts(t *testing.T) {
	for _, day := range []int{1, 2} {
		cfg := Config{LeagueType: LeagueTypeStandard, NumCourts: 0, PlayersPerTeam: 2, GamesPerDay: 2}
		if got := GenerateDailyMatchups(day, makePlayers(8), cfg, testRand()); len(got) != 0 {
			t.Errorf("Expected no matchups on day %d, got %v", day, got)
		}
	}
}

func TestGenerateDailyMatchups_ReproducibleWithSeed(t *testing.T) {
	cfg := Config{LeagueType: LeagueTypeCustom, NumCourts: 2, PlayersPerTeam: 2, GamesPerDay: 3}
	players := makePlayers(8)

	first := GenerateDailyMatchups(1, players, cfg, testRand())
	second := GenerateDailyMatchups(1, players, cfg, testRand())

	for court, games := range first {
		for i := range games {
			a, b := games[i], second[court][i]
			for j := range a.TeamA {
				if a.TeamA[j].ID != b.TeamA[j].ID {
					t.Fatalf("Expected identical matchups for identical seeds on %s game %d", court, i)
				}
			}
		}
	}
}
