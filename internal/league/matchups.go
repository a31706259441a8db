package league

import (
	"math/rand/v2"
)

// Strategy names the generation method used for a day
type Strategy string

const (
	StrategyDiscovery  Strategy = "discovery"
	StrategyRankedTier Strategy = "ranked_tier"
)

// StrategyFor returns the generation strategy that applies to a day
func StrategyFor(day int, cfg Config) Strategy {
	if cfg.LeagueType == LeagueTypeCustom || day <= 1 {
		return StrategyDiscovery
	}
	return StrategyRankedTier
}

// NewRand returns a randomly seeded generator for production use
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// GenerateDailyMatchups builds every court's games for a day.
// For ranked-tier days players must already be sorted by SortPlayersWithTieBreaking.
// A nil rng falls back to a randomly seeded generator.
func GenerateDailyMatchups(day int, players []Player, cfg Config, rng *rand.Rand) CourtMatchups {
	if rng == nil {
		rng = NewRand()
	}
	if StrategyFor(day, cfg) == StrategyDiscovery {
		return discoveryMatchups(players, cfg, rng)
	}
	return rankedTierMatchups(players, cfg, rng)
}

func shuffled(players []Player, rng *rand.Rand) []Player {
	out := append([]Player{}, players...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func splitTeams(courtPlayers []Player, playersPerTeam int) GameMatchup {
	return GameMatchup{
		TeamA: append(Team{}, courtPlayers[:playersPerTeam]...),
		TeamB: append(Team{}, courtPlayers[playersPerTeam:]...),
	}
}

// discoveryMatchups reshuffles the whole pool for every game so partners and
// opponents vary across the day. Courts left without enough players get an
// empty game rather than being dropped.
func discoveryMatchups(players []Player, cfg Config, rng *rand.Rand) CourtMatchups {
	matchups := CourtMatchups{}
	if cfg.NumCourts <= 0 {
		return matchups
	}
	courtNames := AllCourtNames(cfg)
	perCourt := cfg.PlayersPerCourt()
	for _, name := range courtNames {
		matchups[name] = []GameMatchup{}
	}

	for game := 0; game < cfg.GamesPerDay; game++ {
		pool := shuffled(players, rng)
		for _, name := range courtNames {
			if perCourt <= 0 || len(pool) < perCourt {
				matchups[name] = append(matchups[name], GameMatchup{TeamA: Team{}, TeamB: Team{}})
				continue
			}
			matchups[name] = append(matchups[name], splitTeams(pool[:perCourt], cfg.PlayersPerTeam))
			pool = pool[perCourt:]
		}
	}
	return matchups
}

// rankedTierMatchups fixes each court's players by rank for the whole day and
// only reshuffles teams within the court between games.
func rankedTierMatchups(sorted []Player, cfg Config, rng *rand.Rand) CourtMatchups {
	matchups := CourtMatchups{}
	if cfg.NumCourts <= 0 {
		return matchups
	}
	courtNames := AllCourtNames(cfg)
	perCourt := cfg.PlayersPerCourt()
	if perCourt <= 0 {
		return matchups
	}

	for i, name := range courtNames {
		start := i * perCourt
		end := start + perCourt
		if len(sorted) < end {
			continue
		}
		block := sorted[start:end]
		games := make([]GameMatchup, 0, max(cfg.GamesPerDay, 0))
		for game := 0; game < cfg.GamesPerDay; game++ {
			games = append(games, splitTeams(shuffled(block, rng), cfg.PlayersPerTeam))
		}
		matchups[name] = games
	}
	return matchups
}
