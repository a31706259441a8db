package league

import "sort"

// Day-point scale per game
const (
	WinPoints  = 3
	TiePoints  = 1
	LossPoints = 0
)

// Standings maps a player ID to that player's stats
type Standings map[int]PlayerStats

// Clone returns a deep copy of the standings
func (s Standings) Clone() Standings {
	out := make(Standings, len(s))
	for id, p := range s {
		out[id] = p.Clone()
	}
	return out
}

// Players returns the stats as a slice ordered by player ID
func (s Standings) Players() []PlayerStats {
	out := make([]PlayerStats, 0, len(s))
	for _, p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// InitializePlayerStats creates zeroed stats for every roster player
func InitializePlayerStats(players []Player) Standings {
	stats := make(Standings, len(players))
	for _, p := range players {
		stats[p.ID] = PlayerStats{Player: p, DailyPoints: map[int]int{}}
	}
	return stats
}

// ApplySeed overlays imported baseline stats onto a fresh roster. Roster
// identity is kept and daily points start empty so that later days are
// summed on top of the seeded league points.
func ApplySeed(players []Player, seeded map[int]PlayerStats) Standings {
	stats := InitializePlayerStats(players)
	for id, seed := range seeded {
		base, ok := stats[id]
		if !ok {
			continue
		}
		base.GamesPlayed = seed.GamesPlayed
		base.Wins = seed.Wins
		base.Losses = seed.Losses
		base.Ties = seed.Ties
		base.PointsFor = seed.PointsFor
		base.PointsAgainst = seed.PointsAgainst
		base.PointDifferential = seed.PointsFor - seed.PointsAgainst
		base.LeaguePoints = seed.LeaguePoints
		base.DailyPoints = map[int]int{}
		stats[id] = base
	}
	return stats
}

type outcome int

const (
	outcomeLoss outcome = iota
	outcomeTie
	outcomeWin
)

func outcomeFor(own, opponent int) outcome {
	switch {
	case own > opponent:
		return outcomeWin
	case own < opponent:
		return outcomeLoss
	default:
		return outcomeTie
	}
}

// ProcessDayResults folds one day's results into a copy of stats and returns it.
// The input is left untouched. Missing results or matchups make it a no-op.
//
// A player is counted at most once per game index even if listed on several
// courts; courts are visited in name order so the first listing wins.
func ProcessDayResults(stats Standings, day int, results DailyResults, matchups CourtMatchups, attendance DailyAttendance) Standings {
	next := stats.Clone()
	if results == nil || matchups == nil {
		return next
	}

	courts := make([]string, 0, len(matchups))
	for court := range matchups {
		courts = append(courts, court)
	}
	sort.Strings(courts)

	// Anyone scheduled today gets a day entry, even if it stays at zero.
	dayPoints := map[int]int{}
	for _, court := range courts {
		for _, game := range matchups[court] {
			for _, p := range append(append(Team{}, game.TeamA...), game.TeamB...) {
				dayPoints[p.ID] = 0
			}
		}
	}

	seen := map[int]map[int]struct{}{}
	for _, court := range courts {
		courtResults, ok := results[court]
		if !ok {
			continue
		}
		courtMatchups := matchups[court]
		for gameIndex, result := range courtResults {
			if !result.Played() || gameIndex >= len(courtMatchups) {
				continue
			}
			game := courtMatchups[gameIndex]
			if seen[gameIndex] == nil {
				seen[gameIndex] = map[int]struct{}{}
			}
			a, b := *result.TeamAScore, *result.TeamBScore
			scoreTeam(next, dayPoints, seen[gameIndex], game.TeamA, gameIndex, a, b, attendance)
			scoreTeam(next, dayPoints, seen[gameIndex], game.TeamB, gameIndex, b, a, attendance)
		}
	}

	for id, pts := range dayPoints {
		player, ok := next[id]
		if !ok {
			continue
		}
		player.LeaguePoints += pts - player.DailyPoints[day]
		player.DailyPoints[day] = pts
		next[id] = player
	}
	return next
}

func scoreTeam(stats Standings, dayPoints map[int]int, seen map[int]struct{}, team Team, gameIndex, own, opponent int, attendance DailyAttendance) {
	result := outcomeFor(own, opponent)
	for _, p := range team {
		if _, done := seen[p.ID]; done {
			continue
		}
		seen[p.ID] = struct{}{}

		player, ok := stats[p.ID]
		if !ok || !attendance.Present(p.ID, gameIndex) {
			continue
		}
		player.GamesPlayed++
		player.PointsFor += own
		player.PointsAgainst += opponent
		player.PointDifferential = player.PointsFor - player.PointsAgainst
		switch result {
		case outcomeWin:
			player.Wins++
			dayPoints[p.ID] += WinPoints
		case outcomeTie:
			player.Ties++
			dayPoints[p.ID] += TiePoints
		default:
			player.Losses++
			dayPoints[p.ID] += LossPoints
		}
		stats[p.ID] = player
	}
}

// ComputeStandings rebuilds stats from scratch: the seeded baseline first, then
// every recorded day from the seed boundary through throughDay.
func ComputeStandings(players []Player, cfg Config, history History, throughDay int) Standings {
	stats := ApplySeed(players, cfg.SeededStats)
	for day := cfg.StartDay(); day <= throughDay; day++ {
		stats = ProcessDayResults(stats, day, history.Results[day], history.Matchups[day], history.Attendance[day])
	}
	return stats
}
