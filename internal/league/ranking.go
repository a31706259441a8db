package league

import (
	"math"
	"sort"
)

// PointsRatio returns points for over points against. A player with no points
// against ranks infinitely well if they scored at all.
func PointsRatio(p PlayerStats) float64 {
	if p.PointsAgainst == 0 {
		if p.PointsFor > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return float64(p.PointsFor) / float64(p.PointsAgainst)
}

// HeadToHeadRecord counts wins between two players when on opposing teams
type HeadToHeadRecord struct {
	PlayerA int `json:"playerA"`
	PlayerB int `json:"playerB"`
	WinsA   int `json:"winsA"`
	WinsB   int `json:"winsB"`
	Ties    int `json:"ties"`
	Games   int `json:"games"`
}

// HeadToHead scans every played game up to maxDay in which a and b were on
// opposing teams. maxDay <= 0 scans all days.
func HeadToHead(a, b int, matchups MatchupHistory, results ResultHistory, maxDay int) HeadToHeadRecord {
	record := HeadToHeadRecord{PlayerA: a, PlayerB: b}
	if a == b {
		return record
	}
	for day, dayMatchups := range matchups {
		if maxDay > 0 && day > maxDay {
			continue
		}
		dayResults := results[day]
		if dayResults == nil {
			continue
		}
		for court, games := range dayMatchups {
			courtResults := dayResults[court]
			for gameIndex, game := range games {
				if gameIndex >= len(courtResults) || !courtResults[gameIndex].Played() {
					continue
				}
				var aOnTeamA bool
				switch {
				case game.TeamA.Contains(a) && game.TeamB.Contains(b):
					aOnTeamA = true
				case game.TeamB.Contains(a) && game.TeamA.Contains(b):
					aOnTeamA = false
				default:
					continue
				}
				scoreA, scoreB := *courtResults[gameIndex].TeamAScore, *courtResults[gameIndex].TeamBScore
				if !aOnTeamA {
					scoreA, scoreB = scoreB, scoreA
				}
				record.Games++
				switch outcomeFor(scoreA, scoreB) {
				case outcomeWin:
					record.WinsA++
				case outcomeLoss:
					record.WinsB++
				default:
					record.Ties++
				}
			}
		}
	}
	return record
}

type pairKey struct{ a, b int }

// Ranker compares players with the full tie-break cascade. Head-to-head
// records are looked up lazily and memoized for the ranker's lifetime.
type Ranker struct {
	matchups MatchupHistory
	results  ResultHistory
	maxDay   int
	h2h      map[pairKey]HeadToHeadRecord
}

// NewRanker creates a ranker over a read-only history snapshot
func NewRanker(matchups MatchupHistory, results ResultHistory, maxDay int) *Ranker {
	return &Ranker{
		matchups: matchups,
		results:  results,
		maxDay:   maxDay,
		h2h:      make(map[pairKey]HeadToHeadRecord),
	}
}

func (r *Ranker) headToHeadWins(a, b int) (int, int) {
	key := pairKey{a, b}
	flipped := false
	if a > b {
		key = pairKey{b, a}
		flipped = true
	}
	record, ok := r.h2h[key]
	if !ok {
		record = HeadToHead(key.a, key.b, r.matchups, r.results, r.maxDay)
		r.h2h[key] = record
	}
	if flipped {
		return record.WinsB, record.WinsA
	}
	return record.WinsA, record.WinsB
}

// Compare returns a negative number when a ranks above b, positive when b
// ranks above a, and zero only for the same player ID.
func (r *Ranker) Compare(a, b PlayerStats) int {
	if a.LeaguePoints != b.LeaguePoints {
		return b.LeaguePoints - a.LeaguePoints
	}
	ratioA, ratioB := PointsRatio(a), PointsRatio(b)
	if ratioA != ratioB {
		if ratioA > ratioB {
			return -1
		}
		return 1
	}
	if a.PointsFor != b.PointsFor {
		return b.PointsFor - a.PointsFor
	}
	if a.PointsAgainst != b.PointsAgainst {
		return a.PointsAgainst - b.PointsAgainst
	}
	if a.ID != b.ID {
		winsA, winsB := r.headToHeadWins(a.ID, b.ID)
		if winsA != winsB {
			return winsB - winsA
		}
	}
	return a.ID - b.ID
}

// SortPlayersWithTieBreaking returns players ordered best first:
//  1. league points (desc)
//  2. points for / points against ratio (desc)
//  3. points for (desc)
//  4. points against (asc)
//  5. head-to-head wins through maxDay (desc)
//  6. player ID (asc)
//
// maxDay <= 0 includes every day in the history. The input slice is not modified.
func SortPlayersWithTieBreaking(players []PlayerStats, matchups MatchupHistory, results ResultHistory, maxDay int) []PlayerStats {
	sorted := make([]PlayerStats, len(players))
	copy(sorted, players)

	ranker := NewRanker(matchups, results, maxDay)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ranker.Compare(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// RosterOrder strips stats from a ranked list for matchup generation
func RosterOrder(ranked []PlayerStats) []Player {
	out := make([]Player, 0, len(ranked))
	for _, p := range ranked {
		out = append(out, p.Player)
	}
	return out
}
