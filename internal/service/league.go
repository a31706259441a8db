package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/sam-maryland/court-league-server/internal/league"
	"github.com/sam-maryland/court-league-server/internal/store"
	"github.com/sirupsen/logrus"
)

// CourtGroup is the ranked set of players assigned to one court for a day
type CourtGroup struct {
	Court   string               `json:"court"`
	Players []league.PlayerStats `json:"players"`
}

// LeagueService runs league operations on top of a store
type LeagueService struct {
	store   store.Store
	logger  *logrus.Logger
	newRand func() *rand.Rand

	// serializes read-modify-write edits of league documents and matchups
	editMu sync.Mutex
}

// NewLeagueService creates a new league service
func NewLeagueService(s store.Store, logger *logrus.Logger) *LeagueService {
	return &LeagueService{
		store:   s,
		logger:  logger,
		newRand: league.NewRand,
	}
}

// SetRandSource replaces the generator factory used for matchup generation
func (s *LeagueService) SetRandSource(fn func() *rand.Rand) {
	s.newRand = fn
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]store.League, error) {
	return s.store.ListLeagues(ctx)
}

func (s *LeagueService) GetLeague(ctx context.Context, id string) (store.League, error) {
	l, err := s.store.GetLeague(ctx, id)
	if err != nil {
		return store.League{}, fmt.Errorf("league %s: %w", id, err)
	}
	return l, nil
}

// CreateLeague validates and stores a new league
func (s *LeagueService) CreateLeague(ctx context.Context, l store.League) (store.League, error) {
	if err := validateLeague(&l); err != nil {
		return store.League{}, err
	}
	created, err := s.store.CreateLeague(ctx, l)
	if err != nil {
		return store.League{}, fmt.Errorf("create league: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"league_id": created.ID,
		"players":   len(created.Players),
		"courts":    created.Config.NumCourts,
		"type":      created.Config.LeagueType,
	}).Info("Created league")
	return created, nil
}

func validateLeague(l *store.League) error {
	l.Title = strings.TrimSpace(l.Title)
	if l.Title == "" {
		return newLeagueError(ErrInvalidLeague, l.ID, "title is required")
	}
	cfg := &l.Config
	switch cfg.LeagueType {
	case "":
		cfg.LeagueType = league.LeagueTypeStandard
	case league.LeagueTypeStandard, league.LeagueTypeCustom:
	default:
		return newLeagueError(ErrInvalidLeague, l.ID, "unknown league type %q", cfg.LeagueType)
	}
	if cfg.NumCourts < 0 || cfg.PlayersPerTeam < 0 || cfg.GamesPerDay < 0 || cfg.TotalDays < 0 || cfg.SeedThroughDay < 0 {
		return newLeagueError(ErrInvalidLeague, l.ID, "counts must not be negative")
	}
	if len(cfg.CourtNames) > 0 && len(cfg.CourtNames) != cfg.NumCourts {
		return newLeagueError(ErrInvalidLeague, l.ID, "expected %d court names, got %d", cfg.NumCourts, len(cfg.CourtNames))
	}
	seen := make(map[int]bool, len(l.Players))
	for _, p := range l.Players {
		if p.ID <= 0 {
			return newLeagueError(ErrInvalidLeague, l.ID, "player ids must be positive, got %d", p.ID)
		}
		if seen[p.ID] {
			return newLeagueError(ErrInvalidLeague, l.ID, "duplicate player id %d", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// CourtNames returns the league's courts in display order
func (s *LeagueService) CourtNames(ctx context.Context, id string) ([]string, error) {
	l, err := s.GetLeague(ctx, id)
	if err != nil {
		return nil, err
	}
	return league.AllCourtNames(l.Config), nil
}

func checkDay(l store.League, day int) error {
	if day < 1 || day > l.Config.TotalDays {
		return newLeagueError(ErrInvalidDay, l.ID, "day %d is outside 1..%d", day, l.Config.TotalDays)
	}
	return nil
}

// checkEditable rejects edits to read-only leagues and locked days
func checkEditable(l store.League, day int) error {
	if l.ReadOnly {
		return newLeagueError(ErrReadOnly, l.ID, "league %s is read-only", l.ID)
	}
	if err := checkDay(l, day); err != nil {
		return err
	}
	if l.IsDayLocked(day) {
		return newLeagueError(ErrDayLocked, l.ID, "day %d is locked", day)
	}
	return nil
}

func (s *LeagueService) history(ctx context.Context, id string) (league.History, error) {
	days, err := s.store.ListDays(ctx, id)
	if err != nil {
		return league.History{}, fmt.Errorf("load days: %w", err)
	}
	return store.History(days), nil
}

// DayMatchups returns the matchups for a day, generating them the first time
// the day is requested. Generated matchups are never regenerated.
func (s *LeagueService) DayMatchups(ctx context.Context, id string, day int) (league.CourtMatchups, error) {
	l, err := s.GetLeague(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkDay(l, day); err != nil {
		return nil, err
	}
	existing, err := s.store.GetDay(ctx, id, day)
	if err != nil {
		return nil, fmt.Errorf("load day %d: %w", day, err)
	}
	if existing.HasMatchups() {
		return existing.Matchups, nil
	}

	logger := s.logger.WithFields(logrus.Fields{"league_id": id, "day": day})
	if len(l.Players) == 0 {
		logger.Info("Skipping matchup generation for empty roster")
		return league.CourtMatchups{}, nil
	}

	strategy := league.StrategyFor(day, l.Config)
	players := l.Players
	if strategy == league.StrategyRankedTier {
		h, err := s.history(ctx, id)
		if err != nil {
			return nil, err
		}
		stats := league.ComputeStandings(l.Players, l.Config, h, day-1)
		ranked := league.SortPlayersWithTieBreaking(stats.Players(), h.Matchups, h.Results, day-1)
		players = league.RosterOrder(ranked)
	}

	generated := league.GenerateDailyMatchups(day, players, l.Config, s.newRand())
	created, err := s.store.InsertMatchups(ctx, id, day, generated)
	if err != nil {
		return nil, fmt.Errorf("save matchups for day %d: %w", day, err)
	}
	if !created {
		logger.Debug("Matchups already generated by another request")
		stored, err := s.store.GetDay(ctx, id, day)
		if err != nil {
			return nil, fmt.Errorf("load day %d: %w", day, err)
		}
		return stored.Matchups, nil
	}

	logger.WithFields(logrus.Fields{
		"strategy": strategy,
		"courts":   len(generated),
	}).Info("Generated matchups")
	return generated, nil
}

// Standings ranks every player through a day. throughDay <= 0 means the whole league.
func (s *LeagueService) Standings(ctx context.Context, id string, throughDay int) ([]league.PlayerStats, error) {
	l, err := s.GetLeague(ctx, id)
	if err != nil {
		return nil, err
	}
	if throughDay <= 0 || throughDay > l.Config.TotalDays {
		throughDay = l.Config.TotalDays
	}
	h, err := s.history(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := league.ComputeStandings(l.Players, l.Config, h, throughDay)
	return league.SortPlayersWithTieBreaking(stats.Players(), h.Matchups, h.Results, throughDay), nil
}

// CourtGroups ranks the players on each court for a day that already has matchups
func (s *LeagueService) CourtGroups(ctx context.Context, id string, day int) ([]CourtGroup, error) {
	l, err := s.GetLeague(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkDay(l, day); err != nil {
		return nil, err
	}
	h, err := s.history(ctx, id)
	if err != nil {
		return nil, err
	}
	dayMatchups := h.Matchups[day]
	if len(dayMatchups) == 0 {
		return []CourtGroup{}, nil
	}

	stats := league.ComputeStandings(l.Players, l.Config, h, day)
	groups := make([]CourtGroup, 0, len(dayMatchups))
	for _, court := range league.AllCourtNames(l.Config) {
		seen := map[int]bool{}
		var members []league.PlayerStats
		for _, game := range dayMatchups[court] {
			for _, p := range append(append(league.Team{}, game.TeamA...), game.TeamB...) {
				if seen[p.ID] {
					continue
				}
				seen[p.ID] = true
				if ps, ok := stats[p.ID]; ok {
					members = append(members, ps)
				}
			}
		}
		groups = append(groups, CourtGroup{
			Court:   court,
			Players: league.SortPlayersWithTieBreaking(members, h.Matchups, h.Results, day),
		})
	}
	return groups, nil
}

// HeadToHead counts games two players won against each other through maxDay
func (s *LeagueService) HeadToHead(ctx context.Context, id string, a, b, maxDay int) (league.HeadToHeadRecord, error) {
	l, err := s.GetLeague(ctx, id)
	if err != nil {
		return league.HeadToHeadRecord{}, err
	}
	for _, pid := range []int{a, b} {
		if _, ok := l.Player(pid); !ok {
			return league.HeadToHeadRecord{}, newLeagueError(ErrPlayerNotFound, id, "player %d is not on the roster", pid)
		}
	}
	h, err := s.history(ctx, id)
	if err != nil {
		return league.HeadToHeadRecord{}, err
	}
	return league.HeadToHead(a, b, h.Matchups, h.Results, maxDay), nil
}

// RecordResult stores the score for one game on one court
func (s *LeagueService) RecordResult(ctx context.Context, id string, day int, court string, gameIndex int, result league.GameResult) error {
	l, err := s.GetLeague(ctx, id)
	if err != nil {
		return err
	}
	logger := s.logger.WithFields(logrus.Fields{"league_id": id, "day": day, "court": court, "game": gameIndex})
	if err := checkEditable(l, day); err != nil {
		logger.WithError(err).Warn("Rejected result")
		return err
	}
	if !hasCourt(l.Config, court) {
		return newLeagueError(ErrUnknownCourt, id, "court %q does not exist", court)
	}
	if gameIndex < 0 || gameIndex >= l.Config.GamesPerDay {
		return newLeagueError(ErrInvalidGame, id, "game %d is outside 0..%d", gameIndex, l.Config.GamesPerDay-1)
	}
	if (result.TeamAScore != nil && *result.TeamAScore < 0) || (result.TeamBScore != nil && *result.TeamBScore < 0) {
		return newLeagueError(ErrInvalidScore, id, "scores must not be negative")
	}

	if err := s.store.SetResult(ctx, id, day, court, gameIndex, result); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	logger.WithField("played", result.Played()).Info("Recorded result")
	return nil
}

func hasCourt(cfg league.Config, court string) bool {
	for _, name := range league.AllCourtNames(cfg) {
		if name == court {
			return true
		}
	}
	return false
}

// SetAttendance marks a player present or absent for a game. A negative
// gameIndex applies to every game of the day.
func (s *LeagueService) SetAttendance(ctx context.Context, id string, day, playerID, gameIndex int, present bool) error {
	l, err := s.GetLeague(ctx, id)
	if err != nil {
		return err
	}
	logger := s.logger.WithFields(logrus.Fields{"league_id": id, "day": day, "player_id": playerID})
	if err := checkEditable(l, day); err != nil {
		logger.WithError(err).Warn("Rejected attendance change")
		return err
	}
	if _, ok := l.Player(playerID); !ok {
		return newLeagueError(ErrPlayerNotFound, id, "player %d is not on the roster", playerID)
	}
	if gameIndex >= l.Config.GamesPerDay {
		return newLeagueError(ErrInvalidGame, id, "game %d is outside 0..%d", gameIndex, l.Config.GamesPerDay-1)
	}

	games := []int{gameIndex}
	if gameIndex < 0 {
		games = games[:0]
		for g := 0; g < l.Config.GamesPerDay; g++ {
			games = append(games, g)
		}
	}
	for _, g := range games {
		if err := s.store.SetAttendance(ctx, id, day, playerID, g, present); err != nil {
			return fmt.Errorf("save attendance: %w", err)
		}
	}
	logger.WithFields(logrus.Fields{"games": len(games), "present": present}).Debug("Updated attendance")
	return nil
}

// editMatchups loads a day's matchups for a manual edit and saves the result of fn
func (s *LeagueService) editMatchups(ctx context.Context, id string, day int, fn func(l store.League, m league.CourtMatchups) error) error {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	l, err := s.GetLeague(ctx, id)
	if err != nil {
		return err
	}
	if err := checkEditable(l, day); err != nil {
		s.logger.WithFields(logrus.Fields{"league_id": id, "day": day}).WithError(err).Warn("Rejected matchup edit")
		return err
	}
	d, err := s.store.GetDay(ctx, id, day)
	if err != nil {
		return fmt.Errorf("load day %d: %w", day, err)
	}
	if !d.HasMatchups() {
		return newLeagueError(ErrInvalidGame, id, "day %d has no matchups yet", day)
	}
	m := d.Matchups.Clone()
	if err := fn(l, m); err != nil {
		return err
	}
	if err := s.store.ReplaceMatchups(ctx, id, day, m); err != nil {
		return fmt.Errorf("save matchups: %w", err)
	}
	return nil
}

// MovePlayer moves a player to the other team of the same game
func (s *LeagueService) MovePlayer(ctx context.Context, id string, day int, court string, gameIndex, playerID int) error {
	return s.editMatchups(ctx, id, day, func(l store.League, m league.CourtMatchups) error {
		games, ok := m[court]
		if !ok {
			return newLeagueError(ErrUnknownCourt, id, "court %q has no games on day %d", court, day)
		}
		if gameIndex < 0 || gameIndex >= len(games) {
			return newLeagueError(ErrInvalidGame, id, "game %d does not exist on %s", gameIndex, court)
		}
		game := &games[gameIndex]
		from, to := &game.TeamA, &game.TeamB
		if !from.Contains(playerID) {
			from, to = to, from
		}
		idx := -1
		for i, p := range *from {
			if p.ID == playerID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return newLeagueError(ErrPlayerNotFound, id, "player %d is not in game %d on %s", playerID, gameIndex, court)
		}
		player := (*from)[idx]
		*from = append((*from)[:idx:idx], (*from)[idx+1:]...)
		*to = append(*to, player)

		s.logger.WithFields(logrus.Fields{"league_id": id, "day": day, "court": court, "player_id": playerID}).Info("Moved player")
		return nil
	})
}

type slot struct {
	court string
	teamB bool
	index int
}

func findSlot(m league.CourtMatchups, courts []string, gameIndex, playerID int) (slot, bool) {
	for _, court := range courts {
		games := m[court]
		if gameIndex >= len(games) {
			continue
		}
		for i, p := range games[gameIndex].TeamA {
			if p.ID == playerID {
				return slot{court: court, index: i}, true
			}
		}
		for i, p := range games[gameIndex].TeamB {
			if p.ID == playerID {
				return slot{court: court, teamB: true, index: i}, true
			}
		}
	}
	return slot{}, false
}

func (sl slot) team(m league.CourtMatchups, gameIndex int) league.Team {
	if sl.teamB {
		return m[sl.court][gameIndex].TeamB
	}
	return m[sl.court][gameIndex].TeamA
}

// SwapPlayers exchanges two players within the same game, possibly across courts
func (s *LeagueService) SwapPlayers(ctx context.Context, id string, day, gameIndex, first, second int) error {
	if first == second {
		return newLeagueError(ErrInvalidGame, id, "cannot swap player %d with themselves", first)
	}
	return s.editMatchups(ctx, id, day, func(l store.League, m league.CourtMatchups) error {
		if gameIndex < 0 {
			return newLeagueError(ErrInvalidGame, id, "game %d does not exist", gameIndex)
		}
		courts := make([]string, 0, len(m))
		for court := range m {
			courts = append(courts, court)
		}
		sort.Strings(courts)

		a, okA := findSlot(m, courts, gameIndex, first)
		b, okB := findSlot(m, courts, gameIndex, second)
		if !okA || !okB {
			return newLeagueError(ErrPlayerNotFound, id, "players %d and %d must both play game %d", first, second, gameIndex)
		}
		teamA, teamB := a.team(m, gameIndex), b.team(m, gameIndex)
		teamA[a.index], teamB[b.index] = teamB[b.index], teamA[a.index]

		s.logger.WithFields(logrus.Fields{"league_id": id, "day": day, "game": gameIndex, "players": []int{first, second}}).Info("Swapped players")
		return nil
	})
}

// SetDayLock locks or unlocks a day for edits
func (s *LeagueService) SetDayLock(ctx context.Context, id string, day int, locked bool) (store.League, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	l, err := s.GetLeague(ctx, id)
	if err != nil {
		return store.League{}, err
	}
	if l.ReadOnly {
		return store.League{}, newLeagueError(ErrReadOnly, id, "league %s is read-only", id)
	}
	if err := checkDay(l, day); err != nil {
		return store.League{}, err
	}
	if l.LockedDays == nil {
		l.LockedDays = map[int]bool{}
	}
	if locked {
		l.LockedDays[day] = true
	} else {
		delete(l.LockedDays, day)
	}
	if err := s.store.UpdateLeague(ctx, l); err != nil {
		return store.League{}, fmt.Errorf("update league: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"league_id": id, "day": day, "locked": locked}).Info("Updated day lock")
	return l, nil
}

// IsNotFound reports whether err means the league does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
