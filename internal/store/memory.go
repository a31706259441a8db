package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sam-maryland/court-league-server/internal/league"
)

type MemoryStore struct {
	mu      sync.RWMutex
	leagues map[string]League
	days    map[string]map[int]Day
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		leagues: make(map[string]League),
		days:    make(map[string]map[int]Day),
	}
}

// copyOf deep-copies a value through JSON so callers never share maps with the store
func copyOf[T any](v T) T {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

func (s *MemoryStore) ListLeagues(ctx context.Context) ([]League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	leagues := make([]League, 0, len(s.leagues))
	for _, l := range s.leagues {
		leagues = append(leagues, copyOf(l))
	}
	sort.Slice(leagues, func(i, j int) bool { return leagues[i].CreatedAt.After(leagues[j].CreatedAt) })
	return leagues, nil
}

func (s *MemoryStore) GetLeague(ctx context.Context, id string) (League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.leagues[id]
	if !ok {
		return League{}, ErrNotFound
	}
	return copyOf(l), nil
}

func (s *MemoryStore) CreateLeague(ctx context.Context, l League) (League, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	if _, exists := s.leagues[l.ID]; exists {
		return League{}, fmt.Errorf("league %s already exists", l.ID)
	}
	s.leagues[l.ID] = copyOf(l)
	return l, nil
}

func (s *MemoryStore) UpdateLeague(ctx context.Context, l League) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leagues[l.ID]; !ok {
		return ErrNotFound
	}
	s.leagues[l.ID] = copyOf(l)
	return nil
}

func (s *MemoryStore) GetDay(ctx context.Context, leagueID string, day int) (Day, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.leagues[leagueID]; !ok {
		return Day{}, ErrNotFound
	}
	return copyOf(s.days[leagueID][day]), nil
}

func (s *MemoryStore) ListDays(ctx context.Context, leagueID string) (map[int]Day, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.leagues[leagueID]; !ok {
		return nil, ErrNotFound
	}
	return copyOf(s.days[leagueID]), nil
}

// dayLocked returns the mutable day record; callers must hold the write lock
func (s *MemoryStore) dayLocked(leagueID string, day int) (Day, error) {
	if _, ok := s.leagues[leagueID]; !ok {
		return Day{}, ErrNotFound
	}
	if s.days[leagueID] == nil {
		s.days[leagueID] = make(map[int]Day)
	}
	return s.days[leagueID][day], nil
}

func (s *MemoryStore) InsertMatchups(ctx context.Context, leagueID string, day int, m league.CourtMatchups) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.dayLocked(leagueID, day)
	if err != nil {
		return false, err
	}
	if d.HasMatchups() {
		return false, nil
	}
	d.Matchups = m.Clone()
	s.days[leagueID][day] = d
	return true, nil
}

func (s *MemoryStore) ReplaceMatchups(ctx context.Context, leagueID string, day int, m league.CourtMatchups) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.dayLocked(leagueID, day)
	if err != nil {
		return err
	}
	d.Matchups = m.Clone()
	s.days[leagueID][day] = d
	return nil
}

func (s *MemoryStore) SetResult(ctx context.Context, leagueID string, day int, court string, gameIndex int, result league.GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.dayLocked(leagueID, day)
	if err != nil {
		return err
	}
	if d.Results == nil {
		d.Results = league.DailyResults{}
	}
	d.Results[court] = setResultAt(d.Results[court], gameIndex, result)
	s.days[leagueID][day] = d
	return nil
}

func (s *MemoryStore) SetAttendance(ctx context.Context, leagueID string, day, playerID, gameIndex int, present bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.dayLocked(leagueID, day)
	if err != nil {
		return err
	}
	if d.Attendance == nil {
		d.Attendance = league.DailyAttendance{}
	}
	d.Attendance[playerID] = setAttendanceAt(d.Attendance[playerID], gameIndex, present)
	s.days[leagueID][day] = d
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
