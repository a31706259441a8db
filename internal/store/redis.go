package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sam-maryland/court-league-server/internal/league"
)

const leagueIndexKey = "leagues"

// RedisStore keeps each league as a JSON document with per-day hashes for results and attendance
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis server at redisURL
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func leagueKey(id string) string {
	return "league:" + id
}

func daysKey(id string) string {
	return "league:" + id + ":days"
}

func dayKey(id string, day int, kind string) string {
	return fmt.Sprintf("league:%s:day:%d:%s", id, day, kind)
}

func resultField(court string, gameIndex int) string {
	return strconv.Itoa(gameIndex) + ":" + court
}

func attendanceField(playerID, gameIndex int) string {
	return strconv.Itoa(playerID) + ":" + strconv.Itoa(gameIndex)
}

func (s *RedisStore) ListLeagues(ctx context.Context) ([]League, error) {
	ids, err := s.client.SMembers(ctx, leagueIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	leagues := make([]League, 0, len(ids))
	for _, id := range ids {
		l, err := s.GetLeague(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	sort.Slice(leagues, func(i, j int) bool { return leagues[i].CreatedAt.After(leagues[j].CreatedAt) })
	return leagues, nil
}

func (s *RedisStore) GetLeague(ctx context.Context, id string) (League, error) {
	data, err := s.client.Get(ctx, leagueKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return League{}, ErrNotFound
	}
	if err != nil {
		return League{}, fmt.Errorf("get league: %w", err)
	}
	var l League
	if err := json.Unmarshal(data, &l); err != nil {
		return League{}, fmt.Errorf("decode league: %w", err)
	}
	return l, nil
}

func (s *RedisStore) CreateLeague(ctx context.Context, l League) (League, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(l)
	if err != nil {
		return League{}, fmt.Errorf("encode league: %w", err)
	}
	ok, err := s.client.SetNX(ctx, leagueKey(l.ID), data, 0).Result()
	if err != nil {
		return League{}, fmt.Errorf("create league: %w", err)
	}
	if !ok {
		return League{}, fmt.Errorf("league %s already exists", l.ID)
	}
	if err := s.client.SAdd(ctx, leagueIndexKey, l.ID).Err(); err != nil {
		return League{}, fmt.Errorf("index league: %w", err)
	}
	return l, nil
}

func (s *RedisStore) UpdateLeague(ctx context.Context, l League) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode league: %w", err)
	}
	// XX only overwrites an existing key
	ok, err := s.client.SetXX(ctx, leagueKey(l.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("update league: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) leagueExists(ctx context.Context, id string) error {
	n, err := s.client.Exists(ctx, leagueKey(id)).Result()
	if err != nil {
		return fmt.Errorf("lookup league: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) GetDay(ctx context.Context, leagueID string, day int) (Day, error) {
	if err := s.leagueExists(ctx, leagueID); err != nil {
		return Day{}, err
	}
	return s.loadDay(ctx, leagueID, day)
}

func (s *RedisStore) ListDays(ctx context.Context, leagueID string) (map[int]Day, error) {
	if err := s.leagueExists(ctx, leagueID); err != nil {
		return nil, err
	}
	members, err := s.client.SMembers(ctx, daysKey(leagueID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	days := make(map[int]Day, len(members))
	for _, m := range members {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		d, err := s.loadDay(ctx, leagueID, n)
		if err != nil {
			return nil, err
		}
		days[n] = d
	}
	return days, nil
}

func (s *RedisStore) loadDay(ctx context.Context, leagueID string, day int) (Day, error) {
	var d Day

	data, err := s.client.Get(ctx, dayKey(leagueID, day, "matchups")).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return Day{}, fmt.Errorf("get matchups: %w", err)
	default:
		if err := json.Unmarshal(data, &d.Matchups); err != nil {
			return Day{}, fmt.Errorf("decode matchups: %w", err)
		}
	}

	results, err := s.client.HGetAll(ctx, dayKey(leagueID, day, "results")).Result()
	if err != nil {
		return Day{}, fmt.Errorf("get results: %w", err)
	}
	if len(results) > 0 {
		d.Results = league.DailyResults{}
		for f, v := range results {
			idx, court, ok := strings.Cut(f, ":")
			gameIndex, err := strconv.Atoi(idx)
			if !ok || err != nil {
				continue
			}
			var r league.GameResult
			if err := json.Unmarshal([]byte(v), &r); err != nil {
				return Day{}, fmt.Errorf("decode result: %w", err)
			}
			d.Results[court] = setResultAt(d.Results[court], gameIndex, r)
		}
	}

	attendance, err := s.client.HGetAll(ctx, dayKey(leagueID, day, "attendance")).Result()
	if err != nil {
		return Day{}, fmt.Errorf("get attendance: %w", err)
	}
	if len(attendance) > 0 {
		d.Attendance = league.DailyAttendance{}
		for f, v := range attendance {
			pid, idx, ok := strings.Cut(f, ":")
			playerID, err1 := strconv.Atoi(pid)
			gameIndex, err2 := strconv.Atoi(idx)
			if !ok || err1 != nil || err2 != nil {
				continue
			}
			present, err := strconv.ParseBool(v)
			if err != nil {
				continue
			}
			d.Attendance[playerID] = setAttendanceAt(d.Attendance[playerID], gameIndex, present)
		}
	}
	return d, nil
}

func (s *RedisStore) markDay(ctx context.Context, leagueID string, day int) error {
	return s.client.SAdd(ctx, daysKey(leagueID), strconv.Itoa(day)).Err()
}

func (s *RedisStore) InsertMatchups(ctx context.Context, leagueID string, day int, m league.CourtMatchups) (bool, error) {
	if err := s.leagueExists(ctx, leagueID); err != nil {
		return false, err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return false, fmt.Errorf("encode matchups: %w", err)
	}
	ok, err := s.client.SetNX(ctx, dayKey(leagueID, day, "matchups"), data, 0).Result()
	if err != nil {
		return false, fmt.Errorf("insert matchups: %w", err)
	}
	if err := s.markDay(ctx, leagueID, day); err != nil {
		return false, fmt.Errorf("index day: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) ReplaceMatchups(ctx context.Context, leagueID string, day int, m league.CourtMatchups) error {
	if err := s.leagueExists(ctx, leagueID); err != nil {
		return err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode matchups: %w", err)
	}
	if err := s.client.Set(ctx, dayKey(leagueID, day, "matchups"), data, 0).Err(); err != nil {
		return fmt.Errorf("replace matchups: %w", err)
	}
	return s.markDay(ctx, leagueID, day)
}

func (s *RedisStore) SetResult(ctx context.Context, leagueID string, day int, court string, gameIndex int, result league.GameResult) error {
	if err := s.leagueExists(ctx, leagueID); err != nil {
		return err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := s.client.HSet(ctx, dayKey(leagueID, day, "results"), resultField(court, gameIndex), data).Err(); err != nil {
		return fmt.Errorf("set result: %w", err)
	}
	return s.markDay(ctx, leagueID, day)
}

func (s *RedisStore) SetAttendance(ctx context.Context, leagueID string, day, playerID, gameIndex int, present bool) error {
	if err := s.leagueExists(ctx, leagueID); err != nil {
		return err
	}
	field := attendanceField(playerID, gameIndex)
	if err := s.client.HSet(ctx, dayKey(leagueID, day, "attendance"), field, strconv.FormatBool(present)).Err(); err != nil {
		return fmt.Errorf("set attendance: %w", err)
	}
	return s.markDay(ctx, leagueID, day)
}

// HealthCheck pings Redis to verify the connection
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
