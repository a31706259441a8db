package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sam-maryland/court-league-server/internal/league"
	_ "modernc.org/sqlite"
)

type dialect string

const (
	dialectSQLite   dialect = "sqlite"
	dialectPostgres dialect = "pgx"
)

// rebind rewrites ? placeholders into $n for postgres
func (d dialect) rebind(query string) string {
	if d != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQLStore keeps leagues in sqlite or postgres through database/sql
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open(string(dialectSQLite), path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)
	return openSQLStore(ctx, db, dialectSQLite)
}

func NewPostgresStore(ctx context.Context, dsn string) (*SQLStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open(string(dialectPostgres), dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return openSQLStore(ctx, db, dialectPostgres)
}

func openSQLStore(ctx context.Context, db *sql.DB, d dialect) (*SQLStore, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}
	if err := applyMigrations(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLStore{db: db, dialect: d}, nil
}

func (s *SQLStore) exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.dialect.rebind(query), args...)
}

func (s *SQLStore) query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
}

func (s *SQLStore) ListLeagues(ctx context.Context) ([]League, error) {
	rows, err := s.query(ctx, `SELECT doc FROM leagues`)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	defer rows.Close()

	leagues := []League{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan league: %w", err)
		}
		var l League
		if err := json.Unmarshal([]byte(doc), &l); err != nil {
			return nil, fmt.Errorf("decode league: %w", err)
		}
		leagues = append(leagues, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(leagues, func(i, j int) bool { return leagues[i].CreatedAt.After(leagues[j].CreatedAt) })
	return leagues, nil
}

func (s *SQLStore) GetLeague(ctx context.Context, id string) (League, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT doc FROM leagues WHERE id = ?`), id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return League{}, ErrNotFound
	}
	if err != nil {
		return League{}, fmt.Errorf("get league: %w", err)
	}
	var l League
	if err := json.Unmarshal([]byte(doc), &l); err != nil {
		return League{}, fmt.Errorf("decode league: %w", err)
	}
	return l, nil
}

func (s *SQLStore) CreateLeague(ctx context.Context, l League) (League, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(l)
	if err != nil {
		return League{}, fmt.Errorf("encode league: %w", err)
	}
	res, err := s.exec(ctx, `INSERT INTO leagues (id, doc) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`, l.ID, string(doc))
	if err != nil {
		return League{}, fmt.Errorf("insert league: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return League{}, fmt.Errorf("league %s already exists", l.ID)
	}
	return l, nil
}

func (s *SQLStore) UpdateLeague(ctx context.Context, l League) error {
	doc, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode league: %w", err)
	}
	res, err := s.exec(ctx, `UPDATE leagues SET doc = ? WHERE id = ?`, string(doc), l.ID)
	if err != nil {
		return fmt.Errorf("update league: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) leagueExists(ctx context.Context, id string) error {
	var found string
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT id FROM leagues WHERE id = ?`), id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup league: %w", err)
	}
	return nil
}

func (s *SQLStore) GetDay(ctx context.Context, leagueID string, day int) (Day, error) {
	days, err := s.loadDays(ctx, leagueID, &day)
	if err != nil {
		return Day{}, err
	}
	return days[day], nil
}

func (s *SQLStore) ListDays(ctx context.Context, leagueID string) (map[int]Day, error) {
	return s.loadDays(ctx, leagueID, nil)
}

// loadDays assembles day records from the three day tables, optionally for a single day
func (s *SQLStore) loadDays(ctx context.Context, leagueID string, only *int) (map[int]Day, error) {
	if err := s.leagueExists(ctx, leagueID); err != nil {
		return nil, err
	}
	filter := ""
	args := []interface{}{leagueID}
	if only != nil {
		filter = " AND day = ?"
		args = append(args, *only)
	}

	days := map[int]Day{}
	update := func(n int, fn func(d *Day)) {
		d := days[n]
		fn(&d)
		days[n] = d
	}

	rows, err := s.query(ctx, `SELECT day, doc FROM day_matchups WHERE league_id = ?`+filter, args...)
	if err != nil {
		return nil, fmt.Errorf("load matchups: %w", err)
	}
	for rows.Next() {
		var n int
		var doc string
		if err := rows.Scan(&n, &doc); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan matchups: %w", err)
		}
		var m league.CourtMatchups
		if err := json.Unmarshal([]byte(doc), &m); err != nil {
			rows.Close()
			return nil, fmt.Errorf("decode matchups: %w", err)
		}
		update(n, func(d *Day) { d.Matchups = m })
	}
	rows.Close()

	rows, err = s.query(ctx, `SELECT day, court, game_index, doc FROM game_results WHERE league_id = ?`+filter+` ORDER BY day, court, game_index`, args...)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	for rows.Next() {
		var n, gameIndex int
		var court, doc string
		if err := rows.Scan(&n, &court, &gameIndex, &doc); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan result: %w", err)
		}
		var r league.GameResult
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			rows.Close()
			return nil, fmt.Errorf("decode result: %w", err)
		}
		update(n, func(d *Day) {
			if d.Results == nil {
				d.Results = league.DailyResults{}
			}
			d.Results[court] = setResultAt(d.Results[court], gameIndex, r)
		})
	}
	rows.Close()

	rows, err = s.query(ctx, `SELECT day, player_id, game_index, present FROM attendance WHERE league_id = ?`+filter+` ORDER BY day, player_id, game_index`, args...)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var n, playerID, gameIndex int
		var present bool
		if err := rows.Scan(&n, &playerID, &gameIndex, &present); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		update(n, func(d *Day) {
			if d.Attendance == nil {
				d.Attendance = league.DailyAttendance{}
			}
			d.Attendance[playerID] = setAttendanceAt(d.Attendance[playerID], gameIndex, present)
		})
	}
	return days, rows.Err()
}

func (s *SQLStore) InsertMatchups(ctx context.Context, leagueID string, day int, m league.CourtMatchups) (bool, error) {
	if err := s.leagueExists(ctx, leagueID); err != nil {
		return false, err
	}
	doc, err := json.Marshal(m)
	if err != nil {
		return false, fmt.Errorf("encode matchups: %w", err)
	}
	res, err := s.exec(ctx, `INSERT INTO day_matchups (league_id, day, doc) VALUES (?, ?, ?) ON CONFLICT (league_id, day) DO NOTHING`, leagueID, day, string(doc))
	if err != nil {
		return false, fmt.Errorf("insert matchups: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert matchups: %w", err)
	}
	return n == 1, nil
}

func (s *SQLStore) ReplaceMatchups(ctx context.Context, leagueID string, day int, m league.CourtMatchups) error {
	if err := s.leagueExists(ctx, leagueID); err != nil {
		return err
	}
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode matchups: %w", err)
	}
	_, err = s.exec(ctx, `INSERT INTO day_matchups (league_id, day, doc) VALUES (?, ?, ?) ON CONFLICT (league_id, day) DO UPDATE SET doc = excluded.doc`, leagueID, day, string(doc))
	if err != nil {
		return fmt.Errorf("replace matchups: %w", err)
	}
	return nil
}

func (s *SQLStore) SetResult(ctx context.Context, leagueID string, day int, court string, gameIndex int, result league.GameResult) error {
	if err := s.leagueExists(ctx, leagueID); err != nil {
		return err
	}
	doc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = s.exec(ctx, `INSERT INTO game_results (league_id, day, court, game_index, doc) VALUES (?, ?, ?, ?, ?)
ON CONFLICT (league_id, day, court, game_index) DO UPDATE SET doc = excluded.doc`, leagueID, day, court, gameIndex, string(doc))
	if err != nil {
		return fmt.Errorf("set result: %w", err)
	}
	return nil
}

func (s *SQLStore) SetAttendance(ctx context.Context, leagueID string, day, playerID, gameIndex int, present bool) error {
	if err := s.leagueExists(ctx, leagueID); err != nil {
		return err
	}
	_, err := s.exec(ctx, `INSERT INTO attendance (league_id, day, player_id, game_index, present) VALUES (?, ?, ?, ?, ?)
ON CONFLICT (league_id, day, player_id, game_index) DO UPDATE SET present = excluded.present`, leagueID, day, playerID, gameIndex, present)
	if err != nil {
		return fmt.Errorf("set attendance: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
