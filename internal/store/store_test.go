package store

import (
	"context"
	"errors"
	"testing"

	"github.com/sam-maryland/court-league-server/internal/league"
)

func sampleLeague(id string) League {
	return League{
		ID:    id,
		Title: "Tuesday Night",
		Players: []league.Player{
			{ID: 1, Name: "Ana"}, {ID: 2, Name: "Ben"},
			{ID: 3, Name: "Cy"}, {ID: 4, Name: "Dee"},
		},
		Config: league.Config{
			LeagueType:     league.LeagueTypeStandard,
			NumCourts:      1,
			PlayersPerTeam: 2,
			GamesPerDay:    3,
			TotalDays:      5,
		},
	}
}

func sampleMatchups() league.CourtMatchups {
	return league.CourtMatchups{
		"Royalty Court": {
			{TeamA: league.Team{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Ben"}}, TeamB: league.Team{{ID: 3, Name: "Cy"}, {ID: 4, Name: "Dee"}}},
		},
	}
}

// testStoreContract exercises behavior every Store backend must share
func testStoreContract(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("unknown league", func(t *testing.T) {
		if _, err := s.GetLeague(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if _, err := s.GetDay(ctx, "missing", 1); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound for day lookup, got %v", err)
		}
		if err := s.UpdateLeague(ctx, sampleLeague("missing")); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound on update, got %v", err)
		}
	})

	t.Run("create and get", func(t *testing.T) {
		created, err := s.CreateLeague(ctx, sampleLeague(""))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Fatal("Expected an ID to be assigned")
		}
		if created.CreatedAt.IsZero() {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := s.GetLeague(ctx, created.ID)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got.Title != "Tuesday Night" || len(got.Players) != 4 || got.Config.GamesPerDay != 3 {
			t.Errorf("Unexpected league: %+v", got)
		}

		if _, err := s.CreateLeague(ctx, sampleLeague(created.ID)); err == nil {
			t.Error("Expected duplicate ID to fail")
		}

		leagues, err := s.ListLeagues(ctx)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(leagues) == 0 {
			t.Error("Expected at least one league")
		}
	})

	t.Run("update", func(t *testing.T) {
		l, err := s.CreateLeague(ctx, sampleLeague("update-me"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		l.LockedDays = map[int]bool{2: true}
		l.Announcements = "Bring water"
		if err := s.UpdateLeague(ctx, l); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		got, err := s.GetLeague(ctx, "update-me")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !got.IsDayLocked(2) || got.Announcements != "Bring water" {
			t.Errorf("Expected update to persist, got %+v", got)
		}
	})

	t.Run("matchups insert once", func(t *testing.T) {
		if _, err := s.CreateLeague(ctx, sampleLeague("matchups")); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		inserted, err := s.InsertMatchups(ctx, "matchups", 1, sampleMatchups())
		if err != nil || !inserted {
			t.Fatalf("Expected first insert to win, got %v, %v", inserted, err)
		}

		other := league.CourtMatchups{"Royalty Court": {{TeamA: league.Team{{ID: 4}}, TeamB: league.Team{{ID: 1}}}}}
		inserted, err = s.InsertMatchups(ctx, "matchups", 1, other)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if inserted {
			t.Error("Expected second insert to be ignored")
		}

		d, err := s.GetDay(ctx, "matchups", 1)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if d.Matchups["Royalty Court"][0].TeamA[0].ID != 1 {
			t.Errorf("Expected original matchups to survive, got %+v", d.Matchups)
		}

		if err := s.ReplaceMatchups(ctx, "matchups", 1, other); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		d, _ = s.GetDay(ctx, "matchups", 1)
		if d.Matchups["Royalty Court"][0].TeamA[0].ID != 4 {
			t.Errorf("Expected replaced matchups, got %+v", d.Matchups)
		}
	})

	t.Run("results and attendance", func(t *testing.T) {
		if _, err := s.CreateLeague(ctx, sampleLeague("results")); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if err := s.SetResult(ctx, "results", 2, "Royalty Court", 2, league.Score(21, 19)); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if err := s.SetResult(ctx, "results", 2, "Royalty Court", 0, league.Score(10, 21)); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if err := s.SetAttendance(ctx, "results", 2, 3, 1, false); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		d, err := s.GetDay(ctx, "results", 2)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		games := d.Results["Royalty Court"]
		if len(games) != 3 {
			t.Fatalf("Expected 3 result slots, got %d", len(games))
		}
		if !games[0].Played() || *games[0].TeamBScore != 21 {
			t.Errorf("Unexpected game 0 result: %+v", games[0])
		}
		if !games[1].Unplayed {
			t.Errorf("Expected gap to be unplayed, got %+v", games[1])
		}
		if *games[2].TeamAScore != 21 {
			t.Errorf("Unexpected game 2 result: %+v", games[2])
		}
		if d.Attendance.Present(3, 1) || !d.Attendance.Present(3, 0) {
			t.Errorf("Unexpected attendance: %+v", d.Attendance)
		}

		days, err := s.ListDays(ctx, "results")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, ok := days[2]; !ok || len(days) != 1 {
			t.Errorf("Expected only day 2 to be listed, got %v", days)
		}

		h := History(days)
		if len(h.Results[2]["Royalty Court"]) != 3 || h.Attendance[2] == nil {
			t.Errorf("Unexpected history: %+v", h)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if _, err := s.CreateLeague(ctx, sampleLeague("copy")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	l, _ := s.GetLeague(ctx, "copy")
	l.Players[0].Name = "Changed"

	again, _ := s.GetLeague(ctx, "copy")
	if again.Players[0].Name != "Ana" {
		t.Errorf("Expected stored league to be unaffected, got %q", again.Players[0].Name)
	}
}

func TestSetResultAt(t *testing.T) {
	got := setResultAt(nil, 2, league.Score(1, 0))
	if len(got) != 3 || !got[0].Unplayed || !got[1].Unplayed || !got[2].Played() {
		t.Errorf("Unexpected padding: %+v", got)
	}
}

func TestSetAttendanceAt(t *testing.T) {
	got := setAttendanceAt([]bool{false}, 2, false)
	want := []bool{false, true, false}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}
