package mcp

import (
	"context"
	"testing"

	"github.com/sam-maryland/court-league-server/internal/service"
	"github.com/sam-maryland/court-league-server/internal/store"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLeagueTools(t *testing.T) {
	logger, _ := test.NewNullLogger()
	svc := service.NewLeagueService(store.NewMemoryStore(), logger)

	tools := leagueTools(svc, logger)

	want := []string{
		"list_leagues", "get_league_info", "create_league", "get_court_names",
		"get_day_matchups", "record_game_result", "set_attendance", "move_player",
		"swap_players", "set_day_lock", "get_standings", "get_court_groups", "get_head_to_head",
	}
	if len(tools) != len(want) {
		t.Fatalf("Expected %d tools, got %d", len(want), len(tools))
	}
	for i, name := range want {
		if tools[i].tool.Name != name {
			t.Errorf("Expected tool %d to be '%s', got '%s'", i, name, tools[i].tool.Name)
		}
	}

	result, err := tools[0].handle(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Error("Expected list_leagues to succeed on an empty store")
	}
}

func TestNewLeagueMCPServer(t *testing.T) {
	logger, hook := test.NewNullLogger()
	svc := service.NewLeagueService(store.NewMemoryStore(), logger)

	if s := NewLeagueMCPServer(svc, logger); s == nil {
		t.Fatal("Expected server instance")
	}
	if hook.LastEntry() == nil || hook.LastEntry().Message != "All tools registered successfully" {
		t.Errorf("Expected registration log entry, got %+v", hook.LastEntry())
	}
}
