package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/court-league-server/internal/league"
	"github.com/sam-maryland/court-league-server/internal/service"
	"github.com/sam-maryland/court-league-server/internal/store"
	"github.com/sirupsen/logrus"
)

// LeagueInfo is the league record plus derived court names
type LeagueInfo struct {
	store.League
	Courts []string `json:"courts"`
}

// LeagueHandler handles league-level MCP tools
type LeagueHandler struct {
	service *service.LeagueService
	logger  *logrus.Logger
}

// NewLeagueHandler creates a new league handler
func NewLeagueHandler(svc *service.LeagueService, logger *logrus.Logger) *LeagueHandler {
	return &LeagueHandler{
		service: svc,
		logger:  logger,
	}
}

// ListLeaguesTool returns the MCP tool definition for list_leagues
func (h *LeagueHandler) ListLeaguesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_leagues",
		Description: "List every league with its title, roster size and schedule settings",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// HandleListLeagues handles the list_leagues tool call
func (h *LeagueHandler) HandleListLeagues(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.Info("Handling list_leagues")

	leagues, err := h.service.ListLeagues(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list leagues")
		return errorResult("Failed to list leagues: %s", err.Error()), nil
	}

	return jsonResult(APIResponse{
		Success:  true,
		Data:     leagues,
		Summary:  fmt.Sprintf("Found %d leagues", len(leagues)),
		Metadata: newMetadata("", 0),
	}), nil
}

// GetLeagueInfoTool returns the MCP tool definition for get_league_info
func (h *LeagueHandler) GetLeagueInfoTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_league_info",
		Description: "Get league settings, roster, locked days, schedule labels and announcements",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id": leagueIDProperty,
			},
		},
	}
}

// HandleGetLeagueInfo handles the get_league_info tool call
func (h *LeagueHandler) HandleGetLeagueInfo(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_league_info")

	leagueID, err := requireString(args, "league_id")
	if err != nil {
		return nil, err
	}

	l, err := h.service.GetLeague(ctx, leagueID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get league info")
		return errorResult("Failed to get league information: %s", err.Error()), nil
	}

	cfg := l.Config
	return jsonResult(APIResponse{
		Success: true,
		Data:    LeagueInfo{League: l, Courts: league.AllCourtNames(cfg)},
		Summary: fmt.Sprintf("League '%s' (%s) - %s, %d players, %d courts, %d days of %d games",
			l.Title, l.ID, cfg.LeagueType, len(l.Players), cfg.NumCourts, cfg.TotalDays, cfg.GamesPerDay),
		Metadata: newMetadata(leagueID, 0),
	}), nil
}

// CreateLeagueTool returns the MCP tool definition for create_league
func (h *LeagueHandler) CreateLeagueTool() mcp.Tool {
	return mcp.Tool{
		Name:        "create_league",
		Description: "Create a league. Provide either players (objects with id, name and optional grade) or player_names, which are numbered from 1.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id":        stringProperty("Optional ID for the league; generated when omitted", false),
				"title":            stringProperty("League title", true),
				"league_type":      stringProperty("'standard' (discovery on day 1, ranked tiers after) or 'custom' (discovery every day)", false),
				"num_courts":       integerProperty("Number of courts", true),
				"players_per_team": integerProperty("Players on each side of a game", true),
				"games_per_day":    integerProperty("Games played on each court per day", true),
				"total_days":       integerProperty("Number of league days", true),
				"seed_through_day": integerProperty("Last day covered by seeded_stats; recorded results start the day after", false),
				"read_only":        booleanProperty("Reject all edits to this league", false),
				"announcements":    stringProperty("Announcement text shown with the league", false),
				"players": map[string]interface{}{
					"type":        "array",
					"description": "Roster entries: {\"id\": 1, \"name\": \"Ana\", \"grade\": 7}",
					"items":       map[string]interface{}{"type": "object"},
					"required":    false,
				},
				"player_names": map[string]interface{}{
					"type":        "array",
					"description": "Roster names; IDs are assigned in order starting at 1",
					"items":       map[string]interface{}{"type": "string"},
					"required":    false,
				},
				"court_names": map[string]interface{}{
					"type":        "array",
					"description": "Court names overriding the defaults; must list exactly num_courts names",
					"items":       map[string]interface{}{"type": "string"},
					"required":    false,
				},
				"day_schedules": map[string]interface{}{
					"type":        "object",
					"description": "Schedule label per day, keyed by day number",
					"required":    false,
				},
				"seeded_stats": map[string]interface{}{
					"type":        "object",
					"description": "Starting stats keyed by player ID",
					"required":    false,
				},
			},
		},
	}
}

// HandleCreateLeague handles the create_league tool call
func (h *LeagueHandler) HandleCreateLeague(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling create_league")

	l, err := leagueFromArgs(args)
	if err != nil {
		return nil, err
	}

	created, err := h.service.CreateLeague(ctx, l)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create league")
		return errorResult("Failed to create league: %s", err.Error()), nil
	}

	return jsonResult(APIResponse{
		Success:  true,
		Data:     created,
		Summary:  fmt.Sprintf("Created league '%s' (%s) with %d players", created.Title, created.ID, len(created.Players)),
		Metadata: newMetadata(created.ID, 0),
	}), nil
}

func leagueFromArgs(args map[string]interface{}) (store.League, error) {
	title, err := requireString(args, "title")
	if err != nil {
		return store.League{}, err
	}
	l := store.League{
		ID:            strings.TrimSpace(stringArg(args, "league_id")),
		Title:         title,
		Announcements: stringArg(args, "announcements"),
		ReadOnly:      optionalBool(args, "read_only", false),
	}

	cfg := league.Config{
		LeagueType:     league.LeagueType(stringArg(args, "league_type")),
		SeedThroughDay: optionalInt(args, "seed_through_day", 0),
	}
	counts := []struct {
		key string
		dst *int
	}{
		{"num_courts", &cfg.NumCourts},
		{"players_per_team", &cfg.PlayersPerTeam},
		{"games_per_day", &cfg.GamesPerDay},
		{"total_days", &cfg.TotalDays},
	}
	for _, c := range counts {
		v, err := requireInt(args, c.key)
		if err != nil {
			return store.League{}, err
		}
		*c.dst = v
	}
	if _, err := decodeArg(args, "court_names", &cfg.CourtNames); err != nil {
		return store.League{}, err
	}
	if _, err := decodeArg(args, "seeded_stats", &cfg.SeededStats); err != nil {
		return store.League{}, err
	}
	l.Config = cfg

	if _, err := decodeArg(args, "day_schedules", &l.DaySchedules); err != nil {
		return store.League{}, err
	}

	hasPlayers, err := decodeArg(args, "players", &l.Players)
	if err != nil {
		return store.League{}, err
	}
	if !hasPlayers {
		var names []string
		if _, err := decodeArg(args, "player_names", &names); err != nil {
			return store.League{}, err
		}
		for i, name := range names {
			l.Players = append(l.Players, league.Player{ID: i + 1, Name: name})
		}
	}
	return l, nil
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

// GetCourtNamesTool returns the MCP tool definition for get_court_names
func (h *LeagueHandler) GetCourtNamesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_court_names",
		Description: "Get the league's court names from top court to bottom court",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id": leagueIDProperty,
			},
		},
	}
}

// HandleGetCourtNames handles the get_court_names tool call
func (h *LeagueHandler) HandleGetCourtNames(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_court_names")

	leagueID, err := requireString(args, "league_id")
	if err != nil {
		return nil, err
	}

	courts, err := h.service.CourtNames(ctx, leagueID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get court names")
		return errorResult("Failed to get court names: %s", err.Error()), nil
	}

	return jsonResult(APIResponse{
		Success:  true,
		Data:     courts,
		Summary:  fmt.Sprintf("League has %d courts", len(courts)),
		Metadata: newMetadata(leagueID, 0),
	}), nil
}
