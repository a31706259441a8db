package handlers

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/court-league-server/internal/league"
	"github.com/sam-maryland/court-league-server/internal/service"
)

// StandingEntry is one ranked row of the standings
type StandingEntry struct {
	Rank int `json:"rank"`
	league.PlayerStats
	PointsRatio string `json:"pointsRatio"`
}

// CourtGroupEntry is a court's players ranked against each other
type CourtGroupEntry struct {
	Court   string          `json:"court"`
	Players []StandingEntry `json:"players"`
}

// formatRatio renders the ratio as text since JSON has no infinity
func formatRatio(p league.PlayerStats) string {
	r := league.PointsRatio(p)
	if math.IsInf(r, 1) {
		return "inf"
	}
	return strconv.FormatFloat(r, 'f', 3, 64)
}

// RankEntries numbers ranked stats starting at 1
func RankEntries(ranked []league.PlayerStats) []StandingEntry {
	entries := make([]StandingEntry, 0, len(ranked))
	for i, p := range ranked {
		entries = append(entries, StandingEntry{
			Rank:        i + 1,
			PlayerStats: p,
			PointsRatio: formatRatio(p),
		})
	}
	return entries
}

// CourtGroupEntries ranks each court group for display
func CourtGroupEntries(groups []service.CourtGroup) []CourtGroupEntry {
	out := make([]CourtGroupEntry, 0, len(groups))
	for _, g := range groups {
		out = append(out, CourtGroupEntry{Court: g.Court, Players: RankEntries(g.Players)})
	}
	return out
}

// GetStandingsTool returns the MCP tool definition for get_standings
func (h *LeagueHandler) GetStandingsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_standings",
		Description: "Get ranked standings: league points, then points-for/against ratio, points for, points against, head-to-head wins and player ID",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id": leagueIDProperty,
				"day":       integerProperty("Rank through this day (default: every day)", false),
			},
		},
	}
}

// HandleGetStandings handles the get_standings tool call
func (h *LeagueHandler) HandleGetStandings(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_standings")

	leagueID, err := requireString(args, "league_id")
	if err != nil {
		return nil, err
	}
	day := optionalInt(args, "day", 0)

	ranked, err := h.service.Standings(ctx, leagueID, day)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get standings")
		return errorResult("Failed to get standings: %s", err.Error()), nil
	}

	summary := "No players in this league"
	if len(ranked) > 0 {
		leader := ranked[0]
		summary = fmt.Sprintf("%d players ranked; leader %s with %d league points (%d-%d-%d)",
			len(ranked), leader.Name, leader.LeaguePoints, leader.Wins, leader.Losses, leader.Ties)
	}

	return jsonResult(APIResponse{
		Success:  true,
		Data:     RankEntries(ranked),
		Summary:  summary,
		Metadata: newMetadata(leagueID, day),
	}), nil
}

// GetCourtGroupsTool returns the MCP tool definition for get_court_groups
func (h *LeagueHandler) GetCourtGroupsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_court_groups",
		Description: "Get each court's players for a day, ranked against each other",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id": leagueIDProperty,
				"day":       integerProperty("League day", true),
			},
		},
	}
}

// HandleGetCourtGroups handles the get_court_groups tool call
func (h *LeagueHandler) HandleGetCourtGroups(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_court_groups")

	leagueID, err := requireString(args, "league_id")
	if err != nil {
		return nil, err
	}
	day, err := requireInt(args, "day")
	if err != nil {
		return nil, err
	}

	groups, err := h.service.CourtGroups(ctx, leagueID, day)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get court groups")
		return errorResult("Failed to get court groups: %s", err.Error()), nil
	}

	return jsonResult(APIResponse{
		Success:  true,
		Data:     CourtGroupEntries(groups),
		Summary:  fmt.Sprintf("Found %d court groups for day %d", len(groups), day),
		Metadata: newMetadata(leagueID, day),
	}), nil
}

// GetHeadToHeadTool returns the MCP tool definition for get_head_to_head
func (h *LeagueHandler) GetHeadToHeadTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_head_to_head",
		Description: "Count the games two players won against each other when on opposite teams",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id": leagueIDProperty,
				"player_a":  integerProperty("First player ID", true),
				"player_b":  integerProperty("Second player ID", true),
				"day":       integerProperty("Only count games through this day (default: every day)", false),
			},
		},
	}
}

// HandleGetHeadToHead handles the get_head_to_head tool call
func (h *LeagueHandler) HandleGetHeadToHead(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_head_to_head")

	leagueID, err := requireString(args, "league_id")
	if err != nil {
		return nil, err
	}
	a, err := requireInt(args, "player_a")
	if err != nil {
		return nil, err
	}
	b, err := requireInt(args, "player_b")
	if err != nil {
		return nil, err
	}
	day := optionalInt(args, "day", 0)

	record, err := h.service.HeadToHead(ctx, leagueID, a, b, day)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get head-to-head record")
		return errorResult("Failed to get head-to-head record: %s", err.Error()), nil
	}

	return jsonResult(APIResponse{
		Success: true,
		Data:    record,
		Summary: fmt.Sprintf("Player %d vs player %d: %d-%d with %d ties over %d games",
			a, b, record.WinsA, record.WinsB, record.Ties, record.Games),
		Metadata: newMetadata(leagueID, day),
	}), nil
}
