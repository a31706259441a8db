package handlers

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/court-league-server/internal/league"
	"github.com/sam-maryland/court-league-server/internal/service"
	"github.com/sirupsen/logrus"
)

// CourtSchedule lists one court's games for a day in display order
type CourtSchedule struct {
	Court string               `json:"court"`
	Games []league.GameMatchup `json:"games"`
}

// ScheduleHandler handles day-level MCP tools: matchups, scores, attendance and edits
type ScheduleHandler struct {
	service *service.LeagueService
	logger  *logrus.Logger
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(svc *service.LeagueService, logger *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: svc,
		logger:  logger,
	}
}

func leagueAndDay(args map[string]interface{}) (string, int, error) {
	leagueID, err := requireString(args, "league_id")
	if err != nil {
		return "", 0, err
	}
	day, err := requireInt(args, "day")
	if err != nil {
		return "", 0, err
	}
	return leagueID, day, nil
}

// OrderedCourts lists matchups in court order; courts the generator left out are skipped
func OrderedCourts(courts []string, m league.CourtMatchups) []CourtSchedule {
	out := make([]CourtSchedule, 0, len(m))
	for _, name := range courts {
		games, ok := m[name]
		if !ok {
			continue
		}
		out = append(out, CourtSchedule{Court: name, Games: games})
	}
	return out
}

// GetDayMatchupsTool returns the MCP tool definition for get_day_matchups
func (h *ScheduleHandler) GetDayMatchupsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_day_matchups",
		Description: "Get every court's games for a day. Matchups are generated the first time a day is requested and stay fixed afterwards.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id": leagueIDProperty,
				"day":       integerProperty("League day, starting at 1", true),
			},
		},
	}
}

// HandleGetDayMatchups handles the get_day_matchups tool call
func (h *ScheduleHandler) HandleGetDayMatchups(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_day_matchups")

	leagueID, day, err := leagueAndDay(args)
	if err != nil {
		return nil, err
	}

	matchups, err := h.service.DayMatchups(ctx, leagueID, day)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get day matchups")
		return errorResult("Failed to get matchups: %s", err.Error()), nil
	}
	courts, err := h.service.CourtNames(ctx, leagueID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get court names")
		return errorResult("Failed to get matchups: %s", err.Error()), nil
	}

	return jsonResult(APIResponse{
		Success:  true,
		Data:     OrderedCourts(courts, matchups),
		Summary:  fmt.Sprintf("Found matchups on %d courts for day %d", len(matchups), day),
		Metadata: newMetadata(leagueID, day),
	}), nil
}

// RecordGameResultTool returns the MCP tool definition for record_game_result
func (h *ScheduleHandler) RecordGameResultTool() mcp.Tool {
	return mcp.Tool{
		Name:        "record_game_result",
		Description: "Record the score of one game. Set unplayed to true to clear a score.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id":    leagueIDProperty,
				"day":          integerProperty("League day", true),
				"court":        stringProperty("Court name", true),
				"game_index":   integerProperty("Game number on the court, starting at 0", true),
				"team_a_score": integerProperty("Team A score", false),
				"team_b_score": integerProperty("Team B score", false),
				"unplayed":     booleanProperty("Mark the game as unplayed", false),
			},
		},
	}
}

// HandleRecordGameResult handles the record_game_result tool call
func (h *ScheduleHandler) HandleRecordGameResult(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling record_game_result")

	leagueID, day, err := leagueAndDay(args)
	if err != nil {
		return nil, err
	}
	court, err := requireString(args, "court")
	if err != nil {
		return nil, err
	}
	gameIndex, err := requireInt(args, "game_index")
	if err != nil {
		return nil, err
	}

	result := league.Unplayed()
	if !optionalBool(args, "unplayed", false) {
		result = league.GameResult{}
		if v, ok := args["team_a_score"].(float64); ok {
			a := int(v)
			result.TeamAScore = &a
		}
		if v, ok := args["team_b_score"].(float64); ok {
			b := int(v)
			result.TeamBScore = &b
		}
		if result.TeamAScore == nil && result.TeamBScore == nil {
			return nil, fmt.Errorf("team_a_score and team_b_score are required unless unplayed is true")
		}
	}

	if err := h.service.RecordResult(ctx, leagueID, day, court, gameIndex, result); err != nil {
		h.logger.WithError(err).Error("Failed to record game result")
		return errorResult("Failed to record game result: %s", err.Error()), nil
	}

	summary := fmt.Sprintf("Marked %s game %d on day %d as unplayed", court, gameIndex, day)
	if result.Played() {
		summary = fmt.Sprintf("Recorded %d-%d for %s game %d on day %d", *result.TeamAScore, *result.TeamBScore, court, gameIndex, day)
	} else if !result.Unplayed {
		summary = fmt.Sprintf("Saved a partial score for %s game %d on day %d", court, gameIndex, day)
	}
	return jsonResult(APIResponse{
		Success:  true,
		Data:     result,
		Summary:  summary,
		Metadata: newMetadata(leagueID, day),
	}), nil
}

// SetAttendanceTool returns the MCP tool definition for set_attendance
func (h *ScheduleHandler) SetAttendanceTool() mcp.Tool {
	return mcp.Tool{
		Name:        "set_attendance",
		Description: "Mark a player present or absent. Absent players are not credited for that game. Omit game_index to apply to the whole day.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id":  leagueIDProperty,
				"day":        integerProperty("League day", true),
				"player_id":  integerProperty("Player ID", true),
				"present":    booleanProperty("Whether the player is present", true),
				"game_index": integerProperty("Game number, starting at 0 (default: every game of the day)", false),
			},
		},
	}
}

// HandleSetAttendance handles the set_attendance tool call
func (h *ScheduleHandler) HandleSetAttendance(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling set_attendance")

	leagueID, day, err := leagueAndDay(args)
	if err != nil {
		return nil, err
	}
	playerID, err := requireInt(args, "player_id")
	if err != nil {
		return nil, err
	}
	present, ok := args["present"].(bool)
	if !ok {
		return nil, fmt.Errorf("present is required and must be a boolean")
	}
	gameIndex := optionalInt(args, "game_index", -1)

	if err := h.service.SetAttendance(ctx, leagueID, day, playerID, gameIndex, present); err != nil {
		h.logger.WithError(err).Error("Failed to set attendance")
		return errorResult("Failed to set attendance: %s", err.Error()), nil
	}

	status := "present"
	if !present {
		status = "absent"
	}
	scope := "all games"
	if gameIndex >= 0 {
		scope = fmt.Sprintf("game %d", gameIndex)
	}
	return jsonResult(APIResponse{
		Success:  true,
		Data:     map[string]interface{}{"player_id": playerID, "present": present, "game_index": gameIndex},
		Summary:  fmt.Sprintf("Player %d marked %s for %s on day %d", playerID, status, scope, day),
		Metadata: newMetadata(leagueID, day),
	}), nil
}

// MovePlayerTool returns the MCP tool definition for move_player
func (h *ScheduleHandler) MovePlayerTool() mcp.Tool {
	return mcp.Tool{
		Name:        "move_player",
		Description: "Move a player to the other team within one game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id":  leagueIDProperty,
				"day":        integerProperty("League day", true),
				"court":      stringProperty("Court name", true),
				"game_index": integerProperty("Game number on the court, starting at 0", true),
				"player_id":  integerProperty("Player to move", true),
			},
		},
	}
}

// HandleMovePlayer handles the move_player tool call
func (h *ScheduleHandler) HandleMovePlayer(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling move_player")

	leagueID, day, err := leagueAndDay(args)
	if err != nil {
		return nil, err
	}
	court, err := requireString(args, "court")
	if err != nil {
		return nil, err
	}
	gameIndex, err := requireInt(args, "game_index")
	if err != nil {
		return nil, err
	}
	playerID, err := requireInt(args, "player_id")
	if err != nil {
		return nil, err
	}

	if err := h.service.MovePlayer(ctx, leagueID, day, court, gameIndex, playerID); err != nil {
		h.logger.WithError(err).Error("Failed to move player")
		return errorResult("Failed to move player: %s", err.Error()), nil
	}

	return jsonResult(APIResponse{
		Success:  true,
		Summary:  fmt.Sprintf("Moved player %d to the other team in %s game %d on day %d", playerID, court, gameIndex, day),
		Metadata: newMetadata(leagueID, day),
	}), nil
}

// SwapPlayersTool returns the MCP tool definition for swap_players
func (h *ScheduleHandler) SwapPlayersTool() mcp.Tool {
	return mcp.Tool{
		Name:        "swap_players",
		Description: "Swap two players who play the same game number, on the same or different courts",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id":  leagueIDProperty,
				"day":        integerProperty("League day", true),
				"game_index": integerProperty("Game number, starting at 0", true),
				"player_a":   integerProperty("First player ID", true),
				"player_b":   integerProperty("Second player ID", true),
			},
		},
	}
}

// HandleSwapPlayers handles the swap_players tool call
func (h *ScheduleHandler) HandleSwapPlayers(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling swap_players")

	leagueID, day, err := leagueAndDay(args)
	if err != nil {
		return nil, err
	}
	gameIndex, err := requireInt(args, "game_index")
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

	if err := h.service.SwapPlayers(ctx, leagueID, day, gameIndex, a, b); err != nil {
		h.logger.WithError(err).Error("Failed to swap players")
		return errorResult("Failed to swap players: %s", err.Error()), nil
	}

	return jsonResult(APIResponse{
		Success:  true,
		Summary:  fmt.Sprintf("Swapped players %d and %d in game %d on day %d", a, b, gameIndex, day),
		Metadata: newMetadata(leagueID, day),
	}), nil
}

// SetDayLockTool returns the MCP tool definition for set_day_lock
func (h *ScheduleHandler) SetDayLockTool() mcp.Tool {
	return mcp.Tool{
		Name:        "set_day_lock",
		Description: "Lock a day to finalize it, or unlock it for edits. Locked days reject scores, attendance and matchup edits.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id": leagueIDProperty,
				"day":       integerProperty("League day", true),
				"locked":    booleanProperty("Lock (true) or unlock (false)", true),
			},
		},
	}
}

// HandleSetDayLock handles the set_day_lock tool call
func (h *ScheduleHandler) HandleSetDayLock(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling set_day_lock")

	leagueID, day, err := leagueAndDay(args)
	if err != nil {
		return nil, err
	}
	locked, ok := args["locked"].(bool)
	if !ok {
		return nil, fmt.Errorf("locked is required and must be a boolean")
	}

	l, err := h.service.SetDayLock(ctx, leagueID, day, locked)
	if err != nil {
		h.logger.WithError(err).Error("Failed to set day lock")
		return errorResult("Failed to set day lock: %s", err.Error()), nil
	}

	action := "Unlocked"
	if locked {
		action = "Locked"
	}
	return jsonResult(APIResponse{
		Success:  true,
		Data:     map[string]interface{}{"locked_days": l.LockedDays},
		Summary:  fmt.Sprintf("%s day %d", action, day),
		Metadata: newMetadata(leagueID, day),
	}), nil
}
