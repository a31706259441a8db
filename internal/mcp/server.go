package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sam-maryland/court-league-server/internal/handlers"
	"github.com/sam-maryland/court-league-server/internal/service"
	"github.com/sirupsen/logrus"
)

type toolHandler func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error)

type registeredTool struct {
	tool   mcp.Tool
	handle toolHandler
}

func leagueTools(svc *service.LeagueService, logger *logrus.Logger) []registeredTool {
	leagueHandler := handlers.NewLeagueHandler(svc, logger)
	scheduleHandler := handlers.NewScheduleHandler(svc, logger)

	return []registeredTool{
		{leagueHandler.ListLeaguesTool(), leagueHandler.HandleListLeagues},
		{leagueHandler.GetLeagueInfoTool(), leagueHandler.HandleGetLeagueInfo},
		{leagueHandler.CreateLeagueTool(), leagueHandler.HandleCreateLeague},
		{leagueHandler.GetCourtNamesTool(), leagueHandler.HandleGetCourtNames},
		{scheduleHandler.GetDayMatchupsTool(), scheduleHandler.HandleGetDayMatchups},
		{scheduleHandler.RecordGameResultTool(), scheduleHandler.HandleRecordGameResult},
		{scheduleHandler.SetAttendanceTool(), scheduleHandler.HandleSetAttendance},
		{scheduleHandler.MovePlayerTool(), scheduleHandler.HandleMovePlayer},
		{scheduleHandler.SwapPlayersTool(), scheduleHandler.HandleSwapPlayers},
		{scheduleHandler.SetDayLockTool(), scheduleHandler.HandleSetDayLock},
		{leagueHandler.GetStandingsTool(), leagueHandler.HandleGetStandings},
		{leagueHandler.GetCourtGroupsTool(), leagueHandler.HandleGetCourtGroups},
		{leagueHandler.GetHeadToHeadTool(), leagueHandler.HandleGetHeadToHead},
	}
}

// NewLeagueMCPServer builds the MCP server exposing every league tool
func NewLeagueMCPServer(svc *service.LeagueService, logger *logrus.Logger) *server.DefaultServer {
	registered := leagueTools(svc, logger)
	byName := make(map[string]toolHandler, len(registered))
	tools := make([]mcp.Tool, 0, len(registered))
	for _, rt := range registered {
		byName[rt.tool.Name] = rt.handle
		tools = append(tools, rt.tool)
	}

	s := server.NewDefaultServer("Court League", "1.0.0")
	if s == nil {
		logger.Error("Failed to create MCP server instance")
		return nil
	}

	logger.Info("MCP server instance created successfully")

	s.HandleListTools(func(ctx context.Context, cursor *string) (*mcp.ListToolsResult, error) {
		logger.WithField("tools_count", len(tools)).Info("Listing available tools")

		return &mcp.ListToolsResult{
			Tools: tools,
		}, nil
	})

	s.HandleCallTool(func(ctx context.Context, name string, arguments map[string]interface{}) (*mcp.CallToolResult, error) {
		logger.WithFields(logrus.Fields{
			"tool": name,
			"args": arguments,
		}).Info("Tool called")

		handle, ok := byName[name]
		if !ok {
			logger.WithField("tool", name).Warn("Unknown tool called")
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Type: "text",
						Text: "Unknown tool: " + name,
					},
				},
				IsError: true,
			}, nil
		}
		if arguments == nil {
			arguments = map[string]interface{}{}
		}
		return handle(ctx, arguments)
	})

	logger.Info("All tools registered successfully")
	return s
}
