package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// APIResponse represents the standard response format for our tools
type APIResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Summary  string      `json:"summary"`
	Error    string      `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata contains response metadata
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	LeagueID  string    `json:"league_id,omitempty"`
	Day       int       `json:"day,omitempty"`
}

const responseSource = "court_league"

func newMetadata(leagueID string, day int) Metadata {
	return Metadata{
		Timestamp: time.Now(),
		Source:    responseSource,
		LeagueID:  leagueID,
		Day:       day,
	}
}

// formatJSONResponse converts a response struct to a formatted JSON string
func formatJSONResponse(response interface{}) (string, error) {
	jsonBytes, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}

	return string(jsonBytes), nil
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
		IsError: isError,
	}
}

// errorResult reports a failed operation back to the MCP client
func errorResult(format string, args ...interface{}) *mcp.CallToolResult {
	return textResult(fmt.Sprintf(format, args...), true)
}

// jsonResult renders a successful response as indented JSON text
func jsonResult(response APIResponse) *mcp.CallToolResult {
	jsonResponse, err := formatJSONResponse(response)
	if err != nil {
		return errorResult("Error formatting response: %s", err.Error())
	}
	return textResult(jsonResponse, false)
}

func requireString(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required and must be a string", key)
	}
	return v, nil
}

// requireInt reads a JSON number argument; MCP clients send every number as float64
func requireInt(args map[string]interface{}, key string) (int, error) {
	v, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required and must be a number", key)
	}
	return int(v), nil
}

func optionalInt(args map[string]interface{}, key string, def int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return def
}

func optionalBool(args map[string]interface{}, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

// decodeArg re-encodes a structured argument into a typed value
func decodeArg(args map[string]interface{}, key string, dst interface{}) (bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return false, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("%s has an invalid shape: %w", key, err)
	}
	return true, nil
}

func stringProperty(description string, required bool) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"required":    required,
	}
}

func integerProperty(description string, required bool) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"required":    required,
	}
}

func booleanProperty(description string, required bool) map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": description,
		"required":    required,
	}
}

var leagueIDProperty = stringProperty("The league ID", true)
