package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/tile-pattern-game/game/engine"
	"github.com/wricardo/tile-pattern-game/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Tile Pattern Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tile Pattern Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A pattern is a list of tile shapes on a triangle grid. Each shape is a list of
colour groups; each colour group is a list of [x, y] triangle coordinates.
Every shape must have the same number of colour groups.

AVAILABLE TOOLS:
- create_session: Create a pattern editing session from a definition
- list_sessions: List all active sessions
- get_session: Get session details
- get_pattern: Get the current shapes and derived properties
- update_pattern: Replace all shapes (rejected updates change nothing)
- describe_tile: Show a tile's triangles, colour slots and rotation angles
- paint_tile: Expand slot colours onto a tile's triangles
- normalize_tile: Collapse per-triangle colours to a tile's slots
- list_tile_kinds: List tile kinds and triangle types
- list_configs: List pattern definitions
- pattern_instructions: Detailed rules and examples`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func tileKindProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        tileKindNames(),
		"description": "Tile kind",
	}
}

func colorsProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"description": description + `. Omit or null for no colours, a string for one colour everywhere, or an array of colour strings.`,
	}
}

func tileKindNames() []string {
	kinds := engine.TileKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new pattern editing session with optional definition selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the pattern definition to start from (optional, see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Pattern
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_pattern",
		Description: "Get the session's shapes, colour group count, triangle count and bounds",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetPattern)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "update_pattern",
		Description: "Replace every shape of the session's pattern. All shapes must have the same number of colour groups.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"shapes": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":        "array",
						"description": "A shape: list of colour groups, each a list of [x, y] coordinates",
					},
					"description": `Shapes, e.g. [[ [[0,0],[0,1]], [[1,0]] ]]`,
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of what this edit is meant to achieve",
				},
			},
			Required: []string{"session_id", "shapes"},
		},
	}, c.handleUpdatePattern)

	// Tiles
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_tile",
		Description: "Describe a tile in the session's triangle topology: triangles, colour slots and rotation angles",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"kind":       tileKindProperty(),
			},
			Required: []string{"session_id", "kind"},
		},
	}, c.handleDescribeTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "paint_tile",
		Description: "Expand per-slot colours onto every triangle of a tile",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"kind":       tileKindProperty(),
				"colors":     colorsProperty("Colours per slot"),
			},
			Required: []string{"session_id", "kind"},
		},
	}, c.handlePaintTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "normalize_tile",
		Description: "Collapse per-triangle colours to the tile's canonical slots",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"kind":       tileKindProperty(),
				"colors":     colorsProperty("Colours per triangle"),
			},
			Required: []string{"session_id", "kind"},
		},
	}, c.handleNormalizeTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_tile_kinds",
		Description: "List the available tile kinds and triangle types",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListTileKinds)

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available pattern definitions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "pattern_instructions",
		Description: "Get the rules of the pattern editor with worked examples",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handlePatternInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func sessionPath(sessionID string, parts ...string) string {
	path := "/api/sessions/" + url.PathEscape(sessionID)
	for _, p := range parts {
		path += "/" + url.PathEscape(p)
	}
	return path
}

// jsonArgument accepts either decoded JSON or a JSON-encoded string
func jsonArgument(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") {
		return v
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return v
	}
	return decoded
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)
	if configID == "" {
		// Also accept the older parameter name
		configID, _ = args["config_name"].(string)
	}

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Created session.\n" + formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		fmt.Fprintf(&result, "- %s (Config: %s, Tile: %s, Groups: %d, Created: %s)\n",
			s.ID, s.ConfigName, s.TileKind, s.Pattern.NumColorGroups, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGetPattern(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var snapshot engine.PatternSnapshot
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "pattern"), nil, &snapshot); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPattern(&snapshot)), nil
}

func (c *Client) handleUpdatePattern(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	// intent is for the caller's own reasoning and is not sent
	body := map[string]interface{}{
		"shapes": jsonArgument(args["shapes"]),
	}

	var result service.UpdateResult
	if err := c.apiCall(ctx, "PUT", sessionPath(sessionID, "pattern"), body, &result); err != nil {
		return mcp.NewToolResultError("✗ Update rejected: " + err.Error() + "\nThe pattern was not changed."), nil
	}

	return mcp.NewToolResultText(formatUpdateResult(&result)), nil
}

func (c *Client) handleDescribeTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	kind, _ := args["kind"].(string)

	var tile tileInfoResponse
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "tiles", kind), nil, &tile); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTileInfo(&tile)), nil
}

func (c *Client) handlePaintTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.mapColors(ctx, request, "paint")
}

func (c *Client) handleNormalizeTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.mapColors(ctx, request, "normalize")
}

func (c *Client) mapColors(ctx context.Context, request mcp.CallToolRequest, action string) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	kind, _ := args["kind"].(string)

	body := map[string]interface{}{
		"colors": jsonArgument(args["colors"]),
	}

	var result service.ColorsResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "tiles", kind, action), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatColorsResult(&result)), nil
}

func (c *Client) handleListTileKinds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Kinds         []string `json:"kinds"`
		TriangleTypes []string `json:"triangle_types"`
	}

	if err := c.apiCall(ctx, "GET", "/api/tiles", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Tile kinds: %s\nTriangle types: %s\n",
		strings.Join(response.Kinds, ", "), strings.Join(response.TriangleTypes, ", "))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&result, "• %s (config_id: %s)\n  %s\n  Tile: %s, Triangles: %s, Shapes: %d, Colour groups: %d\n\n",
			config.Name, config.ConfigID, config.Description, config.TileKind,
			config.TriangleType, config.NumShapes, config.NumColorGroups)
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handlePatternInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Tile Pattern Game - Instructions

GRID:
• Triangles live on an integer grid and are addressed as [x, y].
• up_down grids hold triangles pointing up or down; left_right grids hold
  triangles pointing left or right. Neighbouring cells alternate.

PATTERNS:
• A pattern is a list of shapes. A shape is a list of colour groups.
  A colour group is a list of [x, y] coordinates sharing one colour.
• All shapes must have the same number of colour groups, and there must be
  at least one shape. Anything else is rejected and the pattern is unchanged.
• Example with one shape and two colour groups:
    [[ [[0,0],[0,1]], [[1,0]] ]]

TILES:
• hex: six triangles, six colour slots, rotations every 60 degrees.
• cube: six triangles paired into three rhombus faces, three colour slots,
  rotations every 120 degrees.

COLOURS:
• null means no colours, "red" means one colour everywhere, and
  ["red","green","blue"] gives one colour per slot or triangle.
• paint_tile turns slot colours into triangle colours; a short list leaves
  the remaining triangles blank.
• normalize_tile turns triangle colours back into slot colours, reading each
  slot from its first triangle.
• Named colours and #rgb / #rrggbb are resolved to #rrggbb in responses.

WORKFLOW:
1. list_configs and create_session with a config_id
2. get_pattern to see shapes and bounds
3. update_pattern to edit
4. describe_tile, paint_tile and normalize_tile to explore colourings`

	return mcp.NewToolResultText(instructions), nil
}

// tileInfoResponse mirrors the JSON of service.TileInfo, whose triangles
// are encode-only
type tileInfoResponse struct {
	Kind         string `json:"kind"`
	TriangleType string `json:"triangle_type"`
	Triangles    []struct {
		Position    engine.Coord `json:"position"`
		Orientation string       `json:"orientation"`
	} `json:"triangles"`
	NumSlots       int   `json:"num_slots"`
	RotationAngles []int `json:"rotation_angles"`
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nTile: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName, session.TileKind,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatPattern(&session.Pattern))
}

func formatPattern(snapshot *engine.PatternSnapshot) string {
	if snapshot == nil {
		return "No pattern available"
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Triangle type: %s\n", snapshot.TriangleType)
	fmt.Fprintf(&result, "Shapes: %d, Colour groups per shape: %d, Triangles: %d\n",
		len(snapshot.Shapes), snapshot.NumColorGroups, snapshot.NumTriangles)
	fmt.Fprintf(&result, "Bounds: %s to %s\n", formatCoord(snapshot.Bounds.Min), formatCoord(snapshot.Bounds.Max))

	for i, shape := range snapshot.Shapes {
		fmt.Fprintf(&result, "\nShape %d:\n", i+1)
		for j, group := range shape {
			coords := make([]string, len(group))
			for k, c := range group {
				coords[k] = formatCoord(c)
			}
			fmt.Fprintf(&result, "  group %d: %s\n", j+1, strings.Join(coords, " "))
		}
	}

	return result.String()
}

func formatUpdateResult(result *service.UpdateResult) string {
	var out strings.Builder
	out.WriteString("✓ Pattern updated\n")
	if result.ColorGroupsChanged {
		fmt.Fprintf(&out, "Colour groups changed: %d -> %d\n",
			result.Previous.NumColorGroups, result.Pattern.NumColorGroups)
	}
	out.WriteString("\n")
	out.WriteString(formatPattern(&result.Pattern))
	return out.String()
}

func formatTileInfo(tile *tileInfoResponse) string {
	var result strings.Builder
	fmt.Fprintf(&result, "Tile: %s (%s)\n", tile.Kind, tile.TriangleType)
	fmt.Fprintf(&result, "Colour slots: %d\n", tile.NumSlots)

	angles := make([]string, len(tile.RotationAngles))
	for i, a := range tile.RotationAngles {
		angles[i] = fmt.Sprintf("%d°", a)
	}
	fmt.Fprintf(&result, "Rotations: %s\n", strings.Join(angles, ", "))

	result.WriteString("Triangles:\n")
	for i, tri := range tile.Triangles {
		fmt.Fprintf(&result, "  %d: %s %s\n", i, formatCoord(tri.Position), tri.Orientation)
	}
	return result.String()
}

func formatColorsResult(result *service.ColorsResult) string {
	var out strings.Builder
	fmt.Fprintf(&out, "Tile: %s (%s)\n", result.Kind, result.Direction)
	fmt.Fprintf(&out, "Input: %s\n", result.Input)
	fmt.Fprintf(&out, "Output: %s\n", result.Colors)
	if len(result.RGBA) > 0 {
		fmt.Fprintf(&out, "Resolved: %s\n", strings.Join(result.RGBA, " "))
	}
	return out.String()
}

func formatCoord(c engine.Coord) string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
