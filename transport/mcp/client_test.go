package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/tile-pattern-game/api"
	"github.com/wricardo/tile-pattern-game/game/config"
	"github.com/wricardo/tile-pattern-game/game/engine"
	"github.com/wricardo/tile-pattern-game/game/service"
	"github.com/wricardo/tile-pattern-game/game/session"
)

// newAPIServer starts the real REST API over a temporary config directory
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	cubes := `{"name":"Cubes","description":"Cube pieces","triangle_type":"up_down","tile_kind":"cube",
		"shapes":[[ [[0,0],[1,0]], [[2,0],[2,1]], [[1,1],[0,1]] ]]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cubes.json"), []byte(cubes), 0644))

	configManager, err := config.NewManager(dir)
	require.NoError(t, err)

	svc := service.NewPatternService(session.NewManager(), configManager)
	ts := httptest.NewServer(api.NewServer(svc, nil))
	t.Cleanup(ts.Close)
	return ts
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func createTestSession(t *testing.T, client *Client) string {
	t.Helper()
	result, err := client.handleCreateSession(context.Background(), callRequest("create_session", map[string]interface{}{
		"config_id": "cubes",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	text := resultText(t, result)
	for _, line := range strings.Split(text, "\n") {
		if id, ok := strings.CutPrefix(line, "Session: "); ok {
			return id
		}
	}
	t.Fatalf("no session ID in %q", text)
	return ""
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.GetMCPServer())
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "test-session"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]string
	require.NoError(t, client.apiCall(context.Background(), "GET", "/api", nil, &response))
	assert.Equal(t, "test-session", response["id"])
}

func TestClient_apiCall_Errors(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1")
		assert.Error(t, client.apiCall(context.Background(), "GET", "/api", nil, nil))
	})

	t.Run("plain status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
		}))
		defer server.Close()

		err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API error: 500")
	})

	t.Run("error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "session not found"})
		}))
		defer server.Close()

		err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
		require.Error(t, err)
		assert.Equal(t, "session not found", err.Error())
	})
}

func TestClient_SessionTools(t *testing.T) {
	ts := newAPIServer(t)
	client := NewClient(ts.URL)
	ctx := context.Background()

	id := createTestSession(t, client)
	assert.Len(t, id, 4)

	result, err := client.handleListSessions(ctx, callRequest("list_sessions", nil))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "Active Sessions (1)")
	assert.Contains(t, text, id)

	result, err = client.handleGetSession(ctx, callRequest("get_session", map[string]interface{}{"session_id": id}))
	require.NoError(t, err)
	text = resultText(t, result)
	assert.Contains(t, text, "Config: cubes")
	assert.Contains(t, text, "Tile: cube")

	result, err = client.handleGetSession(ctx, callRequest("get_session", map[string]interface{}{"session_id": "zzzz"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestClient_PatternTools(t *testing.T) {
	ts := newAPIServer(t)
	client := NewClient(ts.URL)
	ctx := context.Background()
	id := createTestSession(t, client)

	result, err := client.handleGetPattern(ctx, callRequest("get_pattern", map[string]interface{}{"session_id": id}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "Colour groups per shape: 3")
	assert.Contains(t, text, "group 1: (0,0) (1,0)")

	result, err = client.handleUpdatePattern(ctx, callRequest("update_pattern", map[string]interface{}{
		"session_id": id,
		"shapes":     []interface{}{[]interface{}{[]interface{}{[]interface{}{0.0, 0.0}}}},
		"intent":     "collapse to one triangle",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	text = resultText(t, result)
	assert.Contains(t, text, "✓ Pattern updated")
	assert.Contains(t, text, "Colour groups changed: 3 -> 1")

	// Shapes passed as a JSON string
	result, err = client.handleUpdatePattern(ctx, callRequest("update_pattern", map[string]interface{}{
		"session_id": id,
		"shapes":     `[[ [[0,0],[0,1]], [[1,0]] ]]`,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	assert.Contains(t, resultText(t, result), "Triangles: 3")

	result, err = client.handleUpdatePattern(ctx, callRequest("update_pattern", map[string]interface{}{
		"session_id": id,
		"shapes":     `[[ [[0,0]] ], [ [[0,0]], [[1,0]] ]]`,
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "The pattern was not changed")
}

func TestClient_TileTools(t *testing.T) {
	ts := newAPIServer(t)
	client := NewClient(ts.URL)
	ctx := context.Background()
	id := createTestSession(t, client)

	result, err := client.handleDescribeTile(ctx, callRequest("describe_tile", map[string]interface{}{
		"session_id": id,
		"kind":       "cube",
	}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "Colour slots: 3")
	assert.Contains(t, text, "Rotations: 0°, 120°, 240°")
	assert.Contains(t, text, "0: (0,0) up")

	result, err = client.handlePaintTile(ctx, callRequest("paint_tile", map[string]interface{}{
		"session_id": id,
		"kind":       "cube",
		"colors":     []interface{}{"red", "lime", "blue"},
	}))
	require.NoError(t, err)
	text = resultText(t, result)
	assert.Contains(t, text, "to_triangles")
	assert.Contains(t, text, "Sequence([red red lime lime blue blue])")
	assert.Contains(t, text, "Resolved: #ff0000 #ff0000 #00ff00")

	result, err = client.handleNormalizeTile(ctx, callRequest("normalize_tile", map[string]interface{}{
		"session_id": id,
		"kind":       "hex",
		"colors":     "gold",
	}))
	require.NoError(t, err)
	text = resultText(t, result)
	assert.Contains(t, text, "from_triangles")
	assert.Contains(t, text, "Input: Uniform(gold)")

	result, err = client.handlePaintTile(ctx, callRequest("paint_tile", map[string]interface{}{
		"session_id": id,
		"kind":       "hex",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Output: Absent")

	result, err = client.handleDescribeTile(ctx, callRequest("describe_tile", map[string]interface{}{
		"session_id": id,
		"kind":       "octagon",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = client.handleListTileKinds(ctx, callRequest("list_tile_kinds", nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Tile kinds: cube, hex")
}

func TestClient_ListConfigs(t *testing.T) {
	ts := newAPIServer(t)
	client := NewClient(ts.URL)

	result, err := client.handleListConfigs(context.Background(), callRequest("list_configs", nil))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "Cubes (config_id: cubes)")
	assert.Contains(t, text, "Tile: cube")
}

func TestClient_PatternInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handlePatternInstructions(context.Background(), callRequest("pattern_instructions", nil))
	require.NoError(t, err)
	text := resultText(t, result)

	for _, section := range []string{"GRID:", "PATTERNS:", "TILES:", "COLOURS:", "WORKFLOW:"} {
		assert.Contains(t, text, section)
	}
}

func TestFormatPattern(t *testing.T) {
	p := engine.NewEditablePattern(engine.LeftRight)
	require.NoError(t, p.UpdatePattern([]engine.TileShape{
		{{{X: -1, Y: 2}}, {{X: 3, Y: 0}}},
	}))
	snapshot := p.Snapshot()

	text := formatPattern(&snapshot)
	assert.Contains(t, text, "Triangle type: left_right")
	assert.Contains(t, text, "Bounds: (-1,0) to (3,2)")
	assert.Contains(t, text, "group 2: (3,0)")

	assert.Equal(t, "No pattern available", formatPattern(nil))
}

func TestHandleMessage_ListTools(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	client.GetMCPServer().HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":0,"method":"initialize","params":{
		"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`))

	response := client.GetMCPServer().HandleMessage(ctx,
		[]byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`))

	data, err := json.Marshal(response)
	require.NoError(t, err)
	for _, name := range []string{
		"create_session", "list_sessions", "get_pattern", "update_pattern", "describe_tile",
		"paint_tile", "normalize_tile", "list_tile_kinds", "list_configs",
	} {
		assert.Contains(t, string(data), `"`+name+`"`)
	}
}
