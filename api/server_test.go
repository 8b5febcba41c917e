package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/tile-pattern-game/game/config"
	"github.com/wricardo/tile-pattern-game/game/engine"
	"github.com/wricardo/tile-pattern-game/game/service"
	"github.com/wricardo/tile-pattern-game/game/session"
	"github.com/wricardo/tile-pattern-game/transport/websocket"
)

const starterConfig = `{
  "name": "Starter",
  "triangle_type": "up_down",
  "tile_kind": "hex",
  "shapes": [[ [[0,0]] ]]
}`

const cubesConfig = `{
  "name": "Cubes",
  "description": "Cube pieces",
  "triangle_type": "up_down",
  "tile_kind": "cube",
  "shapes": [[ [[0,0],[1,0]], [[2,0],[2,1]], [[1,1],[0,1]] ]]
}`

// newTestServer wires the real service stack over a temporary config directory
func newTestServer(t *testing.T, hub *websocket.Hub) (*Server, service.PatternService) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cubes.json"), []byte(cubesConfig), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "starter.json"), []byte(starterConfig), 0644))

	configManager, err := config.NewManager(dir)
	require.NoError(t, err)

	svc := service.NewPatternService(session.NewManager(), configManager)
	return NewServer(svc, hub), svc
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

func createSession(t *testing.T, handler http.Handler, configID string) service.SessionInfo {
	t.Helper()
	rr := doRequest(t, handler, "POST", "/api/sessions", fmt.Sprintf(`{"config_id":%q}`, configID))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var info service.SessionInfo
	decode(t, rr, &info)
	return info
}

func TestSessionEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	created := createSession(t, srv, "cubes")
	assert.Len(t, created.ID, 4)
	assert.Equal(t, "cubes", created.ConfigName)
	assert.Equal(t, engine.KindCube, created.TileKind)
	assert.Equal(t, 3, created.Pattern.NumColorGroups)

	// Empty body uses the default config
	rr := doRequest(t, srv, "POST", "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(t, srv, "GET", "/api/sessions/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got service.SessionInfo
	decode(t, rr, &got)
	assert.Equal(t, created.ID, got.ID)

	rr = doRequest(t, srv, "GET", "/api/sessions?sort=created&order=asc&limit=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list struct {
		Count    int                   `json:"count"`
		Total    int                   `json:"total"`
		Sessions []service.SessionInfo `json:"sessions"`
		Sort     string                `json:"sort"`
		Order    string                `json:"order"`
	}
	decode(t, rr, &list)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, "created", list.Sort)
	assert.Equal(t, "asc", list.Order)

	rr = doRequest(t, srv, "DELETE", "/api/sessions/"+created.ID, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, srv, "GET", "/api/sessions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, srv, "DELETE", "/api/sessions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, srv, "POST", "/api/sessions", `{"config_id":"missing"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateSessionBadRequests(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{"config_id": `},
		{"wrong type", `{"config_id": 42}`},
		{"path outside library", `{"config_id": "../../etc/cubes"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, srv, "POST", "/api/sessions", tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
		})
	}

	sessions, err := srv.service.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions, "rejected requests must not create sessions")
}

func TestPatternEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	info := createSession(t, srv, "")

	rr := doRequest(t, srv, "GET", "/api/sessions/"+info.ID+"/pattern", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var snapshot engine.PatternSnapshot
	decode(t, rr, &snapshot)
	assert.Equal(t, engine.DefaultShapes(), snapshot.Shapes)

	rr = doRequest(t, srv, "PUT", "/api/sessions/"+info.ID+"/pattern", `{"shapes": [[ [[0,0],[0,1]], [[1,0]] ]]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var result service.UpdateResult
	decode(t, rr, &result)
	assert.Equal(t, 1, result.Previous.NumColorGroups)
	assert.Equal(t, 2, result.Pattern.NumColorGroups)
	assert.Equal(t, 3, result.Pattern.NumTriangles)
	assert.True(t, result.ColorGroupsChanged)

	rr = doRequest(t, srv, "GET", "/api/sessions/zzzz/pattern", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdatePatternRejected(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	info := createSession(t, srv, "cubes")

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{"shapes": `},
		{"bad coordinate", `{"shapes": [[[[0]]]]}`},
		{"empty shapes", `{"shapes": []}`},
		{"missing shapes", `{}`},
		{"unequal groups", `{"shapes": [[ [[0,0]] ], [ [[0,0]], [[1,0]] ]]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, srv, "PUT", "/api/sessions/"+info.ID+"/pattern", tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

			var body map[string]string
			decode(t, rr, &body)
			assert.NotEmpty(t, body["error"])
		})
	}

	rr := doRequest(t, srv, "GET", "/api/sessions/"+info.ID+"/pattern", "")
	var snapshot engine.PatternSnapshot
	decode(t, rr, &snapshot)
	assert.Equal(t, 3, snapshot.NumColorGroups, "rejected updates must not change the pattern")
}

func TestTileEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	info := createSession(t, srv, "cubes")

	rr := doRequest(t, srv, "GET", "/api/tiles", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"kinds":["cube","hex"],"triangle_types":["up_down","left_right"]}`, rr.Body.String())

	rr = doRequest(t, srv, "GET", "/api/sessions/"+info.ID+"/tiles/cube", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var tile struct {
		Kind           string `json:"kind"`
		NumSlots       int    `json:"num_slots"`
		RotationAngles []int  `json:"rotation_angles"`
		Triangles      []struct {
			Type        string `json:"type"`
			Position    [2]int `json:"position"`
			Orientation string `json:"orientation"`
		} `json:"triangles"`
	}
	decode(t, rr, &tile)
	assert.Equal(t, "cube", tile.Kind)
	assert.Equal(t, 3, tile.NumSlots)
	assert.Equal(t, []int{0, 120, 240}, tile.RotationAngles)
	require.Len(t, tile.Triangles, 6)
	assert.Equal(t, [2]int{0, 0}, tile.Triangles[0].Position)
	assert.Equal(t, "up_down", tile.Triangles[0].Type)

	rr = doRequest(t, srv, "POST", "/api/sessions/"+info.ID+"/tiles/cube/paint", `{"colors": ["red","green","blue"]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var painted struct {
		Direction string   `json:"direction"`
		Colors    []string `json:"colors"`
		RGBA      []string `json:"rgba"`
	}
	decode(t, rr, &painted)
	assert.Equal(t, "to_triangles", painted.Direction)
	assert.Equal(t, []string{"red", "red", "green", "green", "blue", "blue"}, painted.Colors)
	assert.Equal(t, "#ff0000", painted.RGBA[0])

	rr = doRequest(t, srv, "POST", "/api/sessions/"+info.ID+"/tiles/hex/paint", `{"colors": "gold"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &painted)
	assert.Len(t, painted.Colors, 6)

	rr = doRequest(t, srv, "POST", "/api/sessions/"+info.ID+"/tiles/hex/paint", `{"colors": null}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"colors":null`)

	rr = doRequest(t, srv, "POST", "/api/sessions/"+info.ID+"/tiles/cube/normalize", `{"colors": ["a","a","b","b","d","d"]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var normalized struct {
		Direction string   `json:"direction"`
		Colors    []string `json:"colors"`
	}
	decode(t, rr, &normalized)
	assert.Equal(t, "from_triangles", normalized.Direction)
	assert.Equal(t, []string{"a", "b", "d"}, normalized.Colors)

	rr = doRequest(t, srv, "GET", "/api/sessions/"+info.ID+"/tiles/octagon", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, srv, "POST", "/api/sessions/"+info.ID+"/tiles/hex/paint", `{"colors": 5}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, srv, "POST", "/api/sessions/zzzz/tiles/hex/normalize", `{"colors": "a"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestConfigEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rr := doRequest(t, srv, "GET", "/api/configs", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var configs []service.ConfigInfo
	decode(t, rr, &configs)
	require.Len(t, configs, 2)
	assert.Equal(t, "cubes", configs[0].ConfigID)
	assert.Equal(t, "starter", configs[1].ConfigID)

	rr = doRequest(t, srv, "GET", "/api/configs/cubes.json", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var cfg service.PatternConfig
	decode(t, rr, &cfg)
	assert.Equal(t, "Cubes", cfg.Name)

	rr = doRequest(t, srv, "GET", "/api/configs/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, srv, "POST", "/api/configs", `{
		"name": "My Stripes!",
		"triangle_type": "left_right",
		"tile_kind": "hex",
		"shapes": [[ [[0,0]], [[0,1]] ]]
	}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var saved map[string]string
	decode(t, rr, &saved)
	assert.Equal(t, "my-stripes", saved["config_id"])

	created := createSession(t, srv, "my-stripes")
	assert.Equal(t, engine.LeftRight, created.Pattern.TriangleType)

	rr = doRequest(t, srv, "POST", "/api/configs", `{"name": "bad", "triangle_type": "up_down", "tile_kind": "hex", "shapes": []}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, srv, "POST", "/api/configs", `{"triangle_type": "up_down"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rr := doRequest(t, srv, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", engine.ErrInvalidPatternShape), http.StatusBadRequest},
		{service.ErrUnknownTileKind, http.StatusBadRequest},
		{service.ErrInvalidConfig, http.StatusBadRequest},
		{errBadRequest, http.StatusBadRequest},
		{fmt.Errorf("x: %w", service.ErrSessionNotFound), http.StatusNotFound},
		{service.ErrConfigNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, statusForError(tc.err), tc.err.Error())
	}
}

func TestConfigIDFromName(t *testing.T) {
	assert.Equal(t, "tumbling-blocks", configIDFromName("Tumbling Blocks"))
	assert.Equal(t, "a-b_c", configIDFromName("  A -- b_c!! "))
	assert.Equal(t, "", configIDFromName("***"))
}

func TestWebSocketBroadcastOnUpdate(t *testing.T) {
	hub := websocket.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv, _ := newTestServer(t, hub)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	info := createSession(t, srv, "")

	rr := doRequest(t, srv, "GET", "/ws", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = doRequest(t, srv, "GET", "/ws?session=zzzz", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// IDs are case-insensitive, so an upper-case subscription still receives updates
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=" + strings.ToUpper(info.ID)
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.ClientCount(info.ID) == 1
	}, time.Second, 10*time.Millisecond)

	rr = doRequest(t, srv, "PUT", "/api/sessions/"+info.ID+"/pattern", `{"shapes": [[ [[0,0]], [[1,0]], [[2,0]] ]]}`)
	require.Equal(t, http.StatusOK, rr.Code)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var message websocket.Message
	require.NoError(t, json.Unmarshal(data, &message))
	assert.Equal(t, info.ID, message.SessionID)
	assert.Equal(t, websocket.EventPatternUpdated, message.Event)
	require.NotNil(t, message.Pattern)
	assert.Equal(t, 3, message.Pattern.NumColorGroups)
}
