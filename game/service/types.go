package service

import (
	"time"

	"github.com/wricardo/tile-pattern-game/game/engine"
)

// PatternConfig is a pattern definition as stored in the config library
type PatternConfig struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	TriangleType engine.TriangleType `json:"triangle_type"`
	TileKind     engine.TileKind     `json:"tile_kind"`
	Shapes       []engine.TileShape  `json:"shapes"`
}

// ConfigInfo provides information about a pattern definition
type ConfigInfo struct {
	Filename       string              `json:"filename"`
	ConfigID       string              `json:"config_id"` // The identifier to use for session creation
	Name           string              `json:"name"`      // Display name
	Description    string              `json:"description"`
	TriangleType   engine.TriangleType `json:"triangle_type"`
	TileKind       engine.TileKind     `json:"tile_kind"`
	NumShapes      int                 `json:"num_shapes"`
	NumColorGroups int                 `json:"num_color_groups"`
}

// SessionInfo provides information about an editor session
type SessionInfo struct {
	ID             string                 `json:"id"`
	ConfigName     string                 `json:"config_name"`
	TileKind       engine.TileKind        `json:"tile_kind"`
	CreatedAt      time.Time              `json:"created_at"`
	LastAccessedAt time.Time              `json:"last_accessed_at"`
	Pattern        engine.PatternSnapshot `json:"pattern"`
}

// UpdateResult contains the pattern before and after an update
type UpdateResult struct {
	Previous           engine.PatternSnapshot `json:"previous"`
	Pattern            engine.PatternSnapshot `json:"pattern"`
	ColorGroupsChanged bool                   `json:"color_groups_changed"`
}

// TileInfo describes a tile variant in a session's topology
type TileInfo struct {
	Kind           engine.TileKind     `json:"kind"`
	TriangleType   engine.TriangleType `json:"triangle_type"`
	Triangles      []engine.Triangle   `json:"triangles"`
	NumSlots       int                 `json:"num_slots"`
	RotationAngles []int               `json:"rotation_angles"`
}

// ColorsResult contains the outcome of a paint or normalize call
type ColorsResult struct {
	Kind           engine.TileKind   `json:"kind"`
	Direction      string            `json:"direction"` // "to_triangles" or "from_triangles"
	Input          engine.TileColors `json:"input"`
	Colors         engine.TileColors `json:"colors"`
	RGBA           []string          `json:"rgba,omitempty"`
	RotationAngles []int             `json:"rotation_angles"`
}
