package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/tile-pattern-game/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownTileKind = errors.New("unknown tile kind")
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// PatternService defines all pattern editor operations
type PatternService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Pattern
	GetPattern(ctx context.Context, sessionID string) (*engine.PatternSnapshot, error)
	UpdatePattern(ctx context.Context, sessionID string, shapes []engine.TileShape) (*UpdateResult, error)

	// Tiles
	ListTileKinds(ctx context.Context) []engine.TileKind
	DescribeTile(ctx context.Context, sessionID string, kind engine.TileKind) (*TileInfo, error)
	PaintTile(ctx context.Context, sessionID string, kind engine.TileKind, colors engine.TileColors) (*ColorsResult, error)
	NormalizeTile(ctx context.Context, sessionID string, kind engine.TileKind, colors engine.TileColors) (*ColorsResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*PatternConfig, error)
	SaveConfig(ctx context.Context, configName string, config *PatternConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *PatternConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *PatternConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles pattern definition loading
type ConfigManager interface {
	LoadConfig(name string) (*PatternConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *PatternConfig
	SaveConfig(name string, config *PatternConfig) error
}

// Session represents an active editor session
type Session struct {
	ID             string
	Pattern        *engine.EditablePattern
	Config         *PatternConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
