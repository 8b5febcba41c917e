package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wricardo/tile-pattern-game/game/engine"
)

// patternServiceImpl implements the PatternService interface
type patternServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewPatternService creates a new pattern service instance
func NewPatternService(sessions SessionManager, configs ConfigManager) PatternService {
	return &patternServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *patternServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new editor session
func (s *patternServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *PatternConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return newSessionInfo(session, configID), nil
}

// GetSession retrieves session information
func (s *patternServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return newSessionInfo(session, s.getConfigID(session.Config.Name)), nil
}

// ListSessions returns all active sessions
func (s *patternServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, newSessionInfo(sess, s.getConfigID(sess.Config.Name)))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *patternServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// GetPattern returns a consistent snapshot of the session's pattern
func (s *patternServiceImpl) GetPattern(ctx context.Context, sessionID string) (*engine.PatternSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	snapshot := session.Pattern.Snapshot()
	return &snapshot, nil
}

// UpdatePattern replaces the session's shapes. A rejected update leaves the
// pattern unchanged and returns an error wrapping engine.ErrInvalidPatternShape.
func (s *patternServiceImpl) UpdatePattern(ctx context.Context, sessionID string, shapes []engine.TileShape) (*UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	previous := session.Pattern.Snapshot()
	if err := session.Pattern.UpdatePattern(shapes); err != nil {
		return nil, err
	}
	current := session.Pattern.Snapshot()

	return &UpdateResult{
		Previous:           previous,
		Pattern:            current,
		ColorGroupsChanged: previous.NumColorGroups != current.NumColorGroups,
	}, nil
}

// ListTileKinds returns every registered tile variant
func (s *patternServiceImpl) ListTileKinds(ctx context.Context) []engine.TileKind {
	return engine.TileKinds()
}

// DescribeTile returns the layout and symmetry of a tile in the session's topology
func (s *patternServiceImpl) DescribeTile(ctx context.Context, sessionID string, kind engine.TileKind) (*TileInfo, error) {
	tile, err := s.sessionTile(sessionID, kind)
	if err != nil {
		return nil, err
	}

	return &TileInfo{
		Kind:           tile.Kind(),
		TriangleType:   tile.TriangleType(),
		Triangles:      tile.Triangles(),
		NumSlots:       tile.NumSlots(),
		RotationAngles: tile.RotationAngles(),
	}, nil
}

// PaintTile expands slot colours onto the tile's triangles
func (s *patternServiceImpl) PaintTile(ctx context.Context, sessionID string, kind engine.TileKind, colors engine.TileColors) (*ColorsResult, error) {
	tile, err := s.sessionTile(sessionID, kind)
	if err != nil {
		return nil, err
	}

	mapped := tile.MapColorsToTriangles(colors)
	return &ColorsResult{
		Kind:           tile.Kind(),
		Direction:      "to_triangles",
		Input:          colors,
		Colors:         mapped,
		RGBA:           resolveAll(mapped),
		RotationAngles: tile.RotationAngles(),
	}, nil
}

// NormalizeTile collapses per-triangle colours to the tile's canonical slots
func (s *patternServiceImpl) NormalizeTile(ctx context.Context, sessionID string, kind engine.TileKind, colors engine.TileColors) (*ColorsResult, error) {
	tile, err := s.sessionTile(sessionID, kind)
	if err != nil {
		return nil, err
	}

	mapped := tile.MapColorsFromTriangles(colors)
	return &ColorsResult{
		Kind:           tile.Kind(),
		Direction:      "from_triangles",
		Input:          colors,
		Colors:         mapped,
		RGBA:           resolveAll(mapped),
		RotationAngles: tile.RotationAngles(),
	}, nil
}

// ListConfigs returns all available pattern definitions
func (s *patternServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a pattern definition by name
func (s *patternServiceImpl) LoadConfig(ctx context.Context, configName string) (*PatternConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig stores a pattern definition in the library
func (s *patternServiceImpl) SaveConfig(ctx context.Context, configName string, config *PatternConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// getSession looks up a session and refreshes its access time
func (s *patternServiceImpl) getSession(sessionID string) (*Session, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return session, nil
}

// sessionTile builds a tile of the given kind in the session's topology
func (s *patternServiceImpl) sessionTile(sessionID string, kind engine.TileKind) (engine.Tile, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownTileKind, kind, engine.TileKinds())
	}

	s.mu.RLock()
	session, err := s.getSession(sessionID)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	return engine.NewTile(kind, session.Pattern.TriangleType())
}

func newSessionInfo(session *Session, configID string) *SessionInfo {
	var kind engine.TileKind
	if session.Config != nil {
		kind = session.Config.TileKind
	}
	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		TileKind:       kind,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Pattern:        session.Pattern.Snapshot(),
	}
}
