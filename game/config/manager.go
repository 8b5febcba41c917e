package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/wricardo/tile-pattern-game/game/engine"
	"github.com/wricardo/tile-pattern-game/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = service.ErrInvalidConfig
)

// DefaultConfigName is the definition used when a session names none
const DefaultConfigName = "starter"

// Manager handles pattern definition loading and caching
type Manager struct {
	configDir     string
	defaultConfig *service.PatternConfig
	configs       map[string]*service.PatternConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*service.PatternConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// ValidatePatternConfig checks a definition's metadata and shape rules
func ValidatePatternConfig(config *service.PatternConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if !config.TriangleType.Valid() {
		return fmt.Errorf("config validation: triangle_type must be one of %v, got %q", engine.TriangleTypes, config.TriangleType)
	}
	if !config.TileKind.Valid() {
		return fmt.Errorf("config validation: tile_kind must be one of %v, got %q", engine.TileKinds(), config.TileKind)
	}
	if _, err := engine.NewPattern(config.TriangleType, config.Shapes); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// validConfigName reports whether name is a plain file name inside the config directory
func validConfigName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// LoadConfig loads a configuration by name
func (m *Manager) LoadConfig(name string) (*service.PatternConfig, error) {
	name = strings.TrimSuffix(name, ".json")
	if !validConfigName(name) {
		return nil, fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}

	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	config, err := m.readConfigFile(name + ".json")
	if err != nil {
		return nil, err
	}

	m.configs[name] = config
	return config, nil
}

// readConfigFile parses and validates one definition file
func (m *Manager) readConfigFile(filename string) (*service.PatternConfig, error) {
	data, err := os.ReadFile(filepath.Join(m.configDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config service.PatternConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := ValidatePatternConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// ListConfigs returns information about all valid definitions in the directory
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		config, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs
			continue
		}

		configs = append(configs, newConfigInfo(entry.Name(), name, config))
	}

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *service.PatternConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops cached definitions and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*service.PatternConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// loadDefaultConfig picks starter.json, then the first valid definition,
// then the built-in minimal definition
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			m.setDefault(createMinimalConfig())
			return nil
		}

		config, err = m.LoadConfig(configs[0].ConfigID)
		if err != nil {
			m.setDefault(createMinimalConfig())
			return nil
		}
	}

	m.setDefault(config)
	return nil
}

func (m *Manager) setDefault(config *service.PatternConfig) {
	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// SaveConfig saves a configuration to disk
func (m *Manager) SaveConfig(name string, config *service.PatternConfig) error {
	if err := ValidatePatternConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	name = strings.TrimSuffix(name, ".json")
	if !validConfigName(name) {
		return fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(m.configDir, name+".json")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = config
	m.mu.Unlock()

	return nil
}

// createMinimalConfig creates a minimal valid configuration
func createMinimalConfig() *service.PatternConfig {
	return &service.PatternConfig{
		Name:         "default",
		Description:  "Default minimal configuration",
		TriangleType: engine.UpDown,
		TileKind:     engine.KindHex,
		Shapes:       engine.DefaultShapes(),
	}
}

func newConfigInfo(filename, id string, config *service.PatternConfig) *service.ConfigInfo {
	info := &service.ConfigInfo{
		Filename:     filename,
		ConfigID:     id,
		Name:         config.Name,
		Description:  config.Description,
		TriangleType: config.TriangleType,
		TileKind:     config.TileKind,
		NumShapes:    len(config.Shapes),
	}
	if len(config.Shapes) > 0 {
		info.NumColorGroups = len(config.Shapes[0])
	}
	return info
}
