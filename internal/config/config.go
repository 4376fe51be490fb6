package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTileSize is the edge length of one sea tile in world units
const DefaultTileSize = 1500.0

// Config holds all culling and host configuration values
type Config struct {
	Culling CullingConfig `yaml:"culling"`
	Scene   SceneConfig   `yaml:"scene"`
	Display DisplayConfig `yaml:"display"`
	Sea     SeaConfig     `yaml:"sea"`
}

// CullingConfig is immutable for the lifetime of one scheduler run
type CullingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	CullDistance float64 `yaml:"cull_distance"` // world units
	TileSize     float64 `yaml:"tile_size"`
}

// SceneConfig names the host entities the culler looks for
type SceneConfig struct {
	GameplayScene    string `yaml:"gameplay_scene"`
	TileContainer    string `yaml:"tile_container"`
	Observer         string `yaml:"observer"`
	DiscoveryRetryMS int    `yaml:"discovery_retry_ms"`
}

// DisplayConfig sizes the graphical host window
type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

// SeaConfig points the reference host at its scene layouts
type SeaConfig struct {
	LayoutFile   string  `yaml:"layout_file"`
	StartScene   string  `yaml:"start_scene"`
	ObserverStep float64 `yaml:"observer_step"` // world units per input frame
}

// Default returns the configuration used when no config file exists.
// Culling is disabled until a file turns it on.
func Default() *Config {
	return &Config{
		Culling: CullingConfig{
			Enabled:      false,
			CullDistance: DefaultTileSize,
			TileSize:     DefaultTileSize,
		},
		Scene: SceneConfig{
			GameplayScene:    "Sailing",
			TileContainer:    "Sea",
			Observer:         "PlayerBoat",
			DiscoveryRetryMS: 100,
		},
		Display: DisplayConfig{
			ScreenWidth:  960,
			ScreenHeight: 720,
			WindowTitle:  "SeaCull",
			Resizable:    true,
		},
		Sea: SeaConfig{
			LayoutFile:   "scenes.yaml",
			StartScene:   "Sailing",
			ObserverStep: 60,
		},
	}
}

// LoadConfig loads the configuration from a YAML file on top of Default().
// A missing file is not an error: the defaults (culling disabled) are returned.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	cfg, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// Validate checks the invariants the culling core relies on
func (c *Config) Validate() error {
	if !(c.Culling.CullDistance >= 0) || math.IsInf(c.Culling.CullDistance, 0) {
		return fmt.Errorf("culling.cull_distance must be >= 0, got %v", c.Culling.CullDistance)
	}
	if !(c.Culling.TileSize > 0) || math.IsInf(c.Culling.TileSize, 0) {
		return fmt.Errorf("culling.tile_size must be > 0, got %v", c.Culling.TileSize)
	}
	if c.Scene.TileContainer == "" || c.Scene.Observer == "" {
		return fmt.Errorf("scene.tile_container and scene.observer must be set")
	}
	if c.Scene.DiscoveryRetryMS <= 0 {
		return fmt.Errorf("scene.discovery_retry_ms must be > 0, got %d", c.Scene.DiscoveryRetryMS)
	}
	return nil
}

// GetDiscoveryRetry returns the poll interval used while discovering scene entities
func (c *Config) GetDiscoveryRetry() time.Duration {
	return time.Duration(c.Scene.DiscoveryRetryMS) * time.Millisecond
}

func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTileSize() float64 {
	return c.Culling.TileSize
}
