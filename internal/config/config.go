// Package config loads and persists the user configuration for the split
// view demo: simulated display dimensions, refresh rate, animation and
// appearance options. The file lives under the XDG config home and is TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// NormalFPS is the demo's default refresh rate.
const NormalFPS = 60

// DemoConfig shapes the simulated display the demo runs on.
type DemoConfig struct {
	WorkAreaWidth  int  `toml:"work_area_width"`
	WorkAreaHeight int  `toml:"work_area_height"`
	TabletMode     bool `toml:"tablet_mode"`
	FPS            int  `toml:"fps"`
	NoAnimations   bool `toml:"no_animations"`
}

// AppearanceConfig customizes the demo's rendering.
type AppearanceConfig struct {
	AccentColor   string `toml:"accent_color"`
	DividerGlyph  string `toml:"divider_glyph"`
	ShowStatusBar bool   `toml:"show_status_bar"`
}

// LoggingConfig selects the log verbosity: debug, info, warn or error.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Config is the root of the user configuration file.
type Config struct {
	Demo       DemoConfig       `toml:"demo"`
	Appearance AppearanceConfig `toml:"appearance"`
	Logging    LoggingConfig    `toml:"logging"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Demo: DemoConfig{
			WorkAreaWidth:  1000,
			WorkAreaHeight: 600,
			TabletMode:     true,
			FPS:            NormalFPS,
		},
		Appearance: AppearanceConfig{
			AccentColor:   "12",
			DividerGlyph:  "┃",
			ShowStatusBar: true,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// GetConfigPath returns the configuration file path, creating parent
// directories as needed.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile("splitview/config.toml")
}

// Load reads the configuration at path. Values missing from the file keep
// their defaults; a missing file is an error so callers can distinguish
// first runs.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadUserConfig reads the configuration from its XDG location, falling back
// to defaults when no file has been written yet.
func LoadUserConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Save writes the configuration to path with a commented header.
func Save(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# splitview configuration file\n")
	sb.WriteString("# Values omitted here keep their defaults.\n")
	sb.WriteString("#\n")
	sb.WriteString("# Location: " + path + "\n\n")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// normalize clamps out-of-range values back to something the demo can run
// with rather than rejecting the file.
func (c *Config) normalize() {
	if c.Demo.WorkAreaWidth < 100 {
		c.Demo.WorkAreaWidth = 100
	}
	if c.Demo.WorkAreaHeight < 100 {
		c.Demo.WorkAreaHeight = 100
	}
	if c.Demo.FPS < 1 || c.Demo.FPS > 240 {
		c.Demo.FPS = NormalFPS
	}
	if c.Appearance.DividerGlyph == "" {
		c.Appearance.DividerGlyph = "┃"
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Logging.Level = "info"
	}
}
