package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"oled/hal"
	"oled/ssd1306"
	"oled/transport"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loadable from YAML.
type Config struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Address  uint8  `yaml:"address"`
	MaxChunk int    `yaml:"max_chunk"`
	Bus      string `yaml:"bus"`
	FlushHz  int    `yaml:"flush_hz"`
	Banner   string `yaml:"banner"`
	Console  bool   `yaml:"console"`
	Demo     bool   `yaml:"demo"`
}

// DefaultConfig returns the settings for a 128x64 module at 0x3C.
func DefaultConfig() Config {
	return Config{
		Width:    128,
		Height:   64,
		Address:  ssd1306.DefaultAddress,
		MaxChunk: transport.DefaultMaxChunk,
		FlushHz:  30,
		Banner:   "oled ready",
		Demo:     true,
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.FlushHz <= 0 {
		return cfg, fmt.Errorf("config %q: flush_hz must be positive", path)
	}
	return cfg, nil
}

// Panel returns the emulated panel matching the configuration.
func (c Config) Panel() hal.PanelConfig {
	return hal.PanelConfig{
		Width:    c.Width,
		Height:   c.Height,
		Address:  c.Address,
		MaxChunk: c.MaxChunk,
	}
}

// Device returns the driver configuration.
func (c Config) Device(log hal.Logger) ssd1306.Config {
	return ssd1306.Config{
		Width:    c.Width,
		Height:   c.Height,
		Address:  c.Address,
		MaxChunk: c.MaxChunk,
		Logger:   log,
	}
}
