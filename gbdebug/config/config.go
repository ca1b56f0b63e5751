// Package config loads and saves the debugger configuration as TOML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"github.com/valerio/gbdebug/gbdebug/backend"
	"github.com/valerio/gbdebug/gbdebug/panel"
)

const DefaultFilename = "gbdebug.toml"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Control  ControlConfig  `toml:"control"`
	Panels   PanelsConfig   `toml:"panels"`
	Headless HeadlessConfig `toml:"headless"`
}

type WindowConfig struct {
	Title    string `toml:"title"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	FontPath string `toml:"font_path"`
	FontSize int    `toml:"font_size"`
}

type ControlConfig struct {
	StartRunning bool `toml:"start_running"`
	SpeedIndex   int  `toml:"speed_index"`
}

// PanelsConfig holds the initial visibility of each panel.
type PanelsConfig struct {
	CPU     bool `toml:"cpu"`
	Flags   bool `toml:"flags"`
	Memory  bool `toml:"memory"`
	Control bool `toml:"control"`
}

type HeadlessConfig struct {
	Frames   int    `toml:"frames"`   // 0 runs until exit
	Viewport int    `toml:"viewport"` // visible memory lines, 0 = all
	Trace    string `toml:"trace"`    // JSON-lines trace file, empty = none
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:    backend.DefaultTitle,
			Width:    backend.DefaultWidth,
			Height:   backend.DefaultHeight,
			FontSize: backend.DefaultFontSize,
		},
		Control: ControlConfig{
			SpeedIndex: panel.DefaultSpeedIndex,
		},
		Panels: PanelsConfig{CPU: true, Flags: true, Memory: true, Control: true},
		Headless: HeadlessConfig{
			Frames:   60,
			Viewport: 32,
		},
	}
}

// Load reads the configuration at path from fsys. Keys missing from the file
// keep their default value, and a missing file yields Default().
func Load(fsys afero.Fs, path string) (Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("No config file, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("Unknown config key", "path", path, "key", key.String())
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path on fsys.
func Save(fsys afero.Fs, path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return afero.WriteFile(fsys, path, buf, 0644)
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.FontSize <= 0 {
		return fmt.Errorf("%w: font size %d", ErrInvalid, c.Window.FontSize)
	}
	if c.Control.SpeedIndex < 0 || c.Control.SpeedIndex >= panel.SpeedCount {
		return fmt.Errorf("%w: speed index %d not in [0, %d)", ErrInvalid, c.Control.SpeedIndex, panel.SpeedCount)
	}
	if c.Headless.Frames < 0 || c.Headless.Viewport < 0 {
		return fmt.Errorf("%w: negative headless frames or viewport", ErrInvalid)
	}
	return nil
}

func (c Config) BackendConfig() backend.Config {
	return backend.Config{
		Title:    c.Window.Title,
		Width:    c.Window.Width,
		Height:   c.Window.Height,
		FontPath: c.Window.FontPath,
		FontSize: c.Window.FontSize,
	}
}

// PanelVisibility maps panel names to their configured visibility.
func (c Config) PanelVisibility() map[string]bool {
	return map[string]bool{
		panel.CPUStateName:     c.Panels.CPU,
		panel.FlagsName:        c.Panels.Flags,
		panel.MemoryViewerName: c.Panels.Memory,
		panel.ControlName:      c.Panels.Control,
	}
}
