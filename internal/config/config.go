package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/asciiart/internal/art"
)

const (
	DefaultWidth           = 80
	DefaultHeight          = 24
	DefaultBrushCharacter  = "#"
	DefaultBrushThickness  = 1
	DefaultHistoryCapacity = 64
	DefaultLibrary         = ".asciiart/library.db"
	DefaultBlank           = " "
	DefaultTheme           = "terminal"
	DefaultLogLevel        = "warn"
)

type Config struct {
	Canvas  CanvasConfig  `yaml:"canvas"`
	Brush   BrushConfig   `yaml:"brush"`
	History HistoryConfig `yaml:"history"`
	Library string        `yaml:"library"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type BrushConfig struct {
	Character string `yaml:"character"`
	Thickness int    `yaml:"thickness"`
}

type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

type DisplayConfig struct {
	Blank string `yaml:"blank"`
	Theme string `yaml:"theme"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Canvas:  CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		Brush:   BrushConfig{Character: DefaultBrushCharacter, Thickness: DefaultBrushThickness},
		History: HistoryConfig{Capacity: DefaultHistoryCapacity},
		Library: DefaultLibrary,
		Display: DisplayConfig{Blank: DefaultBlank, Theme: DefaultTheme},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Brush.Thickness < 1 {
		return fmt.Errorf("brush thickness must be at least 1, got %d", c.Brush.Thickness)
	}
	if r := []rune(c.Brush.Character); len(r) != 1 || !art.ValidGlyph(r[0]) {
		return fmt.Errorf("brush character must be a single printable character, got %q", c.Brush.Character)
	}
	if c.History.Capacity < 1 {
		return fmt.Errorf("history capacity must be at least 1, got %d", c.History.Capacity)
	}
	if len([]rune(c.Display.Blank)) != 1 {
		return fmt.Errorf("display blank must be a single character, got %q", c.Display.Blank)
	}
	return nil
}

func (c *Config) BrushRune() rune {
	return firstRune(c.Brush.Character, '#')
}

func (c *Config) BlankRune() rune {
	return firstRune(c.Display.Blank, ' ')
}

func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
