// Package config loads game settings from a TOML file with environment
// overrides and builds the logger used by the hosts.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/plus3/puyo/board"
)

type Config struct {
	Board   BoardConfig   `toml:"board"`
	Display DisplayConfig `toml:"display"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
}

type BoardConfig struct {
	Width            int      `toml:"width" env:"PUYO_BOARD_WIDTH"`
	Height           int      `toml:"height" env:"PUYO_BOARD_HEIGHT"`
	Colors           []string `toml:"colors" env:"PUYO_BOARD_COLORS" envSeparator:","`
	FallInterval     Duration `toml:"fall_interval"`
	FastFallInterval Duration `toml:"fast_fall_interval"`
	SplitDrop        bool     `toml:"split_drop" env:"PUYO_SPLIT_DROP"`
	Seed             uint64   `toml:"seed" env:"PUYO_SEED"` // 0 picks a random seed
}

type DisplayConfig struct {
	CellSize int    `toml:"cell_size"`
	Title    string `toml:"title"`
	TPS      int    `toml:"tps"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled" env:"PUYO_AUDIO_ENABLED"`
	BaseHz  float64 `toml:"base_hz"`
}

type LoggingConfig struct {
	Level  string `toml:"level" env:"PUYO_LOG_LEVEL"`
	Format string `toml:"format" env:"PUYO_LOG_FORMAT"` // "json" or "console"
	Output string `toml:"output" env:"PUYO_LOG_OUTPUT"` // file path; empty means stderr
}

// Duration decodes TOML strings such as "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			Width:            6,
			Height:           12,
			Colors:           []string{"red", "blue", "green", "yellow"},
			FallInterval:     Duration{500 * time.Millisecond},
			FastFallInterval: Duration{50 * time.Millisecond},
		},
		Display: DisplayConfig{
			CellSize: 40,
			Title:    "Puyo",
			TPS:      60,
		},
		Audio: AudioConfig{
			Enabled: true,
			BaseHz:  440,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults and then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv applies PUYO_* environment variables onto cfg.
func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ToBoard converts the file representation into a board configuration.
func (c BoardConfig) ToBoard() (board.Config, error) {
	colors := make([]board.Color, 0, len(c.Colors))
	for _, name := range c.Colors {
		col, err := board.ParseColor(name)
		if err != nil {
			return board.Config{}, fmt.Errorf("board colors: %w", err)
		}
		colors = append(colors, col)
	}
	cfg := board.Config{
		Width:            c.Width,
		Height:           c.Height,
		Colors:           colors,
		FallInterval:     c.FallInterval.Seconds(),
		FastFallInterval: c.FastFallInterval.Seconds(),
		SplitDrop:        c.SplitDrop,
	}
	if err := cfg.Validate(); err != nil {
		return board.Config{}, err
	}
	return cfg, nil
}
