package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/puyo/board"
	"github.com/plus3/puyo/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puyo.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	bc, err := cfg.Board.ToBoard()
	require.NoError(t, err)
	assert.Equal(t, board.DefaultConfig(), bc)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
[board]
width = 8
height = 14
colors = ["red", "purple", "green"]
fall_interval = "750ms"
split_drop = true
seed = 42

[logging]
level = "debug"
format = "json"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Board.Width)
	assert.Equal(t, 14, cfg.Board.Height)
	assert.Equal(t, 750*time.Millisecond, cfg.Board.FallInterval.Duration)
	assert.Equal(t, 50*time.Millisecond, cfg.Board.FastFallInterval.Duration, "unset keys keep defaults")
	assert.Equal(t, uint64(42), cfg.Board.Seed)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 40, cfg.Display.CellSize)

	bc, err := cfg.Board.ToBoard()
	require.NoError(t, err)
	assert.Equal(t, []board.Color{board.Red, board.Purple, board.Green}, bc.Colors)
	assert.InDelta(t, 0.75, bc.FallInterval, 1e-9)
	assert.True(t, bc.SplitDrop)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeFile(t, "[board\nwidth = 3"))
	assert.ErrorContains(t, err, "parse config")

	_, err = config.Load(writeFile(t, "[board]\nfall_interval = \"soon\""))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PUYO_BOARD_WIDTH", "10")
	t.Setenv("PUYO_SEED", "7")
	t.Setenv("PUYO_LOG_LEVEL", "warn")
	t.Setenv("PUYO_BOARD_COLORS", "blue,yellow")

	cfg, err := config.Load(writeFile(t, "[board]\nwidth = 8\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Board.Width)
	assert.Equal(t, uint64(7), cfg.Board.Seed)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, []string{"blue", "yellow"}, cfg.Board.Colors)
}

func TestToBoardRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.BoardConfig)
	}{
		{"unknown color", func(c *config.BoardConfig) { c.Colors = []string{"red", "orange"} }},
		{"none color", func(c *config.BoardConfig) { c.Colors = []string{"none"} }},
		{"zero width", func(c *config.BoardConfig) { c.Width = 0 }},
		{"zero interval", func(c *config.BoardConfig) { c.FallInterval = config.Duration{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc := config.Default().Board
			tt.modify(&bc)
			_, err := bc.ToBoard()
			assert.Error(t, err)
		})
	}
}

func TestNewLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puyo.log")
	log, err := config.NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("chain resolved")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"chain resolved"`)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		cfg  config.LoggingConfig
		want zapcore.Level
	}{
		{config.LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{config.LoggingConfig{Level: "error", Format: "json"}, zapcore.ErrorLevel},
		{config.LoggingConfig{Level: "loud", Format: "console"}, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.cfg.Level, func(t *testing.T) {
			log, err := config.NewLogger(tt.cfg)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.want-1))
			}
		})
	}
}
