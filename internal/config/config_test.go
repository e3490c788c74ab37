package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pyramid/internal/bot"
	"github.com/lox/pyramid/internal/game"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyramid.hcl")
	src := `
game {
  seed                = 42
  loss_check_interval = "500ms"
  pair_score          = 25
}

simulation {
  games    = 200
  strategy = "random"
  workers  = 2
}

server {
  port = 9090
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, 25, cfg.Game.PairScore)
	assert.Equal(t, game.DefaultKingScore, cfg.Game.KingScore, "unset attribute keeps default")
	assert.Equal(t, game.Rules{PairScore: 25, KingScore: 10, LossCheckInterval: 500 * time.Millisecond}, cfg.Rules())

	assert.Equal(t, 200, cfg.Simulation.Games)
	assert.Equal(t, "random", cfg.Simulation.Strategy)
	assert.Equal(t, 2, cfg.Simulation.Workers)
	assert.Equal(t, 1000, cfg.Simulation.MaxMoves)
	assert.Equal(t, 10*time.Minute, cfg.SimulationTimeout())

	assert.Equal(t, "localhost:9090", cfg.ServerAddress())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, Default().TUI, cfg.TUI, "missing block keeps defaults")
	assert.Equal(t, time.Second/30, cfg.FrameInterval())
}

func TestLogLevelIsTopLevel(t *testing.T) {
	cfg, err := Parse([]byte(`
log_level = "debug"

server {
  port = 9000
}
`), "test.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9000, cfg.Server.Port)

	_, err = Parse([]byte(`server { log_level = "debug" }`), "test.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"syntax", `game {`, "failed to parse HCL file"},
		{"unknown attribute", `game { colour = "red" }`, "failed to decode HCL"},
		{"wrong type", `simulation { games = "many" }`, "failed to decode HCL"},
		{"unknown block", `dealer {}`, "failed to decode HCL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "test.hcl")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad interval", func(c *Config) { c.Game.LossCheckInterval = "soon" }, "loss_check_interval"},
		{"zero interval", func(c *Config) { c.Game.LossCheckInterval = "0s" }, "loss_check_interval"},
		{"negative score", func(c *Config) { c.Game.KingScore = -1 }, "scores"},
		{"no games", func(c *Config) { c.Simulation.Games = -5 }, "simulation.games"},
		{"unknown strategy", func(c *Config) { c.Simulation.Strategy = "psychic" }, "simulation.strategy"},
		{"negative workers", func(c *Config) { c.Simulation.Workers = -1 }, "workers"},
		{"bad timeout", func(c *Config) { c.Simulation.Timeout = "forever" }, "simulation.timeout"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "invalid port"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"fps too high", func(c *Config) { c.TUI.FPS = 500 }, "tui.fps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateStrategyWrapsBotError(t *testing.T) {
	cfg := Default()
	cfg.Simulation.Strategy = "psychic"
	assert.ErrorIs(t, cfg.Validate(), bot.ErrUnknownStrategy)
}
