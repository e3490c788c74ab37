// Package config loads the HCL configuration shared by every pyramid
// command. A missing file yields the defaults; flags override file values.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pyramid/internal/bot"
	"github.com/lox/pyramid/internal/game"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the complete configuration
type Config struct {
	LogLevel   string
	Game       GameSettings
	Simulation SimulationSettings
	Server     ServerSettings
	TUI        TUISettings
}

// GameSettings holds the rule parameters every game is dealt with
type GameSettings struct {
	Seed              int64  `hcl:"seed,optional"`
	LossCheckInterval string `hcl:"loss_check_interval,optional"`
	PairScore         int    `hcl:"pair_score,optional"`
	KingScore         int    `hcl:"king_score,optional"`
}

// SimulationSettings controls `pyramid simulate`
type SimulationSettings struct {
	Games    int    `hcl:"games,optional"`
	Strategy string `hcl:"strategy,optional"`
	Workers  int    `hcl:"workers,optional"`
	MaxMoves int    `hcl:"max_moves,optional"`
	Timeout  string `hcl:"timeout,optional"`
	Report   string `hcl:"report,optional"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
}

// TUISettings controls the terminal front-end
type TUISettings struct {
	FPS     int    `hcl:"fps,optional"`
	LogFile string `hcl:"log_file,optional"`
}

// fileConfig mirrors Config with optional blocks
type fileConfig struct {
	LogLevel   string              `hcl:"log_level,optional"`
	Game       *GameSettings       `hcl:"game,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Server     *ServerSettings     `hcl:"server,block"`
	TUI        *TUISettings        `hcl:"tui,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Game: GameSettings{
			LossCheckInterval: game.DefaultLossCheckInterval.String(),
			PairScore:         game.DefaultPairScore,
			KingScore:         game.DefaultKingScore,
		},
		Simulation: SimulationSettings{
			Games:    1000,
			Strategy: "greedy",
			MaxMoves: 1000,
			Timeout:  "10m",
		},
		Server: ServerSettings{
			Address: "localhost",
			Port:    8080,
		},
		TUI: TUISettings{
			FPS:     30,
			LogFile: "pyramid.log",
		},
	}
}

// Load reads configuration from an HCL file. An empty filename or a file
// that does not exist yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. Blocks and attributes that are left out keep
// their default values.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	config.LogLevel = fc.LogLevel
	if fc.Game != nil {
		config.Game = *fc.Game
	}
	if fc.Simulation != nil {
		config.Simulation = *fc.Simulation
	}
	if fc.Server != nil {
		config.Server = *fc.Server
	}
	if fc.TUI != nil {
		config.TUI = *fc.TUI
	}
	config.applyDefaults()
	return config, nil
}

// applyDefaults fills zero values left by partially specified blocks
func (c *Config) applyDefaults() {
	d := Default()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Game.LossCheckInterval == "" {
		c.Game.LossCheckInterval = d.Game.LossCheckInterval
	}
	if c.Game.PairScore == 0 {
		c.Game.PairScore = d.Game.PairScore
	}
	if c.Game.KingScore == 0 {
		c.Game.KingScore = d.Game.KingScore
	}
	if c.Simulation.Games == 0 {
		c.Simulation.Games = d.Simulation.Games
	}
	if c.Simulation.Strategy == "" {
		c.Simulation.Strategy = d.Simulation.Strategy
	}
	if c.Simulation.MaxMoves == 0 {
		c.Simulation.MaxMoves = d.Simulation.MaxMoves
	}
	if c.Simulation.Timeout == "" {
		c.Simulation.Timeout = d.Simulation.Timeout
	}
	if c.Server.Address == "" {
		c.Server.Address = d.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.TUI.FPS == 0 {
		c.TUI.FPS = d.TUI.FPS
	}
	if c.TUI.LogFile == "" {
		c.TUI.LogFile = d.TUI.LogFile
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if d, err := time.ParseDuration(c.Game.LossCheckInterval); err != nil || d <= 0 {
		return fmt.Errorf("%w: game.loss_check_interval must be a positive duration, got %q", ErrInvalidConfig, c.Game.LossCheckInterval)
	}
	if c.Game.PairScore < 0 || c.Game.KingScore < 0 {
		return fmt.Errorf("%w: scores must not be negative", ErrInvalidConfig)
	}

	if c.Simulation.Games <= 0 {
		return fmt.Errorf("%w: simulation.games must be positive, got %d", ErrInvalidConfig, c.Simulation.Games)
	}
	if err := bot.Validate(c.Simulation.Strategy); err != nil {
		return fmt.Errorf("%w: simulation.strategy: %w", ErrInvalidConfig, err)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("%w: simulation.workers must not be negative", ErrInvalidConfig)
	}
	if c.Simulation.MaxMoves <= 0 {
		return fmt.Errorf("%w: simulation.max_moves must be positive", ErrInvalidConfig)
	}
	if d, err := time.ParseDuration(c.Simulation.Timeout); err != nil || d < 0 {
		return fmt.Errorf("%w: simulation.timeout must be a duration, got %q", ErrInvalidConfig, c.Simulation.Timeout)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: invalid port: %d", ErrInvalidConfig, c.Server.Port)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}

	if c.TUI.FPS < 1 || c.TUI.FPS > 120 {
		return fmt.Errorf("%w: tui.fps must be between 1 and 120, got %d", ErrInvalidConfig, c.TUI.FPS)
	}
	return nil
}

// Rules returns the game rules. Call Validate first; an unparsable interval
// falls back to the default.
func (c *Config) Rules() game.Rules {
	interval, err := time.ParseDuration(c.Game.LossCheckInterval)
	if err != nil {
		interval = game.DefaultLossCheckInterval
	}
	return game.Rules{
		PairScore:         c.Game.PairScore,
		KingScore:         c.Game.KingScore,
		LossCheckInterval: interval,
	}
}

// SimulationTimeout returns the parsed simulation timeout, 0 meaning none
func (c *Config) SimulationTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Simulation.Timeout)
	return d
}

// ServerAddress returns the host:port the server listens on
func (c *Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Address, strconv.Itoa(c.Server.Port))
}

// FrameInterval returns the TUI tick period for the configured FPS
func (c *Config) FrameInterval() time.Duration {
	if c.TUI.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TUI.FPS)
}
