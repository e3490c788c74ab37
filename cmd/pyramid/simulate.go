package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pyramid/cmd/pyramid/shared"
	"github.com/lox/pyramid/internal/bot"
	"github.com/lox/pyramid/internal/config"
	"github.com/lox/pyramid/internal/simulator"
)

// SimulateCmd plays many seeded games with a bot strategy
type SimulateCmd struct {
	Games    int           `short:"n" help:"Number of games to play"`
	Strategy string        `short:"s" help:"Bot strategy (${strategies})"`
	Seed     int64         `help:"Base seed, game i uses seed+i (0 picks one)"`
	Workers  int           `short:"w" help:"Parallel workers, 0 uses every CPU"`
	MaxMoves int           `help:"Moves before a game counts as stalled"`
	Timeout  time.Duration `help:"Abort the whole run after this long"`
	Report   string        `short:"o" type:"path" help:"Write a JSON report to this file"`
	Against  string        `help:"Replay the same deals with this strategy and compare"`
	Quiet    bool          `short:"q" help:"Hide the progress line"`
}

// apply overrides the config's simulation block with any flags that were set
func (c *SimulateCmd) apply(cfg *config.Config) {
	if c.Games != 0 {
		cfg.Simulation.Games = c.Games
	}
	if c.Strategy != "" {
		cfg.Simulation.Strategy = c.Strategy
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.Workers != 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.MaxMoves != 0 {
		cfg.Simulation.MaxMoves = c.MaxMoves
	}
	if c.Timeout != 0 {
		cfg.Simulation.Timeout = c.Timeout.String()
	}
	if c.Report != "" {
		cfg.Simulation.Report = c.Report
	}
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.Against != "" {
		if err := bot.Validate(c.Against); err != nil {
			return fmt.Errorf("--against: %w", err)
		}
	}

	logger, err := shared.SetupLogger(g.level(cfg))
	if err != nil {
		return err
	}
	ctx := shared.SetupSignalHandler(logger)

	clock := quartz.NewReal()
	simCfg := simulator.Config{
		Games:    cfg.Simulation.Games,
		Strategy: cfg.Simulation.Strategy,
		Seed:     cfg.Game.Seed,
		Workers:  cfg.Simulation.Workers,
		MaxMoves: cfg.Simulation.MaxMoves,
		Timeout:  cfg.SimulationTimeout(),
		Rules:    cfg.Rules(),
		Logger:   logger,
		Clock:    clock,
	}
	sim := simulator.New(c.withProgress(simCfg, clock))
	if c.Against != "" {
		againstCfg := sim.Config()
		againstCfg.Strategy = c.Against
		return c.compare(ctx, logger, cfg.Simulation.Report, sim, simulator.New(c.withProgress(againstCfg, clock)))
	}

	start := clock.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	report := simulator.NewReport(sim.Config(), stats, clock.Since(start))
	report.PrintSummary(os.Stdout)

	if path := cfg.Simulation.Report; path != "" {
		if err := report.WriteFile(path); err != nil {
			return err
		}
		logger.Info("Report written", "path", path)
	}
	return nil
}

// withProgress gives each run its own progress line unless --quiet
func (c *SimulateCmd) withProgress(cfg simulator.Config, clock quartz.Clock) simulator.Config {
	if !c.Quiet {
		cfg.Progress = shared.NewProgress(os.Stderr, clock).Update
	}
	return cfg
}

func (c *SimulateCmd) compare(ctx context.Context, logger *log.Logger, path string, base, against *simulator.Simulator) error {
	result, err := simulator.Compare(ctx, base, against)
	if err != nil {
		return err
	}
	result.PrintSummary(os.Stdout)

	if path != "" {
		if err := result.WriteFile(path); err != nil {
			return err
		}
		logger.Info("Comparison written", "path", path)
	}
	return nil
}
