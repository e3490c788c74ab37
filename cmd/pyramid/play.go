package main

import (
	"github.com/lox/pyramid/cmd/pyramid/shared"
	"github.com/lox/pyramid/internal/tui"
)

// PlayCmd runs the interactive terminal game
type PlayCmd struct {
	Seed    int64  `help:"Deal seed, 0 picks one"`
	LogFile string `type:"path" help:"Log file, since the game owns the terminal"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.LogFile != "" {
		cfg.TUI.LogFile = c.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := shared.SetupFileLogger(cfg.TUI.LogFile, g.level(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx := shared.SetupSignalHandler(logger)
	return tui.Run(ctx, tui.Options{
		Seed:          cfg.Game.Seed,
		Rules:         cfg.Rules(),
		FrameInterval: cfg.FrameInterval(),
		Logger:        logger,
	})
}
