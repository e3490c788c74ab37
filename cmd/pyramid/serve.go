package main

import (
	"github.com/lox/pyramid/cmd/pyramid/shared"
	"github.com/lox/pyramid/internal/server"
)

// ServeCmd runs the WebSocket session server
type ServeCmd struct {
	Addr string `help:"Listen address, defaults to the config's server block"`
	Seed int64  `help:"Seed for session deals, 0 picks one"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := shared.SetupLogger(g.level(cfg))
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.ServerAddress()
	}

	s := server.NewServer(addr, logger,
		server.WithRules(cfg.Rules()),
		server.WithSeed(cfg.Game.Seed),
	)

	ctx := shared.SetupSignalHandler(logger)
	return s.Serve(ctx)
}
