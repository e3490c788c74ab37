package main

import (
	"github.com/lox/pyramid/internal/config"
)

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" type:"path" default:"pyramid.hcl" help:"HCL config file, ignored if missing"`
	LogLevel string `help:"Log level (debug, info, warn, error), overriding the config file"`
}

// load reads the config file. Commands apply their flags before validating.
func (g *Globals) load() (*config.Config, error) {
	return config.Load(g.Config)
}

// level picks the log level: flag, then config, then info
func (g *Globals) level(cfg *config.Config) string {
	if g.LogLevel != "" {
		return g.LogLevel
	}
	if cfg != nil && cfg.LogLevel != "" {
		return cfg.LogLevel
	}
	return "info"
}
