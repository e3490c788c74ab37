package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lox/pyramid/internal/bot"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play Pyramid Solitaire in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Play many games with a bot and report statistics"`
	Serve    ServeCmd         `cmd:"" help:"Serve one game per WebSocket connection"`
	Deal     DealCmd          `cmd:"" help:"Print the deal for a seed"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pyramid"),
		kong.Description("Pyramid Solitaire for the terminal, bots and the network"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":    version,
			"strategies": strings.Join(bot.Names(), ", "),
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
