package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/pyramid/internal/game"
	"github.com/lox/pyramid/internal/pyramid"
)

// DealCmd prints the pyramid dealt for a seed
type DealCmd struct {
	Seed  int64 `arg:"" optional:"" help:"Deal seed, 0 picks one"`
	Rules bool  `help:"Print the rules instead of a deal"`
}

func (c *DealCmd) Run(g *Globals) error {
	if c.Rules {
		_, err := fmt.Fprint(os.Stdout, game.Instructions)
		return err
	}

	cfg, err := g.load()
	if err != nil {
		return err
	}
	seed := c.Seed
	if seed == 0 {
		seed = cfg.Game.Seed
	}

	printDeal(os.Stdout, game.New(game.WithSeed(seed), game.WithRules(cfg.Rules())).Snapshot())
	return nil
}

// printDeal writes the pyramid as card codes, free cards marked with *
func printDeal(w io.Writer, s game.Snapshot) {
	_, _ = fmt.Fprintf(w, "Seed %d\n\n", s.Seed)
	for row := 0; row < pyramid.Rows; row++ {
		cells := make([]string, 0, row+1)
		for col := 0; col <= row; col++ {
			slot, _ := s.Slot(row, col)
			switch {
			case !slot.Card.InPlay:
				cells = append(cells, "  ")
			case slot.Free:
				cells = append(cells, slot.Card.Code+"*")
			default:
				cells = append(cells, slot.Card.Code+" ")
			}
		}
		indent := strings.Repeat("  ", pyramid.Rows-1-row)
		_, _ = fmt.Fprintln(w, strings.TrimRight(indent+strings.Join(cells, " "), " "))
	}
	_, _ = fmt.Fprintf(w, "\nStock: %d cards\n", s.StockCount)
}
