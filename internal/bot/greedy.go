package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/pyramid/internal/game"
	"github.com/lox/pyramid/internal/pyramid"
)

// Greedy takes the move that scores the most right now. Among equal scores
// it prefers moves that clear pyramid cards, then cards from lower rows,
// since those uncover the most. It only draws when nothing can be removed.
type Greedy struct {
	logger *log.Logger
}

// NewGreedy creates a greedy strategy
func NewGreedy(logger *log.Logger) *Greedy {
	return &Greedy{logger: logger.WithPrefix("bot")}
}

// Name returns "greedy"
func (b *Greedy) Name() string { return "greedy" }

// Choose returns the highest valued move, keeping the earliest on ties
func (b *Greedy) Choose(g *game.Game, moves []game.Move) game.Move {
	rules := g.Rules()
	best, bestValue := moves[0], -1
	for _, m := range moves {
		v := value(m, rules)
		if v > bestValue {
			best, bestValue = m, v
		}
	}
	b.logger.Debug("Chose move", "move", best, "value", bestValue, "options", len(moves))
	return best
}

// value ranks a move: points first, then pyramid depth of the removed cards
func value(m game.Move, rules game.Rules) int {
	switch m.Kind {
	case game.MoveKing:
		return rules.KingScore*100 + depth(m.First)
	case game.MovePair:
		return rules.PairScore*100 + depth(m.First) + depth(m.Second)
	default:
		return 0
	}
}

// depth is 1 for the top of the pyramid up to 7 for the bottom row, and 0
// for the waste
func depth(t game.Target) int {
	if t.Kind != game.TargetSlot || !pyramid.Valid(t.Row, t.Col) {
		return 0
	}
	return t.Row + 1
}
