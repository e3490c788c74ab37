package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pyramid/internal/game"
)

// Random picks a uniformly random legal move
type Random struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandom creates a random strategy drawing from rng
func NewRandom(rng *rand.Rand, logger *log.Logger) *Random {
	return &Random{rng: rng, logger: logger.WithPrefix("bot")}
}

// Name returns "random"
func (b *Random) Name() string { return "random" }

// Choose picks one of moves at random
func (b *Random) Choose(_ *game.Game, moves []game.Move) game.Move {
	m := moves[b.rng.IntN(len(moves))]
	b.logger.Debug("Chose move", "move", m, "options", len(moves))
	return m
}
