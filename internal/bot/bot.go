package bot

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/pyramid/internal/game"
)

// ErrUnknownStrategy is returned by New for a name it does not recognise
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy picks one move from the engine's legal moves. moves is never
// empty when Choose is called.
type Strategy interface {
	Name() string
	Choose(g *game.Game, moves []game.Move) game.Move
}

// Factory builds a strategy from a random source and logger
type Factory func(rng *rand.Rand, logger *log.Logger) Strategy

var registry = map[string]Factory{
	"greedy": func(_ *rand.Rand, logger *log.Logger) Strategy { return NewGreedy(logger) },
	"random": func(rng *rand.Rand, logger *log.Logger) Strategy { return NewRandom(rng, logger) },
}

// New creates the named strategy
func New(name string, rng *rand.Rand, logger *log.Logger) (Strategy, error) {
	if err := Validate(name); err != nil {
		return nil, err
	}
	return registry[name](rng, logger), nil
}

// Validate reports whether name is a registered strategy
func Validate(name string) error {
	if _, ok := registry[name]; !ok {
		return fmt.Errorf("%w: %q (want one of %v)", ErrUnknownStrategy, name, Names())
	}
	return nil
}

// Names lists the registered strategy names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Step asks the strategy for one move and applies it. It returns false when
// the game is over or has no legal move left, in which case the loss check
// is run so the game reaches its terminal state.
func Step(g *game.Game, s Strategy) bool {
	moves := g.LegalMoves()
	if len(moves) == 0 {
		g.CheckLoss()
		return false
	}
	g.Apply(s.Choose(g, moves))
	return true
}
