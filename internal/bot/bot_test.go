package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pyramid/internal/deck"
	"github.com/lox/pyramid/internal/game"
	"github.com/lox/pyramid/internal/randutil"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// orderedGame deals an unshuffled deck. The bottom row is then
// 9D TD JD QD KD AC 2C.
func orderedGame() *game.Game {
	return game.New(game.WithDeck(deck.New()), game.WithLogger(quietLogger()))
}

func TestNew(t *testing.T) {
	assert.Equal(t, []string{"greedy", "random"}, Names())

	s, err := New("greedy", randutil.New(1), quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "greedy", s.Name())

	_, err = New("tag", randutil.New(1), quietLogger())
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestGreedyPrefersPairsOverKingsAndDraws(t *testing.T) {
	g := orderedGame()
	moves := g.LegalMoves()
	require.NotEmpty(t, moves)

	m := NewGreedy(quietLogger()).Choose(g, moves)
	assert.Equal(t, game.MovePair, m.Kind)
	assert.Equal(t, []string{"JD", "2C"}, m.Cards)
}

func TestGreedyPrefersPyramidOverWaste(t *testing.T) {
	moves := []game.Move{
		{Kind: game.MovePair, First: game.SlotTarget(6, 0), Second: game.WasteTarget()},
		{Kind: game.MovePair, First: game.SlotTarget(6, 1), Second: game.SlotTarget(6, 2)},
		{Kind: game.MoveDraw, First: game.StockTarget()},
	}
	m := NewGreedy(quietLogger()).Choose(orderedGame(), moves)
	assert.Equal(t, moves[1], m)
}

func TestGreedyDrawsWhenNothingElse(t *testing.T) {
	moves := []game.Move{{Kind: game.MoveDraw, First: game.StockTarget()}}
	assert.Equal(t, game.MoveDraw, NewGreedy(quietLogger()).Choose(orderedGame(), moves).Kind)
}

func TestRandomIsSeeded(t *testing.T) {
	g := orderedGame()
	moves := g.LegalMoves()
	require.Greater(t, len(moves), 1)

	pick := func(seed int64) []game.Move {
		r := NewRandom(randutil.New(seed), quietLogger())
		out := make([]game.Move, 20)
		for i := range out {
			out[i] = r.Choose(g, moves)
		}
		return out
	}

	first := pick(3)
	assert.Equal(t, first, pick(3))

	seen := make(map[string]bool)
	for _, m := range first {
		assert.Contains(t, moves, m)
		seen[m.String()] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestStepPlaysToTheEnd(t *testing.T) {
	play := func() (int, int, bool) {
		g := game.New(game.WithSeed(99), game.WithLogger(quietLogger()))
		s := NewGreedy(quietLogger())
		for i := 0; i < 2000 && !g.Over(); i++ {
			if !Step(g, s) {
				break
			}
		}
		return g.Score(), g.Moves(), g.Over()
	}

	score, moves, _ := play()
	score2, moves2, _ := play()
	assert.Equal(t, score, score2)
	assert.Equal(t, moves, moves2)
	assert.Positive(t, moves)
}

func TestStepStopsOnceOver(t *testing.T) {
	g := orderedGame()
	s := NewRandom(randutil.New(5), quietLogger())
	steps := 0
	for steps < 5000 && Step(g, s) {
		steps++
	}
	if g.Over() {
		assert.False(t, Step(g, s))
		assert.Empty(t, g.LegalMoves())
	}
	assert.Positive(t, steps)
}
