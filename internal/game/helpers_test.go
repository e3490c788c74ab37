package game

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/pyramid/internal/deck"
	"github.com/lox/pyramid/internal/gameid"
	"github.com/lox/pyramid/internal/pyramid"
	"github.com/lox/pyramid/internal/randutil"
)

// Arena indices of the bottom row and the first stock position
const (
	bottom0 = 21
	stock0  = pyramid.Size
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// arrange builds a 52-card order with the given codes at the given deal
// positions. Positions 0-27 are pyramid slots in row-major order and 28-51
// are the stock from front to back. Unlisted positions get the remaining
// cards in standard deck order.
func arrange(t *testing.T, at map[int]string) []deck.Card {
	t.Helper()
	order := make([]deck.Card, deck.Size)
	placed := make([]bool, deck.Size)
	used := make(map[string]bool)

	for pos, code := range at {
		c, err := deck.ParseCard(code)
		require.NoError(t, err)
		require.False(t, used[c.Code()], "card %s placed twice", code)
		require.True(t, pos >= 0 && pos < deck.Size, "position %d", pos)
		order[pos] = c
		placed[pos] = true
		used[c.Code()] = true
	}

	rest := deck.New()
	next := 0
	for pos := range order {
		if placed[pos] {
			continue
		}
		for used[rest[next].Code()] {
			next++
		}
		order[pos] = rest[next]
		next++
	}
	return order
}

type testGame struct {
	*Game
	clock    *quartz.Mock
	recorder *EventRecorder
}

func newTestGame(t *testing.T, opts ...Option) *testGame {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	recorder := &EventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(recorder)

	base := []Option{
		WithSeed(42),
		WithLogger(quietLogger()),
		WithClock(clock),
		WithEventBus(bus),
		WithIDGenerator(gameid.NewGenerator(clock, randutil.New(7))),
	}
	g := New(append(base, opts...)...)
	return &testGame{Game: g, clock: clock, recorder: recorder}
}

func newArrangedGame(t *testing.T, at map[int]string, opts ...Option) *testGame {
	t.Helper()
	return newTestGame(t, append([]Option{WithDeck(arrange(t, at))}, opts...)...)
}

// card returns the card dealt at deal position pos
func (g *testGame) card(pos int) *deck.Card {
	return &g.cards[pos]
}

// retirePyramidExcept takes every pyramid card out of play except the
// listed arena indices
func (g *testGame) retirePyramidExcept(keep ...int) {
	kept := make(map[int]bool)
	for _, k := range keep {
		kept[k] = true
	}
	for i := 0; i < pyramid.Size; i++ {
		if !kept[i] {
			g.cards[i].InPlay = false
		}
	}
	g.pyramid.UpdateBlocked()
}

// exhaustStock empties the stock and retires every backup card
func (g *testGame) exhaustStock() {
	for c := range g.stockBackup.All() {
		c.InPlay = false
	}
	g.stock.Clear()
	g.waste.Clear()
	g.currentWaste = nil
}

func codes(cards []*deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code()
	}
	return out
}
