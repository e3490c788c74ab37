package game

import (
	"github.com/lox/pyramid/internal/deck"
	"github.com/lox/pyramid/internal/pyramid"
)

// IsKingRemovable reports whether c is a King still in play
func IsKingRemovable(c *deck.Card) bool {
	return c != nil && c.InPlay && c.IsKing()
}

// IsValidPair reports whether two in-play cards sum to 13
func IsValidPair(c1, c2 *deck.Card) bool {
	if c1 == nil || c2 == nil {
		return false
	}
	if !c1.InPlay || !c2.InPlay {
		return false
	}
	return int(c1.Rank)+int(c2.Rank) == deck.PairSum
}

// IsFree reports whether the pyramid slot at arena index slot can be
// selected. Waste cards have no covering slots and never go through here.
func (g *Game) IsFree(slot int) bool {
	return g.pyramid.IsFree(slot)
}

// freeCards returns every card a player could select right now: free
// pyramid cards in row-major order followed by the waste card
func (g *Game) freeCards() []freeCard {
	free := make([]freeCard, 0, pyramid.Rows+1)
	for _, i := range g.pyramid.FreeSlots() {
		free = append(free, freeCard{card: g.pyramid.Slot(i).Card, slot: i})
	}
	if g.currentWaste != nil && g.currentWaste.InPlay {
		free = append(free, freeCard{card: g.currentWaste, slot: pyramid.None})
	}
	return free
}

type freeCard struct {
	card *deck.Card
	slot int
}

func (f freeCard) target() Target {
	if f.slot == pyramid.None {
		return WasteTarget()
	}
	row, col := pyramid.Position(f.slot)
	return SlotTarget(row, col)
}
