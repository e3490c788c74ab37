package game

import (
	"github.com/lox/pyramid/internal/deck"
	"github.com/lox/pyramid/internal/pyramid"
)

// SelectSlot selects the card at (row, col). Blocked slots, retired cards
// and out-of-range positions are ignored. It reports whether the selection
// or board changed.
func (g *Game) SelectSlot(row, col int) bool {
	if g.Over() || !pyramid.Valid(row, col) {
		return false
	}
	i := pyramid.Index(row, col)
	return g.selectCard(g.pyramid.Slot(i).Card, i)
}

// SelectWaste selects the exposed waste card, if any
func (g *Game) SelectWaste() bool {
	if g.Over() || g.currentWaste == nil {
		return false
	}
	return g.selectCard(g.currentWaste, pyramid.None)
}

// Selection returns the pending selection as targets
func (g *Game) Selection() []Target {
	var out []Target
	for _, s := range []struct {
		card *deck.Card
		slot int
	}{{g.selected1, g.selectedSlot1}, {g.selected2, g.selectedSlot2}} {
		if s.card != nil {
			out = append(out, freeCard{card: s.card, slot: s.slot}.target())
		}
	}
	return out
}

// selectCard drives the selection state machine. slot is the arena index
// the card came from, or pyramid.None for the waste.
func (g *Game) selectCard(card *deck.Card, slot int) bool {
	if card == nil || !card.InPlay {
		return false
	}
	if slot != pyramid.None && !g.IsFree(slot) {
		return false
	}

	if card.IsKing() {
		g.selected1, g.selectedSlot1 = card, slot
		g.selected2, g.selectedSlot2 = nil, pyramid.None
		g.resolve()
		return true
	}

	switch {
	case g.selected1 == nil:
		g.selected1, g.selectedSlot1 = card, slot
		g.logger.Debug("Selected card", "card", card.Code())
		g.publish(CardSelectedEvent{Card: *card, Target: freeCard{card, slot}.target(), timestamp: g.clock.Now()})
	case g.selected1 == card:
		g.logger.Debug("Deselected card", "card", card.Code())
		g.clearSelection()
		g.publish(SelectionClearedEvent{timestamp: g.clock.Now()})
	default:
		g.selected2, g.selectedSlot2 = card, slot
		g.resolve()
	}
	return true
}

// resolve applies the pending selection: a lone King is removed, a pair is
// removed when it sums to 13 and otherwise the selection is dropped.
func (g *Game) resolve() {
	c1, c2 := g.selected1, g.selected2

	switch {
	case c1 != nil && c2 == nil && IsKingRemovable(c1):
		g.retire(c1)
		g.score += g.rules.KingScore
		g.moves++
		g.clearSelection()
		g.logger.Debug("Removed king", "card", c1.Code(), "score", g.score)
		g.publish(KingRemovedEvent{Card: *c1, Score: g.score, timestamp: g.clock.Now()})
		g.afterRemoval()

	case c1 != nil && c2 != nil && IsValidPair(c1, c2):
		g.retire(c1)
		g.retire(c2)
		g.score += g.rules.PairScore
		g.moves++
		g.clearSelection()
		g.logger.Debug("Removed pair", "first", c1.Code(), "second", c2.Code(), "score", g.score)
		g.publish(PairRemovedEvent{First: *c1, Second: *c2, Score: g.score, timestamp: g.clock.Now()})
		g.afterRemoval()

	case c1 != nil && c2 != nil:
		g.moves++
		g.clearSelection()
		g.logger.Debug("Rejected pair", "first", c1.Code(), "second", c2.Code())
		g.publish(PairRejectedEvent{First: *c1, Second: *c2, timestamp: g.clock.Now()})
	}
}

// retire takes a card out of play. Retiring the exposed waste card removes
// it from the waste history and from a recycled stock, then exposes the
// previous draw.
func (g *Game) retire(c *deck.Card) {
	c.InPlay = false
	if c != g.currentWaste {
		return
	}
	// a recycled card can be drawn more than once
	g.waste.RemoveAll(c)
	g.stock.RemoveAll(c)
	g.currentWaste = nil
	if back, ok := g.waste.Back(); ok {
		g.currentWaste = back
	}
}

func (g *Game) afterRemoval() {
	g.pyramid.UpdateBlocked()
	g.CheckWin()
}

func (g *Game) clearSelection() {
	g.selected1, g.selectedSlot1 = nil, pyramid.None
	g.selected2, g.selectedSlot2 = nil, pyramid.None
}

func (g *Game) isSelected(c *deck.Card) bool {
	return c != nil && (c == g.selected1 || c == g.selected2)
}
