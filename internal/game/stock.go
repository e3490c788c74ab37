package game

// Draw turns over the next stock card onto the waste. When the stock is
// empty it is first rebuilt from the backup, keeping only cards still in
// play in their original order. Every call counts as a move, even when
// nothing is left to draw. Any pending selection is dropped.
func (g *Game) Draw() bool {
	if g.Over() {
		return false
	}
	g.moves++
	g.clearSelection()

	if g.stock.IsEmpty() {
		g.recycle()
	}

	card, ok := g.stock.PopFront()
	if !ok {
		g.logger.Debug("Nothing left to draw")
		return false
	}
	card.FaceUp = true
	g.waste.PushBack(card)
	g.currentWaste = card
	g.drawCursor++

	g.logger.Debug("Drew card", "card", card.Code(), "stock", g.stock.Len())
	g.publish(CardDrawnEvent{Card: *card, StockLeft: g.stock.Len(), timestamp: g.clock.Now()})
	return true
}

// CanDraw reports whether Draw would turn over a card
func (g *Game) CanDraw() bool {
	return !g.stock.IsEmpty() || g.backupInPlay() > 0
}

func (g *Game) recycle() {
	g.stock.Clear()
	for c := range g.stockBackup.All() {
		if c.InPlay {
			g.stock.PushBack(c)
		}
	}
	g.drawCursor = 0
	if g.stock.IsEmpty() {
		return
	}
	g.logger.Debug("Recycled stock", "cards", g.stock.Len())
	g.publish(StockRecycledEvent{Cards: g.stock.Len(), timestamp: g.clock.Now()})
}

func (g *Game) backupInPlay() int {
	n := 0
	for c := range g.stockBackup.All() {
		if c.InPlay {
			n++
		}
	}
	return n
}
