// Package game implements the Pyramid Solitaire rules engine.
//
// The main type is Game, which owns the 52 cards of one deal, the pyramid
// dependency graph, the stock, the stock backup and the waste history. All
// methods are synchronous and total: an invalid click is an expected input
// and simply leaves the state unchanged.
//
// # Basic Usage
//
//	g := game.New(game.WithSeed(42))
//	g.Click(game.SlotTarget(6, 0)) // select a free pyramid card
//	g.Click(game.WasteTarget())    // pair it with the waste card
//	g.Click(game.StockTarget())    // draw from the stock
//	g.Update(16 * time.Millisecond)
//	snap := g.Snapshot()
//
// # Deterministic Testing
//
// A seed fully determines the deal. For hand-built layouts use WithDeck,
// which deals the given 52 cards in order without shuffling:
//
//	g := game.New(game.WithDeck(cards))
//
// # Frame Model
//
// Front-ends call Update once per frame. Update accumulates elapsed time
// and runs the loss check at most once per loss-check interval. Win is
// checked after every removal.
package game
