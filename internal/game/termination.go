package game

import "time"

// CheckWin marks the game won once every pyramid card is out of play,
// whatever is left in the stock or waste
func (g *Game) CheckWin() bool {
	if g.won {
		return true
	}
	if g.lost || !g.pyramid.Cleared() {
		return false
	}
	g.won = true
	g.logger.Info("Game won", "id", g.id, "score", g.score, "moves", g.moves)
	g.publish(GameWonEvent{GameID: g.id, Score: g.score, Moves: g.moves, Elapsed: g.elapsed, timestamp: g.clock.Now()})
	return true
}

// CheckLoss marks the game lost when no King or pair is available among the
// free cards and the stock cannot produce another card
func (g *Game) CheckLoss() bool {
	if g.lost {
		return true
	}
	if g.won || !g.noMovesLeft() {
		return false
	}
	g.lost = true
	g.clearSelection()
	g.logger.Info("Game lost", "id", g.id, "score", g.score, "remaining", g.pyramid.Remaining())
	g.publish(GameLostEvent{GameID: g.id, Score: g.score, Moves: g.moves, Remaining: g.pyramid.Remaining(), timestamp: g.clock.Now()})
	return true
}

// noMovesLeft evaluates the loss rule without changing state
func (g *Game) noMovesLeft() bool {
	free := g.freeCards()
	for _, f := range free {
		if IsKingRemovable(f.card) {
			return false
		}
	}
	for i := range free {
		for j := i + 1; j < len(free); j++ {
			if IsValidPair(free[i].card, free[j].card) {
				return false
			}
		}
	}
	return !g.CanDraw()
}

// Update advances game time by dt. The loss check runs at most once per
// loss-check interval of game time. Terminal games do not advance.
func (g *Game) Update(dt time.Duration) {
	if g.Over() || dt <= 0 {
		return
	}
	g.elapsed += dt
	g.lossTimer += dt
	if g.lossTimer >= g.rules.LossCheckInterval {
		g.lossTimer = 0
		g.CheckLoss()
	}
}
