package game

// MoveKind classifies a legal move
type MoveKind int

const (
	MoveKing MoveKind = iota
	MovePair
	MoveDraw
)

// String returns the string representation of a move kind
func (k MoveKind) String() string {
	switch k {
	case MoveKing:
		return "king"
	case MovePair:
		return "pair"
	case MoveDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Move is one legal action. Kings use First only; draws use neither.
type Move struct {
	Kind   MoveKind `json:"kind"`
	First  Target   `json:"first"`
	Second Target   `json:"second"`
	Cards  []string `json:"cards,omitempty"`
}

// String returns a short description of the move
func (m Move) String() string {
	switch m.Kind {
	case MoveKing:
		return "king " + m.First.String()
	case MovePair:
		return "pair " + m.First.String() + "+" + m.Second.String()
	default:
		return m.Kind.String()
	}
}

// LegalMoves lists every King removal and pair available among the free
// cards, followed by a draw when the stock can produce a card. An empty
// result means the loss rule holds.
func (g *Game) LegalMoves() []Move {
	if g.Over() {
		return nil
	}

	free := g.freeCards()
	var moves []Move
	for _, f := range free {
		if IsKingRemovable(f.card) {
			moves = append(moves, Move{
				Kind:  MoveKing,
				First: f.target(),
				Cards: []string{f.card.Code()},
			})
		}
	}
	for i := range free {
		for j := i + 1; j < len(free); j++ {
			if IsValidPair(free[i].card, free[j].card) {
				moves = append(moves, Move{
					Kind:   MovePair,
					First:  free[i].target(),
					Second: free[j].target(),
					Cards:  []string{free[i].card.Code(), free[j].card.Code()},
				})
			}
		}
	}
	if g.CanDraw() {
		moves = append(moves, Move{Kind: MoveDraw, First: StockTarget()})
	}
	return moves
}

// Apply plays a move through the normal click path, starting from an empty
// selection. It reports whether the move changed the game.
func (g *Game) Apply(m Move) bool {
	if g.Over() {
		return false
	}
	g.clearSelection()

	switch m.Kind {
	case MoveKing:
		return g.Click(m.First)
	case MovePair:
		return g.Click(m.First) && g.Click(m.Second)
	case MoveDraw:
		return g.Draw()
	default:
		return false
	}
}
