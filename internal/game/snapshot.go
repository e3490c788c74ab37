package game

import (
	"time"

	"github.com/lox/pyramid/internal/deck"
	"github.com/lox/pyramid/internal/pyramid"
)

// CardView is a read-only copy of a card for renderers
type CardView struct {
	Rank   deck.Rank `json:"rank"`
	Suit   deck.Suit `json:"suit"`
	Code   string    `json:"code"`
	FaceUp bool      `json:"faceUp"`
	InPlay bool      `json:"inPlay"`
}

func viewOf(c *deck.Card) CardView {
	return CardView{Rank: c.Rank, Suit: c.Suit, Code: c.Code(), FaceUp: c.FaceUp, InPlay: c.InPlay}
}

// Card rebuilds the card value
func (v CardView) Card() deck.Card {
	return deck.Card{Rank: v.Rank, Suit: v.Suit, FaceUp: v.FaceUp, InPlay: v.InPlay}
}

// SlotView is the per-slot state handed to renderers
type SlotView struct {
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	Card     CardView `json:"card"`
	Blocked  bool     `json:"blocked"`
	Free     bool     `json:"free"`
	Selected bool     `json:"selected"`
}

// WasteView is the exposed waste card
type WasteView struct {
	Card     CardView `json:"card"`
	Selected bool     `json:"selected"`
}

// Snapshot is a self-contained copy of everything a renderer needs for one
// frame. It shares no memory with the Game.
type Snapshot struct {
	GameID     string                 `json:"gameId"`
	Seed       int64                  `json:"seed"`
	Slots      [pyramid.Size]SlotView `json:"slots"`
	Waste      *WasteView             `json:"waste,omitempty"`
	WasteCount int                    `json:"wasteCount"`
	StockCount int                    `json:"stockCount"`
	StockEmpty bool                   `json:"stockEmpty"`
	CanDraw    bool                   `json:"canDraw"`
	DrawCursor int                    `json:"drawCursor"`
	Remaining  int                    `json:"remaining"`
	Score      int                    `json:"score"`
	Moves      int                    `json:"moves"`
	Elapsed    time.Duration          `json:"elapsed"`
	Won        bool                   `json:"won"`
	Lost       bool                   `json:"lost"`
}

// Snapshot captures the current state
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		GameID:     g.id,
		Seed:       g.seed,
		WasteCount: g.waste.Len(),
		StockCount: g.stock.Len(),
		StockEmpty: g.stock.IsEmpty(),
		CanDraw:    g.CanDraw(),
		DrawCursor: g.drawCursor,
		Remaining:  g.pyramid.Remaining(),
		Score:      g.score,
		Moves:      g.moves,
		Elapsed:    g.elapsed,
		Won:        g.won,
		Lost:       g.lost,
	}

	for i, slot := range g.pyramid.All() {
		s.Slots[i] = SlotView{
			Row:      slot.Row,
			Col:      slot.Col,
			Card:     viewOf(slot.Card),
			Blocked:  slot.Blocked,
			Free:     g.IsFree(i),
			Selected: g.isSelected(slot.Card),
		}
	}

	if c := g.currentWaste; c != nil && c.InPlay {
		s.Waste = &WasteView{Card: viewOf(c), Selected: g.isSelected(c)}
	}
	return s
}

// Slot returns the view of (row, col)
func (s Snapshot) Slot(row, col int) (SlotView, bool) {
	if !pyramid.Valid(row, col) {
		return SlotView{}, false
	}
	return s.Slots[pyramid.Index(row, col)], true
}
