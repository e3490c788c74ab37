// Package pyramid implements the 7-row dependency graph of Pyramid
// Solitaire. Slots live in a flat arena and refer to each other by index;
// the Pyramid owns every slot and slots never own one another.
package pyramid

import (
	"fmt"
	"iter"

	"github.com/lox/pyramid/internal/deck"
)

const (
	// Rows is the height of the pyramid
	Rows = 7
	// Size is the number of slots (1+2+...+7)
	Size = Rows * (Rows + 1) / 2
	// None marks an absent slot link
	None = -1
)

// Slot is one position in the pyramid. Left and Right are the covering
// slots in the row below, (Row+1, Col) and (Row+1, Col+1); Next is the
// same-row successor. All three are arena indices or None.
type Slot struct {
	Row     int
	Col     int
	Card    *deck.Card
	Left    int
	Right   int
	Next    int
	Blocked bool
}

// InPlay reports whether the slot still holds a card in play
func (s Slot) InPlay() bool {
	return s.Card != nil && s.Card.InPlay
}

// Pyramid is the arena of 28 slots
type Pyramid struct {
	slots [Size]Slot
}

// Index converts a (row, col) position to an arena index. The position must
// be valid.
func Index(row, col int) int {
	return row*(row+1)/2 + col
}

// Valid reports whether (row, col) names a pyramid slot
func Valid(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col <= row
}

// Position converts an arena index back to (row, col)
func Position(i int) (row, col int) {
	for row = 0; row < Rows; row++ {
		if i < Index(row+1, 0) {
			return row, i - Index(row, 0)
		}
	}
	return None, None
}

// Deal lays the first Size cards out row by row, flipping each face up,
// and wires covering relations. It panics if fewer than Size cards are
// supplied.
func Deal(cards []*deck.Card) *Pyramid {
	if len(cards) < Size {
		panic(fmt.Sprintf("pyramid: need %d cards to deal, got %d", Size, len(cards)))
	}

	p := &Pyramid{}
	next := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col <= row; col++ {
			card := cards[next]
			next++
			card.FaceUp = true

			i := Index(row, col)
			p.slots[i] = Slot{
				Row:     row,
				Col:     col,
				Card:    card,
				Left:    None,
				Right:   None,
				Next:    None,
				Blocked: row < Rows-1,
			}
			if col > 0 {
				p.slots[i-1].Next = i
			}

			if row > 0 {
				// the new slot covers (row-1, col-1) and (row-1, col)
				if col < row {
					p.slots[Index(row-1, col)].Left = i
				}
				if col > 0 {
					p.slots[Index(row-1, col-1)].Right = i
				}
			}
		}
	}

	p.UpdateBlocked()
	return p
}

// Slot returns a copy of the slot at arena index i
func (p *Pyramid) Slot(i int) Slot {
	return p.slots[i]
}

// At returns the slot at (row, col)
func (p *Pyramid) At(row, col int) (Slot, bool) {
	if !Valid(row, col) {
		return Slot{}, false
	}
	return p.slots[Index(row, col)], true
}

// UpdateBlocked recomputes Blocked for every slot from the in-play state of
// its covering slots
func (p *Pyramid) UpdateBlocked() {
	for i := range p.slots {
		s := &p.slots[i]
		s.Blocked = p.covered(s.Left) || p.covered(s.Right)
	}
}

func (p *Pyramid) covered(i int) bool {
	return i != None && p.slots[i].InPlay()
}

// IsFree reports whether the slot's card is in play and uncovered
func (p *Pyramid) IsFree(i int) bool {
	if i < 0 || i >= Size {
		return false
	}
	s := p.slots[i]
	return s.InPlay() && !s.Blocked
}

// Find returns the arena index of the slot holding card, or None
func (p *Pyramid) Find(card *deck.Card) int {
	for i := range p.slots {
		if p.slots[i].Card == card {
			return i
		}
	}
	return None
}

// FreeSlots returns the indices of all free slots in row-major order
func (p *Pyramid) FreeSlots() []int {
	var free []int
	for i := range p.slots {
		if p.IsFree(i) {
			free = append(free, i)
		}
	}
	return free
}

// Remaining counts slots whose card is still in play
func (p *Pyramid) Remaining() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].InPlay() {
			n++
		}
	}
	return n
}

// Cleared reports whether every pyramid card has been removed
func (p *Pyramid) Cleared() bool {
	for i := range p.slots {
		if p.slots[i].InPlay() {
			return false
		}
	}
	return true
}

// Row walks one row from its head along the Next links
func (p *Pyramid) Row(row int) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if row < 0 || row >= Rows {
			return
		}
		for i := Index(row, 0); i != None; i = p.slots[i].Next {
			if !yield(p.slots[i]) {
				return
			}
		}
	}
}

// All iterates every slot with its arena index in row-major order
func (p *Pyramid) All() iter.Seq2[int, Slot] {
	return func(yield func(int, Slot) bool) {
		for i := range p.slots {
			if !yield(i, p.slots[i]) {
				return
			}
		}
	}
}
