package tui

import (
	"github.com/lox/pyramid/internal/game"
	"github.com/lox/pyramid/internal/pyramid"
)

// Card cells are one line tall. Each card is drawn five columns wide with
// one column of spacing, and every row is shifted half a cell to the right
// of the row below it.
const (
	CardWidth   = 5
	CellWidth   = CardWidth + 1
	ButtonWidth = len("[restart]")
)

// Layout fixes where everything is drawn, in terminal cells relative to the
// top-left corner of the program's screen
type Layout struct {
	Left  int // First column of the bottom pyramid row
	Top   int // Line of pyramid row 0
	PileY int // Line holding the stock, waste and restart button

	StockX   int
	WasteX   int
	RestartX int
}

// DefaultLayout leaves one header line and a blank line above the pyramid
func DefaultLayout() Layout {
	left, top := 2, 2
	return Layout{
		Left:     left,
		Top:      top,
		PileY:    top + pyramid.Rows + 1,
		StockX:   left,
		WasteX:   left + 2*CellWidth,
		RestartX: left + 5*CellWidth,
	}
}

// SlotOrigin returns the column and line where slot (row, col) is drawn
func (l Layout) SlotOrigin(row, col int) (int, int) {
	return l.rowIndent(row) + col*CellWidth, l.Top + row
}

func (l Layout) rowIndent(row int) int {
	return l.Left + (pyramid.Rows-1-row)*CellWidth/2
}

// HitTest maps a terminal cell to the logical target under it. Gaps
// between cards map to TargetNone.
func (l Layout) HitTest(x, y int) game.Target {
	if y == l.PileY {
		switch {
		case within(x, l.StockX, CardWidth):
			return game.StockTarget()
		case within(x, l.WasteX, CardWidth):
			return game.WasteTarget()
		case within(x, l.RestartX, ButtonWidth):
			return game.RestartTarget()
		}
		return game.Target{}
	}

	row := y - l.Top
	if row < 0 || row >= pyramid.Rows {
		return game.Target{}
	}
	rel := x - l.rowIndent(row)
	if rel < 0 || rel%CellWidth >= CardWidth {
		return game.Target{}
	}
	col := rel / CellWidth
	if col > row {
		return game.Target{}
	}
	return game.SlotTarget(row, col)
}

func within(x, start, width int) bool {
	return x >= start && x < start+width
}
