package game

import "fmt"

// TargetKind identifies what a click landed on
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetSlot
	TargetWaste
	TargetStock
	TargetRestart
)

// String returns the string representation of a target kind
func (k TargetKind) String() string {
	switch k {
	case TargetSlot:
		return "slot"
	case TargetWaste:
		return "waste"
	case TargetStock:
		return "stock"
	case TargetRestart:
		return "restart"
	default:
		return "none"
	}
}

// Target is a click already mapped to a logical zone by the front-end.
// Row and Col are only meaningful for TargetSlot.
type Target struct {
	Kind TargetKind `json:"kind"`
	Row  int        `json:"row,omitempty"`
	Col  int        `json:"col,omitempty"`
}

// SlotTarget names the pyramid slot at (row, col)
func SlotTarget(row, col int) Target {
	return Target{Kind: TargetSlot, Row: row, Col: col}
}

// WasteTarget names the waste pile
func WasteTarget() Target { return Target{Kind: TargetWaste} }

// StockTarget names the stock pile
func StockTarget() Target { return Target{Kind: TargetStock} }

// RestartTarget names the restart control
func RestartTarget() Target { return Target{Kind: TargetRestart} }

// String returns a short description such as "slot(6,2)"
func (t Target) String() string {
	if t.Kind == TargetSlot {
		return fmt.Sprintf("slot(%d,%d)", t.Row, t.Col)
	}
	return t.Kind.String()
}

// Click routes one user gesture. Once the game is won or lost, only
// restart is honoured. Stock clicks draw and clear any selection. It
// reports whether anything changed.
func (g *Game) Click(t Target) bool {
	if t.Kind == TargetRestart {
		g.Restart()
		return true
	}
	if g.Over() {
		return false
	}

	switch t.Kind {
	case TargetSlot:
		return g.SelectSlot(t.Row, t.Col)
	case TargetWaste:
		return g.SelectWaste()
	case TargetStock:
		g.Draw()
		return true
	default:
		return false
	}
}
