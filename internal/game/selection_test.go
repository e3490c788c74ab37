package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pyramid/internal/pyramid"
)

func TestSelectBlockedSlotIsNoop(t *testing.T) {
	g := newTestGame(t)
	assert.False(t, g.SelectSlot(0, 0))
	assert.False(t, g.SelectSlot(5, 2))
	assert.False(t, g.SelectSlot(7, 0), "out of range")
	assert.False(t, g.SelectSlot(3, 4), "out of range")
	assert.Empty(t, g.Selection())
	assert.Zero(t, g.Moves())
}

func TestReselectDeselects(t *testing.T) {
	g := newArrangedGame(t, map[int]string{bottom0: "5H", bottom0 + 1: "9S"})

	require.True(t, g.SelectSlot(6, 0))
	assert.Equal(t, []Target{SlotTarget(6, 0)}, g.Selection())
	assert.True(t, g.Snapshot().Slots[bottom0].Selected)

	require.True(t, g.SelectSlot(6, 0))
	assert.Empty(t, g.Selection())
	assert.Zero(t, g.Score())
	assert.Zero(t, g.Moves())
	assert.True(t, g.card(bottom0).InPlay)
	assert.False(t, g.Snapshot().Slots[bottom0].Selected)

	assert.Equal(t, []EventType{EventTypeGameStart, EventTypeCardSelected, EventTypeSelectionClear}, g.recorder.Types())
}

func TestValidPairRemoval(t *testing.T) {
	g := newArrangedGame(t, map[int]string{bottom0: "5H", bottom0 + 1: "8S"})
	above := pyramid.Index(5, 0)
	require.False(t, g.IsFree(above))

	g.SelectSlot(6, 0)
	g.SelectSlot(6, 1)

	assert.Equal(t, DefaultPairScore, g.Score())
	assert.Equal(t, 1, g.Moves())
	assert.False(t, g.card(bottom0).InPlay)
	assert.False(t, g.card(bottom0+1).InPlay)
	assert.Empty(t, g.Selection())
	assert.True(t, g.IsFree(above), "slot above is uncovered")
	assert.False(t, g.IsFree(pyramid.Index(5, 1)), "neighbour still covered by (6,2)")

	last := g.recorder.Events[len(g.recorder.Events)-1]
	removed, ok := last.(PairRemovedEvent)
	require.True(t, ok)
	assert.Equal(t, "5H", removed.First.Code())
	assert.Equal(t, "8S", removed.Second.Code())
	assert.Equal(t, DefaultPairScore, removed.Score)

	// retired cards cannot be selected again
	assert.False(t, g.SelectSlot(6, 0))
}

func TestInvalidPairClearsSelection(t *testing.T) {
	g := newArrangedGame(t, map[int]string{bottom0: "5H", bottom0 + 1: "9S"})

	g.SelectSlot(6, 0)
	g.SelectSlot(6, 1)

	assert.Zero(t, g.Score())
	assert.Equal(t, 1, g.Moves(), "failed pair still counts as a move")
	assert.True(t, g.card(bottom0).InPlay)
	assert.True(t, g.card(bottom0+1).InPlay)
	assert.Empty(t, g.Selection())
	assert.Contains(t, g.recorder.Types(), EventTypePairRejected)
}

func TestKingRemovedAlone(t *testing.T) {
	g := newArrangedGame(t, map[int]string{bottom0: "5H", bottom0 + 2: "KD"})

	g.SelectSlot(6, 0)
	require.Len(t, g.Selection(), 1)

	g.SelectSlot(6, 2)
	assert.Equal(t, DefaultKingScore, g.Score())
	assert.Equal(t, 1, g.Moves())
	assert.False(t, g.card(bottom0+2).InPlay)
	assert.True(t, g.card(bottom0).InPlay, "pending selection is dropped, not paired")
	assert.Empty(t, g.Selection())
}

func TestWasteKingAndPairAdvanceWaste(t *testing.T) {
	g := newArrangedGame(t, map[int]string{
		bottom0:    "AC",
		stock0:     "QH",
		stock0 + 1: "KD",
		stock0 + 2: "2S",
	})

	require.True(t, g.Draw())
	require.True(t, g.Draw())
	require.Equal(t, "KD", g.CurrentWaste().Code())

	// waste King goes alone and exposes the previous draw
	require.True(t, g.SelectWaste())
	assert.Equal(t, DefaultKingScore, g.Score())
	require.NotNil(t, g.CurrentWaste())
	assert.Equal(t, "QH", g.CurrentWaste().Code())
	assert.Equal(t, []string{"QH"}, codes(g.waste.Values()))

	// pyramid Ace pairs with waste Queen
	g.SelectSlot(6, 0)
	g.SelectWaste()
	assert.Equal(t, DefaultKingScore+DefaultPairScore, g.Score())
	assert.Nil(t, g.CurrentWaste())
	assert.True(t, g.waste.IsEmpty())
	assert.Nil(t, g.Snapshot().Waste)
	assert.False(t, g.SelectWaste(), "empty waste")
	assert.Equal(t, 4, g.Moves())
}

func TestWasteBypassesBlockedCheck(t *testing.T) {
	g := newArrangedGame(t, map[int]string{0: "8H", stock0: "5C"})
	g.Draw()

	assert.False(t, g.SelectSlot(0, 0), "apex is covered")
	assert.True(t, g.SelectWaste())
	assert.Equal(t, []Target{WasteTarget()}, g.Selection())
	assert.True(t, g.Snapshot().Waste.Selected)
}

func TestPairRemovedFromPyramidPair(t *testing.T) {
	// (5,0) becomes free after its two covering slots go, then pairs with waste
	g := newArrangedGame(t, map[int]string{
		pyramid.Index(5, 0): "6D",
		bottom0:             "4H",
		bottom0 + 1:         "9S",
		stock0:              "7D",
	})
	g.SelectSlot(6, 0)
	g.SelectSlot(6, 1)
	require.True(t, g.IsFree(pyramid.Index(5, 0)))

	g.Draw()
	g.SelectWaste()
	g.SelectSlot(5, 0)
	assert.Equal(t, 2*DefaultPairScore, g.Score())
	assert.False(t, g.card(pyramid.Index(5, 0)).InPlay)
}
