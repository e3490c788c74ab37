package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pyramid/internal/game"
	"github.com/lox/pyramid/internal/pyramid"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newTestModel(t *testing.T) (*Model, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	m := NewModel(Options{
		Seed:   42,
		Logger: log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
		Clock:  clock,
	})
	m.Init()
	return m, clock
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestLayoutHitTest(t *testing.T) {
	l := DefaultLayout()

	for row := 0; row < pyramid.Rows; row++ {
		for col := 0; col <= row; col++ {
			x, y := l.SlotOrigin(row, col)
			want := game.SlotTarget(row, col)
			assert.Equal(t, want, l.HitTest(x, y), "left edge of %v", want)
			assert.Equal(t, want, l.HitTest(x+CardWidth-1, y), "right edge of %v", want)
			assert.Equal(t, game.TargetNone, l.HitTest(x+CardWidth, y).Kind, "gap after %v", want)
		}
	}

	// the top card sits half a cell right of each card below it
	x0, _ := l.SlotOrigin(0, 0)
	x6, _ := l.SlotOrigin(6, 0)
	assert.Equal(t, x6+3*CellWidth, x0)

	assert.Equal(t, game.TargetNone, l.HitTest(x0-1, l.Top).Kind)
	assert.Equal(t, game.TargetNone, l.HitTest(0, l.Top-1).Kind)
	assert.Equal(t, game.TargetNone, l.HitTest(x6, l.Top+pyramid.Rows).Kind)

	assert.Equal(t, game.StockTarget(), l.HitTest(l.StockX, l.PileY))
	assert.Equal(t, game.WasteTarget(), l.HitTest(l.WasteX+2, l.PileY))
	assert.Equal(t, game.RestartTarget(), l.HitTest(l.RestartX+ButtonWidth-1, l.PileY))
	assert.Equal(t, game.TargetNone, l.HitTest(l.RestartX+ButtonWidth, l.PileY).Kind)
}

func TestViewMatchesLayout(t *testing.T) {
	m, _ := newTestModel(t)
	lines := strings.Split(m.View(), "\n")
	l := m.layout
	require.Greater(t, len(lines), l.PileY)

	assert.Contains(t, lines[0], "score 0")
	assert.Contains(t, lines[0], "seed 42")
	for row := 0; row < pyramid.Rows; row++ {
		line := []rune(lines[l.Top+row])
		x, _ := l.SlotOrigin(row, 0)
		assert.Equal(t, row+1, strings.Count(string(line), "["), "row %d", row)
		assert.Equal(t, '[', line[x], "row %d starts at column %d", row, x)
	}

	piles := []rune(lines[l.PileY])
	assert.Equal(t, "[24 ]", string(piles[l.StockX:l.StockX+CardWidth]))
	assert.Equal(t, "[   ]", string(piles[l.WasteX:l.WasteX+CardWidth]))
	assert.Equal(t, "[restart]", string(piles[l.RestartX:l.RestartX+ButtonWidth]))
}

func TestMouseClicks(t *testing.T) {
	m, _ := newTestModel(t)
	l := m.layout

	m.Update(leftClick(l.StockX+1, l.PileY))
	assert.Equal(t, 1, m.Game().Moves())
	require.NotNil(t, m.Game().CurrentWaste())
	assert.Contains(t, m.View(), cardLabel(m.Game().Snapshot().Waste.Card))

	// right clicks and releases are ignored
	m.Update(tea.MouseMsg{X: l.StockX, Y: l.PileY, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m.Update(tea.MouseMsg{X: l.StockX, Y: l.PileY, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Equal(t, 1, m.Game().Moves())

	x, y := l.SlotOrigin(6, 3)
	m.Update(leftClick(x, y))
	assert.Equal(t, 6, m.cursorRow)
	assert.Equal(t, 3, m.cursorCol)

	seed := m.Game().Seed()
	m.Update(leftClick(l.RestartX, l.PileY))
	assert.NotEqual(t, seed, m.Game().Seed())
	assert.Zero(t, m.Game().Moves())
}

func TestKeyboard(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(keyPress("up"))
	m.Update(keyPress("left"))
	assert.Equal(t, 5, m.cursorRow)
	assert.Equal(t, 0, m.cursorCol)

	for i := 0; i < 10; i++ {
		m.Update(keyPress("right"))
	}
	assert.Equal(t, 5, m.cursorCol, "cursor stays inside the row")

	m.Update(keyPress("up"))
	assert.Equal(t, 4, m.cursorCol, "moving up clamps the column")

	m.Update(keyPress("d"))
	assert.Equal(t, 1, m.Game().Moves())
	assert.NotEmpty(t, m.Log())

	m.Update(keyPress("n"))
	assert.True(t, strings.HasPrefix(m.Status(), "Hint:"), m.Status())

	m.Update(keyPress("?"))
	assert.Contains(t, m.View(), "Remove every card")

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestFramesDriveGameTime(t *testing.T) {
	m, clock := newTestModel(t)

	now := clock.Now()
	m.Update(frameMsg(now.Add(500 * time.Millisecond)))
	m.Update(frameMsg(now.Add(1500 * time.Millisecond)))
	assert.Equal(t, 1500*time.Millisecond, m.Game().Elapsed())
	assert.Contains(t, strings.Split(m.View(), "\n")[0], "1s")
}

func TestRestartClearsLog(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(keyPress("d"))
	m.Update(keyPress("d"))
	require.Len(t, m.Log(), 3)

	m.Update(keyPress("r"))
	logLines := m.Log()
	require.Len(t, logLines, 1)
	assert.True(t, strings.HasPrefix(logLines[0], "Game "))
}
