package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Run plays one interactive session on the terminal until the user quits
// or ctx is cancelled
func Run(ctx context.Context, opts Options) error {
	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	m := NewModel(opts)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	m.logger.Info("Starting TUI", "seed", m.game.Seed())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	snap := m.game.Snapshot()
	m.logger.Info("TUI closed", "score", snap.Score, "moves", snap.Moves, "won", snap.Won)
	return nil
}
