package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pyramid/internal/bot"
	"github.com/lox/pyramid/internal/game"
	"github.com/lox/pyramid/internal/pyramid"
)

const (
	logLines = 6
	maxLog   = 200
)

// Options configures the terminal front-end
type Options struct {
	Seed          int64
	Rules         game.Rules
	FrameInterval time.Duration
	Logger        *log.Logger
	Clock         quartz.Clock
}

// frameMsg carries the time of one frame tick
type frameMsg time.Time

// Model is the Bubble Tea model for one game of Pyramid. The game is only
// touched from Update.
type Model struct {
	game   *game.Game
	layout Layout
	clock  quartz.Clock
	logger *log.Logger

	frameInterval time.Duration
	lastFrame     time.Time

	cursorRow, cursorCol int
	status               string

	keys     keyMap
	help     help.Model
	logView  viewport.Model
	log      []string
	format   *game.EventFormatter
	hinter   *bot.Greedy
	showHelp bool

	width    int
	height   int
	quitting bool
}

// NewModel creates a model and deals the first game
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 30
	}

	m := &Model{
		layout:        DefaultLayout(),
		clock:         opts.Clock,
		logger:        opts.Logger.WithPrefix("tui"),
		frameInterval: opts.FrameInterval,
		cursorRow:     pyramid.Rows - 1,
		keys:          defaultKeyMap(),
		help:          help.New(),
		logView:       viewport.New(2*pyramid.Rows*CellWidth, logLines),
		format:        game.NewEventFormatter(game.FormattingOptions{ShowScore: true}),
		hinter:        bot.NewGreedy(opts.Logger),
	}

	bus := game.NewEventBus()
	bus.Subscribe(game.EventSubscriberFunc(m.onEvent))
	bus.Subscribe(game.NewLoggingSubscriber(opts.Logger))

	m.game = game.New(
		game.WithSeed(opts.Seed),
		game.WithRules(opts.Rules),
		game.WithLogger(opts.Logger),
		game.WithClock(opts.Clock),
		game.WithEventBus(bus),
	)
	return m
}

// Game returns the model's game
func (m *Model) Game() *game.Game {
	return m.game
}

// Init starts the frame clock
func (m *Model) Init() tea.Cmd {
	m.lastFrame = m.clock.Now()
	return m.nextFrame()
}

// nextFrame waits one frame interval on the model's clock
func (m *Model) nextFrame() tea.Cmd {
	clock, d := m.clock, m.frameInterval
	return func() tea.Msg {
		timer := clock.NewTimer(d, "tui", "frame")
		defer timer.Stop()
		return frameMsg(<-timer.C)
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			m.game.Update(now.Sub(m.lastFrame))
		}
		m.lastFrame = now
		return m, m.nextFrame()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		target := m.layout.HitTest(msg.X, msg.Y)
		if target.Kind == game.TargetSlot {
			m.cursorRow, m.cursorCol = target.Row, target.Col
		}
		m.click(target)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Select):
		m.click(game.SlotTarget(m.cursorRow, m.cursorCol))
	case key.Matches(msg, m.keys.Waste):
		m.click(game.WasteTarget())
	case key.Matches(msg, m.keys.Draw):
		m.click(game.StockTarget())
	case key.Matches(msg, m.keys.Restart):
		m.click(game.RestartTarget())
	case key.Matches(msg, m.keys.Hint):
		m.hint()
	}
	return nil
}

// moveCursor steps the keyboard cursor, keeping it inside the pyramid
func (m *Model) moveCursor(dRow, dCol int) {
	row := min(max(m.cursorRow+dRow, 0), pyramid.Rows-1)
	col := min(max(m.cursorCol+dCol, 0), row)
	m.cursorRow, m.cursorCol = row, col
}

func (m *Model) click(t game.Target) {
	if t.Kind == game.TargetNone {
		return
	}
	m.status = ""
	if !m.game.Click(t) && m.game.Over() {
		m.status = "Game over • press r for a new deal"
	}
}

func (m *Model) hint() {
	moves := m.game.LegalMoves()
	if len(moves) == 0 {
		m.status = "No moves left"
		return
	}
	mv := m.hinter.Choose(m.game, moves)
	if mv.Kind == game.MoveDraw {
		m.status = "Hint: draw from the stock"
		return
	}
	m.status = "Hint: remove " + strings.Join(mv.Cards, " + ")
}

// onEvent appends formatted game events to the move log
func (m *Model) onEvent(e game.Event) {
	if e.EventType() == game.EventTypeGameStart {
		m.log = m.log[:0]
	}
	line := m.format.Format(e)
	if line == "" {
		return
	}
	m.log = append(m.log, line)
	if len(m.log) > maxLog {
		m.log = m.log[len(m.log)-maxLog:]
	}
	m.logView.SetContent(strings.Join(m.log, "\n"))
	m.logView.GotoBottom()
}

// Log returns the move log lines
func (m *Model) Log() []string {
	out := make([]string, len(m.log))
	copy(out, m.log)
	return out
}

// Status returns the transient status line
func (m *Model) Status() string {
	return m.status
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.game.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderHeader(snap))
	b.WriteString("\n")
	for line := 1; line < m.layout.Top; line++ {
		b.WriteString("\n")
	}
	for row := 0; row < pyramid.Rows; row++ {
		b.WriteString(m.renderRow(snap, row))
		b.WriteString("\n")
	}
	for line := m.layout.Top + pyramid.Rows; line < m.layout.PileY; line++ {
		b.WriteString("\n")
	}
	b.WriteString(m.renderPiles(snap))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus(snap))
	b.WriteString("\n\n")
	b.WriteString(m.logView.View())
	b.WriteString("\n\n")
	if m.showHelp {
		b.WriteString(InfoStyle.Render(game.Instructions))
		b.WriteString("\n\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderHeader(s game.Snapshot) string {
	elapsed := s.Elapsed.Truncate(time.Second)
	return HeaderStyle.Render(fmt.Sprintf(" Pyramid • score %d • moves %d • %s • seed %d ",
		s.Score, s.Moves, elapsed, s.Seed))
}

func (m *Model) renderRow(s game.Snapshot, row int) string {
	x, _ := m.layout.SlotOrigin(row, 0)
	cells := make([]string, 0, row+1)
	for col := 0; col <= row; col++ {
		slot, _ := s.Slot(row, col)
		cursor := row == m.cursorRow && col == m.cursorCol
		cells = append(cells, renderSlot(slot, cursor))
	}
	return strings.Repeat(" ", x) + strings.Join(cells, " ")
}

func renderSlot(slot game.SlotView, cursor bool) string {
	if !slot.Card.InPlay {
		if cursor {
			return CursorStyle.Render(strings.Repeat(" ", CardWidth))
		}
		return strings.Repeat(" ", CardWidth)
	}
	style := cardStyle(slot.Card)
	switch {
	case slot.Selected:
		style = SelectedStyle
	case slot.Blocked:
		style = BlockedStyle
	}
	if cursor {
		style = style.Underline(true)
	}
	return style.Render(cardLabel(slot.Card))
}

func (m *Model) renderPiles(s game.Snapshot) string {
	stock := fmt.Sprintf("[%2d ]", s.StockCount)
	if s.StockEmpty {
		stock = "[   ]"
	}
	if !s.CanDraw {
		stock = "[ x ]"
	}

	waste := "[   ]"
	wasteStyle := InfoStyle
	if s.Waste != nil {
		waste = cardLabel(s.Waste.Card)
		wasteStyle = cardStyle(s.Waste.Card)
		if s.Waste.Selected {
			wasteStyle = SelectedStyle
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", m.layout.StockX))
	b.WriteString(PileStyle.Render(stock))
	b.WriteString(strings.Repeat(" ", m.layout.WasteX-m.layout.StockX-CardWidth))
	b.WriteString(wasteStyle.Render(waste))
	b.WriteString(strings.Repeat(" ", m.layout.RestartX-m.layout.WasteX-CardWidth))
	b.WriteString(ButtonStyle.Render("[restart]"))
	return b.String()
}

func (m *Model) renderStatus(s game.Snapshot) string {
	switch {
	case s.Won:
		return SuccessStyle.Render(fmt.Sprintf("You cleared the pyramid! Final score %d.", s.Score))
	case s.Lost:
		return ErrorStyle.Render(fmt.Sprintf("No moves left. Final score %d, %d cards remaining.", s.Score, s.Remaining))
	case m.status != "":
		return WarningStyle.Render(m.status)
	default:
		return InfoStyle.Render(fmt.Sprintf("%d cards left on the pyramid • waste %d", s.Remaining, s.WasteCount))
	}
}

// cardLabel renders a card as exactly CardWidth cells, e.g. "[ 9♣]"
func cardLabel(c game.CardView) string {
	card := c.Card()
	return fmt.Sprintf("[%2s%s]", card.Rank, card.Suit)
}

func cardStyle(c game.CardView) lipgloss.Style {
	if c.Card().IsRed() {
		return RedCardStyle
	}
	return BlackCardStyle
}
