package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/pyramid/internal/bot"
	"github.com/lox/pyramid/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Outgoing messages buffered before a slow client is dropped
	sendBuffer = 256
)

// ErrSessionClosed is returned when sending to a session that has ended
var ErrSessionClosed = errors.New("session closed")

// Session is one WebSocket client playing one game. The game is only
// touched from the goroutine running Run.
type Session struct {
	conn     *websocket.Conn
	game     *game.Game
	hinter   *bot.Greedy
	format   *game.EventFormatter
	commands chan Command
	send     chan *Message
	tick     time.Duration
	clock    quartz.Clock
	logger   *log.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

type sessionOptions struct {
	seed   int64
	rules  game.Rules
	tick   time.Duration
	clock  quartz.Clock
	logger *log.Logger
}

func newSession(ctx context.Context, conn *websocket.Conn, opts sessionOptions) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		conn:     conn,
		format:   game.NewEventFormatter(game.FormattingOptions{ShowScore: true, UseCodes: true}),
		commands: make(chan Command),
		send:     make(chan *Message, sendBuffer),
		tick:     opts.tick,
		clock:    opts.clock,
		ctx:      ctx,
		cancel:   cancel,
		logger:   opts.logger.WithPrefix("session"),
	}

	bus := game.NewEventBus()
	bus.Subscribe(game.EventSubscriberFunc(s.onEvent))
	s.game = game.New(
		game.WithSeed(opts.seed),
		game.WithRules(opts.rules),
		game.WithLogger(opts.logger),
		game.WithClock(opts.clock),
		game.WithEventBus(bus),
	)
	s.logger = s.logger.With("game", s.game.ID())
	s.hinter = bot.NewGreedy(opts.logger)
	return s
}

// Run pumps the connection and plays the game until the client goes away
// or ctx is cancelled
func (s *Session) Run() {
	defer func() { _ = s.Close() }()

	go s.writePump()
	go s.readPump()

	s.logger.Info("Session started", "seed", s.game.Seed())
	s.sendSnapshot()

	ticker := s.clock.NewTicker(s.tick, "session", "tick")
	defer ticker.Stop()
	last := s.clock.Now()

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("Session ended", "score", s.game.Score(), "moves", s.game.Moves())
			return

		case cmd := <-s.commands:
			s.handle(cmd)

		case now := <-ticker.C:
			over := s.game.Over()
			s.game.Update(now.Sub(last))
			last = now
			if s.game.Over() != over {
				s.sendSnapshot()
			}
		}
	}
}

// Close ends the session and closes the connection
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()
		err = s.conn.Close()
	})
	return err
}

// Done is closed once the session has ended
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Send queues a message for the client
func (s *Session) Send(msg *Message) error {
	select {
	case <-s.ctx.Done():
		return ErrSessionClosed
	default:
	}

	select {
	case s.send <- msg:
		return nil
	case <-s.ctx.Done():
		return ErrSessionClosed
	default:
		s.logger.Warn("Session send buffer full, closing connection")
		_ = s.Close()
		return ErrSessionClosed
	}
}

func (s *Session) handle(cmd Command) {
	s.logger.Debug("Received command", "type", cmd.Type)

	switch cmd.Type {
	case MessageTypeSelect:
		s.game.Click(game.SlotTarget(cmd.Row, cmd.Col))
	case MessageTypeWaste:
		s.game.Click(game.WasteTarget())
	case MessageTypeDraw:
		s.game.Click(game.StockTarget())
	case MessageTypeRestart:
		if cmd.Seed != 0 {
			s.game.Deal(cmd.Seed)
		} else {
			s.game.Restart()
		}
	case MessageTypeHint:
		s.sendHint()
		return
	}
	s.sendSnapshot()
}

func (s *Session) onEvent(event game.Event) {
	data := EventData{
		Type: event.EventType(),
		Text: s.format.Format(event),
	}
	// GameStart fires from inside game.New, before s.game is set
	if s.game != nil {
		data.Score = s.game.Score()
		data.Moves = s.game.Moves()
	}
	s.emit(MessageTypeEvent, data)
}

func (s *Session) sendSnapshot() {
	s.emit(MessageTypeSnapshot, s.game.Snapshot())
}

func (s *Session) sendHint() {
	moves := s.game.LegalMoves()
	hint := HintData{}
	if len(moves) > 0 {
		best := s.hinter.Choose(s.game, moves)
		hint = append(hint, best)
		for _, m := range moves {
			if !sameMove(m, best) {
				hint = append(hint, m)
			}
		}
	}
	s.emit(MessageTypeHint, hint)
}

func (s *Session) sendError(data *ErrorData) {
	s.emit(MessageTypeError, data)
}

func (s *Session) emit(msgType MessageType, data any) {
	msg, err := NewMessage(msgType, data)
	if err != nil {
		s.logger.Error("Failed to create message", "type", msgType, "error", err)
		return
	}
	msg.Timestamp = s.clock.Now()
	_ = s.Send(msg) // Ignore send errors, the session is already closing
}

// readPump decodes client frames and hands them to Run
func (s *Session) readPump() {
	defer func() { _ = s.Close() }()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		cmd, perr := ParseCommand(data)
		if perr != nil {
			s.logger.Debug("Rejected message", "code", perr.Code)
			s.sendError(perr)
			continue
		}

		select {
		case s.commands <- cmd:
		case <-s.ctx.Done():
			return
		}
	}
}

// writePump writes queued messages and keeps the connection alive
func (s *Session) writePump() {
	ticker := s.clock.NewTicker(pingPeriod, "session", "ping")
	defer func() {
		ticker.Stop()
		_ = s.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case msg := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.ctx.Done():
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func sameMove(a, b game.Move) bool {
	return a.Kind == b.Kind && a.First == b.First && a.Second == b.Second
}
