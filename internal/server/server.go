package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/pyramid/internal/game"
	"github.com/lox/pyramid/internal/randutil"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTickInterval is how often a session advances its game clock
	DefaultTickInterval = 100 * time.Millisecond

	shutdownTimeout = 5 * time.Second
)

// Option configures a Server
type Option func(*Server)

// WithRules sets the rules every session plays with
func WithRules(r game.Rules) Option {
	return func(s *Server) { s.rules = r }
}

// WithSeed makes session deals reproducible. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(s *Server) { s.seed = seed }
}

// WithClock sets the clock used for session ticks and timestamps
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithTickInterval sets how often sessions run the loss check timer
func WithTickInterval(d time.Duration) Option {
	return func(s *Server) { s.tick = d }
}

// Server hands every WebSocket client its own game session
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger
	clock    quartz.Clock
	rules    game.Rules
	seed     int64
	tick     time.Duration

	mu       sync.Mutex
	sessions map[*Session]struct{}
	seeds    *rand.Rand
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer creates a new session server listening on addr
func NewServer(addr string, logger *log.Logger, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:   logger.WithPrefix("server"),
		rules:    game.DefaultRules(),
		tick:     DefaultTickInterval,
		sessions: make(map[*Session]struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	s.seeds = randutil.New(randutil.Seed(s.seed, s.clock.Now()))
	return s
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down the listener and every open session
func (s *Server) Serve(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", s.addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.Stop()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Stop closes every session and waits for them to finish
func (s *Server) Stop() {
	s.cancel()

	s.mu.Lock()
	for session := range s.sessions {
		_ = session.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Server stopped")
}

// Sessions returns the number of connected sessions
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// nextSeed picks the deal for a new session. A valid ?seed= query wins.
func (s *Server) nextSeed(r *http.Request) int64 {
	if v := r.URL.Query().Get("seed"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil && seed != 0 {
			return seed
		}
		s.logger.Warn("Ignoring invalid seed", "seed", v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return randutil.Next(s.seeds)
}

// handleWebSocket upgrades the request and runs a session until it ends
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.ctx.Done():
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	seed := s.nextSeed(r)
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	session := newSession(s.ctx, conn, sessionOptions{
		seed:   seed,
		rules:  s.rules,
		tick:   s.tick,
		clock:  s.clock,
		logger: s.logger,
	})

	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		_ = session.Close()
		return
	}
	s.sessions[session] = struct{}{}
	total := len(s.sessions)
	s.wg.Add(1)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)

	defer func() {
		s.mu.Lock()
		delete(s.sessions, session)
		total := len(s.sessions)
		s.mu.Unlock()
		s.wg.Done()
		s.logger.Info("Client disconnected", "total", total)
	}()

	session.Run()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "OK") // Ignore write errors for health check
}
