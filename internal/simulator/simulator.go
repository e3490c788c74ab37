package simulator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pyramid/internal/bot"
	"github.com/lox/pyramid/internal/game"
	"github.com/lox/pyramid/internal/pyramid"
	"github.com/lox/pyramid/internal/randutil"
	"github.com/lox/pyramid/internal/statistics"
)

// DefaultMaxMoves bounds a single game. Recycling the stock never ends on
// its own, so a game still playable at the cap is reported as stalled.
const DefaultMaxMoves = 1000

// ErrInvalidConfig is returned by Run when the configuration cannot be played
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Strategy string
	Seed     int64 // Base seed; game i is dealt with Seed+i, 0 picks one
	Workers  int   // Parallel workers, 0 means runtime.NumCPU()
	MaxMoves int
	Timeout  time.Duration // Whole-run timeout, 0 means none
	Rules    game.Rules
	Logger   *log.Logger
	Clock    quartz.Clock

	// Progress, when set, is called after each finished game with the
	// number of games done so far. It may be called from any worker.
	Progress func(done, total int)
}

// Simulator plays many seeded games with one strategy
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	config.Seed = randutil.Seed(config.Seed, config.Clock.Now())
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.MaxMoves <= 0 {
		config.MaxMoves = DefaultMaxMoves
	}
	return &Simulator{config: config, logger: config.Logger.WithPrefix("simulator")}
}

// Config returns the effective configuration after defaults
func (s *Simulator) Config() Config {
	return s.config
}

// Run plays every game and aggregates the results. Results are collected by
// game index, so the statistics depend only on the seed and strategy, never
// on the worker count or scheduling.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, s.config.Games)
	}
	if err := bot.Validate(s.config.Strategy); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	s.logger.Info("Starting simulation",
		"games", s.config.Games,
		"strategy", s.config.Strategy,
		"seed", s.config.Seed,
		"workers", s.config.Workers)

	results := make([]statistics.GameResult, s.config.Games)
	indices := make(chan int)
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(indices)
		for i := range results {
			select {
			case indices <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < s.config.Workers; w++ {
		g.Go(func() error {
			for i := range indices {
				result, err := s.playGame(ctx, s.config.Seed+int64(i))
				if err != nil {
					return fmt.Errorf("game %d (seed %d): %w", i, s.config.Seed+int64(i), err)
				}
				results[i] = result
				n := done.Add(1)
				if s.config.Progress != nil {
					s.config.Progress(int(n), s.config.Games)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulation aborted: %w", err)
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation finished",
		"games", stats.Games,
		"wins", stats.Wins,
		"winRate", fmt.Sprintf("%.2f%%", stats.WinRate()*100),
		"meanScore", fmt.Sprintf("%.1f", stats.Mean()))
	return stats, nil
}

// playGame plays one deal to the end or to the move cap
func (s *Simulator) playGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	strategy, err := bot.New(s.config.Strategy, randutil.New(^seed), s.logger)
	if err != nil {
		return statistics.GameResult{}, err
	}

	g := game.New(
		game.WithSeed(seed),
		game.WithRules(s.config.Rules),
		game.WithLogger(s.logger),
		game.WithClock(s.config.Clock),
	)

	start := s.config.Clock.Now()
	for g.Moves() < s.config.MaxMoves {
		if err := ctx.Err(); err != nil {
			return statistics.GameResult{}, err
		}
		if !bot.Step(g, strategy) {
			break
		}
	}

	result := statistics.GameResult{
		Seed:    seed,
		Won:     g.Won(),
		Lost:    g.Lost(),
		Stalled: !g.Over(),
		Score:   g.Score(),
		Moves:   g.Moves(),
		Cleared: pyramid.Size - g.Pyramid().Remaining(),
		Elapsed: s.config.Clock.Since(start),
	}
	s.logger.Debug("Game finished",
		"seed", seed,
		"won", result.Won,
		"stalled", result.Stalled,
		"score", result.Score,
		"moves", result.Moves)
	return result, nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, games int, strategy string, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{
		Games:    games,
		Strategy: strategy,
		Seed:     seed,
		Logger:   logger,
	}).Run(ctx)
}
