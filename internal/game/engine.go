package game

import (
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pyramid/internal/deck"
	"github.com/lox/pyramid/internal/gameid"
	"github.com/lox/pyramid/internal/pyramid"
	"github.com/lox/pyramid/internal/queue"
	"github.com/lox/pyramid/internal/randutil"
)

const (
	// DefaultPairScore is awarded for removing two cards that sum to 13
	DefaultPairScore = 20
	// DefaultKingScore is awarded for removing a King on its own
	DefaultKingScore = 10
	// DefaultLossCheckInterval bounds how often Update evaluates the loss rule
	DefaultLossCheckInterval = time.Second
)

// StockSize is the number of cards left for the stock after dealing
const StockSize = deck.Size - pyramid.Size

// Rules holds the tunable scoring and timing parameters
type Rules struct {
	PairScore         int
	KingScore         int
	LossCheckInterval time.Duration
}

// DefaultRules returns the standard scoring
func DefaultRules() Rules {
	return Rules{
		PairScore:         DefaultPairScore,
		KingScore:         DefaultKingScore,
		LossCheckInterval: DefaultLossCheckInterval,
	}
}

// Option configures a Game during creation
type Option func(*config)

type config struct {
	seed   int64
	cards  []deck.Card
	rules  Rules
	logger *log.Logger
	bus    EventBus
	clock  quartz.Clock
	ids    *gameid.Generator
}

// WithSeed fixes the seed of the first deal. Restarts draw their seeds from
// a source derived from it, so a whole session is reproducible.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithDeck deals the given 52 cards in order instead of shuffling. The
// first 28 go to the pyramid and the rest to the stock.
func WithDeck(cards []deck.Card) Option {
	return func(c *config) { c.cards = cards }
}

// WithRules overrides scoring and the loss-check interval. Zero fields keep
// their defaults.
func WithRules(r Rules) Option {
	return func(c *config) {
		if r.PairScore != 0 {
			c.rules.PairScore = r.PairScore
		}
		if r.KingScore != 0 {
			c.rules.KingScore = r.KingScore
		}
		if r.LossCheckInterval > 0 {
			c.rules.LossCheckInterval = r.LossCheckInterval
		}
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithEventBus publishes game events on bus
func WithEventBus(bus EventBus) Option {
	return func(c *config) { c.bus = bus }
}

// WithClock sets the clock used for event timestamps and game ids
func WithClock(clock quartz.Clock) Option {
	return func(c *config) { c.clock = clock }
}

// WithIDGenerator sets the generator used for game ids
func WithIDGenerator(ids *gameid.Generator) Option {
	return func(c *config) { c.ids = ids }
}

// Game is the state of one Pyramid Solitaire session. It is not safe for
// concurrent use; each front-end owns its own Game.
type Game struct {
	id   string
	seed int64

	cards   [deck.Size]deck.Card
	pyramid *pyramid.Pyramid

	stock        *queue.Deque[*deck.Card]
	stockBackup  *queue.Deque[*deck.Card]
	waste        *queue.Deque[*deck.Card]
	currentWaste *deck.Card
	drawCursor   int

	selected1     *deck.Card
	selected2     *deck.Card
	selectedSlot1 int
	selectedSlot2 int

	score     int
	moves     int
	elapsed   time.Duration
	lossTimer time.Duration
	won       bool
	lost      bool

	rules    Rules
	fixed    []deck.Card
	seedRng  *rand.Rand
	ids      *gameid.Generator
	clock    quartz.Clock
	logger   *log.Logger
	eventBus EventBus
}

// New creates a game and deals the first hand
func New(opts ...Option) *Game {
	cfg := &config{rules: DefaultRules()}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	if cfg.ids == nil {
		cfg.ids = gameid.NewGenerator(cfg.clock, nil)
	}
	if cfg.cards != nil && len(cfg.cards) != deck.Size {
		panic("game: WithDeck needs exactly 52 cards")
	}

	seed := randutil.Seed(cfg.seed, cfg.clock.Now())
	g := &Game{
		rules:       cfg.rules,
		fixed:       cfg.cards,
		seedRng:     randutil.New(seed),
		ids:         cfg.ids,
		clock:       cfg.clock,
		logger:      cfg.logger.WithPrefix("game"),
		eventBus:    cfg.bus,
		stock:       queue.New[*deck.Card](StockSize),
		stockBackup: queue.New[*deck.Card](StockSize),
		waste:       queue.New[*deck.Card](StockSize),
	}
	g.Deal(seed)
	return g
}

// Deal discards all state and deals a new game from seed. Games created
// WithDeck redeal the same fixed order.
func (g *Game) Deal(seed int64) {
	g.id = g.ids.Generate()
	g.seed = seed

	if g.fixed != nil {
		copy(g.cards[:], g.fixed)
		for i := range g.cards {
			g.cards[i].FaceUp = false
			g.cards[i].InPlay = true
		}
	} else {
		copy(g.cards[:], deck.New())
		deck.Shuffle(g.cards[:], randutil.New(seed))
	}

	refs := make([]*deck.Card, deck.Size)
	for i := range g.cards {
		refs[i] = &g.cards[i]
	}
	g.pyramid = pyramid.Deal(refs[:pyramid.Size])

	g.stock.Clear()
	g.stockBackup.Clear()
	g.waste.Clear()
	for _, c := range refs[pyramid.Size:] {
		g.stock.PushBack(c)
		g.stockBackup.PushBack(c)
	}
	g.currentWaste = nil
	g.drawCursor = 0

	g.clearSelection()
	g.score = 0
	g.moves = 0
	g.elapsed = 0
	g.lossTimer = 0
	g.won = false
	g.lost = false

	g.logger.Debug("Dealt new game", "id", g.id, "seed", seed)
	g.publish(GameStartEvent{GameID: g.id, Seed: seed, timestamp: g.clock.Now()})
}

// Restart deals a new game with the next seed from the session's seed source
func (g *Game) Restart() {
	g.Deal(randutil.Next(g.seedRng))
}

// ID returns the id of the current deal
func (g *Game) ID() string { return g.id }

// Seed returns the seed of the current deal
func (g *Game) Seed() int64 { return g.seed }

// Score returns the current score
func (g *Game) Score() int { return g.score }

// Moves returns the number of moves made in this deal
func (g *Game) Moves() int { return g.moves }

// Elapsed returns the accumulated game time
func (g *Game) Elapsed() time.Duration { return g.elapsed }

// Won reports whether the pyramid has been cleared
func (g *Game) Won() bool { return g.won }

// Lost reports whether the loss check has found no moves left
func (g *Game) Lost() bool { return g.lost }

// Over reports whether the game reached a terminal state
func (g *Game) Over() bool { return g.won || g.lost }

// Rules returns the scoring in effect
func (g *Game) Rules() Rules { return g.rules }

// Pyramid exposes the dependency graph for read-only inspection
func (g *Game) Pyramid() *pyramid.Pyramid { return g.pyramid }

// CurrentWaste returns the exposed waste card, or nil
func (g *Game) CurrentWaste() *deck.Card { return g.currentWaste }

// StockLen returns the number of undrawn cards
func (g *Game) StockLen() int { return g.stock.Len() }

// EventBus returns the bus game events are published on
func (g *Game) EventBus() EventBus { return g.eventBus }

func (g *Game) publish(event Event) {
	g.eventBus.Publish(event)
}
