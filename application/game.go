package application

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/events"
	"github.com/luca-patrignani/iota-adventurer/gamelog"
)

// Game is one player's session.
type Game struct {
	mu      sync.Mutex
	pending atomic.Bool

	session Session
	chain   ChainReader
	builder Builder
	parser  *events.Parser
	log     *gamelog.Recorder
	logger  *slog.Logger
	rng     *rand.Rand
	now     func() time.Time

	slowThreshold time.Duration
	bankFallback  bool
	observers     []func(Snapshot)

	state       State
	address     string
	connected   bool
	hero        *game.Hero
	balance     uint64
	bank        game.BankConfig
	bankDefault bool
	network     NetworkStatus
	latency     time.Duration
	tier        game.Tier
	monster     *game.Monster
	battle      *game.BattleResult
	healResult  *game.HealResult
	lastRefresh time.Time
}

type gameOption func(*Game)

func WithLogger(logger *slog.Logger) gameOption {
	return func(g *Game) {
		g.logger = logger
	}
}

func WithRecorder(r *gamelog.Recorder) gameOption {
	return func(g *Game) {
		g.log = r
	}
}

// WithRand sets the source of the display monster picks.
func WithRand(r *rand.Rand) gameOption {
	return func(g *Game) {
		g.rng = r
	}
}

func WithClock(now func() time.Time) gameOption {
	return func(g *Game) {
		g.now = now
	}
}

// WithSlowThreshold sets the refresh latency above which the network is
// reported as slow.
func WithSlowThreshold(d time.Duration) gameOption {
	return func(g *Game) {
		g.slowThreshold = d
	}
}

// WithBankFallback chooses whether a failed bank read falls back to the
// default heal cost or fails the refresh.
func WithBankFallback(enabled bool) gameOption {
	return func(g *Game) {
		g.bankFallback = enabled
	}
}

// OnChange registers an observer called with a snapshot after every
// transition. Observers run on the caller's goroutine without locks held.
func OnChange(fn func(Snapshot)) gameOption {
	return func(g *Game) {
		g.observers = append(g.observers, fn)
	}
}

func New(session Session, chain ChainReader, builder Builder, parser *events.Parser, opts ...gameOption) *Game {
	g := &Game{
		session:       session,
		chain:         chain,
		builder:       builder,
		parser:        parser,
		log:           gamelog.NewRecorder(gamelog.DefaultMax),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:           time.Now,
		slowThreshold: 5 * time.Second,
		bankFallback:  true,
		state:         Idle,
		network:       NetworkDisconnected,
		tier:          game.Tier1,
		bank:          game.BankConfig{HealCost: game.DefaultHealCost},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Snapshot is a copy of the session state for rendering.
type Snapshot struct {
	State       State
	Pending     bool
	Connected   bool
	Network     NetworkStatus
	Latency     time.Duration
	LastRefresh time.Time
	Player      game.Player
	Bank        game.BankConfig
	BankDefault bool
	Tier        game.Tier
	Monster     *game.Monster
	Battle      *game.BattleResult
	Heal        *game.HealResult
	Logs        []gamelog.Entry
}

// WinRate is the displayed win rate of the selected tier for the hero.
func (s Snapshot) WinRate() int {
	var level uint64 = 1
	if s.Player.Hero != nil {
		level = s.Player.Hero.Level
	}
	return game.CalculateWinRate(s.Tier, level)
}

// RewardRange is the reward a win against the selected tier can pay.
func (s Snapshot) RewardRange() game.RewardRange {
	return game.ExpectedRewardRange(s.Tier)
}

// CanFight reports whether the fight action is offered.
func (s Snapshot) CanFight() bool {
	return !s.Pending && s.Player.Hero != nil && (s.State == Ready || s.State == Result)
}

// CanHeal reports whether the heal action is offered.
func (s Snapshot) CanHeal() bool {
	return s.CanFight() && !s.Player.Hero.FullHealth()
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// snapshot copies the state. Callers hold g.mu.
func (g *Game) snapshot() Snapshot {
	s := Snapshot{
		State:       g.state,
		Pending:     g.pending.Load(),
		Connected:   g.connected,
		Network:     g.network,
		Latency:     g.latency,
		LastRefresh: g.lastRefresh,
		Player:      game.NewPlayer(g.address, g.hero, g.balance),
		Bank:        g.bank,
		BankDefault: g.bankDefault,
		Tier:        g.tier,
		Logs:        g.log.Entries(),
	}
	if g.monster != nil {
		m := *g.monster
		s.Monster = &m
	}
	if g.battle != nil {
		b := *g.battle
		s.Battle = &b
	}
	if g.healResult != nil {
		h := *g.healResult
		s.Heal = &h
	}
	return s
}

// State returns the active state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Logs returns the recorded entries, newest first.
func (g *Game) Logs() []gamelog.Entry {
	return g.log.Entries()
}

// notify hands a fresh snapshot to the observers. It must be called without
// g.mu held.
func (g *Game) notify() {
	if len(g.observers) == 0 {
		return
	}
	s := g.Snapshot()
	for _, fn := range g.observers {
		fn(s)
	}
}

// transition moves to next and logs the change.
// Callers hold g.mu.
func (g *Game) transition(next State) {
	if g.state == next {
		return
	}
	g.logger.Debug("state transition", "from", g.state, "to", next)
	g.state = next
}

func (g *Game) record(msg string, category gamelog.Category) {
	g.log.Append(msg, category)
}

func short(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
