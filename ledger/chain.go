package ledger

import (
	"cmp"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/events"
)

type heroObject struct {
	hero  game.Hero
	owner string
	seq   uint64
}

// Chain is a single node chain running the game contract.
type Chain struct {
	mu sync.Mutex

	blocks *Blockchain
	logger *slog.Logger
	rng    *rand.Rand
	now    func() time.Time

	packageID string
	bankID    string
	randomID  string
	gasFee    uint64
	faucet    uint64

	bank     game.BankConfig
	balances map[string]uint64
	funded   map[string]bool
	heroes   map[string]*heroObject
	txs      map[string]*events.Response
	objects  uint64
}

type Option func(*Chain)

func WithPackageID(id string) Option {
	return func(c *Chain) {
		c.packageID = id
	}
}

func WithBankID(id string) Option {
	return func(c *Chain) {
		c.bankID = id
	}
}

func WithRandomID(id string) Option {
	return func(c *Chain) {
		c.randomID = id
	}
}

func WithHealCost(nanos uint64) Option {
	return func(c *Chain) {
		c.bank.HealCost = nanos
	}
}

func WithBankBalance(nanos uint64) Option {
	return func(c *Chain) {
		c.bank.Balance = nanos
	}
}

func WithBankAdmin(address string) Option {
	return func(c *Chain) {
		c.bank.Admin = address
	}
}

// WithFaucet credits every address the first time the chain sees it.
func WithFaucet(nanos uint64) Option {
	return func(c *Chain) {
		c.faucet = nanos
	}
}

// WithGasFee charges a flat fee from the gas coin of every transaction.
func WithGasFee(nanos uint64) Option {
	return func(c *Chain) {
		c.gasFee = nanos
	}
}

// WithSeed makes battle rolls reproducible.
func WithSeed(seed uint64) Option {
	return func(c *Chain) {
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Chain) {
		c.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Chain) {
		c.now = now
	}
}

// NewChain creates a chain with a funded game bank.
func NewChain(opts ...Option) *Chain {
	c := &Chain{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:       time.Now,
		packageID: "0x1d",
		bankID:    "0xba",
		randomID:  "0x8",
		bank: game.BankConfig{
			Balance:  game.IotaToNanos(1000),
			HealCost: game.DefaultHealCost,
		},
		balances: make(map[string]uint64),
		funded:   make(map[string]bool),
		heroes:   make(map[string]*heroObject),
		txs:      make(map[string]*events.Response),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.blocks = NewBlockchain(c.now)
	return c
}

func (c *Chain) PackageID() string { return c.packageID }
func (c *Chain) BankID() string    { return c.bankID }
func (c *Chain) RandomID() string  { return c.randomID }

// touch applies the faucet to a newly seen address. Callers hold c.mu.
func (c *Chain) touch(address string) {
	if c.faucet == 0 || c.funded[address] {
		return
	}
	c.funded[address] = true
	c.balances[address] += c.faucet
	c.logger.Debug("faucet", "address", address, "amount", c.faucet)
}

// Fund credits address with nanos.
func (c *Chain) Fund(address string, nanos uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch(address)
	c.balances[address] += nanos
}

func (c *Chain) GetBalance(ctx context.Context, address string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch(address)
	return c.balances[address], nil
}

// GetOwnedHeroes lists the heroes of address in creation order.
func (c *Chain) GetOwnedHeroes(ctx context.Context, address string) ([]game.Hero, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	owned := make([]*heroObject, 0)
	for _, h := range c.heroes {
		if h.owner == address {
			owned = append(owned, h)
		}
	}
	slices.SortFunc(owned, func(a, b *heroObject) int {
		return cmp.Compare(a.seq, b.seq)
	})
	out := make([]game.Hero, len(owned))
	for i, h := range owned {
		out[i] = h.hero
	}
	return out, nil
}

// GetHero returns a hero object and its owner.
func (c *Chain) GetHero(ctx context.Context, id string) (game.Hero, string, error) {
	if err := ctx.Err(); err != nil {
		return game.Hero{}, "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.heroes[id]
	if !ok {
		return game.Hero{}, "", fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}
	return h.hero, h.owner, nil
}

func (c *Chain) GetBankConfig(ctx context.Context) (game.BankConfig, error) {
	if err := ctx.Err(); err != nil {
		return game.BankConfig{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bank, nil
}

// GetTransaction returns an executed transaction.
func (c *Chain) GetTransaction(ctx context.Context, digest string) (*events.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	resp, ok := c.txs[digest]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransaction, digest)
	}
	return copyResponse(resp), nil
}

// WaitForFinality returns immediately: execution is final on this chain.
func (c *Chain) WaitForFinality(ctx context.Context, digest string) (*events.Response, error) {
	return c.GetTransaction(ctx, digest)
}

func (c *Chain) Blocks() []Block {
	return c.blocks.Blocks()
}

func (c *Chain) Verify() error {
	return c.blocks.Verify()
}

func (c *Chain) newObjectID(digest string) string {
	c.objects++
	sum := blake2b.Sum256(fmt.Appendf(nil, "%s/%d", digest, c.objects))
	return "0x" + hex.EncodeToString(sum[:])
}

func copyResponse(resp *events.Response) *events.Response {
	out := &events.Response{Digest: resp.Digest, Events: make([]events.Event, len(resp.Events))}
	copy(out.Events, resp.Events)
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
