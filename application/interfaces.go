package application

import (
	"context"

	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/events"
	"github.com/luca-patrignani/iota-adventurer/transaction"
)

//go:generate go tool mockgen -source=interfaces.go -destination=./mocks/mocks.go -package=mocks

// Session is the connected wallet.
type Session interface {
	// CurrentAddress returns the connected account, if any.
	CurrentAddress() (string, bool)

	// SignAndSubmit signs tx, submits it and returns the confirmed response.
	// It fails when the user rejects signing or the submission fails.
	SignAndSubmit(ctx context.Context, tx *transaction.Transaction) (*events.Response, error)
}

// ChainReader reads ledger state.
type ChainReader interface {
	GetBalance(ctx context.Context, address string) (uint64, error)
	GetOwnedHeroes(ctx context.Context, address string) ([]game.Hero, error)
	GetBankConfig(ctx context.Context) (game.BankConfig, error)
	WaitForFinality(ctx context.Context, digest string) (*events.Response, error)
}

// Builder produces the game transactions.
type Builder interface {
	BuildCreateHero() *transaction.Transaction
	BuildFightMonster(heroID string, tier game.Tier) (*transaction.Transaction, error)
	BuildHealHero(heroID string, cost uint64) *transaction.Transaction
}
