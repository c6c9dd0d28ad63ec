package transaction

import (
	"fmt"

	"github.com/luca-patrignani/iota-adventurer/config"
	"github.com/luca-patrignani/iota-adventurer/domain/game"
)

// Module is the Move module of the game contract.
const Module = "game"

// Entry points of the game contract.
const (
	FnCreateHero   = "create_hero"
	FnFightMonster = "fight_monster"
	FnHealHero     = "heal_hero"
)

// Builder produces game transactions for one contract deployment.
type Builder struct {
	contract config.Contract
}

// NewBuilder fails when any shared object reference is missing.
func NewBuilder(contract config.Contract) (*Builder, error) {
	if err := contract.Validate(); err != nil {
		return nil, fmt.Errorf("transaction builder: %w", err)
	}
	return &Builder{contract: contract}, nil
}

// Contract returns the deployment the builder targets.
func (b *Builder) Contract() config.Contract {
	return b.contract
}

// BuildCreateHero calls create_hero with no arguments and no payment.
func (b *Builder) BuildCreateHero() *Transaction {
	tx := &Transaction{}
	tx.moveCall(b.contract.PackageID, Module, FnCreateHero)
	return tx
}

// BuildFightMonster pays the entry fee of tier and calls fight_monster.
func (b *Builder) BuildFightMonster(heroID string, tier game.Tier) (*Transaction, error) {
	fee, err := tier.EntryFee()
	if err != nil {
		return nil, err
	}
	tx := &Transaction{}
	payment := tx.splitCoins(fee)
	tx.moveCall(b.contract.PackageID, Module, FnFightMonster,
		tx.object(heroID),
		tx.pureU8(uint8(tier)),
		payment,
		tx.object(b.contract.RandomObjectID),
		tx.object(b.contract.GameBankID),
	)
	return tx, nil
}

// BuildHealHero pays cost and calls heal_hero. The cost is expected to come
// from the live bank configuration.
func (b *Builder) BuildHealHero(heroID string, cost uint64) *Transaction {
	tx := &Transaction{}
	payment := tx.splitCoins(cost)
	tx.moveCall(b.contract.PackageID, Module, FnHealHero,
		tx.object(heroID),
		payment,
		tx.object(b.contract.GameBankID),
	)
	return tx
}
