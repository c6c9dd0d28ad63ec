package application

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/gamelog"
)

// Connect binds the game to the session's current account and loads its
// ledger state.
func (g *Game) Connect(ctx context.Context) error {
	address, ok := g.session.CurrentAddress()
	if !ok {
		g.record("Connect a wallet to play", gamelog.Danger)
		g.notify()
		return ErrNotConnected
	}
	g.mu.Lock()
	g.address = address
	g.connected = true
	g.mu.Unlock()
	g.logger.Info("connected", "address", address)
	g.record(fmt.Sprintf("Connected as %s", short(address, 10)), gamelog.Info)

	err := g.refresh(ctx)
	g.notify()
	return err
}

// Disconnect forgets the account and every value read for it.
func (g *Game) Disconnect() {
	g.mu.Lock()
	g.address = ""
	g.connected = false
	g.hero = nil
	g.balance = 0
	g.network = NetworkDisconnected
	g.reconcile()
	g.mu.Unlock()
	g.logger.Info("disconnected")
	g.notify()
}

// Refresh re-reads balance, heroes and bank configuration.
func (g *Game) Refresh(ctx context.Context) error {
	err := g.refresh(ctx)
	g.notify()
	return err
}

type ledgerView struct {
	balance uint64
	heroes  []game.Hero
	bank    game.BankConfig
	bankErr error
}

// refresh replaces the ledger snapshot with a fresh read and reconciles the
// state. It never computes balances or heroes locally.
func (g *Game) refresh(ctx context.Context) error {
	g.mu.Lock()
	address, connected := g.address, g.connected
	g.mu.Unlock()
	if !connected {
		return ErrNotConnected
	}

	var view ledgerView
	start := g.now()
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		balance, err := g.chain.GetBalance(egCtx, address)
		if err != nil {
			return fmt.Errorf("get balance: %w", err)
		}
		view.balance = balance
		return nil
	})
	eg.Go(func() error {
		heroes, err := g.chain.GetOwnedHeroes(egCtx, address)
		if err != nil {
			return fmt.Errorf("get owned heroes: %w", err)
		}
		view.heroes = heroes
		return nil
	})
	eg.Go(func() error {
		bank, err := g.chain.GetBankConfig(egCtx)
		if err != nil {
			if g.bankFallback {
				view.bankErr = err
				return nil
			}
			return fmt.Errorf("get bank config: %w", err)
		}
		view.bank = bank
		return nil
	})
	err := eg.Wait()
	latency := g.now().Sub(start)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.latency = latency
	if err != nil {
		g.network = NetworkDisconnected
		g.logger.Error("refresh failed", "error", err)
		g.record(fmt.Sprintf("Network error: %v", err), gamelog.Danger)
		return err
	}
	g.network = NetworkConnected
	if latency > g.slowThreshold {
		g.network = NetworkSlow
	}
	g.lastRefresh = g.now()
	g.balance = view.balance
	g.hero = nil
	if len(view.heroes) > 0 {
		h := view.heroes[0]
		g.hero = &h
	}
	if view.bankErr != nil {
		g.bank = game.BankConfig{HealCost: game.DefaultHealCost}
		g.bankDefault = true
		g.logger.Warn("bank config unavailable, using default heal cost",
			"error", view.bankErr, "heal_cost", game.DefaultHealCost)
		g.record(fmt.Sprintf("Bank unavailable, assuming heal cost %s IOTA",
			game.FormatIota(game.DefaultHealCost, 2)), gamelog.Danger)
	} else {
		g.bank = view.bank
		g.bankDefault = false
	}
	g.reconcile()
	return nil
}

// reconcile re-derives IDLE or READY from connection and hero presence.
// Callers hold g.mu.
func (g *Game) reconcile() {
	if g.state.inFlight() || g.pending.Load() {
		return
	}
	if g.connected && g.hero != nil {
		g.transition(Ready)
		return
	}
	g.transition(Idle)
}
