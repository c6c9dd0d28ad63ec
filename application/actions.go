package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/events"
	"github.com/luca-patrignani/iota-adventurer/gamelog"
)

// reject appends the single explanatory entry of a refused action.
func (g *Game) reject(err error, msg string, category gamelog.Category) error {
	g.record(msg, category)
	g.logger.Debug("action rejected", "reason", err)
	return err
}

// checkPlayable is shared by fight and heal. Callers hold g.mu.
func (g *Game) checkPlayable(action string) error {
	if !g.connected {
		return g.reject(ErrNotConnected, "Connect a wallet first", gamelog.Danger)
	}
	if g.hero == nil {
		return g.reject(ErrNoHero, "Create a hero first", gamelog.Danger)
	}
	if g.state != Ready && g.state != Result {
		return g.reject(ErrInvalidState,
			fmt.Sprintf("Cannot %s while %s", action, g.state), gamelog.Info)
	}
	return nil
}

func (g *Game) recordTx(resp *events.Response) {
	if resp == nil || resp.Digest == "" {
		return
	}
	g.record(fmt.Sprintf("Transaction: %s", short(resp.Digest, 16)), gamelog.Tx)
}

// CreateHero mints the first hero of a heroless account.
func (g *Game) CreateHero(ctx context.Context) error {
	if !g.pending.CompareAndSwap(false, true) {
		return ErrActionPending
	}
	defer g.pending.Store(false)

	if err := g.beginCreate(); err != nil {
		g.notify()
		return err
	}
	g.record("Creating hero...", gamelog.Info)
	g.notify()

	resp, err := g.session.SignAndSubmit(ctx, g.builder.BuildCreateHero())
	if err != nil {
		g.mu.Lock()
		g.transition(Idle)
		g.mu.Unlock()
		g.record(fmt.Sprintf("Hero creation failed: %s", game.Describe(err)), gamelog.Danger)
		g.notify()
		return fmt.Errorf("create hero: %w", err)
	}
	created, ok := g.parser.HeroCreated(resp)
	if rerr := g.refresh(ctx); rerr != nil {
		g.logger.Warn("refresh after create hero", "error", rerr)
	}

	g.mu.Lock()
	if !ok {
		if g.hero != nil {
			g.transition(Ready)
		} else {
			g.transition(Idle)
		}
		g.mu.Unlock()
		g.record("Hero creation confirmed without a HeroCreated event", gamelog.Danger)
		g.recordTx(resp)
		g.notify()
		return ErrMissingEvent
	}
	// A fresh hero has fixed stats; the next refresh replaces this copy.
	if g.hero == nil {
		g.hero = &game.Hero{ID: created.HeroID, HP: game.InitialHP, MaxHP: game.MaxHP, Level: 1}
	}
	g.transition(Ready)
	g.mu.Unlock()
	g.logger.Info("hero created", "hero", created.HeroID, "digest", resp.Digest)
	g.record(fmt.Sprintf("Hero created! ID: %s", short(created.HeroID, 10)), gamelog.Gain)
	g.recordTx(resp)
	g.notify()
	return nil
}

func (g *Game) beginCreate() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.connected {
		return g.reject(ErrNotConnected, "Connect a wallet first", gamelog.Danger)
	}
	if g.hero != nil || g.state != Idle {
		return g.reject(ErrInvalidState, "You already have a hero", gamelog.Info)
	}
	g.transition(Minting)
	return nil
}

// SelectTier chooses the tier of the next fight.
func (g *Game) SelectTier(t game.Tier) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", game.ErrInvalidTier, t)
	}
	g.mu.Lock()
	if g.state == Battling {
		g.mu.Unlock()
		return ErrInvalidState
	}
	g.tier = t
	g.mu.Unlock()
	g.notify()
	return nil
}

// Fight pays the entry fee of the selected tier and settles the battle.
// The monster shown while waiting is a display-only pick; the outcome is the
// one reported by the confirmed BattleEvent.
func (g *Game) Fight(ctx context.Context) error {
	if !g.pending.CompareAndSwap(false, true) {
		return ErrActionPending
	}
	defer g.pending.Store(false)

	heroID, tier, monster, err := g.beginFight()
	if err != nil {
		g.notify()
		return err
	}
	g.notify()

	fail := func(resp *events.Response, err error) error {
		g.mu.Lock()
		g.monster = nil
		g.battle = nil
		g.transition(Ready)
		g.mu.Unlock()
		g.record(fmt.Sprintf("Battle failed: %s", game.Describe(err)), gamelog.Danger)
		g.recordTx(resp)
		g.notify()
		return fmt.Errorf("fight: %w", err)
	}

	tx, err := g.builder.BuildFightMonster(heroID, tier)
	if err != nil {
		return fail(nil, err)
	}
	resp, err := g.session.SignAndSubmit(ctx, tx)
	if err != nil {
		return fail(nil, err)
	}
	result, ok, err := g.parser.Battle(resp, monster)
	if err != nil {
		return fail(resp, errors.Join(ErrMissingEvent, err))
	}
	if !ok {
		return fail(resp, ErrMissingEvent)
	}

	g.mu.Lock()
	g.battle = result
	g.transition(Result)
	g.mu.Unlock()
	g.recordBattle(result)
	g.recordTx(resp)
	if rerr := g.refresh(ctx); rerr != nil {
		g.logger.Warn("refresh after fight", "error", rerr)
	}
	g.notify()
	return nil
}

func (g *Game) beginFight() (string, game.Tier, game.Monster, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkPlayable("fight"); err != nil {
		return "", 0, game.Monster{}, err
	}
	fee, err := g.tier.EntryFee()
	if err != nil {
		return "", 0, game.Monster{}, g.reject(err, err.Error(), gamelog.Danger)
	}
	if g.balance < fee {
		return "", 0, game.Monster{}, g.reject(ErrInsufficientBalance,
			fmt.Sprintf("Insufficient balance: %s costs %s IOTA, you have %s IOTA",
				g.tier, game.FormatIota(fee, 2), game.FormatIota(g.balance, 2)),
			gamelog.Danger)
	}
	if g.hero.Defeated() {
		return "", 0, game.Monster{}, g.reject(ErrHeroDefeated,
			"Your hero is defeated. Heal before fighting", gamelog.Danger)
	}
	monster, err := game.PickMonster(g.tier, g.rng)
	if err != nil {
		return "", 0, game.Monster{}, g.reject(err, err.Error(), gamelog.Danger)
	}
	g.battle = nil
	g.healResult = nil
	g.monster = &monster
	g.transition(Battling)
	g.record(fmt.Sprintf("Encountered %s!", monster.Name), gamelog.Combat)
	g.record(fmt.Sprintf("Paying entry fee %s IOTA...", game.FormatIota(fee, 2)), gamelog.Info)
	return g.hero.ID, g.tier, monster, nil
}

func (g *Game) recordBattle(r *game.BattleResult) {
	if r.Won {
		g.record(fmt.Sprintf("Victory over %s! +%s, +%d XP",
			r.Monster.Name, game.FormatReward(r.Reward), r.XPGained), gamelog.Gain)
	} else {
		g.record(fmt.Sprintf("Defeated by %s. Lost %d HP", r.Monster.Name, r.DamageTaken), gamelog.Danger)
	}
	if r.LeveledUp {
		g.record(fmt.Sprintf("Level up! Now level %d", r.NewLevel), gamelog.Gain)
	}
	g.logger.Info("battle settled", "won", r.Won, "tier", r.MonsterTier, "digest", r.TxDigest)
}

// Heal pays the bank's heal cost to restore the hero's hit points.
func (g *Game) Heal(ctx context.Context) error {
	if !g.pending.CompareAndSwap(false, true) {
		return ErrActionPending
	}
	defer g.pending.Store(false)

	heroID, cost, err := g.beginHeal()
	if err != nil {
		g.notify()
		return err
	}
	g.notify()

	fail := func(resp *events.Response, err error) error {
		g.mu.Lock()
		g.transition(Ready)
		g.mu.Unlock()
		g.record(fmt.Sprintf("Heal failed: %s", game.Describe(err)), gamelog.Danger)
		g.recordTx(resp)
		g.notify()
		return fmt.Errorf("heal: %w", err)
	}

	resp, err := g.session.SignAndSubmit(ctx, g.builder.BuildHealHero(heroID, cost))
	if err != nil {
		return fail(nil, err)
	}
	result, ok, err := g.parser.Heal(resp)
	if err != nil {
		return fail(resp, errors.Join(ErrMissingEvent, err))
	}
	if !ok {
		return fail(resp, ErrMissingEvent)
	}

	g.mu.Lock()
	g.healResult = result
	g.transition(Ready)
	g.mu.Unlock()
	g.record(fmt.Sprintf("Healed! Restored %d HP, HP now %d", result.HPRestored, result.HPAfter), gamelog.Gain)
	g.recordTx(resp)
	if rerr := g.refresh(ctx); rerr != nil {
		g.logger.Warn("refresh after heal", "error", rerr)
	}
	g.notify()
	return nil
}

func (g *Game) beginHeal() (string, uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkPlayable("heal"); err != nil {
		return "", 0, err
	}
	if g.hero.FullHealth() {
		return "", 0, g.reject(ErrFullHealth, "Your hero is already at full health", gamelog.Info)
	}
	cost := g.bank.HealCost
	if g.balance < cost {
		return "", 0, g.reject(ErrInsufficientBalance,
			fmt.Sprintf("Insufficient balance: healing costs %s IOTA, you have %s IOTA",
				game.FormatIota(cost, 2), game.FormatIota(g.balance, 2)),
			gamelog.Danger)
	}
	g.battle = nil
	g.monster = nil
	g.healResult = nil
	g.transition(Healing)
	g.record(fmt.Sprintf("Healing for %s IOTA...", game.FormatIota(cost, 2)), gamelog.Info)
	return g.hero.ID, cost, nil
}

// Continue dismisses the battle result.
func (g *Game) Continue() error {
	g.mu.Lock()
	if g.state != Result {
		g.mu.Unlock()
		return ErrInvalidState
	}
	g.battle = nil
	g.monster = nil
	g.transition(Ready)
	g.reconcile()
	g.mu.Unlock()
	g.notify()
	return nil
}
