package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/sjson"

	"github.com/luca-patrignani/iota-adventurer/domain/game"
	"github.com/luca-patrignani/iota-adventurer/events"
	"github.com/luca-patrignani/iota-adventurer/transaction"
	"github.com/luca-patrignani/iota-adventurer/wallet"
)

// Experience granted per tier and needed per level.
const (
	xpPerTierWin  = 10
	xpPerTierLoss = 2
	xpPerLevel    = 100
)

// execution is the working state of one transaction. Nothing touches the
// chain until commit.
type execution struct {
	c        *Chain
	digest   string
	sender   string
	tx       *transaction.Transaction
	gas      uint64
	coins    map[int]uint64
	bank     game.BankConfig
	heroes   map[string]game.Hero
	created  []*heroObject
	events   []events.Event
	function string
}

// ExecuteTransaction verifies, executes and records a signed transaction and
// returns its digest. A transaction that was already executed is not run
// again.
func (c *Chain) ExecuteTransaction(ctx context.Context, txBytes []byte, signatures []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(signatures) == 0 {
		return "", ErrMissingSignature
	}
	sender, err := wallet.Verify(txBytes, signatures[0])
	if err != nil {
		return "", err
	}
	tx, err := transaction.Decode(txBytes)
	if err != nil {
		return "", err
	}
	if tx.Sender != sender {
		return "", fmt.Errorf("%w: sender %s, signer %s", ErrSenderMismatch, tx.Sender, sender)
	}
	digest := transaction.DigestOf(txBytes)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.txs[digest]; ok {
		return digest, nil
	}
	c.touch(sender)

	ex := &execution{
		c:      c,
		digest: digest,
		sender: sender,
		tx:     tx,
		gas:    c.balances[sender],
		coins:  make(map[int]uint64),
		bank:   c.bank,
		heroes: make(map[string]game.Hero),
	}
	if ex.gas < c.gasFee {
		return "", fmt.Errorf("%w: need %d for gas, have %d", ErrInsufficientGas, c.gasFee, ex.gas)
	}
	ex.gas -= c.gasFee

	for i, cmd := range tx.Commands {
		if err := ex.run(i, cmd); err != nil {
			c.logger.Info("transaction aborted", "digest", digest, "sender", sender, "err", err)
			return "", err
		}
	}
	return digest, ex.commit()
}

func (ex *execution) run(i int, cmd transaction.Command) error {
	switch cmd.Kind {
	case transaction.CmdSplitCoins:
		return ex.splitCoins(i, cmd)
	case transaction.CmdMoveCall:
		if cmd.Package != ex.c.packageID || cmd.Module != transaction.Module {
			return fmt.Errorf("%w: %s", ErrUnsupportedCall, cmd.Target())
		}
		ex.function = cmd.Function
		switch cmd.Function {
		case transaction.FnCreateHero:
			return ex.createHero(cmd)
		case transaction.FnFightMonster:
			return ex.fightMonster(i, cmd)
		case transaction.FnHealHero:
			return ex.healHero(i, cmd)
		}
		return fmt.Errorf("%w: %s", ErrUnsupportedCall, cmd.Target())
	}
	return fmt.Errorf("%w: command %d has kind %d", transaction.ErrMalformed, i, cmd.Kind)
}

func (ex *execution) splitCoins(i int, cmd transaction.Command) error {
	if cmd.Coin.Kind != transaction.ArgGasCoin || len(cmd.Amounts) != 1 {
		return fmt.Errorf("%w: only single splits of the gas coin are supported", ErrUnsupportedCall)
	}
	amount, err := ex.tx.U64(cmd.Amounts[0])
	if err != nil {
		return err
	}
	if amount > ex.gas {
		return fmt.Errorf("%w: split of %d, have %d", ErrInsufficientGas, amount, ex.gas)
	}
	ex.gas -= amount
	ex.coins[i] = amount
	return nil
}

// coin consumes the coin produced by an earlier split.
func (ex *execution) coin(a transaction.Argument) (uint64, error) {
	if a.Kind != transaction.ArgResult || a.Nested != 0 {
		return 0, fmt.Errorf("%w: argument is not a split coin", transaction.ErrMalformed)
	}
	v, ok := ex.coins[int(a.Index)]
	if !ok {
		return 0, fmt.Errorf("%w: coin of command %d already used", transaction.ErrMalformed, a.Index)
	}
	delete(ex.coins, int(a.Index))
	return v, nil
}

func (ex *execution) hero(a transaction.Argument) (string, game.Hero, error) {
	id, err := ex.tx.ObjectID(a)
	if err != nil {
		return "", game.Hero{}, err
	}
	if h, ok := ex.heroes[id]; ok {
		return id, h, nil
	}
	obj, ok := ex.c.heroes[id]
	if !ok {
		return "", game.Hero{}, fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}
	if obj.owner != ex.sender {
		return "", game.Hero{}, fmt.Errorf("%w: %s", ErrNotOwner, id)
	}
	return id, obj.hero, nil
}

func (ex *execution) shared(a transaction.Argument, want string) error {
	id, err := ex.tx.ObjectID(a)
	if err != nil {
		return err
	}
	if id != want {
		return fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}
	return nil
}

func (ex *execution) abort(i int, code uint64) error {
	return &AbortError{Package: ex.c.packageID, Function: ex.function, Code: code, Command: i}
}

func (ex *execution) emit(kind string, fields map[string]any) error {
	body := []byte(`{}`)
	for _, key := range sortedKeys(fields) {
		var err error
		body, err = sjson.SetBytes(body, key, fields[key])
		if err != nil {
			return fmt.Errorf("encode %s event: %w", kind, err)
		}
	}
	ex.events = append(ex.events, events.Event{
		Type:       events.EventType(ex.c.packageID, kind),
		Sender:     ex.sender,
		ParsedJSON: json.RawMessage(body),
	})
	return nil
}

func (ex *execution) createHero(cmd transaction.Command) error {
	if len(cmd.Arguments) != 0 {
		return fmt.Errorf("%w: create_hero takes no arguments", transaction.ErrMalformed)
	}
	id := ex.c.newObjectID(ex.digest)
	h := game.Hero{ID: id, HP: game.InitialHP, MaxHP: game.MaxHP, XP: 0, Level: 1}
	ex.heroes[id] = h
	ex.created = append(ex.created, &heroObject{hero: h, owner: ex.sender})
	return ex.emit(events.KindHeroCreated, map[string]any{
		"hero_id": id,
		"owner":   ex.sender,
	})
}

func (ex *execution) fightMonster(i int, cmd transaction.Command) error {
	if len(cmd.Arguments) != 5 {
		return fmt.Errorf("%w: fight_monster takes 5 arguments", transaction.ErrMalformed)
	}
	heroID, h, err := ex.hero(cmd.Arguments[0])
	if err != nil {
		return err
	}
	rawTier, err := ex.tx.U8(cmd.Arguments[1])
	if err != nil {
		return err
	}
	paid, err := ex.coin(cmd.Arguments[2])
	if err != nil {
		return err
	}
	if err := ex.shared(cmd.Arguments[3], ex.c.randomID); err != nil {
		return err
	}
	if err := ex.shared(cmd.Arguments[4], ex.c.bankID); err != nil {
		return err
	}

	if h.Defeated() {
		return ex.abort(i, game.AbortHeroDead)
	}
	tier := game.Tier(rawTier)
	fee, err := tier.EntryFee()
	if err != nil {
		return ex.abort(i, game.AbortInvalidTier)
	}
	if paid < fee {
		return ex.abort(i, game.AbortInsufficientPay)
	}
	ex.bank.Balance += paid

	rng := ex.c.rng
	won := rng.IntN(100) < game.CalculateWinRate(tier, h.Level)
	var reward, xp, damage uint64
	if won {
		reward = game.IotaToNanos(tier.BaseReward() + uint64(rng.IntN(6)))
		if ex.bank.Balance < reward {
			return ex.abort(i, game.AbortBankUnderfunded)
		}
		ex.bank.Balance -= reward
		ex.gas += reward
		xp = xpPerTierWin * uint64(tier)
		damage = uint64(rng.IntN(5*int(tier) + 1))
	} else {
		xp = xpPerTierLoss * uint64(tier)
		damage = 10*uint64(tier) + uint64(rng.IntN(11))
	}
	damage = min(damage, h.HP)

	oldLevel := h.Level
	h.HP -= damage
	h.XP += xp
	h.Level = 1 + h.XP/xpPerLevel
	ex.heroes[heroID] = h

	return ex.emit(events.KindBattle, map[string]any{
		"hero_id":       heroID,
		"monster_tier":  int(tier),
		"won":           won,
		"entry_fee":     strconv.FormatUint(fee, 10),
		"reward":        strconv.FormatUint(reward, 10),
		"xp_gained":     strconv.FormatUint(xp, 10),
		"damage_taken":  strconv.FormatUint(damage, 10),
		"hero_hp_after": strconv.FormatUint(h.HP, 10),
		"leveled_up":    h.Level > oldLevel,
		"new_level":     strconv.FormatUint(h.Level, 10),
	})
}

func (ex *execution) healHero(i int, cmd transaction.Command) error {
	if len(cmd.Arguments) != 3 {
		return fmt.Errorf("%w: heal_hero takes 3 arguments", transaction.ErrMalformed)
	}
	heroID, h, err := ex.hero(cmd.Arguments[0])
	if err != nil {
		return err
	}
	paid, err := ex.coin(cmd.Arguments[1])
	if err != nil {
		return err
	}
	if err := ex.shared(cmd.Arguments[2], ex.c.bankID); err != nil {
		return err
	}

	if h.FullHealth() {
		return ex.abort(i, game.AbortFullHealth)
	}
	cost := ex.bank.HealCost
	if paid < cost {
		return ex.abort(i, game.AbortInsufficientPay)
	}
	ex.bank.Balance += paid

	restored := h.MaxHP - h.HP
	h.HP = h.MaxHP
	ex.heroes[heroID] = h

	return ex.emit(events.KindHeal, map[string]any{
		"hero_id":     heroID,
		"cost":        strconv.FormatUint(cost, 10),
		"hp_restored": strconv.FormatUint(restored, 10),
		"hp_after":    strconv.FormatUint(h.HP, 10),
	})
}

// commit writes the working state back. Unused split coins return to the
// sender. Callers hold c.mu.
func (ex *execution) commit() error {
	c := ex.c
	for _, v := range ex.coins {
		ex.gas += v
	}

	block, err := c.blocks.append(ex.digest, ex.sender, ex.events, Metadata{Function: ex.function, GasFee: c.gasFee})
	if err != nil {
		return err
	}

	c.balances[ex.sender] = ex.gas
	c.bank = ex.bank
	for _, obj := range ex.created {
		obj.seq = uint64(block.Index)
		obj.hero = ex.heroes[obj.hero.ID]
		c.heroes[obj.hero.ID] = obj
		delete(ex.heroes, obj.hero.ID)
	}
	for id, h := range ex.heroes {
		c.heroes[id].hero = h
	}
	c.txs[ex.digest] = &events.Response{Digest: ex.digest, Events: ex.events}
	c.logger.Info("transaction executed", "digest", ex.digest, "function", ex.function, "block", block.Index)
	return nil
}
