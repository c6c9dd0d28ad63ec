// Package events decodes the events emitted by the game contract from a
// confirmed transaction response.
//
// A missing event is reported as "no result" and never as an error. An event
// that is present but cannot be decoded exactly is an error. Callers treat
// both the same way: no result record is ever built from a partial event.
package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/luca-patrignani/iota-adventurer/domain/game"
)

// Event kinds emitted by the game module.
const (
	KindHeroCreated = "HeroCreated"
	KindBattle      = "BattleEvent"
	KindHeal        = "HealEvent"
)

// Event is one emitted Move event.
type Event struct {
	Type       string          `json:"type"`
	Sender     string          `json:"sender"`
	ParsedJSON json.RawMessage `json:"parsedJson"`
}

// Response is a confirmed transaction with its events.
type Response struct {
	Digest string  `json:"digest"`
	Events []Event `json:"events"`
}

// HeroCreated is the decoded HeroCreated event.
type HeroCreated struct {
	HeroID string
	Owner  string
}

var ErrDecode = errors.New("decode event")

// Parser decodes the events of one package.
type Parser struct {
	packageID string
}

func NewParser(packageID string) *Parser {
	return &Parser{packageID: packageID}
}

// EventType is the fully qualified type of an event kind.
func EventType(packageID, kind string) string {
	return fmt.Sprintf("%s::game::%s", packageID, kind)
}

func (p *Parser) find(resp *Response, kind string) (gjson.Result, bool) {
	if resp == nil {
		return gjson.Result{}, false
	}
	want := EventType(p.packageID, kind)
	for _, e := range resp.Events {
		if e.Type == want {
			return gjson.ParseBytes(e.ParsedJSON), true
		}
	}
	return gjson.Result{}, false
}

// HeroCreated extracts the created hero, if any.
func (p *Parser) HeroCreated(resp *Response) (*HeroCreated, bool) {
	ev, ok := p.find(resp, KindHeroCreated)
	if !ok {
		return nil, false
	}
	heroID, err := str(ev, "hero_id")
	if err != nil {
		return nil, false
	}
	owner, err := str(ev, "owner")
	if err != nil {
		return nil, false
	}
	return &HeroCreated{HeroID: heroID, Owner: owner}, true
}

// Battle extracts the battle outcome and attaches the monster displayed for it.
func (p *Parser) Battle(resp *Response, monster game.Monster) (*game.BattleResult, bool, error) {
	ev, ok := p.find(resp, KindBattle)
	if !ok {
		return nil, false, nil
	}
	d := decoder{ev: ev}
	r := &game.BattleResult{
		HeroID:      d.str("hero_id"),
		MonsterTier: game.Tier(d.u8("monster_tier")),
		Won:         d.boolean("won"),
		EntryFee:    d.u64("entry_fee"),
		Reward:      d.u64("reward"),
		XPGained:    d.u64("xp_gained"),
		DamageTaken: d.u64("damage_taken"),
		HeroHPAfter: d.u64("hero_hp_after"),
		LeveledUp:   d.boolean("leveled_up"),
		NewLevel:    d.u64("new_level"),
		Monster:     monster,
		TxDigest:    resp.Digest,
	}
	if d.err != nil {
		return nil, true, d.err
	}
	return r, true, nil
}

// Heal extracts the heal outcome.
func (p *Parser) Heal(resp *Response) (*game.HealResult, bool, error) {
	ev, ok := p.find(resp, KindHeal)
	if !ok {
		return nil, false, nil
	}
	d := decoder{ev: ev}
	r := &game.HealResult{
		HeroID:     d.str("hero_id"),
		Cost:       d.u64("cost"),
		HPRestored: d.u64("hp_restored"),
		HPAfter:    d.u64("hp_after"),
		TxDigest:   resp.Digest,
	}
	if d.err != nil {
		return nil, true, d.err
	}
	return r, true, nil
}

// decoder keeps the first field error so a whole event can be read in one
// expression.
type decoder struct {
	ev  gjson.Result
	err error
}

func (d *decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *decoder) str(field string) string {
	s, err := str(d.ev, field)
	d.fail(err)
	return s
}

func (d *decoder) u64(field string) uint64 {
	v, err := u64(d.ev, field)
	d.fail(err)
	return v
}

func (d *decoder) u8(field string) uint8 {
	v, err := u64(d.ev, field)
	if err == nil && v > 255 {
		err = fmt.Errorf("%w: %s=%d overflows u8", ErrDecode, field, v)
	}
	d.fail(err)
	return uint8(v)
}

func (d *decoder) boolean(field string) bool {
	v := d.ev.Get(field)
	if v.Type != gjson.True && v.Type != gjson.False {
		d.fail(fmt.Errorf("%w: %s is not a bool", ErrDecode, field))
		return false
	}
	return v.Bool()
}

func str(ev gjson.Result, field string) (string, error) {
	v := ev.Get(field)
	if v.Type != gjson.String {
		return "", fmt.Errorf("%w: %s is not a string", ErrDecode, field)
	}
	return v.Str, nil
}

// u64 accepts both string encoded (u64) and plain JSON numbers (u8). Values are
// parsed from their raw text so no float conversion takes place.
func u64(ev gjson.Result, field string) (uint64, error) {
	v := ev.Get(field)
	var raw string
	switch v.Type {
	case gjson.String:
		raw = v.Str
	case gjson.Number:
		raw = v.Raw
	default:
		return 0, fmt.Errorf("%w: %s is missing", ErrDecode, field)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrDecode, field, err)
	}
	return n, nil
}
