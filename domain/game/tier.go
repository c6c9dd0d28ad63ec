package game

import (
	"errors"
	"fmt"
)

// Tier is a monster difficulty bracket. The zero value is not a valid tier.
type Tier uint8

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3
	Tier4 Tier = 4
)

var ErrInvalidTier = errors.New("invalid monster tier")

var entryFees = map[Tier]uint64{
	Tier1: 1 * NanosPerIota,
	Tier2: 2 * NanosPerIota,
	Tier3: 3 * NanosPerIota,
	Tier4: 5 * NanosPerIota,
}

var baseWinRates = map[Tier]int{
	Tier1: 80,
	Tier2: 70,
	Tier3: 60,
	Tier4: 50,
}

// base rewards in whole IOTA
var baseRewards = map[Tier]uint64{
	Tier1: 1,
	Tier2: 2,
	Tier3: 4,
	Tier4: 8,
}

// Tiers returns every tier in ascending difficulty.
func Tiers() []Tier {
	return []Tier{Tier1, Tier2, Tier3, Tier4}
}

// Valid reports whether t is one of the four defined tiers.
func (t Tier) Valid() bool {
	return t >= Tier1 && t <= Tier4
}

// EntryFee returns the fixed fee in nanos for fighting a monster of tier t.
func (t Tier) EntryFee() (uint64, error) {
	fee, ok := entryFees[t]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTier, t)
	}
	return fee, nil
}

// BaseWinRate returns the win percentage of a level 1 hero against tier t.
func (t Tier) BaseWinRate() int {
	return baseWinRates[t]
}

// BaseReward returns the minimum reward of tier t in whole IOTA.
func (t Tier) BaseReward() uint64 {
	return baseRewards[t]
}

func (t Tier) String() string {
	switch t {
	case Tier1:
		return "Easy"
	case Tier2:
		return "Normal"
	case Tier3:
		return "Hard"
	case Tier4:
		return "Hell"
	}
	return fmt.Sprintf("Tier(%d)", uint8(t))
}

// Label is the selector caption of a tier, e.g. "Hard (3 IOTA)".
func (t Tier) Label() string {
	fee, err := t.EntryFee()
	if err != nil {
		return t.String()
	}
	return fmt.Sprintf("%s (%s IOTA)", t, FormatIota(fee, 0))
}
