// Package game implements the domain model of the adventurer game: heroes,
// monster tiers, entry fees, the monster catalog and the presentation rules
// derived from them.
//
// # Core Types
//
// Hero: The player's on-ledger character with hit points, experience and level.
//
// Tier: One of four ordered difficulty brackets, each with a fixed entry fee.
//
// Monster: A static catalog entry shown while a fight is in flight. The
// catalog pick is cosmetic; the contract alone decides the outcome.
//
// BattleResult / HealResult: Outcomes decoded from confirmed transactions.
//
// # Rules
//
// Win rates, reward ranges and player tiers are display helpers. The
// authoritative numbers always come back from the contract's events.
package game
