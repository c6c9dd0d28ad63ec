package game

// BattleResult is the outcome of one confirmed fight transaction together with
// the monster the client displayed for it.
type BattleResult struct {
	HeroID      string
	MonsterTier Tier
	Won         bool
	EntryFee    uint64
	Reward      uint64
	XPGained    uint64
	DamageTaken uint64
	HeroHPAfter uint64
	LeveledUp   bool
	NewLevel    uint64
	Monster     Monster
	TxDigest    string
}

// HealResult is the outcome of one confirmed heal transaction.
type HealResult struct {
	HeroID     string
	Cost       uint64
	HPRestored uint64
	HPAfter    uint64
	TxDigest   string
}
