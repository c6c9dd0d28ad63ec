package game

// Hero is the player's persistent character as read from the ledger.
type Hero struct {
	ID    string
	HP    uint64
	MaxHP uint64
	XP    uint64
	Level uint64
}

// Defeated reports whether the hero has no hit points left.
func (h Hero) Defeated() bool {
	return h.HP == 0
}

// FullHealth reports whether the hero cannot be healed any further.
func (h Hero) FullHealth() bool {
	return h.HP >= h.MaxHP
}

// BankConfig is the shared treasury object of the game contract.
type BankConfig struct {
	Balance  uint64
	HealCost uint64
	Admin    string
}

// PlayerTier is a cosmetic rank derived from the hero level.
type PlayerTier string

const (
	Bronze   PlayerTier = "BRONZE"
	Silver   PlayerTier = "SILVER"
	Gold     PlayerTier = "GOLD"
	Platinum PlayerTier = "PLATINUM"
	Diamond  PlayerTier = "DIAMOND"
	Star     PlayerTier = "STAR"
	King     PlayerTier = "KING"
	Saint    PlayerTier = "SAINT"
	Emperor  PlayerTier = "EMPEROR"
	God      PlayerTier = "GOD"
)

var playerTiers = []PlayerTier{Bronze, Silver, Gold, Platinum, Diamond, Star, King, Saint, Emperor, God}

var playerTitles = map[PlayerTier]string{
	Bronze:   "Bronze Adventurer",
	Silver:   "Silver Adventurer",
	Gold:     "Gold Adventurer",
	Platinum: "Platinum Adventurer",
	Diamond:  "Diamond Adventurer",
	Star:     "Star Adventurer",
	King:     "King Adventurer",
	Saint:    "Saint Adventurer",
	Emperor:  "Emperor Adventurer",
	God:      "God Adventurer",
}

// CalculatePlayerTier maps a hero level to its rank: level 1 (or less) is
// BRONZE, every level up to 9 climbs one rank and 10 or more is GOD.
func CalculatePlayerTier(level uint64) PlayerTier {
	if level < 1 {
		level = 1
	}
	if level > uint64(len(playerTiers)) {
		level = uint64(len(playerTiers))
	}
	return playerTiers[level-1]
}

// Title is the display name of a player tier.
func (t PlayerTier) Title() string {
	return playerTitles[t]
}

// Player is the view model composed from the wallet and the ledger.
// It is rebuilt on every refresh and never stored.
type Player struct {
	Address string
	Hero    *Hero
	Balance uint64
	Tier    PlayerTier
}

// NewPlayer derives the player view model. A heroless player is BRONZE.
func NewPlayer(address string, hero *Hero, balance uint64) Player {
	p := Player{
		Address: address,
		Balance: balance,
		Tier:    Bronze,
	}
	if hero != nil {
		h := *hero
		p.Hero = &h
		p.Tier = CalculatePlayerTier(h.Level)
	}
	return p
}
