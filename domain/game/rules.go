package game

const (
	InitialHP = 100
	MaxHP     = 100

	// DefaultHealCost is used when the bank configuration cannot be read.
	DefaultHealCost = 5 * NanosPerIota

	maxWinRate    = 95
	maxLevelBonus = 10
)

// CalculateWinRate returns the displayed win percentage for a hero of the given
// level fighting a monster of tier t. Each level above the first adds one point,
// up to ten, and the total is capped at 95.
func CalculateWinRate(t Tier, level uint64) int {
	var bonus int
	switch {
	case level > maxLevelBonus:
		bonus = maxLevelBonus
	case level > 1:
		bonus = int(level - 1)
	}
	return min(t.BaseWinRate()+bonus, maxWinRate)
}

// RewardRange is an inclusive range of rewards in nanos.
type RewardRange struct {
	Min uint64
	Max uint64
}

// ExpectedRewardRange returns the reward a win against tier t can pay out.
func ExpectedRewardRange(t Tier) RewardRange {
	base := t.BaseReward()
	return RewardRange{
		Min: IotaToNanos(base),
		Max: IotaToNanos(base + 5),
	}
}

// FormatReward renders a reward as whole IOTA.
func FormatReward(nanos uint64) string {
	return FormatIota(nanos, 0) + " IOTA"
}
