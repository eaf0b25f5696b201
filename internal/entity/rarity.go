package entity

import "github.com/pokequest-lab/backend/pkg/enum"

// RarityTier is the closed set of rarities a pool entry can carry. Every tier
// appearing in any mapping below must be listed here; the engine refuses pools
// containing anything else.
type RarityTier string

var (
	TierCommon    = enum.New(RarityTier("common"))
	TierUncommon  = enum.New(RarityTier("uncommon"))
	TierRare      = enum.New(RarityTier("rare"))
	TierEpic      = enum.New(RarityTier("epic"))
	TierLegendary = enum.New(RarityTier("legendary"))
)

// TopTier is the tier governed by the pity mechanic.
const TopTier = RarityTier("legendary")

var tierRanks = map[RarityTier]int{
	TierCommon:    1,
	TierUncommon:  2,
	TierRare:      3,
	TierEpic:      4,
	TierLegendary: 5,
}

var tierRewardMultipliers = map[RarityTier]int{
	TierCommon:    1,
	TierUncommon:  2,
	TierRare:      5,
	TierEpic:      10,
	TierLegendary: 25,
}

// Rank orders tiers from lowest (1) to highest. Unknown tiers rank 0, below
// everything valid.
func (t RarityTier) Rank() int {
	return tierRanks[t]
}

// RewardMultiplier scales the duplicate-conversion reward of this tier.
func (t RarityTier) RewardMultiplier() int {
	return tierRewardMultipliers[t]
}

func (t RarityTier) IsValid() bool {
	_, ok := tierRanks[t]
	return ok
}
