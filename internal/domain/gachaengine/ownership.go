package gachaengine

import (
	"math"

	"github.com/pokequest-lab/backend/internal/entity"
)

// Classification is the ownership verdict for one draw of a batch.
type Classification struct {
	Draw Draw

	// IsDuplicate means the user already owns the item, counting earlier
	// grants of the same batch.
	IsDuplicate bool

	// Reward is the currency conversion of a duplicate, zero otherwise.
	Reward uint64
}

// Classify resolves ownership for an ordered batch of draws. Ownership is
// evaluated against the would-be state after the batch: if the same item drops
// twice and the first drop is a new grant, the second one is a duplicate. The
// duplicate reward is floor(rewardMultiplier * costPerDraw * conversionRate),
// deterministic per tier.
func Classify(
	ownedItemIDs []string, draws []Draw, costPerDraw uint64, conversionRate float64,
) ([]Classification, uint64) {
	owned := map[string]bool{}
	for _, id := range ownedItemIDs {
		owned[id] = true
	}

	classifications := make([]Classification, 0, len(draws))
	var totalReward uint64
	for _, draw := range draws {
		c := Classification{Draw: draw}
		if owned[draw.Entry.ItemID] {
			c.IsDuplicate = true
			c.Reward = DuplicateReward(draw.Entry.Tier, costPerDraw, conversionRate)
			totalReward += c.Reward
		} else {
			owned[draw.Entry.ItemID] = true
		}

		classifications = append(classifications, c)
	}

	return classifications, totalReward
}

// DuplicateReward converts a duplicate of the given tier into currency. The
// result is always floored.
func DuplicateReward(tier entity.RarityTier, costPerDraw uint64, conversionRate float64) uint64 {
	return uint64(math.Floor(float64(tier.RewardMultiplier()) * float64(costPerDraw) * conversionRate))
}
