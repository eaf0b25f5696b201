package gachaengine

import (
	"errors"
	"sort"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/crypto"
)

var (
	ErrNoReplacementPool    = errors.New("no pool entries qualify for the batch guarantee band")
	ErrNoSubstitutableDraw  = errors.New("no draw in the batch is below the guarantee tier")
	ErrInvalidGuaranteeRule = errors.New("guarantee rule has an unknown minimum tier")
)

// GuaranteeRule configures the bulk-draw minimum-rarity guarantee.
type GuaranteeRule struct {
	// BatchSize is the requested draw count the rule applies to.
	BatchSize int

	// MinTier is the lowest tier satisfying the guarantee.
	MinTier entity.RarityTier

	// HighTierShare is the percentage weight of the highest qualifying tier
	// when the replacement band holds more than one tier.
	HighTierShare int
}

// Corrector enforces a GuaranteeRule on completed batches.
type Corrector struct {
	rule     GuaranteeRule
	randIntn func(n int) int
}

func NewCorrector(rule GuaranteeRule) *Corrector {
	return &Corrector{rule: rule, randIntn: crypto.RandIntn}
}

func NewCorrectorWithRand(rule GuaranteeRule, randIntn func(n int) int) *Corrector {
	return &Corrector{rule: rule, randIntn: randIntn}
}

// Apply rewrites at most one draw of the batch so that it contains an outcome
// at or above the rule's minimum tier. Only the item and tier of the chosen
// draw change; its pity snapshot stays untouched because the guarantee is a
// reward correction, not a re-roll. Returns whether a substitution happened.
func (c *Corrector) Apply(pool []entity.GachaPoolEntry, draws []Draw) (bool, error) {
	if c.rule.BatchSize == 0 || len(draws) != c.rule.BatchSize {
		return false, nil
	}

	if !c.rule.MinTier.IsValid() {
		return false, ErrInvalidGuaranteeRule
	}

	minRank := c.rule.MinTier.Rank()
	for _, draw := range draws {
		if draw.Entry.Tier.Rank() >= minRank {
			return false, nil
		}
	}

	replacement, err := c.pickReplacement(pool)
	if err != nil {
		return false, err
	}

	belowIndexes := []int{}
	for i, draw := range draws {
		if draw.Entry.Tier.Rank() < minRank {
			belowIndexes = append(belowIndexes, i)
		}
	}

	if len(belowIndexes) == 0 {
		return false, ErrNoSubstitutableDraw
	}

	target := belowIndexes[c.randIntn(len(belowIndexes))]
	draws[target].Entry = replacement
	draws[target].GuaranteeSubstitute = true
	return true, nil
}

// pickReplacement draws from the band of tiers at or above the minimum tier
// and below the top tier. The top tier is excluded; it is governed by pity,
// not by this guarantee. With several band tiers present, the highest gets the
// configured share and the rest split the remainder by entry weight.
func (c *Corrector) pickReplacement(pool []entity.GachaPoolEntry) (entity.GachaPoolEntry, error) {
	minRank := c.rule.MinTier.Rank()
	topRank := entity.TopTier.Rank()

	band := map[entity.RarityTier][]entity.GachaPoolEntry{}
	for _, entry := range pool {
		rank := entry.Tier.Rank()
		if rank >= minRank && rank < topRank {
			band[entry.Tier] = append(band[entry.Tier], entry)
		}
	}

	if len(band) == 0 {
		return entity.GachaPoolEntry{}, ErrNoReplacementPool
	}

	tiers := make([]entity.RarityTier, 0, len(band))
	for tier := range band {
		tiers = append(tiers, tier)
	}

	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].Rank() > tiers[j].Rank()
	})

	chosen := tiers[0]
	if len(tiers) > 1 && c.randIntn(100) >= c.rule.HighTierShare {
		chosen = c.pickWeightedTier(band, tiers[1:])
	}

	return c.pickWeightedEntry(band[chosen]), nil
}

func (c *Corrector) pickWeightedTier(
	band map[entity.RarityTier][]entity.GachaPoolEntry, tiers []entity.RarityTier,
) entity.RarityTier {
	totalWeight := 0
	for _, tier := range tiers {
		for _, entry := range band[tier] {
			totalWeight += entry.Weight
		}
	}

	r := c.randIntn(totalWeight)
	for _, tier := range tiers {
		for _, entry := range band[tier] {
			if r < entry.Weight {
				return tier
			}

			r -= entry.Weight
		}
	}

	return tiers[len(tiers)-1]
}

func (c *Corrector) pickWeightedEntry(entries []entity.GachaPoolEntry) entity.GachaPoolEntry {
	totalWeight := 0
	for _, entry := range entries {
		totalWeight += entry.Weight
	}

	r := c.randIntn(totalWeight)
	for _, entry := range entries {
		if r < entry.Weight {
			return entry
		}

		r -= entry.Weight
	}

	return entries[len(entries)-1]
}
