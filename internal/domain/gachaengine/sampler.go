package gachaengine

import (
	"errors"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/crypto"
)

var (
	ErrEmptyPool        = errors.New("the banner pool is empty")
	ErrInvalidWeight    = errors.New("pool entry weight must be a positive number")
	ErrInvalidTier      = errors.New("pool entry has an unknown rarity tier")
	ErrNoTopTierEntries = errors.New("hard pity fired but the top tier has no pool entries")
)

// Sampler performs weighted draws over a banner pool. It holds no state; the
// pity counter is threaded explicitly by the caller. The random source is
// injectable for deterministic tests, defaulting to crypto/rand.
type Sampler struct {
	randIntn func(n int) int
}

func NewSampler() *Sampler {
	return &Sampler{randIntn: crypto.RandIntn}
}

func NewSamplerWithRand(randIntn func(n int) int) *Sampler {
	return &Sampler{randIntn: randIntn}
}

// Draw produces one outcome from the pool and the pity counter after this
// draw. If the draw reaches the hard pity limit, the candidate set is
// restricted to the top tier and the pick is uniform among its entries. The
// counter always increments; resetting it to zero is cycle bookkeeping owned
// by the caller.
func (s *Sampler) Draw(
	pool []entity.GachaPoolEntry, pityCount, pityLimit int,
) (entity.GachaPoolEntry, int, error) {
	if len(pool) == 0 {
		return entity.GachaPoolEntry{}, 0, ErrEmptyPool
	}

	totalWeight := 0
	for _, entry := range pool {
		if !entry.Tier.IsValid() {
			return entity.GachaPoolEntry{}, 0, ErrInvalidTier
		}

		if entry.Weight <= 0 {
			return entity.GachaPoolEntry{}, 0, ErrInvalidWeight
		}

		totalWeight += entry.Weight
	}

	if pityLimit > 0 && pityCount+1 >= pityLimit {
		topEntries := []entity.GachaPoolEntry{}
		for _, entry := range pool {
			if entry.Tier == entity.TopTier {
				topEntries = append(topEntries, entry)
			}
		}

		if len(topEntries) == 0 {
			return entity.GachaPoolEntry{}, 0, ErrNoTopTierEntries
		}

		return topEntries[s.randIntn(len(topEntries))], pityCount + 1, nil
	}

	// Cumulative weight walk; the first entry whose cumulative weight
	// exceeds r wins, so ties break toward the earlier entry.
	r := s.randIntn(totalWeight)
	for _, entry := range pool {
		if r < entry.Weight {
			return entry, pityCount + 1, nil
		}

		r -= entry.Weight
	}

	// Unreachable given the total weight above.
	return pool[len(pool)-1], pityCount + 1, nil
}

// HasTopTierEntries reports whether hard pity can be honored for this pool.
// Callers must reject a purchase up front when it cannot; falling back to a
// lower tier would break the pity contract.
func HasTopTierEntries(pool []entity.GachaPoolEntry) bool {
	for _, entry := range pool {
		if entry.Tier == entity.TopTier {
			return true
		}
	}

	return false
}
