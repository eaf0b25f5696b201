package gachaengine

import (
	"github.com/pokequest-lab/backend/internal/entity"
)

// Draw is one outcome of a batch with the pity snapshot taken right after it.
// When the draw closes a pity cycle, PityCounter keeps the counter the cycle
// ended with and PityStatus records how it ended; the next draw of the batch
// starts a fresh cycle at zero.
type Draw struct {
	Entry       entity.GachaPoolEntry
	PityCounter int
	PityStatus  entity.PityStatusType
	ClosedCycle bool

	GuaranteeSubstitute bool
}

// BatchResult is the outcome of folding the sampler over a whole purchase.
type BatchResult struct {
	Draws []Draw

	// FinalCounter is the counter of the pending cycle after the batch.
	FinalCounter int

	// ClosedCycles counts how many cycles the batch completed.
	ClosedCycles int
}

// DrawBatch runs count sequential draws, threading the pity counter through:
// draw i+1 sees the counter produced by draw i. A top-tier outcome closes the
// current cycle (by luck below the limit, by hard pity at it) and the fold
// continues on a fresh cycle.
func (s *Sampler) DrawBatch(
	pool []entity.GachaPoolEntry, startCounter, pityLimit, count int,
) (BatchResult, error) {
	result := BatchResult{
		Draws:        make([]Draw, 0, count),
		FinalCounter: startCounter,
	}

	counter := startCounter
	for i := 0; i < count; i++ {
		entry, newCounter, err := s.Draw(pool, counter, pityLimit)
		if err != nil {
			return BatchResult{}, err
		}

		draw := Draw{Entry: entry, PityCounter: newCounter}
		if entry.Tier == entity.TopTier {
			draw.ClosedCycle = true
			if pityLimit > 0 && newCounter >= pityLimit {
				draw.PityStatus = entity.PityCompletedByHardPity
			} else {
				draw.PityStatus = entity.PityCompletedByLuck
			}

			counter = 0
			result.ClosedCycles++
		} else {
			draw.PityStatus = entity.PityPending
			counter = newCounter
		}

		result.Draws = append(result.Draws, draw)
	}

	result.FinalCounter = counter
	return result, nil
}
