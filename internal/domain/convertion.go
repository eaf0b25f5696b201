package domain

import (
	"context"
	"time"

	"github.com/pkg/math"
	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/internal/model"
	"github.com/pokequest-lab/backend/pkg/xcontext"
)

const defaultTimeLayout = time.RFC3339Nano

// paginate clamps client-supplied pagination against the server limits.
func paginate(ctx context.Context, offset, limit int) (int, int) {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	if offset < 0 {
		offset = 0
	}

	return offset, math.MinInt(limit, cfg.MaxLimit)
}

func convertGachaBanner(
	banner *entity.GachaBanner, pool []entity.GachaPoolEntry, itemNames map[string]string,
) model.GachaBanner {
	if banner == nil {
		return model.GachaBanner{}
	}

	result := model.GachaBanner{
		ID:              banner.ID,
		Name:            banner.Name,
		Status:          string(banner.Status),
		Currency:        banner.Currency,
		CostPerDraw:     banner.CostPerDraw,
		HardPityLimit:   banner.HardPityLimit,
		AllowDuplicates: banner.AllowDuplicates,
	}

	for _, entry := range pool {
		result.Pool = append(result.Pool, model.GachaPoolEntry{
			ItemID:   entry.ItemID,
			ItemName: itemNames[entry.ItemID],
			Tier:     string(entry.Tier),
			Weight:   entry.Weight,
		})
	}

	return result
}

func convertPitySnapshot(pity *entity.PityState) model.PitySnapshot {
	if pity == nil {
		return model.PitySnapshot{}
	}

	return model.PitySnapshot{
		Counter: pity.Counter,
		Status:  string(pity.Status),
	}
}

func convertDrawRecord(record *entity.DrawRecord) model.GachaOutcome {
	if record == nil {
		return model.GachaOutcome{}
	}

	return model.GachaOutcome{
		Sequence:              record.Sequence,
		ItemID:                record.ItemID,
		Tier:                  string(record.Tier),
		PityCounter:           record.PityCounter,
		PityStatus:            string(record.PityStatus),
		IsDuplicate:           record.IsDuplicate,
		RewardAmount:          record.RewardAmount,
		IsGuaranteeSubstitute: record.IsGuaranteeSubstitute,
	}
}

func convertGachaPurchase(purchase *entity.GachaPurchase, records []entity.DrawRecord) model.GachaPurchase {
	if purchase == nil {
		return model.GachaPurchase{}
	}

	result := model.GachaPurchase{
		ID:        purchase.ID,
		BannerID:  purchase.BannerID,
		DrawCount: purchase.DrawCount,
		TotalCost: purchase.TotalCost,
		CreatedAt: purchase.CreatedAt.Format(defaultTimeLayout),
	}

	for i := range records {
		result.Outcomes = append(result.Outcomes, convertDrawRecord(&records[i]))
	}

	return result
}

func convertLedgerEntry(ledgerEntry *entity.LedgerEntry) model.LedgerEntry {
	if ledgerEntry == nil {
		return model.LedgerEntry{}
	}

	result := model.LedgerEntry{
		ID:        ledgerEntry.ID,
		Currency:  ledgerEntry.Currency,
		Type:      string(ledgerEntry.Type),
		Amount:    ledgerEntry.Amount,
		Note:      ledgerEntry.Note,
		CreatedAt: ledgerEntry.CreatedAt.Format(defaultTimeLayout),
	}

	if ledgerEntry.PurchaseID.Valid {
		result.PurchaseID = ledgerEntry.PurchaseID.String
	}

	return result
}
