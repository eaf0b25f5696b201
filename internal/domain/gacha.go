package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pokequest-lab/backend/internal/common"
	"github.com/pokequest-lab/backend/internal/domain/gachaengine"
	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/internal/model"
	"github.com/pokequest-lab/backend/internal/repository"
	"github.com/pokequest-lab/backend/pkg/enum"
	"github.com/pokequest-lab/backend/pkg/errorx"
	"github.com/pokequest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const maxDrawsPerPurchase = 100

type GachaDomain interface {
	BuyGacha(ctx context.Context, req *model.BuyGachaRequest) (*model.BuyGachaResponse, error)
	GetBanner(ctx context.Context, req *model.GetGachaBannerRequest) (*model.GetGachaBannerResponse, error)
	GetPityState(ctx context.Context, req *model.GetPityStateRequest) (*model.GetPityStateResponse, error)
	GetPurchaseHistory(ctx context.Context, req *model.GetPurchaseHistoryRequest) (*model.GetPurchaseHistoryResponse, error)
}

type gachaDomain struct {
	gachaBannerRepo   repository.GachaBannerRepository
	pityStateRepo     repository.PityStateRepository
	gachaPurchaseRepo repository.GachaPurchaseRepository
	walletRepo        repository.WalletRepository
	itemRepo          repository.ItemRepository

	sampler      *gachaengine.Sampler
	newCorrector func(rule gachaengine.GuaranteeRule) *gachaengine.Corrector
}

func NewGachaDomain(
	gachaBannerRepo repository.GachaBannerRepository,
	pityStateRepo repository.PityStateRepository,
	gachaPurchaseRepo repository.GachaPurchaseRepository,
	walletRepo repository.WalletRepository,
	itemRepo repository.ItemRepository,
) GachaDomain {
	return &gachaDomain{
		gachaBannerRepo:   gachaBannerRepo,
		pityStateRepo:     pityStateRepo,
		gachaPurchaseRepo: gachaPurchaseRepo,
		walletRepo:        walletRepo,
		itemRepo:          itemRepo,
		sampler:           gachaengine.NewSampler(),
		newCorrector:      gachaengine.NewCorrector,
	}
}

// BuyGacha spends wallet currency on a batch of draws. Everything the purchase
// touches (wallet, pity cycles, grants, ledger, history) commits in a single
// transaction; a failure at any point leaves no trace of the purchase.
func (d *gachaDomain) BuyGacha(
	ctx context.Context, req *model.BuyGachaRequest,
) (*model.BuyGachaResponse, error) {
	if req.DrawCount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Draw count must be positive")
	}

	if req.DrawCount > maxDrawsPerPurchase {
		return nil, errorx.New(errorx.BadRequest,
			"Cannot draw more than %d times per purchase", maxDrawsPerPurchase)
	}

	banner, err := d.gachaBannerRepo.GetByID(ctx, req.BannerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found banner")
		}

		xcontext.Logger(ctx).Errorf("Cannot get banner: %v", err)
		return nil, errorx.Unknown
	}

	if banner.Status != entity.BannerActive {
		return nil, errorx.New(errorx.Unavailable, "Banner is not open for purchases")
	}

	pool, err := d.gachaBannerRepo.GetPool(ctx, banner.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get banner pool: %v", err)
		return nil, errorx.Unknown
	}

	if len(pool) == 0 {
		xcontext.Logger(ctx).Errorf("Banner %s has an empty pool", banner.ID)
		return nil, errorx.New(errorx.Unavailable, "Banner has no items to draw")
	}

	if banner.HardPityLimit > 0 && !gachaengine.HasTopTierEntries(pool) {
		xcontext.Logger(ctx).Errorf("Banner %s has no top tier entries", banner.ID)
		return nil, errorx.New(errorx.Unavailable, "Banner cannot honor its pity guarantee")
	}

	userID := xcontext.RequestUserID(ctx)
	totalCost := uint64(req.DrawCount) * banner.CostPerDraw

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	pity, err := d.pityStateRepo.GetPendingForUpdate(ctx, userID, banner.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get pity state: %v", err)
			return nil, errorx.Unknown
		}

		pity = &entity.PityState{
			Base:     entity.Base{ID: uuid.NewString()},
			UserID:   userID,
			BannerID: banner.ID,
			Counter:  0,
			Status:   entity.PityPending,
		}
		if err := d.pityStateRepo.Create(ctx, pity); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create pity state: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.walletRepo.Deduct(ctx, userID, banner.Currency, totalCost); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InsufficientFunds,
				"Not enough %s to draw %d times", banner.Currency, req.DrawCount)
		}

		xcontext.Logger(ctx).Errorf("Cannot deduct balance: %v", err)
		return nil, errorx.Unknown
	}

	samplePool, err := d.samplePool(ctx, userID, banner, pool)
	if err != nil {
		return nil, err
	}

	batch, err := d.sampler.DrawBatch(samplePool, pity.Counter, banner.HardPityLimit, req.DrawCount)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot draw from pool of banner %s: %v", banner.ID, err)
		return nil, errorx.New(errorx.Internal, "Banner pool is misconfigured")
	}

	rule, err := d.guaranteeRule(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load guarantee rule: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.newCorrector(rule).Apply(pool, batch.Draws); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot apply batch guarantee: %v", err)
		return nil, errorx.New(errorx.Internal, "Banner pool is misconfigured")
	}

	classifications, totalReward, err := d.classifyDraws(ctx, userID, banner, batch.Draws)
	if err != nil {
		return nil, err
	}

	purchaseID := uuid.NewString()
	debit := &entity.LedgerEntry{
		Base:       entity.Base{ID: uuid.NewString()},
		UserID:     userID,
		Currency:   banner.Currency,
		Type:       entity.LedgerDebit,
		Amount:     totalCost,
		Note:       fmt.Sprintf("purchase of %d draws on banner %s", req.DrawCount, banner.Name),
		PurchaseID: sql.NullString{Valid: true, String: purchaseID},
	}
	if err := d.walletRepo.CreateLedgerEntry(ctx, debit); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create debit ledger entry: %v", err)
		return nil, errorx.Unknown
	}

	purchase := &entity.GachaPurchase{
		Base:          entity.Base{ID: purchaseID},
		UserID:        userID,
		BannerID:      banner.ID,
		DrawCount:     req.DrawCount,
		TotalCost:     totalCost,
		LedgerEntryID: debit.ID,
	}
	if err := d.gachaPurchaseRepo.Create(ctx, purchase); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create purchase: %v", err)
		return nil, errorx.Unknown
	}

	records := make([]*entity.DrawRecord, 0, len(classifications))
	for i, c := range classifications {
		records = append(records, &entity.DrawRecord{
			Base:                  entity.Base{ID: uuid.NewString()},
			PurchaseID:            purchase.ID,
			Sequence:              i,
			ItemID:                c.Draw.Entry.ItemID,
			Tier:                  c.Draw.Entry.Tier,
			PityCounter:           c.Draw.PityCounter,
			PityStatus:            c.Draw.PityStatus,
			IsDuplicate:           c.IsDuplicate,
			RewardAmount:          c.Reward,
			IsGuaranteeSubstitute: c.Draw.GuaranteeSubstitute,
		})

		if c.IsDuplicate {
			continue
		}

		userItem := &entity.UserItem{
			Base:           entity.Base{ID: uuid.NewString()},
			UserID:         userID,
			ItemID:         c.Draw.Entry.ItemID,
			ObtainedFromID: sql.NullString{Valid: true, String: purchase.ID},
		}
		if err := d.itemRepo.GrantItem(ctx, userItem); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot grant item %s: %v", c.Draw.Entry.ItemID, err)
			return nil, errorx.Unknown
		}
	}

	if err := d.gachaPurchaseRepo.CreateDrawRecords(ctx, records); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create draw records: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.advancePity(ctx, pity, batch); err != nil {
		return nil, err
	}

	if totalReward > 0 {
		if err := d.walletRepo.Add(ctx, userID, banner.Currency, totalReward); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot credit duplicate reward: %v", err)
			return nil, errorx.Unknown
		}

		credit := &entity.LedgerEntry{
			Base:       entity.Base{ID: uuid.NewString()},
			UserID:     userID,
			Currency:   banner.Currency,
			Type:       entity.LedgerCredit,
			Amount:     totalReward,
			Note:       "duplicate conversion",
			PurchaseID: sql.NullString{Valid: true, String: purchase.ID},
		}
		if err := d.walletRepo.CreateLedgerEntry(ctx, credit); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create credit ledger entry: %v", err)
			return nil, errorx.Unknown
		}
	}

	wallet, err := d.walletRepo.Get(ctx, userID, banner.Currency)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get wallet after purchase: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	outcomes := make([]model.GachaOutcome, 0, len(records))
	for _, record := range records {
		outcomes = append(outcomes, convertDrawRecord(record))
		common.PromCounters[common.GachaDrawTotal].
			WithLabelValues(banner.Name, string(record.Tier)).Inc()
	}

	return &model.BuyGachaResponse{
		PurchaseID: purchase.ID,
		TotalCost:  totalCost,
		Outcomes:   outcomes,
		Pity: model.PitySnapshot{
			Counter: batch.FinalCounter,
			Status:  string(entity.PityPending),
		},
		TotalReward: totalReward,
		NewBalance:  wallet.Balance,
	}, nil
}

// samplePool narrows the pool for banners that forbid duplicate draws: entries
// for items the user already owns are dropped before sampling. If filtering
// would leave the pool without top-tier entries the full pool is kept, since
// the pity guarantee outranks duplicate avoidance.
func (d *gachaDomain) samplePool(
	ctx context.Context, userID string, banner *entity.GachaBanner, pool []entity.GachaPoolEntry,
) ([]entity.GachaPoolEntry, error) {
	if banner.AllowDuplicates {
		return pool, nil
	}

	itemIDs := make([]string, 0, len(pool))
	for _, entry := range pool {
		itemIDs = append(itemIDs, entry.ItemID)
	}

	ownedIDs, err := d.itemRepo.GetOwnedItemIDs(ctx, userID, itemIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get owned items: %v", err)
		return nil, errorx.Unknown
	}

	owned := map[string]bool{}
	for _, id := range ownedIDs {
		owned[id] = true
	}

	filtered := make([]entity.GachaPoolEntry, 0, len(pool))
	for _, entry := range pool {
		if !owned[entry.ItemID] {
			filtered = append(filtered, entry)
		}
	}

	if !gachaengine.HasTopTierEntries(filtered) {
		return pool, nil
	}

	return filtered, nil
}

func (d *gachaDomain) guaranteeRule(ctx context.Context) (gachaengine.GuaranteeRule, error) {
	cfg := xcontext.Configs(ctx).Gacha
	if cfg.GuaranteeBatchSize == 0 {
		return gachaengine.GuaranteeRule{}, nil
	}

	minTier, err := enum.ToEnum[entity.RarityTier](cfg.GuaranteeMinTier)
	if err != nil {
		return gachaengine.GuaranteeRule{}, err
	}

	return gachaengine.GuaranteeRule{
		BatchSize:     cfg.GuaranteeBatchSize,
		MinTier:       minTier,
		HighTierShare: cfg.GuaranteeHighTierShare,
	}, nil
}

func (d *gachaDomain) classifyDraws(
	ctx context.Context, userID string, banner *entity.GachaBanner, draws []gachaengine.Draw,
) ([]gachaengine.Classification, uint64, error) {
	itemIDs := make([]string, 0, len(draws))
	for _, draw := range draws {
		itemIDs = append(itemIDs, draw.Entry.ItemID)
	}

	ownedIDs, err := d.itemRepo.GetOwnedItemIDs(ctx, userID, itemIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get owned items: %v", err)
		return nil, 0, errorx.Unknown
	}

	rate := xcontext.Configs(ctx).Gacha.DuplicateConversionRate
	classifications, totalReward := gachaengine.Classify(ownedIDs, draws, banner.CostPerDraw, rate)
	return classifications, totalReward, nil
}

// advancePity persists the pity bookkeeping of a finished batch: every closed
// cycle is stamped with its final counter and completion status, each closure
// opens a fresh pending cycle, and the surviving cycle ends up at the batch's
// final counter.
func (d *gachaDomain) advancePity(
	ctx context.Context, pity *entity.PityState, batch gachaengine.BatchResult,
) error {
	current := pity
	for _, draw := range batch.Draws {
		if !draw.ClosedCycle {
			continue
		}

		err := d.pityStateRepo.CloseCycle(ctx, current.ID, draw.PityCounter, draw.PityStatus)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot close pity cycle %s: %v", current.ID, err)
			return errorx.Unknown
		}

		current = &entity.PityState{
			Base:     entity.Base{ID: uuid.NewString()},
			UserID:   pity.UserID,
			BannerID: pity.BannerID,
			Counter:  0,
			Status:   entity.PityPending,
		}
		if err := d.pityStateRepo.Create(ctx, current); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot open pity cycle: %v", err)
			return errorx.Unknown
		}
	}

	if current.Counter != batch.FinalCounter {
		if err := d.pityStateRepo.UpdateCounter(ctx, current.ID, batch.FinalCounter); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update pity counter: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}

func (d *gachaDomain) GetBanner(
	ctx context.Context, req *model.GetGachaBannerRequest,
) (*model.GetGachaBannerResponse, error) {
	banner, err := d.gachaBannerRepo.GetByID(ctx, req.BannerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found banner")
		}

		xcontext.Logger(ctx).Errorf("Cannot get banner: %v", err)
		return nil, errorx.Unknown
	}

	pool, err := d.gachaBannerRepo.GetPool(ctx, banner.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get banner pool: %v", err)
		return nil, errorx.Unknown
	}

	itemIDs := make([]string, 0, len(pool))
	for _, entry := range pool {
		itemIDs = append(itemIDs, entry.ItemID)
	}

	items, err := d.itemRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pool items: %v", err)
		return nil, errorx.Unknown
	}

	itemNames := map[string]string{}
	for _, item := range items {
		itemNames[item.ID] = item.Name
	}

	return &model.GetGachaBannerResponse{
		Banner: convertGachaBanner(banner, pool, itemNames),
	}, nil
}

func (d *gachaDomain) GetPityState(
	ctx context.Context, req *model.GetPityStateRequest,
) (*model.GetPityStateResponse, error) {
	if _, err := d.gachaBannerRepo.GetByID(ctx, req.BannerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found banner")
		}

		xcontext.Logger(ctx).Errorf("Cannot get banner: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	pity, err := d.pityStateRepo.GetPending(ctx, userID, req.BannerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get pity state: %v", err)
			return nil, errorx.Unknown
		}

		// The pending cycle is created lazily on the first purchase; until
		// then the cycle is implicitly at zero.
		return &model.GetPityStateResponse{
			Pity: model.PitySnapshot{Counter: 0, Status: string(entity.PityPending)},
		}, nil
	}

	return &model.GetPityStateResponse{Pity: convertPitySnapshot(pity)}, nil
}

func (d *gachaDomain) GetPurchaseHistory(
	ctx context.Context, req *model.GetPurchaseHistoryRequest,
) (*model.GetPurchaseHistoryResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	offset, limit := paginate(ctx, req.Offset, req.Limit)

	purchases, err := d.gachaPurchaseRepo.GetListByUserID(ctx, userID, req.BannerID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get purchase list: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.GachaPurchase, 0, len(purchases))
	for _, purchase := range purchases {
		records, err := d.gachaPurchaseRepo.GetDrawRecords(ctx, purchase.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get draw records: %v", err)
			return nil, errorx.Unknown
		}

		result = append(result, convertGachaPurchase(&purchase, records))
	}

	return &model.GetPurchaseHistoryResponse{Purchases: result}, nil
}
