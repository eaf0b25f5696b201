package domain

import (
	"testing"

	"github.com/pokequest-lab/backend/internal/domain/gachaengine"
	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/internal/model"
	"github.com/pokequest-lab/backend/internal/repository"
	"github.com/pokequest-lab/backend/pkg/errorx"
	"github.com/pokequest-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestGachaDomain(randIntn func(n int) int) *gachaDomain {
	return &gachaDomain{
		gachaBannerRepo:   repository.NewGachaBannerRepository(&testutil.MockRedisClient{}),
		pityStateRepo:     repository.NewPityStateRepository(),
		gachaPurchaseRepo: repository.NewGachaPurchaseRepository(),
		walletRepo:        repository.NewWalletRepository(),
		itemRepo:          repository.NewItemRepository(),
		sampler:           gachaengine.NewSamplerWithRand(randIntn),
		newCorrector: func(rule gachaengine.GuaranteeRule) *gachaengine.Corrector {
			return gachaengine.NewCorrectorWithRand(rule, randIntn)
		},
	}
}

func Test_gachaDomain_BuyGacha_FullScenario(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	// Always picking 0 lands on the first pool entry (a common item) until
	// hard pity forces the first legendary.
	d := newTestGachaDomain(func(n int) int { return 0 })

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := d.BuyGacha(ctxUser1, &model.BuyGachaRequest{
		BannerID:  testutil.Banner1.ID,
		DrawCount: 10,
	})
	require.NoError(t, err)

	// 10 draws at 100 gems each.
	require.EqualValues(t, 1000, resp.TotalCost)
	require.Len(t, resp.Outcomes, 10)

	// Draw 1 grants the common item, draws 2-4 duplicate it.
	require.False(t, resp.Outcomes[0].IsDuplicate)
	require.Equal(t, testutil.ItemRustySword.ID, resp.Outcomes[0].ItemID)
	for i := 1; i <= 3; i++ {
		require.True(t, resp.Outcomes[i].IsDuplicate)
		require.EqualValues(t, 50, resp.Outcomes[i].RewardAmount)
	}

	// Draw 5 hits the hard pity limit of the banner.
	pityHit := resp.Outcomes[4]
	require.Equal(t, string(entity.TierLegendary), pityHit.Tier)
	require.Equal(t, testutil.ItemDragonBlade.ID, pityHit.ItemID)
	require.Equal(t, 5, pityHit.PityCounter)
	require.Equal(t, string(entity.PityCompletedByHardPity), pityHit.PityStatus)
	require.False(t, pityHit.IsDuplicate)

	// Draw 10 hits hard pity again on the fresh cycle and duplicates the
	// legendary at 25x the draw cost, halved by the conversion rate.
	secondHit := resp.Outcomes[9]
	require.Equal(t, string(entity.TierLegendary), secondHit.Tier)
	require.True(t, secondHit.IsDuplicate)
	require.EqualValues(t, 1250, secondHit.RewardAmount)

	// 7 common duplicates at 50 plus one legendary duplicate at 1250.
	require.EqualValues(t, 1600, resp.TotalReward)
	require.EqualValues(t, 100600, resp.NewBalance)
	require.Equal(t, 0, resp.Pity.Counter)
	require.Equal(t, string(entity.PityPending), resp.Pity.Status)

	for i, outcome := range resp.Outcomes {
		require.Equal(t, i, outcome.Sequence)
	}

	// The wallet and both ledger entries agree with the response.
	wallet, err := d.walletRepo.Get(ctxUser1, testutil.User1.ID, "gem")
	require.NoError(t, err)
	require.EqualValues(t, 100600, wallet.Balance)

	ledger, err := d.walletRepo.GetLedgerEntries(ctxUser1, testutil.User1.ID, "gem", 0, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 2)

	var debit, credit uint64
	for _, e := range ledger {
		switch e.Type {
		case entity.LedgerDebit:
			debit += e.Amount
		case entity.LedgerCredit:
			credit += e.Amount
		}
		require.Equal(t, resp.PurchaseID, e.PurchaseID.String)
	}
	require.EqualValues(t, 1000, debit)
	require.EqualValues(t, 1600, credit)

	// The purchase row keeps the debit entry it was paid by.
	purchase, err := d.gachaPurchaseRepo.GetByID(ctxUser1, resp.PurchaseID)
	require.NoError(t, err)
	require.Equal(t, 10, purchase.DrawCount)
	require.NotEmpty(t, purchase.LedgerEntryID)

	// Two closed cycles plus the fresh pending one.
	history, err := d.pityStateRepo.GetHistory(ctxUser1, testutil.User1.ID, testutil.Banner1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, history, 3)

	var hardPity, pending int
	for _, state := range history {
		switch state.Status {
		case entity.PityCompletedByHardPity:
			hardPity++
			require.Equal(t, 5, state.Counter)
		case entity.PityPending:
			pending++
			require.Equal(t, 0, state.Counter)
		}
	}
	require.Equal(t, 2, hardPity)
	require.Equal(t, 1, pending)

	// Only the two distinct items were granted.
	userItems, err := d.itemRepo.GetUserItems(ctxUser1, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, userItems, 2)

	// The purchase shows up in history with all its outcomes.
	historyResp, err := d.GetPurchaseHistory(ctxUser1, &model.GetPurchaseHistoryRequest{
		BannerID: testutil.Banner1.ID,
	})
	require.NoError(t, err)
	require.Len(t, historyResp.Purchases, 1)
	require.Equal(t, resp.PurchaseID, historyResp.Purchases[0].ID)
	require.Len(t, historyResp.Purchases[0].Outcomes, 10)
}

func Test_gachaDomain_BuyGacha_InsufficientFunds(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestGachaDomain(func(n int) int { return 0 })

	// Wallet2 holds 50 gems, one draw costs 100.
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	_, err := d.BuyGacha(ctxUser2, &model.BuyGachaRequest{
		BannerID:  testutil.Banner1.ID,
		DrawCount: 1,
	})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientFunds, errx.Code)

	// The failed purchase leaves nothing behind, including the lazily
	// created pity cycle.
	wallet, err := d.walletRepo.Get(ctxUser2, testutil.User2.ID, "gem")
	require.NoError(t, err)
	require.EqualValues(t, 50, wallet.Balance)

	_, err = d.pityStateRepo.GetPending(ctxUser2, testutil.User2.ID, testutil.Banner1.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	purchases, err := d.gachaPurchaseRepo.GetListByUserID(ctxUser2, testutil.User2.ID, "", 0, 10)
	require.NoError(t, err)
	require.Empty(t, purchases)
}

func Test_gachaDomain_BuyGacha_BannerNotActive(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestGachaDomain(func(n int) int { return 0 })

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err := d.BuyGacha(ctxUser1, &model.BuyGachaRequest{
		BannerID:  testutil.Banner2.ID,
		DrawCount: 1,
	})
	require.Equal(t, "Banner is not open for purchases", err.Error())
}

func Test_gachaDomain_BuyGacha_InvalidRequest(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestGachaDomain(func(n int) int { return 0 })

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err := d.BuyGacha(ctxUser1, &model.BuyGachaRequest{
		BannerID:  testutil.Banner1.ID,
		DrawCount: 0,
	})
	require.Equal(t, "Draw count must be positive", err.Error())

	_, err = d.BuyGacha(ctxUser1, &model.BuyGachaRequest{
		BannerID:  testutil.Banner1.ID,
		DrawCount: maxDrawsPerPurchase + 1,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = d.BuyGacha(ctxUser1, &model.BuyGachaRequest{
		BannerID:  "not-exist",
		DrawCount: 1,
	})
	require.Equal(t, "Not found banner", err.Error())
}

func Test_gachaDomain_BuyGacha_PityCarriesAcrossPurchases(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestGachaDomain(func(n int) int { return 0 })

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)

	// Three common draws leave the pending cycle at 3.
	resp, err := d.BuyGacha(ctxUser1, &model.BuyGachaRequest{
		BannerID:  testutil.Banner1.ID,
		DrawCount: 3,
	})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Pity.Counter)

	pityResp, err := d.GetPityState(ctxUser1, &model.GetPityStateRequest{
		BannerID: testutil.Banner1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 3, pityResp.Pity.Counter)

	// Two more draws reach the limit of 5 on the carried counter.
	resp, err = d.BuyGacha(ctxUser1, &model.BuyGachaRequest{
		BannerID:  testutil.Banner1.ID,
		DrawCount: 2,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.TierLegendary), resp.Outcomes[1].Tier)
	require.Equal(t, 5, resp.Outcomes[1].PityCounter)
	require.Equal(t, string(entity.PityCompletedByHardPity), resp.Outcomes[1].PityStatus)
	require.Equal(t, 0, resp.Pity.Counter)
}

func Test_gachaDomain_GetPityState_BeforeFirstPurchase(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestGachaDomain(func(n int) int { return 0 })

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := d.GetPityState(ctxUser1, &model.GetPityStateRequest{
		BannerID: testutil.Banner1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 0, resp.Pity.Counter)
	require.Equal(t, string(entity.PityPending), resp.Pity.Status)

	_, err = d.GetPityState(ctxUser1, &model.GetPityStateRequest{BannerID: "not-exist"})
	require.Equal(t, "Not found banner", err.Error())
}

func Test_gachaDomain_GetBanner(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestGachaDomain(func(n int) int { return 0 })

	resp, err := d.GetBanner(ctx, &model.GetGachaBannerRequest{BannerID: testutil.Banner1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Banner1.Name, resp.Banner.Name)
	require.EqualValues(t, 100, resp.Banner.CostPerDraw)
	require.Equal(t, 5, resp.Banner.HardPityLimit)
	require.Len(t, resp.Banner.Pool, len(testutil.Banner1Pool))
	require.Equal(t, testutil.ItemRustySword.Name, resp.Banner.Pool[0].ItemName)
}
