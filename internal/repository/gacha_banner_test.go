package repository_test

import (
	"github.com/pokequest-lab/backend/internal/repository"

	"context"
	"testing"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_gachaBannerRepository_GetPoolOrder(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewGachaBannerRepository(&testutil.MockRedisClient{})

	pool, err := repo.GetPool(ctx, testutil.Banner1.ID)
	require.NoError(t, err)
	require.Len(t, pool, len(testutil.Banner1Pool))

	// The pool keeps its configuration order, which the sampler's
	// tie-breaking depends on.
	for i, expected := range testutil.Banner1Pool {
		require.Equal(t, expected.ItemID, pool[i].ItemID)
	}
}

func Test_gachaBannerRepository_UpdateStatus(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewGachaBannerRepository(&testutil.MockRedisClient{})

	err := repo.UpdateStatus(ctx, testutil.Banner2.ID, entity.BannerActive)
	require.NoError(t, err)

	banner, err := repo.GetByID(ctx, testutil.Banner2.ID)
	require.NoError(t, err)
	require.Equal(t, entity.BannerActive, banner.Status)
}

func Test_gachaBannerRepository_CachedRead(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	cached := &entity.GachaBanner{
		Base: entity.Base{ID: testutil.Banner1.ID},
		Name: "cached copy",
	}
	repo := repository.NewGachaBannerRepository(&testutil.MockRedisClient{
		GetObjFunc: func(ctx context.Context, key string, v any) error {
			*(v.(*entity.GachaBanner)) = *cached
			return nil
		},
	})

	// A cache hit never touches the database row.
	banner, err := repo.GetByID(ctx, testutil.Banner1.ID)
	require.NoError(t, err)
	require.Equal(t, "cached copy", banner.Name)
}

func Test_gachaBannerRepository_CreatePoolEntry_TierCap(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewGachaBannerRepository(&testutil.MockRedisClient{})

	banner := &entity.GachaBanner{
		Base:            entity.Base{ID: "banner_capped"},
		Name:            "Capped",
		Status:          entity.BannerActive,
		Currency:        "gem",
		CostPerDraw:     100,
		MaxItemsPerTier: 1,
	}
	require.NoError(t, repo.Create(ctx, banner))

	err := repo.CreatePoolEntry(ctx, &entity.GachaPoolEntry{
		Base:     entity.Base{ID: "capped_entry1"},
		BannerID: banner.ID, ItemID: testutil.ItemRustySword.ID,
		Tier: entity.TierCommon, Weight: 50,
	})
	require.NoError(t, err)

	// A second entry for the same item at the same tier is fine.
	err = repo.CreatePoolEntry(ctx, &entity.GachaPoolEntry{
		Base:     entity.Base{ID: "capped_entry2"},
		BannerID: banner.ID, ItemID: testutil.ItemRustySword.ID,
		Tier: entity.TierCommon, Weight: 25,
	})
	require.NoError(t, err)

	// A distinct item busts the cap.
	err = repo.CreatePoolEntry(ctx, &entity.GachaPoolEntry{
		Base:     entity.Base{ID: "capped_entry3"},
		BannerID: banner.ID, ItemID: testutil.ItemWoodenShield.ID,
		Tier: entity.TierCommon, Weight: 25,
	})
	require.ErrorIs(t, err, repository.ErrPoolTierFull)

	// A different tier starts its own count.
	err = repo.CreatePoolEntry(ctx, &entity.GachaPoolEntry{
		Base:     entity.Base{ID: "capped_entry4"},
		BannerID: banner.ID, ItemID: testutil.ItemWoodenShield.ID,
		Tier: entity.TierRare, Weight: 25,
	})
	require.NoError(t, err)
}

func Test_gachaBannerRepository_CountPoolByTier(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewGachaBannerRepository(&testutil.MockRedisClient{})

	count, err := repo.CountPoolByTier(ctx, testutil.Banner1.ID, entity.TierLegendary)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	count, err = repo.CountPoolByTier(ctx, testutil.Banner2.ID, entity.TierLegendary)
	require.NoError(t, err)
	require.Zero(t, count)
}
