package repository_test

import (
	"github.com/pokequest-lab/backend/internal/repository"

	"testing"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_pityStateRepository_CycleLifecycle(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewPityStateRepository()

	_, err := repo.GetPending(ctx, testutil.User1.ID, testutil.Banner1.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Create(ctx, &entity.PityState{
		Base:     entity.Base{ID: "pity1"},
		UserID:   testutil.User1.ID,
		BannerID: testutil.Banner1.ID,
		Counter:  0,
		Status:   entity.PityPending,
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateCounter(ctx, "pity1", 4))

	state, err := repo.GetPendingForUpdate(ctx, testutil.User1.ID, testutil.Banner1.ID)
	require.NoError(t, err)
	require.Equal(t, 4, state.Counter)

	require.NoError(t, repo.CloseCycle(ctx, "pity1", 5, entity.PityCompletedByHardPity))

	// A closed cycle can be closed or advanced no further.
	err = repo.CloseCycle(ctx, "pity1", 6, entity.PityCompletedByLuck)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	err = repo.UpdateCounter(ctx, "pity1", 7)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// And it no longer counts as the pending cycle.
	_, err = repo.GetPending(ctx, testutil.User1.ID, testutil.Banner1.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Create(ctx, &entity.PityState{
		Base:     entity.Base{ID: "pity2"},
		UserID:   testutil.User1.ID,
		BannerID: testutil.Banner1.ID,
		Counter:  0,
		Status:   entity.PityPending,
	})
	require.NoError(t, err)

	history, err := repo.GetHistory(ctx, testutil.User1.ID, testutil.Banner1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
}
