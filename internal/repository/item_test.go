package repository_test

import (
	"github.com/pokequest-lab/backend/internal/repository"

	"testing"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_itemRepository_GetOwnedItemIDs(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewItemRepository()

	owned, err := repo.GetOwnedItemIDs(ctx, testutil.User1.ID, []string{
		testutil.ItemRustySword.ID, testutil.ItemDragonBlade.ID,
	})
	require.NoError(t, err)
	require.Empty(t, owned)

	err = repo.GrantItem(ctx, &entity.UserItem{
		Base:   entity.Base{ID: "useritem1"},
		UserID: testutil.User1.ID,
		ItemID: testutil.ItemRustySword.ID,
	})
	require.NoError(t, err)

	owned, err = repo.GetOwnedItemIDs(ctx, testutil.User1.ID, []string{
		testutil.ItemRustySword.ID, testutil.ItemDragonBlade.ID,
	})
	require.NoError(t, err)
	require.Equal(t, []string{testutil.ItemRustySword.ID}, owned)

	// Ownership is per user.
	owned, err = repo.GetOwnedItemIDs(ctx, testutil.User2.ID, []string{testutil.ItemRustySword.ID})
	require.NoError(t, err)
	require.Empty(t, owned)

	owned, err = repo.GetOwnedItemIDs(ctx, testutil.User1.ID, nil)
	require.NoError(t, err)
	require.Empty(t, owned)
}
