package repository_test

import (
	"github.com/pokequest-lab/backend/internal/repository"

	"testing"

	"github.com/pokequest-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_walletRepository_Deduct(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewWalletRepository()

	// Wallet2 starts at 50.
	err := repo.Deduct(ctx, testutil.User2.ID, "gem", 30)
	require.NoError(t, err)

	wallet, err := repo.Get(ctx, testutil.User2.ID, "gem")
	require.NoError(t, err)
	require.EqualValues(t, 20, wallet.Balance)

	// The conditional update refuses to overdraw.
	err = repo.Deduct(ctx, testutil.User2.ID, "gem", 21)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	wallet, err = repo.Get(ctx, testutil.User2.ID, "gem")
	require.NoError(t, err)
	require.EqualValues(t, 20, wallet.Balance)

	// Spending the exact balance is allowed.
	err = repo.Deduct(ctx, testutil.User2.ID, "gem", 20)
	require.NoError(t, err)

	// Unknown wallets fail the same way as unaffordable spends.
	err = repo.Deduct(ctx, testutil.User2.ID, "gold", 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_walletRepository_Add(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewWalletRepository()

	err := repo.Add(ctx, testutil.User2.ID, "gem", 100)
	require.NoError(t, err)

	wallet, err := repo.Get(ctx, testutil.User2.ID, "gem")
	require.NoError(t, err)
	require.EqualValues(t, 150, wallet.Balance)

	err = repo.Add(ctx, testutil.User2.ID, "gold", 100)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
