package domain

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/internal/model"
	"github.com/pokequest-lab/backend/internal/repository"
	"github.com/pokequest-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_walletDomain_GetBalance(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewWalletDomain(repository.NewWalletRepository())

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := d.GetBalance(ctxUser1, &model.GetBalanceRequest{Currency: "gem"})
	require.NoError(t, err)
	require.EqualValues(t, 100000, resp.Balance)

	// A currency the user never held reads as zero.
	resp, err = d.GetBalance(ctxUser1, &model.GetBalanceRequest{Currency: "gold"})
	require.NoError(t, err)
	require.Zero(t, resp.Balance)

	_, err = d.GetBalance(ctxUser1, &model.GetBalanceRequest{})
	require.Equal(t, "Not allow an empty currency", err.Error())
}

func Test_walletDomain_GetLedger(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	walletRepo := repository.NewWalletRepository()
	d := NewWalletDomain(walletRepo)

	err := walletRepo.CreateLedgerEntry(ctx, &entity.LedgerEntry{
		Base:     entity.Base{ID: uuid.NewString()},
		UserID:   testutil.User1.ID,
		Currency: "gem",
		Type:     entity.LedgerDebit,
		Amount:   300,
		Note:     "test debit",
	})
	require.NoError(t, err)

	err = walletRepo.CreateLedgerEntry(ctx, &entity.LedgerEntry{
		Base:       entity.Base{ID: uuid.NewString()},
		UserID:     testutil.User1.ID,
		Currency:   "gem",
		Type:       entity.LedgerCredit,
		Amount:     100,
		PurchaseID: sql.NullString{Valid: true, String: "purchase1"},
	})
	require.NoError(t, err)

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := d.GetLedger(ctxUser1, &model.GetLedgerRequest{Currency: "gem"})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)

	// Other users see nothing.
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	resp, err = d.GetLedger(ctxUser2, &model.GetLedgerRequest{Currency: "gem"})
	require.NoError(t, err)
	require.Empty(t, resp.Entries)
}
