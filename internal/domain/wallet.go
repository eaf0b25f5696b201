package domain

import (
	"context"
	"errors"

	"github.com/pokequest-lab/backend/internal/model"
	"github.com/pokequest-lab/backend/internal/repository"
	"github.com/pokequest-lab/backend/pkg/errorx"
	"github.com/pokequest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type WalletDomain interface {
	GetBalance(ctx context.Context, req *model.GetBalanceRequest) (*model.GetBalanceResponse, error)
	GetLedger(ctx context.Context, req *model.GetLedgerRequest) (*model.GetLedgerResponse, error)
}

type walletDomain struct {
	walletRepo repository.WalletRepository
}

func NewWalletDomain(walletRepo repository.WalletRepository) WalletDomain {
	return &walletDomain{walletRepo: walletRepo}
}

func (d *walletDomain) GetBalance(
	ctx context.Context, req *model.GetBalanceRequest,
) (*model.GetBalanceResponse, error) {
	if req.Currency == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty currency")
	}

	userID := xcontext.RequestUserID(ctx)
	wallet, err := d.walletRepo.Get(ctx, userID, req.Currency)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No wallet row yet means the user never held this currency.
			return &model.GetBalanceResponse{Currency: req.Currency, Balance: 0}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get wallet: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetBalanceResponse{
		Currency: wallet.Currency,
		Balance:  wallet.Balance,
	}, nil
}

func (d *walletDomain) GetLedger(
	ctx context.Context, req *model.GetLedgerRequest,
) (*model.GetLedgerResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	offset, limit := paginate(ctx, req.Offset, req.Limit)

	entries, err := d.walletRepo.GetLedgerEntries(ctx, userID, req.Currency, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ledger entries: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.LedgerEntry, 0, len(entries))
	for i := range entries {
		result = append(result, convertLedgerEntry(&entries[i]))
	}

	return &model.GetLedgerResponse{Entries: result}, nil
}
