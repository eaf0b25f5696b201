package repository

import (
	"context"
	"errors"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type WalletRepository interface {
	Create(ctx context.Context, wallet *entity.Wallet) error
	Get(ctx context.Context, userID, currency string) (*entity.Wallet, error)
	Deduct(ctx context.Context, userID, currency string, amount uint64) error
	Add(ctx context.Context, userID, currency string, amount uint64) error

	CreateLedgerEntry(ctx context.Context, ledgerEntry *entity.LedgerEntry) error
	GetLedgerEntries(ctx context.Context, userID, currency string, offset, limit int) ([]entity.LedgerEntry, error)
}

type walletRepository struct{}

func NewWalletRepository() WalletRepository {
	return &walletRepository{}
}

func (r *walletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	return xcontext.DB(ctx).Create(wallet).Error
}

func (r *walletRepository) Get(ctx context.Context, userID, currency string) (*entity.Wallet, error) {
	var result entity.Wallet
	err := xcontext.DB(ctx).Where("user_id=? AND currency=?", userID, currency).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Deduct subtracts amount from the balance only if the balance covers it. The
// affordability check and the write are one conditional UPDATE, so two
// concurrent purchases can never both pass the check and overdraw.
func (r *walletRepository) Deduct(ctx context.Context, userID, currency string, amount uint64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Wallet{}).
		Where("user_id=? AND currency=? AND balance >= ?", userID, currency, amount).
		Update("balance", gorm.Expr("balance-?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *walletRepository) Add(ctx context.Context, userID, currency string, amount uint64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Wallet{}).
		Where("user_id=? AND currency=?", userID, currency).
		Update("balance", gorm.Expr("balance+?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *walletRepository) CreateLedgerEntry(ctx context.Context, ledgerEntry *entity.LedgerEntry) error {
	return xcontext.DB(ctx).Create(ledgerEntry).Error
}

func (r *walletRepository) GetLedgerEntries(
	ctx context.Context, userID, currency string, offset, limit int,
) ([]entity.LedgerEntry, error) {
	tx := xcontext.DB(ctx).Where("user_id=?", userID)
	if currency != "" {
		tx = tx.Where("currency=?", currency)
	}

	var result []entity.LedgerEntry
	err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
