package repository

import (
	"context"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/xcontext"
)

type GachaPurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.GachaPurchase) error
	GetByID(ctx context.Context, purchaseID string) (*entity.GachaPurchase, error)
	GetListByUserID(ctx context.Context, userID, bannerID string, offset, limit int) ([]entity.GachaPurchase, error)

	CreateDrawRecords(ctx context.Context, records []*entity.DrawRecord) error
	GetDrawRecords(ctx context.Context, purchaseID string) ([]entity.DrawRecord, error)
}

type gachaPurchaseRepository struct{}

func NewGachaPurchaseRepository() GachaPurchaseRepository {
	return &gachaPurchaseRepository{}
}

func (r *gachaPurchaseRepository) Create(ctx context.Context, purchase *entity.GachaPurchase) error {
	return xcontext.DB(ctx).Create(purchase).Error
}

func (r *gachaPurchaseRepository) GetByID(ctx context.Context, purchaseID string) (*entity.GachaPurchase, error) {
	var result entity.GachaPurchase
	if err := xcontext.DB(ctx).Take(&result, "id=?", purchaseID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *gachaPurchaseRepository) GetListByUserID(
	ctx context.Context, userID, bannerID string, offset, limit int,
) ([]entity.GachaPurchase, error) {
	tx := xcontext.DB(ctx).Where("user_id=?", userID)
	if bannerID != "" {
		tx = tx.Where("banner_id=?", bannerID)
	}

	var result []entity.GachaPurchase
	err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *gachaPurchaseRepository) CreateDrawRecords(ctx context.Context, records []*entity.DrawRecord) error {
	if len(records) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(records).Error
}

func (r *gachaPurchaseRepository) GetDrawRecords(
	ctx context.Context, purchaseID string,
) ([]entity.DrawRecord, error) {
	var result []entity.DrawRecord
	err := xcontext.DB(ctx).Where("purchase_id=?", purchaseID).
		Order("sequence ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
