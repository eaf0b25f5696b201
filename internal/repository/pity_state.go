package repository

import (
	"context"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PityStateRepository interface {
	Create(ctx context.Context, state *entity.PityState) error
	GetPendingForUpdate(ctx context.Context, userID, bannerID string) (*entity.PityState, error)
	GetPending(ctx context.Context, userID, bannerID string) (*entity.PityState, error)
	UpdateCounter(ctx context.Context, id string, counter int) error
	CloseCycle(ctx context.Context, id string, counter int, status entity.PityStatusType) error
	GetHistory(ctx context.Context, userID, bannerID string, offset, limit int) ([]entity.PityState, error)
}

type pityStateRepository struct{}

func NewPityStateRepository() PityStateRepository {
	return &pityStateRepository{}
}

func (r *pityStateRepository) Create(ctx context.Context, state *entity.PityState) error {
	return xcontext.DB(ctx).Create(state).Error
}

// GetPendingForUpdate loads the open cycle and locks its row for the rest of
// the transaction, serializing concurrent purchases of the same user on the
// same banner. The lock clause is skipped on sqlite, which has no row locks;
// the conditional updates below still protect against lost races there.
func (r *pityStateRepository) GetPendingForUpdate(
	ctx context.Context, userID, bannerID string,
) (*entity.PityState, error) {
	db := xcontext.DB(ctx)
	if db.Dialector.Name() == "mysql" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var result entity.PityState
	err := db.Where("user_id=? AND banner_id=? AND status=?",
		userID, bannerID, entity.PityPending).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pityStateRepository) GetPending(
	ctx context.Context, userID, bannerID string,
) (*entity.PityState, error) {
	var result entity.PityState
	err := xcontext.DB(ctx).Where("user_id=? AND banner_id=? AND status=?",
		userID, bannerID, entity.PityPending).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pityStateRepository) UpdateCounter(ctx context.Context, id string, counter int) error {
	tx := xcontext.DB(ctx).Model(&entity.PityState{}).
		Where("id=? AND status=?", id, entity.PityPending).
		Update("counter", counter)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// CloseCycle stamps the final counter and the completed status on an open
// cycle. A cycle can only be closed once; losing the race surfaces as
// ErrRecordNotFound.
func (r *pityStateRepository) CloseCycle(
	ctx context.Context, id string, counter int, status entity.PityStatusType,
) error {
	tx := xcontext.DB(ctx).Model(&entity.PityState{}).
		Where("id=? AND status=?", id, entity.PityPending).
		Updates(map[string]any{
			"counter": counter,
			"status":  status,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *pityStateRepository) GetHistory(
	ctx context.Context, userID, bannerID string, offset, limit int,
) ([]entity.PityState, error) {
	var result []entity.PityState
	err := xcontext.DB(ctx).Where("user_id=? AND banner_id=?", userID, bannerID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
