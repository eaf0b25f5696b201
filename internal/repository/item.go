package repository

import (
	"context"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/xcontext"
)

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByIDs(ctx context.Context, itemIDs []string) ([]entity.Item, error)

	// Ownership
	GetOwnedItemIDs(ctx context.Context, userID string, itemIDs []string) ([]string, error)
	GrantItem(ctx context.Context, userItem *entity.UserItem) error
	GetUserItems(ctx context.Context, userID string, offset, limit int) ([]entity.UserItem, error)
}

type itemRepository struct{}

func NewItemRepository() ItemRepository {
	return &itemRepository{}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return xcontext.DB(ctx).Create(item).Error
}

func (r *itemRepository) GetByIDs(ctx context.Context, itemIDs []string) ([]entity.Item, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	var result []entity.Item
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", itemIDs).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// GetOwnedItemIDs returns which of the given items the user already owns, in a
// single query.
func (r *itemRepository) GetOwnedItemIDs(
	ctx context.Context, userID string, itemIDs []string,
) ([]string, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	var result []string
	err := xcontext.DB(ctx).Model(&entity.UserItem{}).
		Where("user_id=? AND item_id IN (?)", userID, itemIDs).
		Pluck("item_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *itemRepository) GrantItem(ctx context.Context, userItem *entity.UserItem) error {
	return xcontext.DB(ctx).Create(userItem).Error
}

func (r *itemRepository) GetUserItems(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.UserItem, error) {
	var result []entity.UserItem
	err := xcontext.DB(ctx).Where("user_id=?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
