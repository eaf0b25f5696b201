package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/xcontext"
	"github.com/pokequest-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

const bannerCacheTTL = 30 * time.Second

var ErrPoolTierFull = errors.New("the tier already holds the maximum number of distinct items")

type GachaBannerRepository interface {
	// Banner
	Create(ctx context.Context, banner *entity.GachaBanner) error
	GetByID(ctx context.Context, bannerID string) (*entity.GachaBanner, error)
	UpdateStatus(ctx context.Context, bannerID string, status entity.BannerStatusType) error

	// Pool
	CreatePoolEntry(ctx context.Context, entry *entity.GachaPoolEntry) error
	GetPool(ctx context.Context, bannerID string) ([]entity.GachaPoolEntry, error)
	CountPoolByTier(ctx context.Context, bannerID string, tier entity.RarityTier) (int64, error)
}

type gachaBannerRepository struct {
	redisClient xredis.Client
}

func NewGachaBannerRepository(redisClient xredis.Client) GachaBannerRepository {
	return &gachaBannerRepository{redisClient: redisClient}
}

func (r *gachaBannerRepository) cacheKeyByID(bannerID string) string {
	return fmt.Sprintf("cache:gacha_banner:%s", bannerID)
}

func (r *gachaBannerRepository) cacheKeyPool(bannerID string) string {
	return fmt.Sprintf("cache:gacha_pool:%s", bannerID)
}

func (r *gachaBannerRepository) invalidateCache(ctx context.Context, bannerID string) {
	keys := []string{r.cacheKeyByID(bannerID), r.cacheKeyPool(bannerID)}
	if err := r.redisClient.Del(ctx, keys...); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate gacha banner cache: %v", err)
	}
}

func (r *gachaBannerRepository) Create(ctx context.Context, banner *entity.GachaBanner) error {
	return xcontext.DB(ctx).Create(banner).Error
}

func (r *gachaBannerRepository) GetByID(ctx context.Context, bannerID string) (*entity.GachaBanner, error) {
	var cached entity.GachaBanner
	if err := r.redisClient.GetObj(ctx, r.cacheKeyByID(bannerID), &cached); err == nil {
		return &cached, nil
	}

	var result entity.GachaBanner
	if err := xcontext.DB(ctx).Take(&result, "id=?", bannerID).Error; err != nil {
		return nil, err
	}

	err := r.redisClient.SetObj(ctx, r.cacheKeyByID(bannerID), result, bannerCacheTTL)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache gacha banner: %v", err)
	}

	return &result, nil
}

func (r *gachaBannerRepository) UpdateStatus(
	ctx context.Context, bannerID string, status entity.BannerStatusType,
) error {
	tx := xcontext.DB(ctx).Model(&entity.GachaBanner{}).
		Where("id=?", bannerID).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.invalidateCache(ctx, bannerID)
	return nil
}

// CreatePoolEntry adds an entry to the banner pool, refusing items beyond the
// banner's per-tier cap.
func (r *gachaBannerRepository) CreatePoolEntry(ctx context.Context, entry *entity.GachaPoolEntry) error {
	var banner entity.GachaBanner
	if err := xcontext.DB(ctx).Take(&banner, "id=?", entry.BannerID).Error; err != nil {
		return err
	}

	if banner.MaxItemsPerTier > 0 {
		count, err := r.CountPoolByTier(ctx, entry.BannerID, entry.Tier)
		if err != nil {
			return err
		}

		var sameItem int64
		err = xcontext.DB(ctx).Model(&entity.GachaPoolEntry{}).
			Where("banner_id=? AND tier=? AND item_id=?", entry.BannerID, entry.Tier, entry.ItemID).
			Count(&sameItem).Error
		if err != nil {
			return err
		}

		if sameItem == 0 && count >= int64(banner.MaxItemsPerTier) {
			return ErrPoolTierFull
		}
	}

	if err := xcontext.DB(ctx).Create(entry).Error; err != nil {
		return err
	}

	r.invalidateCache(ctx, entry.BannerID)
	return nil
}

func (r *gachaBannerRepository) GetPool(ctx context.Context, bannerID string) ([]entity.GachaPoolEntry, error) {
	var cached []entity.GachaPoolEntry
	if err := r.redisClient.GetObj(ctx, r.cacheKeyPool(bannerID), &cached); err == nil {
		return cached, nil
	}

	var result []entity.GachaPoolEntry
	err := xcontext.DB(ctx).Where("banner_id=?", bannerID).
		Order("created_at ASC, id ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	err = r.redisClient.SetObj(ctx, r.cacheKeyPool(bannerID), result, bannerCacheTTL)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache gacha pool: %v", err)
	}

	return result, nil
}

func (r *gachaBannerRepository) CountPoolByTier(
	ctx context.Context, bannerID string, tier entity.RarityTier,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.GachaPoolEntry{}).
		Select("COUNT(DISTINCT(item_id))").
		Where("banner_id=? AND tier=?", bannerID, tier).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
