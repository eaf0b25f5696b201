package migration

import (
	"context"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/xcontext"
)

// When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Item{},
		&entity.UserItem{},
		&entity.Wallet{},
		&entity.LedgerEntry{},
		&entity.GachaBanner{},
		&entity.GachaPoolEntry{},
		&entity.PityState{},
		&entity.GachaPurchase{},
		&entity.DrawRecord{},
		&entity.Migration{},
	)
}
