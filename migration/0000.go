package migration

import (
	"context"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/xcontext"
)

// migrate0000 will create the database with the latest version.
func migrate0000(ctx context.Context) error {
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
	)
}
