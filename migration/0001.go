package migration

import (
	"context"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/xcontext"
)

func migrate0001(ctx context.Context) error {
	migrator := xcontext.DB(ctx).Migrator()

	if !migrator.HasColumn(&entity.DrawRecord{}, "is_guarantee_substitute") {
		if err := migrator.AddColumn(&entity.DrawRecord{}, "is_guarantee_substitute"); err != nil {
			return err
		}
	}

	if !migrator.HasColumn(&entity.GachaBanner{}, "max_items_per_tier") {
		if err := migrator.AddColumn(&entity.GachaBanner{}, "max_items_per_tier"); err != nil {
			return err
		}
	}

	return nil
}
