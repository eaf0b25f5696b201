package testutil

import (
	"context"
	"time"

	"github.com/pokequest-lab/backend/config"
	"github.com/pokequest-lab/backend/migration"
	"github.com/pokequest-lab/backend/pkg/logger"
	"github.com/pokequest-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewMockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "testing",
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Gacha: config.GachaConfigs{
			GuaranteeBatchSize:      10,
			GuaranteeMinTier:        "rare",
			GuaranteeHighTierShare:  80,
			DuplicateConversionRate: 0.5,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

// NewMockContextWithUserID derives an authenticated context sharing the same
// database as ctx. A nil ctx starts from a fresh mock context.
func NewMockContextWithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = NewMockContext()
	}

	return xcontext.WithRequestUserID(ctx, userID)
}
