package main

import (
	"context"

	"github.com/BurntSushi/toml"
	"github.com/pokequest-lab/backend/config"
	"github.com/pokequest-lab/backend/internal/domain"
	"github.com/pokequest-lab/backend/internal/repository"
	"github.com/pokequest-lab/backend/migration"
	"github.com/pokequest-lab/backend/pkg/logger"
	"github.com/pokequest-lab/backend/pkg/router"
	"github.com/pokequest-lab/backend/pkg/xcontext"
	"github.com/pokequest-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	redisClient xredis.Client

	itemRepo          repository.ItemRepository
	walletRepo        repository.WalletRepository
	gachaBannerRepo   repository.GachaBannerRepository
	pityStateRepo     repository.PityStateRepository
	gachaPurchaseRepo repository.GachaPurchaseRepository

	gachaDomain  domain.GachaDomain
	walletDomain domain.WalletDomain

	router *router.Router
}

func (s *srv) loadConfig(cctx *cli.Context) {
	var cfg config.Configs
	if _, err := toml.DecodeFile(cctx.String("config"), &cfg); err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.Open(cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadRepos() {
	s.itemRepo = repository.NewItemRepository()
	s.walletRepo = repository.NewWalletRepository()
	s.gachaBannerRepo = repository.NewGachaBannerRepository(s.redisClient)
	s.pityStateRepo = repository.NewPityStateRepository()
	s.gachaPurchaseRepo = repository.NewGachaPurchaseRepository()
}

func (s *srv) loadDomains() {
	s.gachaDomain = domain.NewGachaDomain(
		s.gachaBannerRepo,
		s.pityStateRepo,
		s.gachaPurchaseRepo,
		s.walletRepo,
		s.itemRepo,
	)
	s.walletDomain = domain.NewWalletDomain(s.walletRepo)
}
