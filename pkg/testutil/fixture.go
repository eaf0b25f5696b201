package testutil

import (
	"context"

	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/internal/repository"
)

var (
	User1 = &entity.User{
		Base: entity.Base{ID: "user1"},
		Name: "user1",
	}
	User2 = &entity.User{
		Base: entity.Base{ID: "user2"},
		Name: "user2",
	}

	ItemRustySword = &entity.Item{
		Base: entity.Base{ID: "item_rusty_sword"},
		Name: "Rusty Sword",
	}
	ItemWoodenShield = &entity.Item{
		Base: entity.Base{ID: "item_wooden_shield"},
		Name: "Wooden Shield",
	}
	ItemSilverBow = &entity.Item{
		Base: entity.Base{ID: "item_silver_bow"},
		Name: "Silver Bow",
	}
	ItemFlameStaff = &entity.Item{
		Base: entity.Base{ID: "item_flame_staff"},
		Name: "Flame Staff",
	}
	ItemStormHammer = &entity.Item{
		Base: entity.Base{ID: "item_storm_hammer"},
		Name: "Storm Hammer",
	}
	ItemDragonBlade = &entity.Item{
		Base: entity.Base{ID: "item_dragon_blade"},
		Name: "Dragon Blade",
	}
	ItemPhoenixCrown = &entity.Item{
		Base: entity.Base{ID: "item_phoenix_crown"},
		Name: "Phoenix Crown",
	}

	Banner1 = &entity.GachaBanner{
		Base:            entity.Base{ID: "banner1"},
		Name:            "Founding Heroes",
		Status:          entity.BannerActive,
		Currency:        "gem",
		CostPerDraw:     100,
		HardPityLimit:   5,
		MaxItemsPerTier: 10,
		AllowDuplicates: true,
	}
	Banner2 = &entity.GachaBanner{
		Base:            entity.Base{ID: "banner2"},
		Name:            "Closed Preview",
		Status:          entity.BannerPreview,
		Currency:        "gem",
		CostPerDraw:     250,
		HardPityLimit:   10,
		MaxItemsPerTier: 10,
		AllowDuplicates: true,
	}

	Banner1Pool = []*entity.GachaPoolEntry{
		{
			Base:     entity.Base{ID: "pool1_rusty_sword"},
			BannerID: Banner1.ID, ItemID: ItemRustySword.ID,
			Tier: entity.TierCommon, Weight: 4000,
		},
		{
			Base:     entity.Base{ID: "pool1_wooden_shield"},
			BannerID: Banner1.ID, ItemID: ItemWoodenShield.ID,
			Tier: entity.TierCommon, Weight: 3000,
		},
		{
			Base:     entity.Base{ID: "pool1_silver_bow"},
			BannerID: Banner1.ID, ItemID: ItemSilverBow.ID,
			Tier: entity.TierUncommon, Weight: 1500,
		},
		{
			Base:     entity.Base{ID: "pool1_flame_staff"},
			BannerID: Banner1.ID, ItemID: ItemFlameStaff.ID,
			Tier: entity.TierRare, Weight: 1000,
		},
		{
			Base:     entity.Base{ID: "pool1_storm_hammer"},
			BannerID: Banner1.ID, ItemID: ItemStormHammer.ID,
			Tier: entity.TierEpic, Weight: 400,
		},
		{
			Base:     entity.Base{ID: "pool1_dragon_blade"},
			BannerID: Banner1.ID, ItemID: ItemDragonBlade.ID,
			Tier: entity.TierLegendary, Weight: 70,
		},
		{
			Base:     entity.Base{ID: "pool1_phoenix_crown"},
			BannerID: Banner1.ID, ItemID: ItemPhoenixCrown.ID,
			Tier: entity.TierLegendary, Weight: 30,
		},
	}

	Wallet1 = &entity.Wallet{
		Base:     entity.Base{ID: "wallet1"},
		UserID:   User1.ID,
		Currency: "gem",
		Balance:  100000,
	}
	Wallet2 = &entity.Wallet{
		Base:     entity.Base{ID: "wallet2"},
		UserID:   User2.ID,
		Currency: "gem",
		Balance:  50,
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertItems(ctx)
	InsertBanners(ctx)
	InsertWallets(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []*entity.User{User1, User2} {
		if err := userRepo.Create(ctx, user); err != nil {
			panic(err)
		}
	}
}

func InsertItems(ctx context.Context) {
	itemRepo := repository.NewItemRepository()
	items := []*entity.Item{
		ItemRustySword, ItemWoodenShield, ItemSilverBow,
		ItemFlameStaff, ItemStormHammer, ItemDragonBlade, ItemPhoenixCrown,
	}
	for _, item := range items {
		if err := itemRepo.Create(ctx, item); err != nil {
			panic(err)
		}
	}
}

func InsertBanners(ctx context.Context) {
	bannerRepo := repository.NewGachaBannerRepository(&MockRedisClient{})
	for _, banner := range []*entity.GachaBanner{Banner1, Banner2} {
		if err := bannerRepo.Create(ctx, banner); err != nil {
			panic(err)
		}
	}

	for _, poolEntry := range Banner1Pool {
		if err := bannerRepo.CreatePoolEntry(ctx, poolEntry); err != nil {
			panic(err)
		}
	}
}

func InsertWallets(ctx context.Context) {
	walletRepo := repository.NewWalletRepository()
	for _, wallet := range []*entity.Wallet{Wallet1, Wallet2} {
		if err := walletRepo.Create(ctx, wallet); err != nil {
			panic(err)
		}
	}
}
