package entity

import "github.com/pokequest-lab/backend/pkg/enum"

type BannerStatusType string

var (
	BannerPreview  = enum.New(BannerStatusType("preview"))
	BannerActive   = enum.New(BannerStatusType("active"))
	BannerInactive = enum.New(BannerStatusType("inactive"))
	BannerExpired  = enum.New(BannerStatusType("expired"))
)

type GachaBanner struct {
	Base

	Name   string
	Status BannerStatusType

	Currency    string
	CostPerDraw uint64

	// HardPityLimit is the number of draws at which a top-tier outcome
	// becomes mandatory.
	HardPityLimit int

	// MaxItemsPerTier caps the distinct items configured at each tier. It is
	// enforced when the pool is administered, not at draw time.
	MaxItemsPerTier int

	AllowDuplicates bool
}

type GachaPoolEntry struct {
	Base

	BannerID string
	Banner   GachaBanner `gorm:"foreignKey:BannerID"`

	ItemID string
	Item   Item `gorm:"foreignKey:ItemID"`

	Tier   RarityTier
	Weight int
}
