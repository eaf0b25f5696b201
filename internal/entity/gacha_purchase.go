package entity

type GachaPurchase struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	BannerID string
	Banner   GachaBanner `gorm:"foreignKey:BannerID"`

	DrawCount int
	TotalCost uint64

	LedgerEntryID string
	LedgerEntry   LedgerEntry `gorm:"foreignKey:LedgerEntryID"`
}

// DrawRecord is one outcome inside a purchase. Sequence preserves draw order;
// the pity fields are a snapshot taken right after the draw they belong to.
type DrawRecord struct {
	Base

	PurchaseID string
	Purchase   GachaPurchase `gorm:"foreignKey:PurchaseID"`

	Sequence int

	ItemID string
	Item   Item `gorm:"foreignKey:ItemID"`

	Tier RarityTier

	PityCounter int
	PityStatus  PityStatusType

	IsDuplicate  bool
	RewardAmount uint64

	// IsGuaranteeSubstitute marks the record rewritten by the batch
	// guarantee. The pity snapshot still reflects the original draw.
	IsGuaranteeSubstitute bool
}
