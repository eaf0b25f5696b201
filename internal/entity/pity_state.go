package entity

import "github.com/pokequest-lab/backend/pkg/enum"

type PityStatusType string

var (
	PityPending             = enum.New(PityStatusType("pending"))
	PityCompletedByLuck     = enum.New(PityStatusType("completed_by_luck"))
	PityCompletedByHardPity = enum.New(PityStatusType("completed_by_hard_pity"))
)

// PityState is one guarantee cycle of a user on a banner. At most one pending
// row exists per (user, banner); a top-tier draw closes it with a completed
// status and a fresh pending row takes over. Closed rows are kept as history.
type PityState struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	BannerID string
	Banner   GachaBanner `gorm:"foreignKey:BannerID"`

	// Counter is the number of consecutive draws of this cycle without a
	// top-tier outcome.
	Counter int

	Status PityStatusType
}
