package model

type GachaPoolEntry struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Tier     string `json:"tier"`
	Weight   int    `json:"weight"`
}

type GachaBanner struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Status          string           `json:"status"`
	Currency        string           `json:"currency"`
	CostPerDraw     uint64           `json:"cost_per_draw"`
	HardPityLimit   int              `json:"hard_pity_limit"`
	AllowDuplicates bool             `json:"allow_duplicates"`
	Pool            []GachaPoolEntry `json:"pool,omitempty"`
}

type PitySnapshot struct {
	Counter int    `json:"counter"`
	Status  string `json:"status"`
}

type GachaOutcome struct {
	Sequence              int    `json:"sequence"`
	ItemID                string `json:"item_id"`
	Tier                  string `json:"tier"`
	PityCounter           int    `json:"pity_counter"`
	PityStatus            string `json:"pity_status"`
	IsDuplicate           bool   `json:"is_duplicate"`
	RewardAmount          uint64 `json:"reward_amount,omitempty"`
	IsGuaranteeSubstitute bool   `json:"is_guarantee_substitute,omitempty"`
}

type GachaPurchase struct {
	ID        string         `json:"id"`
	BannerID  string         `json:"banner_id"`
	DrawCount int            `json:"draw_count"`
	TotalCost uint64         `json:"total_cost"`
	CreatedAt string         `json:"created_at"`
	Outcomes  []GachaOutcome `json:"outcomes,omitempty"`
}

type BuyGachaRequest struct {
	BannerID  string `json:"banner_id"`
	DrawCount int    `json:"draw_count"`
}

type BuyGachaResponse struct {
	PurchaseID  string         `json:"purchase_id"`
	TotalCost   uint64         `json:"total_cost"`
	Outcomes    []GachaOutcome `json:"outcomes"`
	Pity        PitySnapshot   `json:"pity"`
	TotalReward uint64         `json:"total_reward"`
	NewBalance  uint64         `json:"new_balance"`
}

type GetGachaBannerRequest struct {
	BannerID string `json:"banner_id" form:"banner_id"`
}

type GetGachaBannerResponse struct {
	Banner GachaBanner `json:"banner"`
}

type GetPityStateRequest struct {
	BannerID string `json:"banner_id" form:"banner_id"`
}

type GetPityStateResponse struct {
	Pity PitySnapshot `json:"pity"`
}

type GetPurchaseHistoryRequest struct {
	BannerID string `json:"banner_id" form:"banner_id"`
	Offset   int    `json:"offset" form:"offset"`
	Limit    int    `json:"limit" form:"limit"`
}

type GetPurchaseHistoryResponse struct {
	Purchases []GachaPurchase `json:"purchases"`
}
