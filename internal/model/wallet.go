package model

type LedgerEntry struct {
	ID         string `json:"id"`
	Currency   string `json:"currency"`
	Type       string `json:"type"`
	Amount     uint64 `json:"amount"`
	Note       string `json:"note"`
	PurchaseID string `json:"purchase_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type GetBalanceRequest struct {
	Currency string `json:"currency" form:"currency"`
}

type GetBalanceResponse struct {
	Currency string `json:"currency"`
	Balance  uint64 `json:"balance"`
}

type GetLedgerRequest struct {
	Currency string `json:"currency" form:"currency"`
	Offset   int    `json:"offset" form:"offset"`
	Limit    int    `json:"limit" form:"limit"`
}

type GetLedgerResponse struct {
	Entries []LedgerEntry `json:"entries"`
}
