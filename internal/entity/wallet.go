package entity

import (
	"database/sql"

	"github.com/pokequest-lab/backend/pkg/enum"
)

type Wallet struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Currency string
	Balance  uint64
}

type LedgerEntryType string

var (
	LedgerDebit  = enum.New(LedgerEntryType("debit"))
	LedgerCredit = enum.New(LedgerEntryType("credit"))
)

// LedgerEntry is an immutable record of one balance change. Corrections are
// new compensating entries, never updates.
type LedgerEntry struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Currency string
	Type     LedgerEntryType
	Amount   uint64

	// Note contains the reason of this entry in case of not come from a
	// purchase.
	Note string

	PurchaseID sql.NullString
}
