package entity

import "database/sql"

// Item belongs to the external catalog; this service only reads it and grants
// ownership rows.
type Item struct {
	Base

	Name        string
	Description string
}

type UserItem struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	ItemID string
	Item   Item `gorm:"foreignKey:ItemID"`

	// ObtainedFromID links back to the purchase that granted this item, if
	// any.
	ObtainedFromID sql.NullString
}
