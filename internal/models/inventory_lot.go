package models

import "time"

// InventoryLot: a received batch of a product. The expired/non-expired split
// is precomputed and refreshed whenever "now" crosses the expiry boundary,
// so reads never have to re-derive it.
type InventoryLot struct {
	ID          uint       `gorm:"primaryKey"`
	ProductName string     `gorm:"size:100;index;not null"`
	Unit        string     `gorm:"size:20;not null"` // kg, liter, piece
	Quantity    float64    `gorm:"not null"`
	ExpiryDate  *time.Time `gorm:"index"` // nil when the product does not expire

	NonExpiredQuantity float64 `gorm:"not null;default:0"`
	ExpiredQuantity    float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
