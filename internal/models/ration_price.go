package models

import "time"

// RationPrice: reference unit price for an ingredient, used when costing
// menu suggestions.
type RationPrice struct {
	ID             uint    `gorm:"primaryKey"`
	IngredientName string  `gorm:"size:100;not null;unique"`
	UnitPrice      float64 `gorm:"not null"` // currency units per unit of measure
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
