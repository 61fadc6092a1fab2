package models

import "time"

// Dish: a recipe with ingredient lines. Quantity is per Servings portions,
// not per person.
type Dish struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Category  string `gorm:"size:50"`
	Servings  int    `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Ingredients []DishIngredient
}

type DishIngredient struct {
	ID             uint    `gorm:"primaryKey"`
	DishID         uint    `gorm:"index;not null"`
	IngredientID   *uint   `gorm:"index"` // nil for legacy rows linked by name only
	IngredientName string  `gorm:"size:100;not null"`
	Quantity       float64 `gorm:"not null"`
	Unit           string  `gorm:"size:20;not null"` // kg, liter, piece
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
