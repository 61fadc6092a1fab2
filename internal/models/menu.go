package models

import "time"

const (
	MealMorning = "morning"
	MealNoon    = "noon"
	MealEvening = "evening"
)

// Menu: one planned week. Owned by the planning workflow; read-only here.
type Menu struct {
	ID        uint      `gorm:"primaryKey"`
	Week      int       `gorm:"index;not null"` // 1-53
	Year      int       `gorm:"index;not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	Status    string    `gorm:"size:20;not null;default:'draft'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	DailyMenus []DailyMenu
}

// DailyMenu: one calendar day of a Menu, with the planned headcount.
type DailyMenu struct {
	ID             uint      `gorm:"primaryKey"`
	MenuID         uint      `gorm:"index;not null"`
	Date           time.Time `gorm:"uniqueIndex;not null"`
	PersonnelCount int       `gorm:"not null;default:0"`
	Status         string    `gorm:"size:20;not null;default:'planned'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Meals []Meal
}

// Meal: morning/noon/evening set of dishes for a DailyMenu.
type Meal struct {
	ID          uint   `gorm:"primaryKey"`
	DailyMenuID uint   `gorm:"index;not null"`
	Type        string `gorm:"size:10;not null"` // morning, noon, evening
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Dishes []Dish `gorm:"many2many:meal_dishes"`
}
