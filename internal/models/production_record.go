package models

import "time"

// ProductionRecord: one day's processing-station ledger row for a product line.
// Rows are append-only; upserts on (line, date) only ever overwrite values.
type ProductionRecord struct {
	ID   uint      `gorm:"primaryKey"`
	Line string    `gorm:"size:40;not null;uniqueIndex:idx_production_line_date"`
	Date time.Time `gorm:"not null;uniqueIndex:idx_production_line_date"`

	RawInput          float64 `gorm:"not null"` // raw material put in (kg)
	DerivedCollected  float64 `gorm:"not null"` // derived product collected (kg)
	DerivedDispatched float64 `gorm:"not null"` // derived product issued to kitchens (kg)
	ByproductQty      float64 `gorm:"not null;default:0"`

	// Opening balance rolled over from the previous day's remaining.
	CarriedOver float64 `gorm:"not null;default:0"`
	// PrevRecorded distinguishes "previous day had zero remaining" from
	// "no ledger row existed for the previous day".
	PrevRecorded     bool    `gorm:"not null;default:false"`
	DerivedRemaining float64 `gorm:"not null;default:0"`

	RawPrice       float64 `gorm:"not null;default:0"` // per kg of raw input
	DerivedPrice   float64 `gorm:"not null;default:0"` // per kg of derived product
	ByproductPrice float64 `gorm:"not null;default:0"`
	OtherCosts     float64 `gorm:"not null;default:0"` // fuel, coagulant, etc.

	Note      string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
