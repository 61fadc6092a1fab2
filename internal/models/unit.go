package models

import "time"

// Unit: an eating unit (company, battalion) with its standing headcount.
type Unit struct {
	ID               uint   `gorm:"primaryKey"`
	Name             string `gorm:"size:100;not null;unique"`
	DefaultPersonnel int    `gorm:"not null;default:0"`
	Active           bool   `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PersonnelOverride: per-date headcount that takes precedence over the
// unit's DefaultPersonnel.
type PersonnelOverride struct {
	ID        uint `gorm:"primaryKey"`
	UnitID    uint `gorm:"not null;uniqueIndex:idx_override_unit_date"`
	Unit      Unit
	Date      time.Time `gorm:"not null;uniqueIndex:idx_override_unit_date"`
	Personnel int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
