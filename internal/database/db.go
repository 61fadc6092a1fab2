package database

import (
	"fmt"

	"quartermaster-backend/internal/config"
	"quartermaster-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the Postgres connection and runs migrations. The handle is
// returned and injected into handlers; there is no package-level global,
// so the connection's lifecycle stays with the host process.
func Init(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.Unit{},
		&models.PersonnelOverride{},
		&models.Menu{},
		&models.DailyMenu{},
		&models.Meal{},
		&models.Dish{},
		&models.DishIngredient{},
		&models.ProductionRecord{},
		&models.InventoryLot{},
		&models.RationPrice{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto-migration failed: %w", err)
	}

	return db, nil
}
