package alert

import (
	"time"

	"quartermaster-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/inventory/alerts
func ListAlertsHandler(db *gorm.DB, lowStockThreshold float64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()

		// Splits may be stale if a boundary was crossed since the nightly
		// sweep; refresh before classifying.
		if _, err := RefreshExpirySplit(db, now); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not refresh inventory expiry data")
		}

		var lots []models.InventoryLot
		if err := db.Order("expiry_date ASC NULLS LAST").Find(&lots).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list inventory lots")
		}

		return c.JSON(fiber.Map{
			"generated_at": now.Format("2006-01-02 15:04:05"),
			"alerts":       Classify(lots, now, lowStockThreshold),
		})
	}
}
