package suggestion

import (
	"time"

	"quartermaster-backend/internal/alert"
	"quartermaster-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func loadRankingInputs(db *gorm.DB, now time.Time) ([]models.Dish, []models.InventoryLot, []models.RationPrice, error) {
	if _, err := alert.RefreshExpirySplit(db, now); err != nil {
		return nil, nil, nil, err
	}

	var dishes []models.Dish
	if err := db.Preload("Ingredients").Order("name ASC").Find(&dishes).Error; err != nil {
		return nil, nil, nil, err
	}
	var lots []models.InventoryLot
	if err := db.Find(&lots).Error; err != nil {
		return nil, nil, nil, err
	}
	var prices []models.RationPrice
	if err := db.Find(&prices).Error; err != nil {
		return nil, nil, nil, err
	}
	return dishes, lots, prices, nil
}

// GET /api/menu-suggestions
func ListSuggestionsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		dishes, lots, prices, err := loadRankingInputs(db, now)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load suggestion inputs")
		}
		return c.JSON(fiber.Map{
			"generated_at": now.Format("2006-01-02 15:04:05"),
			"suggestions":  Rank(dishes, lots, prices, now),
		})
	}
}

type CreateDailyPlanRequest struct {
	Date            string   `json:"date"` // "2024-01-10"
	BudgetPerPerson *float64 `json:"budget_per_person"`
}

// POST /api/daily-plan
func CreateDailyPlanHandler(db *gorm.DB, defaultBudgetPerPerson float64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDailyPlanRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}
		budget := defaultBudgetPerPerson
		if body.BudgetPerPerson != nil {
			if *body.BudgetPerPerson <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "budget_per_person must be positive")
			}
			budget = *body.BudgetPerPerson
		}

		now := time.Now()
		dishes, lots, prices, err := loadRankingInputs(db, now)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load suggestion inputs")
		}

		personnel, err := totalPersonnelOn(db, d)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not resolve personnel")
		}

		plan := BuildDailyPlan(Rank(dishes, lots, prices, now), personnel, budget)
		plan.Date = d.Format("2006-01-02")
		return c.Status(fiber.StatusCreated).JSON(plan)
	}
}

// totalPersonnelOn sums active unit headcounts for a date, with per-date
// overrides taking precedence over unit defaults.
func totalPersonnelOn(db *gorm.DB, date time.Time) (int, error) {
	var units []models.Unit
	if err := db.Where("active = ?", true).Find(&units).Error; err != nil {
		return 0, err
	}
	var overrides []models.PersonnelOverride
	if err := db.Where("date = ?", date).Find(&overrides).Error; err != nil {
		return 0, err
	}
	byUnit := make(map[uint]int, len(overrides))
	for _, o := range overrides {
		byUnit[o.UnitID] = o.Personnel
	}

	total := 0
	for _, u := range units {
		if p, ok := byUnit[u.ID]; ok {
			total += p
			continue
		}
		total += u.DefaultPersonnel
	}
	return total, nil
}
