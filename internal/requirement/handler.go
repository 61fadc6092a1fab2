package requirement

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"quartermaster-backend/internal/models"
	"quartermaster-backend/internal/productline"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/requirements/:line
// Either ?date=YYYY-MM-DD or ?week=&year=, plus optional ?unit_ids=1,2,3.
// 404 when no menu covers the requested period; a covered period with no
// matching ingredient returns a zeroed result.
func GetRequirementsHandler(db *gorm.DB, yearMin, yearMax int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg, ok := productline.Get(c.Params("line"))
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("unknown product line: %s", c.Params("line")))
		}

		from, to, err := resolvePeriod(c, yearMin, yearMax)
		if err != nil {
			return err
		}

		unitFilter, err := parseUnitIDs(c.Query("unit_ids"))
		if err != nil {
			return err
		}

		// The weekly Menu row is what defines "a menu exists for the period".
		var menu models.Menu
		err = db.Where("start_date <= ? AND end_date >= ?", to, from).First(&menu).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no menu covers the requested period")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load menu")
		}

		var dailyMenus []models.DailyMenu
		if err := db.
			Preload("Meals.Dishes.Ingredients").
			Where("menu_id = ? AND date >= ? AND date <= ?", menu.ID, from, to).
			Order("date ASC").
			Find(&dailyMenus).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load daily menus")
		}

		var units []models.Unit
		if err := db.Where("active = ?", true).Order("name ASC").Find(&units).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load units")
		}

		var overrides []models.PersonnelOverride
		if err := db.Where("date >= ? AND date <= ?", from, to).Find(&overrides).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load personnel overrides")
		}

		res := Compute(cfg, dailyMenus, units, overrides, unitFilter)
		res.StartDate = from.Format("2006-01-02")
		res.EndDate = to.Format("2006-01-02")
		return c.JSON(res)
	}
}

func resolvePeriod(c *fiber.Ctx, yearMin, yearMax int) (time.Time, time.Time, error) {
	if dateStr := c.Query("date"); dateStr != "" {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}
		return d, d, nil
	}

	yearStr := c.Query("year")
	weekStr := c.Query("week")
	if yearStr == "" || weekStr == "" {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest,
			"either date or week and year are required")
	}
	var year, week int
	if _, err := fmt.Sscan(yearStr, &year); err != nil || year < yearMin || year > yearMax {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "year is invalid")
	}
	if _, err := fmt.Sscan(weekStr, &week); err != nil || week < 1 || week > 53 {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "week is invalid (1-53)")
	}

	// Week starts on the Monday of the week containing January 1st.
	jan1 := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	daysToMonday := (int(jan1.Weekday()) + 6) % 7
	start := jan1.AddDate(0, 0, -daysToMonday).AddDate(0, 0, (week-1)*7)
	return start, start.AddDate(0, 0, 6), nil
}

func parseUnitIDs(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		var id uint
		if _, err := fmt.Sscan(strings.TrimSpace(p), &id); err != nil || id == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "unit_ids is invalid")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
