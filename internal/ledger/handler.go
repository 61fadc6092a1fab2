package ledger

import (
	"fmt"
	"time"

	"quartermaster-backend/internal/productline"

	"github.com/gofiber/fiber/v2"
)

type CreateDailyRequest struct {
	Date              string   `json:"date"` // "2024-01-02"
	RawInput          float64  `json:"raw_input"`
	DerivedCollected  float64  `json:"derived_collected"`
	DerivedDispatched float64  `json:"derived_dispatched"`
	ByproductQty      float64  `json:"byproduct_qty"`
	RawPrice          *float64 `json:"raw_price"`       // nil -> line default
	DerivedPrice      *float64 `json:"derived_price"`   // nil -> line default
	ByproductPrice    *float64 `json:"byproduct_price"` // nil -> line default
	OtherCosts        float64  `json:"other_costs"`
	Note              string   `json:"note"`
}

type DailyResponse struct {
	Line              string  `json:"line"`
	Date              string  `json:"date"`
	RawInput          float64 `json:"raw_input"`
	DerivedCollected  float64 `json:"derived_collected"`
	DerivedDispatched float64 `json:"derived_dispatched"`
	ByproductQty      float64 `json:"byproduct_qty"`
	CarriedOver       float64 `json:"carried_over"`
	PrevRecorded      bool    `json:"prev_recorded"`
	DerivedRemaining  float64 `json:"derived_remaining"`
	Efficiency        float64 `json:"efficiency"`
	Revenue           float64 `json:"revenue"`
	Cost              float64 `json:"cost"`
	NetProfit         float64 `json:"net_profit"`
	Note              string  `json:"note,omitempty"`
	UpdatedAt         string  `json:"updated_at"`
}

// resolveLine: path param -> product line config.
func resolveLine(c *fiber.Ctx) (productline.Config, error) {
	cfg, ok := productline.Get(c.Params("line"))
	if !ok {
		return productline.Config{}, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("unknown product line: %s", c.Params("line")))
	}
	return cfg, nil
}

// POST /api/ledger/:line/daily
func CreateDailyHandler(svc *Service, yearMin, yearMax int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg, err := resolveLine(c)
		if err != nil {
			return err
		}

		var body CreateDailyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}
		if d.Year() < yearMin || d.Year() > yearMax {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("year must be between %d and %d", yearMin, yearMax))
		}
		if body.RawInput < 0 || body.DerivedCollected < 0 || body.DerivedDispatched < 0 ||
			body.ByproductQty < 0 || body.OtherCosts < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantities and costs must not be negative")
		}

		res, err := svc.UpsertDaily(cfg, d, UpsertInput{
			RawInput:          body.RawInput,
			DerivedCollected:  body.DerivedCollected,
			DerivedDispatched: body.DerivedDispatched,
			ByproductQty:      body.ByproductQty,
			RawPrice:          body.RawPrice,
			DerivedPrice:      body.DerivedPrice,
			ByproductPrice:    body.ByproductPrice,
			OtherCosts:        body.OtherCosts,
			Note:              body.Note,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not save ledger entry")
		}

		return c.Status(fiber.StatusCreated).JSON(DailyResponse{
			Line:              res.Record.Line,
			Date:              res.Record.Date.Format("2006-01-02"),
			RawInput:          res.Record.RawInput,
			DerivedCollected:  res.Record.DerivedCollected,
			DerivedDispatched: res.Record.DerivedDispatched,
			ByproductQty:      res.Record.ByproductQty,
			CarriedOver:       res.Record.CarriedOver,
			PrevRecorded:      res.Record.PrevRecorded,
			DerivedRemaining:  res.Record.DerivedRemaining,
			Efficiency:        res.Efficiency,
			Revenue:           res.Revenue,
			Cost:              res.Cost,
			NetProfit:         res.NetProfit,
			Note:              res.Record.Note,
			UpdatedAt:         res.Record.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/ledger/:line/weekly
func WeeklyHandler(svc *Service, yearMin, yearMax int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg, err := resolveLine(c)
		if err != nil {
			return err
		}

		yearStr := c.Query("year")
		weekStr := c.Query("week")
		if yearStr == "" || weekStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "year and week are required")
		}

		var year, week int
		if _, err := fmt.Sscan(yearStr, &year); err != nil || year < yearMin || year > yearMax {
			return fiber.NewError(fiber.StatusBadRequest, "year is invalid")
		}
		if _, err := fmt.Sscan(weekStr, &week); err != nil || week < 1 || week > 53 {
			return fiber.NewError(fiber.StatusBadRequest, "week is invalid (1-53)")
		}

		report, err := svc.Weekly(cfg, week, year)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build weekly report")
		}
		return c.JSON(report)
	}
}

// GET /api/ledger/:line/monthly
func MonthlyHandler(svc *Service, yearMin, yearMax int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg, err := resolveLine(c)
		if err != nil {
			return err
		}

		yearStr := c.Query("year")
		monthStr := c.Query("month")
		if yearStr == "" || monthStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "year and month are required")
		}

		var year, month int
		if _, err := fmt.Sscan(yearStr, &year); err != nil || year < yearMin || year > yearMax {
			return fiber.NewError(fiber.StatusBadRequest, "year is invalid")
		}
		if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month is invalid")
		}

		months := 1
		if mStr := c.Query("months"); mStr != "" {
			if _, err := fmt.Sscan(mStr, &months); err != nil || months < 1 || months > 24 {
				return fiber.NewError(fiber.StatusBadRequest, "months is invalid (1-24)")
			}
		}

		aggs, err := svc.Monthly(cfg, year, month, months)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build monthly report")
		}
		return c.JSON(fiber.Map{
			"line":   string(cfg.Line),
			"months": aggs,
		})
	}
}
