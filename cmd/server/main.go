package main

import (
	"strings"

	"quartermaster-backend/internal/alert"
	"quartermaster-backend/internal/config"
	"quartermaster-backend/internal/database"
	"quartermaster-backend/internal/ledger"
	"quartermaster-backend/internal/logger"
	"quartermaster-backend/internal/productline"
	"quartermaster-backend/internal/requirement"
	"quartermaster-backend/internal/scheduler"
	"quartermaster-backend/internal/suggestion"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.Init(cfg)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logger.Named(log, "http").Error("unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	ledgerSvc := ledger.NewService(ledger.NewRepository(db))

	api := app.Group("/api")

	// Product line registry
	api.Get("/product-lines", productline.ListLinesHandler())

	// Production ledger (one route set for every line)
	api.Post("/ledger/:line/daily", ledger.CreateDailyHandler(ledgerSvc, cfg.LedgerYearMin, cfg.LedgerYearMax))
	api.Get("/ledger/:line/weekly", ledger.WeeklyHandler(ledgerSvc, cfg.LedgerYearMin, cfg.LedgerYearMax))
	api.Get("/ledger/:line/monthly", ledger.MonthlyHandler(ledgerSvc, cfg.LedgerYearMin, cfg.LedgerYearMax))

	// Menu-driven ingredient requirements
	api.Get("/requirements/:line", requirement.GetRequirementsHandler(db, cfg.LedgerYearMin, cfg.LedgerYearMax))

	// Inventory freshness alerts
	api.Get("/inventory/alerts", alert.ListAlertsHandler(db, cfg.LowStockThreshold))

	// Menu suggestions & daily plan
	api.Get("/menu-suggestions", suggestion.ListSuggestionsHandler(db))
	api.Post("/daily-plan", suggestion.CreateDailyPlanHandler(db, cfg.DefaultBudgetPerPerson))

	sched := scheduler.New(db, cfg.LowStockThreshold, logger.Named(log, "scheduler"))
	if err := sched.Start(cfg.AlertCronSchedule); err != nil {
		log.Fatal("scheduler start failed", zap.Error(err))
	}
	defer sched.Stop()

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
