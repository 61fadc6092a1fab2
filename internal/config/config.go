package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string
	Debug       bool

	// AlertCronSchedule: nightly inventory sweep (expiry split refresh +
	// alert log).
	AlertCronSchedule string
	LowStockThreshold float64

	// DefaultBudgetPerPerson: daily ration budget used when a plan request
	// does not supply one (currency units).
	DefaultBudgetPerPerson float64

	// Accepted year range for ledger and requirement queries.
	LedgerYearMin int
	LedgerYearMax int
}

func Load() *Config {
	// Missing .env files are fine; configuration may come from the
	// environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:            getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=quartermaster port=5432 sslmode=disable"),
		CORSOrigins:            getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		Debug:                  os.Getenv("DEBUG") == "true",
		AlertCronSchedule:      getEnv("ALERT_CRON_SCHEDULE", "0 5 * * *"),
		LowStockThreshold:      getEnvFloat("LOW_STOCK_THRESHOLD", 10),
		DefaultBudgetPerPerson: getEnvFloat("DEFAULT_BUDGET_PER_PERSON", 65000),
		LedgerYearMin:          getEnvInt("LEDGER_YEAR_MIN", 2020),
		LedgerYearMax:          getEnvInt("LEDGER_YEAR_MAX", 2035),
	}

	if cfg.LedgerYearMin >= cfg.LedgerYearMax {
		log.Fatal("[FATAL] LEDGER_YEAR_MIN must be below LEDGER_YEAR_MAX")
	}
	if cfg.LowStockThreshold < 0 {
		log.Fatal("[FATAL] LOW_STOCK_THRESHOLD must not be negative")
	}
	if cfg.DefaultBudgetPerPerson <= 0 {
		log.Fatal("[FATAL] DEFAULT_BUDGET_PER_PERSON must be positive")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var f float64
	if _, err := fmt.Sscan(v, &f); err != nil {
		log.Fatalf("[FATAL] %s is not a number: %q", key, v)
	}
	return f
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var i int
	if _, err := fmt.Sscan(v, &i); err != nil {
		log.Fatalf("[FATAL] %s is not an integer: %q", key, v)
	}
	return i
}
