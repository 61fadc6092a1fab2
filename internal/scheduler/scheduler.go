package scheduler

import (
	"time"

	"quartermaster-backend/internal/alert"
	"quartermaster-backend/internal/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Scheduler runs the nightly inventory sweep: refresh the expired/
// non-expired split of every lot, then log anything alert-worthy so it
// shows up in the morning even if nobody opens the dashboard.
type Scheduler struct {
	cron              *cron.Cron
	db                *gorm.DB
	lowStockThreshold float64
	logger            *zap.Logger
}

func New(db *gorm.DB, lowStockThreshold float64, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:              cron.New(),
		db:                db,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

// Start registers the sweep on the given cron schedule and starts the
// cron loop in the background.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.sweepInventory); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("schedule", schedule))
	return nil
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sweepInventory() {
	now := time.Now()

	touched, err := alert.RefreshExpirySplit(s.db, now)
	if err != nil {
		s.logger.Error("expiry split refresh failed", zap.Error(err))
		return
	}

	var lots []models.InventoryLot
	if err := s.db.Find(&lots).Error; err != nil {
		s.logger.Error("could not load inventory lots", zap.Error(err))
		return
	}

	entries := alert.Classify(lots, now, s.lowStockThreshold)
	critical := 0
	for _, e := range entries {
		if e.Level == alert.LevelCritical {
			critical++
		}
		s.logger.Warn("inventory alert",
			zap.String("product", e.ProductName),
			zap.String("level", e.Level),
			zap.String("action", e.Action),
			zap.Float64("non_expired", e.NonExpiredQuantity),
			zap.Float64("expired", e.ExpiredQuantity))
	}

	s.logger.Info("inventory sweep finished",
		zap.Int64("lots_refreshed", touched),
		zap.Int("alerts", len(entries)),
		zap.Int("critical", critical))
}
