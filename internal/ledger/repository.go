package ledger

import (
	"errors"
	"time"

	"quartermaster-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound: no ledger row for the requested (line, date).
var ErrNotFound = errors.New("ledger record not found")

// Repository is the storage seam for production records. The GORM
// implementation backs the server; tests use an in-memory one.
type Repository interface {
	// FindByLineDate returns the record for a (line, date) key, or ErrNotFound.
	FindByLineDate(line string, date time.Time) (*models.ProductionRecord, error)
	// FindRange returns records for a line with from <= date <= to, ordered by date.
	FindRange(line string, from, to time.Time) ([]models.ProductionRecord, error)
	// Save upserts a record on its (line, date) key.
	Save(rec *models.ProductionRecord) error
	// Atomically runs fn with the read-modify-write isolated per key, so a
	// carry-over read cannot interleave with a concurrent upsert.
	Atomically(fn func(Repository) error) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByLineDate(line string, date time.Time) (*models.ProductionRecord, error) {
	var rec models.ProductionRecord
	err := r.db.Where("line = ? AND date = ?", line, date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *gormRepository) FindRange(line string, from, to time.Time) ([]models.ProductionRecord, error) {
	var recs []models.ProductionRecord
	err := r.db.
		Where("line = ? AND date >= ? AND date <= ?", line, from, to).
		Order("date ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *gormRepository) Save(rec *models.ProductionRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "line"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"raw_input", "derived_collected", "derived_dispatched", "byproduct_qty",
			"carried_over", "prev_recorded", "derived_remaining",
			"raw_price", "derived_price", "byproduct_price", "other_costs",
			"note", "updated_at",
		}),
	}).Create(rec).Error
}

func (r *gormRepository) Atomically(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}
