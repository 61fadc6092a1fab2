package alert

import (
	"math"
	"sort"
	"time"

	"quartermaster-backend/internal/models"
)

const (
	LevelCritical = "critical"
	LevelWarning  = "warning"

	// DefaultLowStockThreshold: below this non-expired quantity a lot is
	// flagged for restocking.
	DefaultLowStockThreshold = 10.0
)

type Entry struct {
	LotID              uint    `json:"lot_id"`
	ProductName        string  `json:"product_name"`
	Unit               string  `json:"unit"`
	Quantity           float64 `json:"quantity"`
	NonExpiredQuantity float64 `json:"non_expired_quantity"`
	ExpiredQuantity    float64 `json:"expired_quantity"`
	DaysUntilExpiry    *int    `json:"days_until_expiry,omitempty"`
	Level              string  `json:"level"`
	Action             string  `json:"action"`
}

// DaysUntilExpiry counts whole days from now until expiry, rounding up.
// Expiring later today counts as 1; already expired gives zero or less.
func DaysUntilExpiry(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

// Classify maps every lot to exactly one level. Rules are evaluated in
// order, first match wins; info-level lots are omitted from the result.
// Output is sorted with critical entries first.
func Classify(lots []models.InventoryLot, now time.Time, lowStockThreshold float64) []Entry {
	entries := make([]Entry, 0)
	for _, lot := range lots {
		var days *int
		if lot.ExpiryDate != nil {
			d := DaysUntilExpiry(*lot.ExpiryDate, now)
			days = &d
		}

		var level, action string
		switch {
		case lot.ExpiredQuantity > 0:
			level, action = LevelCritical, "dispose of expired stock immediately"
		case days != nil && *days <= 3:
			level, action = LevelCritical, "prioritize use within 3 days"
		case days != nil && *days <= 7:
			level, action = LevelWarning, "plan usage within the week"
		case lot.NonExpiredQuantity < lowStockThreshold:
			level, action = LevelWarning, "stock is low, consider restocking"
		default:
			continue // info, not surfaced
		}

		entries = append(entries, Entry{
			LotID:              lot.ID,
			ProductName:        lot.ProductName,
			Unit:               lot.Unit,
			Quantity:           lot.Quantity,
			NonExpiredQuantity: lot.NonExpiredQuantity,
			ExpiredQuantity:    lot.ExpiredQuantity,
			DaysUntilExpiry:    days,
			Level:              level,
			Action:             action,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Level == LevelCritical && entries[j].Level != LevelCritical
	})
	return entries
}
