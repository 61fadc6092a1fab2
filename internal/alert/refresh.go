package alert

import (
	"time"

	"gorm.io/gorm"
)

// RefreshExpirySplit re-derives the expired/non-expired split of every lot
// whose expiry boundary "now" has crossed since the split was last written.
// It keeps the invariant non_expired + expired == quantity without reads
// having to recompute it. Returns the number of lots touched.
func RefreshExpirySplit(db *gorm.DB, now time.Time) (int64, error) {
	expired := db.Exec(`
		UPDATE inventory_lots
		SET expired_quantity = quantity, non_expired_quantity = 0, updated_at = ?
		WHERE expiry_date IS NOT NULL AND expiry_date <= ? AND expired_quantity <> quantity`,
		now, now)
	if expired.Error != nil {
		return 0, expired.Error
	}

	fresh := db.Exec(`
		UPDATE inventory_lots
		SET non_expired_quantity = quantity, expired_quantity = 0, updated_at = ?
		WHERE (expiry_date IS NULL OR expiry_date > ?) AND non_expired_quantity <> quantity`,
		now, now)
	if fresh.Error != nil {
		return 0, fresh.Error
	}

	return expired.RowsAffected + fresh.RowsAffected, nil
}
