package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the indexes the allocation and redemption paths rely on.
// The statements are valid on both PostgreSQL and SQLite.
func MigrateConstraints(db *gorm.DB) error {
	// Slot selection scans only slots that still have capacity, in start order
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_slots_open_by_start
		ON slots (spot_id, start_time, id)
		WHERE capacity_remaining > 0;
	`).Error
	if err != nil {
		return err
	}

	// Serial numbers are unique within a slot
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_tickets_slot_serial
		ON tickets (slot_id, serial_number);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
