package database

import (
	"spotly/internal/reservations"
	"spotly/internal/spots"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&spots.Spot{},
		&spots.Slot{},
		&reservations.Ticket{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
