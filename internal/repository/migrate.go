package repository

import (
	"log"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date. On PostgreSQL it also installs
// the exclusion constraint that rejects overlapping active bookings at
// the database level; application checks run first, this is the backstop
// for concurrent writers.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&homestayModel{},
		&roomModel{},
		&planModel{},
		&subscriptionModel{},
		&bookingModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		log.Printf("migrate btree_gist_unavailable err=%v", err)
		return nil
	}
	return db.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT idx_no_overbooking
				EXCLUDE USING gist (
					room_id WITH =,
					daterange(start_date::date, end_date::date) WITH &&
				)
				WHERE (status IN ('tentative', 'confirmed', 'checked_in'));
		EXCEPTION
			WHEN duplicate_table THEN NULL;
			WHEN duplicate_object THEN NULL;
		END $$;
	`).Error
}
