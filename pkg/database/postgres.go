package database

import (
	"github.com/garageworks/appointment-service/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string, logger zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.AutoMigrate(&models.Service{}, &models.Vehicle{}, &models.Appointment{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}

	// Exclusion constraint: no two slot-occupying appointments may hold
	// overlapping windows. This is the actual double-booking guarantee; the
	// in-transaction pre-check only exists for a fast, friendly rejection.
	// Running without it would silently downgrade to the advisory check,
	// so any failure here is fatal.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		logger.Fatal().Err(err).Msg("failed to create btree_gist extension")
	}
	if err := db.Exec(`ALTER TABLE appointments DROP CONSTRAINT IF EXISTS appointments_no_overlap`).Error; err != nil {
		logger.Fatal().Err(err).Msg("failed to drop overlap constraint")
	}
	err = db.Exec(`
		ALTER TABLE appointments ADD CONSTRAINT appointments_no_overlap
		EXCLUDE USING gist (tstzrange(start_time, end_time) WITH &&)
		WHERE (status IN ('pending', 'confirmed', 'in_progress'))
	`).Error
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create overlap constraint")
	}

	return db
}
