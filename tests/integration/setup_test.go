//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/garageworks/appointment-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "appointment_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	testDB.Exec("DROP TABLE IF EXISTS appointments")
	testDB.Exec("DROP TABLE IF EXISTS vehicles")
	testDB.Exec("DROP TABLE IF EXISTS services")

	if err := testDB.AutoMigrate(&models.Service{}, &models.Vehicle{}, &models.Appointment{}); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	if err := testDB.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}
	err = testDB.Exec(`
		ALTER TABLE appointments
		ADD CONSTRAINT appointments_no_overlap
		EXCLUDE USING gist (tstzrange(start_time, end_time) WITH &&)
		WHERE (status IN ('pending', 'confirmed', 'in_progress'))
	`).Error
	if err != nil {
		log.Fatalf("failed to create overlap constraint: %v", err)
	}

	code := m.Run()

	testDB.Exec("DROP TABLE IF EXISTS appointments")
	testDB.Exec("DROP TABLE IF EXISTS vehicles")
	testDB.Exec("DROP TABLE IF EXISTS services")

	os.Exit(code)
}

func cleanTables() {
	testDB.Exec("DELETE FROM appointments")
	testDB.Exec("DELETE FROM vehicles")
	testDB.Exec("DELETE FROM services")
	testDB.Exec("ALTER SEQUENCE IF EXISTS services_id_seq RESTART WITH 1")
	testDB.Exec("ALTER SEQUENCE IF EXISTS vehicles_id_seq RESTART WITH 1")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
