package models

import "time"

// Service is a catalog entry mirrored from the catalog service. Duration
// and price are treated as immutable during a booking transaction.
type Service struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Price           float64   `gorm:"not null" json:"price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
