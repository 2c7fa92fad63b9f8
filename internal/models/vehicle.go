package models

import "time"

// Vehicle belongs to a customer. The scheduler only reads vehicles to
// verify ownership and enrich notifications.
type Vehicle struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     string    `gorm:"not null;index" json:"owner_id"`
	Plate       string    `gorm:"not null" json:"plate"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
