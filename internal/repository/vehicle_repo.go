package repository

import (
	"context"

	"github.com/garageworks/appointment-service/internal/models"
	"gorm.io/gorm"
)

type VehicleRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Vehicle, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}
