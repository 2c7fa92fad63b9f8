package repository

import (
	"context"

	"github.com/garageworks/appointment-service/internal/models"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Service, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Service, error)
	FindAll(ctx context.Context) ([]models.Service, error)
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) FindByID(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// FindByIDForUpdate acquires a row-level lock on the service within the given
// transaction, serializing concurrent booking attempts for that service.
func (r *serviceRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Service, error) {
	var svc models.Service
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) FindAll(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}
