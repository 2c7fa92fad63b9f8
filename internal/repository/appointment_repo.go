package repository

import (
	"context"
	"time"

	"github.com/garageworks/appointment-service/internal/models"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, appt *models.Appointment) error
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Appointment, error)
	FindByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	FindBlockingInRange(ctx context.Context, tx *gorm.DB, from, to time.Time, excludeID uint) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.AppointmentStatus) error
	UpdateSchedule(ctx context.Context, tx *gorm.DB, id uint, start, end time.Time, status models.AppointmentStatus) error
	GetDB() *gorm.DB
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *appointmentRepository) Create(ctx context.Context, tx *gorm.DB, appt *models.Appointment) error {
	return tx.WithContext(ctx).Create(appt).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.db.WithContext(ctx).First(&appt, id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// FindByIDForUpdate locks the appointment row for the length of the
// transaction, serializing user cancels/reschedules against staff
// status transitions.
func (r *appointmentRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&appt, id).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) FindByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

// FindBlockingInRange returns the slot-occupying appointments whose windows
// intersect [from, to). Pass a non-zero excludeID to leave out an
// appointment's own row when rescheduling it.
func (r *appointmentRepository) FindBlockingInRange(ctx context.Context, tx *gorm.DB, from, to time.Time, excludeID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	q := tx.WithContext(ctx).
		Where("status IN ?", models.BlockingStatuses).
		Where("end_time > ? AND start_time < ?", from, to)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Order("start_time ASC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.AppointmentStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) UpdateSchedule(ctx context.Context, tx *gorm.DB, id uint, start, end time.Time, status models.AppointmentStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"start_time": start,
			"end_time":   end,
			"status":     status,
		}).Error
}
