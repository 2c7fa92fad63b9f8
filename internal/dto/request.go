package dto

import "time"

type CreateAppointmentRequest struct {
	UserID    string    `json:"user_id" validate:"required"`
	VehicleID uint      `json:"vehicle_id" validate:"required"`
	ServiceID uint      `json:"service_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
}

type CancelAppointmentRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type RescheduleAppointmentRequest struct {
	UserID    string    `json:"user_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed in_progress completed cancelled"`
}
