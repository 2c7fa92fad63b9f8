package dto

import (
	"time"

	"github.com/garageworks/appointment-service/internal/models"
)

type AppointmentResponse struct {
	ID        uint                     `json:"id"`
	Reference string                   `json:"reference"`
	UserID    string                   `json:"user_id"`
	VehicleID uint                     `json:"vehicle_id"`
	ServiceID uint                     `json:"service_id"`
	StartTime time.Time                `json:"start_time"`
	EndTime   time.Time                `json:"end_time"`
	Status    models.AppointmentStatus `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToAppointmentResponse(a *models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		Reference: a.Reference,
		UserID:    a.UserID,
		VehicleID: a.VehicleID,
		ServiceID: a.ServiceID,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}
