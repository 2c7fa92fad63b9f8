package notify

import (
	"context"
	"time"

	"github.com/garageworks/appointment-service/internal/models"
	"github.com/rs/zerolog"
)

// Publisher delivers a payload to the message broker.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// Dispatcher publishes appointment lifecycle notifications. Delivery is
// best-effort: publish failures are logged and never reach the booking path.
type Dispatcher struct {
	publisher Publisher
	logger    zerolog.Logger
}

func NewDispatcher(publisher Publisher, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{publisher: publisher, logger: logger}
}

// BookingNotification is the confirmation payload sent after a successful booking.
type BookingNotification struct {
	AppointmentID   uint    `json:"appointment_id"`
	Reference       string  `json:"reference"`
	UserID          string  `json:"user_id"`
	ServiceName     string  `json:"service_name"`
	VehiclePlate    string  `json:"vehicle_plate"`
	VehicleInfo     string  `json:"vehicle_info,omitempty"`
	StartTime       string  `json:"start_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

// ChangeNotification covers cancellations and reschedules.
type ChangeNotification struct {
	AppointmentID uint   `json:"appointment_id"`
	Reference     string `json:"reference"`
	UserID        string `json:"user_id"`
	Status        string `json:"status"`
	StartTime     string `json:"start_time"`
}

func (d *Dispatcher) AppointmentBooked(_ context.Context, appt *models.Appointment, svc *models.Service, vehicle *models.Vehicle) {
	d.publish("appointment.created", BookingNotification{
		AppointmentID:   appt.ID,
		Reference:       appt.Reference,
		UserID:          appt.UserID,
		ServiceName:     svc.Name,
		VehiclePlate:    vehicle.Plate,
		VehicleInfo:     vehicle.Description,
		StartTime:       appt.StartTime.Format(time.RFC3339),
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
	})
}

func (d *Dispatcher) AppointmentCancelled(_ context.Context, appt *models.Appointment) {
	d.publish("appointment.cancelled", changeNotification(appt))
}

func (d *Dispatcher) AppointmentRescheduled(_ context.Context, appt *models.Appointment) {
	d.publish("appointment.rescheduled", changeNotification(appt))
}

func changeNotification(appt *models.Appointment) ChangeNotification {
	return ChangeNotification{
		AppointmentID: appt.ID,
		Reference:     appt.Reference,
		UserID:        appt.UserID,
		Status:        string(appt.Status),
		StartTime:     appt.StartTime.Format(time.RFC3339),
	}
}

func (d *Dispatcher) publish(routingKey string, payload any) {
	if err := d.publisher.Publish(routingKey, payload); err != nil {
		d.logger.Error().
			Err(err).
			Str("routing_key", routingKey).
			Msg("notification publish failed")
	}
}
