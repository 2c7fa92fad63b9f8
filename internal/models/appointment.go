package models

import "time"

type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// BlockingStatuses are the statuses that occupy a time window. A vehicle
// being worked on still holds its slot.
var BlockingStatuses = []AppointmentStatus{StatusPending, StatusConfirmed, StatusInProgress}

// allowedTransitions is the staff-driven forward path plus cancellation.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether an appointment may move between the two statuses.
func CanTransition(from, to AppointmentStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// UserActionable reports whether the user-facing cancel and reschedule
// operations may still act on an appointment in this status.
func (s AppointmentStatus) UserActionable() bool {
	return s == StatusPending || s == StatusConfirmed
}

type Appointment struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Reference string            `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	UserID    string            `gorm:"not null;index" json:"user_id"`
	VehicleID uint              `gorm:"not null" json:"vehicle_id"`
	ServiceID uint              `gorm:"not null" json:"service_id"`
	StartTime time.Time         `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time         `gorm:"not null" json:"end_time"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}
