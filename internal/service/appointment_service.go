package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garageworks/appointment-service/internal/models"
	"github.com/garageworks/appointment-service/internal/repository"
	"github.com/garageworks/appointment-service/internal/schedule"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound     = errors.New("service not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotOwner            = errors.New("appointment does not belong to this user")
	ErrSlotUnavailable     = errors.New("slot is no longer available")
	ErrInvalidStart        = errors.New("start time must be in the future")
	ErrOutsideHours        = errors.New("requested time is outside business hours")
	ErrTooLateToCancel     = errors.New("appointment is too close to its start time to cancel")
	ErrNotCancellable      = errors.New("appointment can no longer be cancelled")
	ErrNotReschedulable    = errors.New("appointment can no longer be rescheduled")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

// Notifier receives appointment lifecycle events. Implementations are
// best-effort: the booking path never waits on them.
type Notifier interface {
	AppointmentBooked(ctx context.Context, appt *models.Appointment, svc *models.Service, vehicle *models.Vehicle)
	AppointmentCancelled(ctx context.Context, appt *models.Appointment)
	AppointmentRescheduled(ctx context.Context, appt *models.Appointment)
}

type AppointmentService interface {
	AvailableSlots(ctx context.Context, date time.Time, serviceID uint) ([]schedule.Slot, error)
	Create(ctx context.Context, userID string, vehicleID, serviceID uint, start time.Time) (*models.Appointment, error)
	Cancel(ctx context.Context, id uint, userID string) (*models.Appointment, error)
	Reschedule(ctx context.Context, id uint, userID string, newStart time.Time) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status models.AppointmentStatus) (*models.Appointment, error)
	Get(ctx context.Context, id uint, userID string) (*models.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)
}

type appointmentService struct {
	appointments repository.AppointmentRepository
	services     repository.ServiceRepository
	vehicles     repository.VehicleRepository
	cal          schedule.Calendar
	loc          *time.Location
	clock        schedule.Clock
	generator    *schedule.Generator
	notifier     Notifier
	cancelNotice time.Duration
	logger       zerolog.Logger
}

func NewAppointmentService(
	appointments repository.AppointmentRepository,
	services repository.ServiceRepository,
	vehicles repository.VehicleRepository,
	cal schedule.Calendar,
	loc *time.Location,
	clock schedule.Clock,
	notifier Notifier,
	cancelNotice time.Duration,
	logger zerolog.Logger,
) AppointmentService {
	return &appointmentService{
		appointments: appointments,
		services:     services,
		vehicles:     vehicles,
		cal:          cal,
		loc:          loc,
		clock:        clock,
		generator:    schedule.NewGenerator(cal, clock),
		notifier:     notifier,
		cancelNotice: cancelNotice,
		logger:       logger,
	}
}

// AvailableSlots lists the bookable slots for a date. The result is advisory:
// the conflict check runs again inside the booking transaction.
func (s *appointmentService) AvailableSlots(ctx context.Context, date time.Time, serviceID uint) ([]schedule.Slot, error) {
	date = date.In(s.loc)
	duration := schedule.DefaultDurationMinutes
	if serviceID != 0 {
		svc, err := s.services.FindByID(ctx, serviceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrServiceNotFound
			}
			return nil, fmt.Errorf("find service: %w", err)
		}
		duration = svc.DurationMinutes
	}

	candidates := s.generator.Slots(date, duration)
	if len(candidates) == 0 {
		return []schedule.Slot{}, nil
	}

	open, close := s.cal.DayBounds(date)
	busy, err := s.appointments.FindBlockingInRange(ctx, s.appointments.GetDB(), open, close, 0)
	if err != nil {
		return nil, fmt.Errorf("load day appointments: %w", err)
	}

	return schedule.FilterAvailable(candidates, windows(busy)), nil
}

func (s *appointmentService) Create(ctx context.Context, userID string, vehicleID, serviceID uint, start time.Time) (*models.Appointment, error) {
	var (
		result  *models.Appointment
		svcRow  *models.Service
		vehicle *models.Vehicle
	)

	err := s.appointments.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the service row to serialize concurrent booking attempts
		svc, err := s.services.FindByIDForUpdate(ctx, tx, serviceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("lock service: %w", err)
		}

		// 2. A vehicle owned by someone else looks the same as a missing one
		veh, err := s.vehicles.FindByID(ctx, vehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVehicleNotFound
			}
			return fmt.Errorf("find vehicle: %w", err)
		}
		if veh.OwnerID != userID {
			return ErrVehicleNotFound
		}

		// 3. Calendar checks
		end, err := s.bookableWindow(start, svc.DurationMinutes)
		if err != nil {
			return err
		}

		// 4. Conflict check against the freshest data
		if err := s.checkConflict(ctx, tx, start, end, 0); err != nil {
			return err
		}

		// 5. Persist in pending
		appt := &models.Appointment{
			Reference: uuid.New().String(),
			UserID:    userID,
			VehicleID: vehicleID,
			ServiceID: serviceID,
			StartTime: start,
			EndTime:   end,
			Status:    models.StatusPending,
		}
		if err := s.appointments.Create(ctx, tx, appt); err != nil {
			if isWindowTaken(err) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("create appointment: %w", err)
		}

		result, svcRow, vehicle = appt, svc, veh
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint("appointment_id", result.ID).
		Str("reference", result.Reference).
		Str("user_id", userID).
		Time("start_time", start).
		Msg("appointment created")

	go s.notifier.AppointmentBooked(context.WithoutCancel(ctx), result, svcRow, vehicle)

	return result, nil
}

func (s *appointmentService) Cancel(ctx context.Context, id uint, userID string) (*models.Appointment, error) {
	var result *models.Appointment

	err := s.appointments.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appt, err := s.fetchOwned(ctx, tx, id, userID)
		if err != nil {
			return err
		}
		if !appt.Status.UserActionable() {
			return ErrNotCancellable
		}
		if appt.StartTime.Sub(s.clock.Now()) < s.cancelNotice {
			return ErrTooLateToCancel
		}

		if err := s.appointments.UpdateStatus(ctx, tx, appt.ID, models.StatusCancelled); err != nil {
			return fmt.Errorf("cancel appointment: %w", err)
		}
		appt.Status = models.StatusCancelled
		result = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint("appointment_id", result.ID).
		Str("user_id", userID).
		Msg("appointment cancelled")

	go s.notifier.AppointmentCancelled(context.WithoutCancel(ctx), result)

	return result, nil
}

func (s *appointmentService) Reschedule(ctx context.Context, id uint, userID string, newStart time.Time) (*models.Appointment, error) {
	var result *models.Appointment

	err := s.appointments.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appt, err := s.fetchOwned(ctx, tx, id, userID)
		if err != nil {
			return err
		}
		if !appt.Status.UserActionable() {
			return ErrNotReschedulable
		}

		svc, err := s.services.FindByIDForUpdate(ctx, tx, appt.ServiceID)
		if err != nil {
			return fmt.Errorf("lock service: %w", err)
		}

		end, err := s.bookableWindow(newStart, svc.DurationMinutes)
		if err != nil {
			return err
		}

		// Exclude the appointment's own row: moving to (or keeping) the
		// current slot must not self-collide.
		if err := s.checkConflict(ctx, tx, newStart, end, appt.ID); err != nil {
			return err
		}

		// Back to pending so staff re-confirm the new time.
		if err := s.appointments.UpdateSchedule(ctx, tx, appt.ID, newStart, end, models.StatusPending); err != nil {
			if isWindowTaken(err) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("reschedule appointment: %w", err)
		}
		appt.StartTime, appt.EndTime, appt.Status = newStart, end, models.StatusPending
		result = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint("appointment_id", result.ID).
		Str("user_id", userID).
		Time("start_time", newStart).
		Msg("appointment rescheduled")

	go s.notifier.AppointmentRescheduled(context.WithoutCancel(ctx), result)

	return result, nil
}

// UpdateStatus is the staff-driven transition hook (confirm, start work,
// complete, staff cancel). It bypasses the cancellation notice window.
func (s *appointmentService) UpdateStatus(ctx context.Context, id uint, status models.AppointmentStatus) (*models.Appointment, error) {
	var result *models.Appointment

	err := s.appointments.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appt, err := s.appointments.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("find appointment: %w", err)
		}
		if !models.CanTransition(appt.Status, status) {
			return ErrInvalidTransition
		}
		if err := s.appointments.UpdateStatus(ctx, tx, appt.ID, status); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		appt.Status = status
		result = appt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *appointmentService) Get(ctx context.Context, id uint, userID string) (*models.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	if appt.UserID != userID {
		return nil, ErrNotOwner
	}
	return appt, nil
}

func (s *appointmentService) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return s.appointments.FindByUser(ctx, userID)
}

// fetchOwned loads the appointment FOR UPDATE so that a concurrent staff
// transition cannot interleave with a user cancel or reschedule.
func (s *appointmentService) fetchOwned(ctx context.Context, tx *gorm.DB, id uint, userID string) (*models.Appointment, error) {
	appt, err := s.appointments.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	if appt.UserID != userID {
		return nil, ErrNotOwner
	}
	return appt, nil
}

// bookableWindow validates the requested start against the clock and the
// business calendar, returning the appointment end time. The start is
// normalized to the shop's timezone first: calendar hours are shop hours,
// not whatever offset the client sent the timestamp in.
func (s *appointmentService) bookableWindow(start time.Time, durationMinutes int) (time.Time, error) {
	start = start.In(s.loc)
	if !start.After(s.clock.Now()) {
		return time.Time{}, ErrInvalidStart
	}
	if !s.cal.IsWorkingDay(start) {
		return time.Time{}, ErrOutsideHours
	}
	open, close := s.cal.DayBounds(start)
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	if start.Before(open) || end.After(close) {
		return time.Time{}, ErrOutsideHours
	}
	return end, nil
}

func (s *appointmentService) checkConflict(ctx context.Context, tx *gorm.DB, start, end time.Time, excludeID uint) error {
	busy, err := s.appointments.FindBlockingInRange(ctx, tx, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("find conflicts: %w", err)
	}
	if c := schedule.FindConflict(start, end, windows(busy)); c != nil {
		s.logger.Debug().
			Uint("conflicting_id", c.ID).
			Time("start_time", start).
			Msg("slot conflict")
		return ErrSlotUnavailable
	}
	return nil
}

func windows(appts []models.Appointment) []schedule.Window {
	w := make([]schedule.Window, len(appts))
	for i, a := range appts {
		w[i] = schedule.Window{ID: a.ID, Start: a.StartTime, End: a.EndTime}
	}
	return w
}

// isWindowTaken recognizes the database constraint rejecting an overlapping
// active window: 23P01 is an exclusion violation, 23505 a unique violation.
// Either means the slot was taken between the pre-check and the write.
func isWindowTaken(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}
