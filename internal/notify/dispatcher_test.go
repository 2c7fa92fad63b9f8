package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garageworks/appointment-service/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	routingKeys []string
	payloads    []any
	err         error
}

func (f *fakePublisher) Publish(routingKey string, payload any) error {
	f.routingKeys = append(f.routingKeys, routingKey)
	f.payloads = append(f.payloads, payload)
	return f.err
}

func testAppointment() *models.Appointment {
	return &models.Appointment{
		ID:        42,
		Reference: "ref-42",
		UserID:    "user-1",
		StartTime: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
		Status:    models.StatusPending,
	}
}

func TestAppointmentBooked_PublishesConfirmation(t *testing.T) {
	pub := &fakePublisher{}
	d := NewDispatcher(pub, zerolog.Nop())

	svc := &models.Service{ID: 2, Name: "Oil Change", DurationMinutes: 60, Price: 49.90}
	vehicle := &models.Vehicle{ID: 3, OwnerID: "user-1", Plate: "AB-123-CD", Description: "grey hatchback"}

	d.AppointmentBooked(context.Background(), testAppointment(), svc, vehicle)

	require.Len(t, pub.routingKeys, 1)
	assert.Equal(t, "appointment.created", pub.routingKeys[0])

	notif, ok := pub.payloads[0].(BookingNotification)
	require.True(t, ok)
	assert.Equal(t, uint(42), notif.AppointmentID)
	assert.Equal(t, "ref-42", notif.Reference)
	assert.Equal(t, "user-1", notif.UserID)
	assert.Equal(t, "Oil Change", notif.ServiceName)
	assert.Equal(t, "AB-123-CD", notif.VehiclePlate)
	assert.Equal(t, "2026-09-07T10:00:00Z", notif.StartTime)
	assert.Equal(t, 60, notif.DurationMinutes)
	assert.Equal(t, 49.90, notif.Price)
}

func TestAppointmentCancelled_PublishesChange(t *testing.T) {
	pub := &fakePublisher{}
	d := NewDispatcher(pub, zerolog.Nop())

	appt := testAppointment()
	appt.Status = models.StatusCancelled
	d.AppointmentCancelled(context.Background(), appt)

	require.Len(t, pub.routingKeys, 1)
	assert.Equal(t, "appointment.cancelled", pub.routingKeys[0])

	notif, ok := pub.payloads[0].(ChangeNotification)
	require.True(t, ok)
	assert.Equal(t, "cancelled", notif.Status)
	assert.Equal(t, "2026-09-07T10:00:00Z", notif.StartTime)
}

func TestAppointmentRescheduled_PublishesChange(t *testing.T) {
	pub := &fakePublisher{}
	d := NewDispatcher(pub, zerolog.Nop())

	d.AppointmentRescheduled(context.Background(), testAppointment())

	require.Len(t, pub.routingKeys, 1)
	assert.Equal(t, "appointment.rescheduled", pub.routingKeys[0])
}

func TestDispatcher_PublishFailureIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker unreachable")}
	d := NewDispatcher(pub, zerolog.Nop())

	assert.NotPanics(t, func() {
		d.AppointmentCancelled(context.Background(), testAppointment())
	})
	assert.Len(t, pub.routingKeys, 1)
}
