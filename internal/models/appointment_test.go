package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to AppointmentStatus }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCancelled},
		{StatusInProgress, StatusCompleted},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}

	denied := []struct{ from, to AppointmentStatus }{
		{StatusPending, StatusInProgress},
		{StatusPending, StatusCompleted},
		{StatusInProgress, StatusCancelled},
		{StatusCompleted, StatusPending},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusConfirmed},
		{StatusConfirmed, StatusPending},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}
}

func TestUserActionable(t *testing.T) {
	assert.True(t, StatusPending.UserActionable())
	assert.True(t, StatusConfirmed.UserActionable())
	assert.False(t, StatusInProgress.UserActionable())
	assert.False(t, StatusCompleted.UserActionable())
	assert.False(t, StatusCancelled.UserActionable())
}

func TestBlockingStatuses(t *testing.T) {
	// An appointment being worked on still occupies its slot.
	assert.Contains(t, BlockingStatuses, StatusInProgress)
	assert.NotContains(t, BlockingStatuses, StatusCompleted)
	assert.NotContains(t, BlockingStatuses, StatusCancelled)
}
