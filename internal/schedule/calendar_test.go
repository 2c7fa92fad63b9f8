package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsWorkingDay(t *testing.T) {
	cal := Default()

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Monday, monday.Weekday())

	for d := 0; d < 5; d++ {
		assert.True(t, cal.IsWorkingDay(monday.AddDate(0, 0, d)), "weekday %d", d)
	}
	saturday := monday.AddDate(0, 0, 5)
	sunday := monday.AddDate(0, 0, 6)
	assert.False(t, cal.IsWorkingDay(saturday))
	assert.False(t, cal.IsWorkingDay(sunday))
}

func TestDayBounds(t *testing.T) {
	cal := Default()
	date := time.Date(2026, 9, 7, 14, 23, 0, 0, time.UTC)

	open, close := cal.DayBounds(date)

	assert.Equal(t, time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC), open)
	assert.Equal(t, time.Date(2026, 9, 7, 17, 0, 0, 0, time.UTC), close)
}

func TestDayBoundsKeepsLocation(t *testing.T) {
	cal := Default()
	loc := time.FixedZone("UTC+7", 7*3600)
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)

	open, _ := cal.DayBounds(date)

	assert.Equal(t, loc, open.Location())
	assert.Equal(t, 9, open.Hour())
}
