package schedule

import (
	"fmt"
	"time"
)

// DefaultDurationMinutes applies when availability is requested without
// a specific service.
const DefaultDurationMinutes = 60

// Slot is an ephemeral bookable window. Slots are regenerated on every
// request and never persisted.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Generator enumerates candidate slots for a date and service duration.
type Generator struct {
	cal   Calendar
	clock Clock
}

func NewGenerator(cal Calendar, clock Clock) *Generator {
	return &Generator{cal: cal, clock: clock}
}

// Slots returns the candidate slots for the given date, ascending by start
// time. The step is min(calendar step, service duration) so that short
// services never skip availability. Only strictly future starts are
// produced, and no slot extends past closing.
func (g *Generator) Slots(date time.Time, durationMinutes int) []Slot {
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}
	if !g.cal.IsWorkingDay(date) {
		return nil
	}

	step := time.Duration(g.cal.StepMinutes) * time.Minute
	duration := time.Duration(durationMinutes) * time.Minute
	if duration < step {
		step = duration
	}

	now := g.clock.Now()
	open, close := g.cal.DayBounds(date)

	var slots []Slot
	for start := open; !start.Add(duration).After(close); start = start.Add(step) {
		if !start.After(now) {
			continue
		}
		end := start.Add(duration)
		slots = append(slots, Slot{
			Start: start,
			End:   end,
			Label: fmt.Sprintf("%s - %s", start.Format("15:04"), end.Format("15:04")),
		})
	}
	return slots
}
