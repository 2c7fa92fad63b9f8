package schedule

import "time"

// Calendar defines the shop's operating hours and slot granularity.
// The shop is closed on weekends; holidays are out of scope.
type Calendar struct {
	OpenHour    int
	CloseHour   int
	StepMinutes int
}

// Default returns the standard Mon-Fri 09:00-17:00 calendar with
// 30-minute slot granularity.
func Default() Calendar {
	return Calendar{OpenHour: 9, CloseHour: 17, StepMinutes: 30}
}

// IsWorkingDay reports whether the shop is open on the given date.
func (c Calendar) IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// DayBounds returns the opening and closing instants of the given date,
// in the date's location.
func (c Calendar) DayBounds(t time.Time) (open, close time.Time) {
	open = time.Date(t.Year(), t.Month(), t.Day(), c.OpenHour, 0, 0, 0, t.Location())
	close = time.Date(t.Year(), t.Month(), t.Day(), c.CloseHour, 0, 0, 0, t.Location())
	return open, close
}
