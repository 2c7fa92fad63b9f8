package schedule

import "time"

// Window is an occupied time range considered when checking availability.
type Window struct {
	ID    uint
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the half-open windows [aStart, aEnd) and
// [bStart, bEnd) intersect. Windows that merely touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aEnd.After(bStart) && aStart.Before(bEnd)
}

// FindConflict returns the first busy window overlapping [start, end),
// or nil when the candidate window is free.
func FindConflict(start, end time.Time, busy []Window) *Window {
	for i := range busy {
		if Overlaps(start, end, busy[i].Start, busy[i].End) {
			return &busy[i]
		}
	}
	return nil
}

// FilterAvailable drops candidate slots that overlap any busy window.
func FilterAvailable(slots []Slot, busy []Window) []Slot {
	available := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if FindConflict(s.Start, s.End, busy) == nil {
			available = append(available, s)
		}
	}
	return available
}
