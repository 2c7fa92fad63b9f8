package schedule

import "time"

// Clock abstracts the current time so slot filtering and cancellation
// windows can be tested against a frozen instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// FixedClock is a Clock that always reports the same instant.
type FixedClock time.Time

func (f FixedClock) Now() time.Time { return time.Time(f) }
