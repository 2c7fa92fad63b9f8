package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"partial front", at(9, 30), at(10, 30), at(10, 0), at(11, 0), true},
		{"partial back", at(10, 30), at(11, 30), at(10, 0), at(11, 0), true},
		{"contained", at(10, 15), at(10, 45), at(10, 0), at(11, 0), true},
		{"touching before", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"touching after", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"disjoint", at(13, 0), at(14, 0), at(10, 0), at(11, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestFindConflict(t *testing.T) {
	busy := []Window{
		{ID: 7, Start: at(10, 0), End: at(11, 0)},
		{ID: 8, Start: at(14, 0), End: at(15, 0)},
	}

	c := FindConflict(at(10, 30), at(11, 30), busy)
	require.NotNil(t, c)
	assert.Equal(t, uint(7), c.ID)

	assert.Nil(t, FindConflict(at(11, 0), at(12, 0), busy))
}

func TestFilterAvailable(t *testing.T) {
	// A confirmed 10:00-11:00 appointment removes the 09:30, 10:00 and
	// 10:30 candidates under 30-minute stepping.
	gen := NewGenerator(Default(), FixedClock(at(8, 0)))
	busy := []Window{{ID: 1, Start: at(10, 0), End: at(11, 0)}}

	available := FilterAvailable(gen.Slots(monday, 60), busy)

	starts := make([]time.Time, len(available))
	for i, s := range available {
		starts[i] = s.Start
	}
	assert.NotContains(t, starts, at(9, 30))
	assert.NotContains(t, starts, at(10, 0))
	assert.NotContains(t, starts, at(10, 30))
	assert.Contains(t, starts, at(9, 0))
	assert.Contains(t, starts, at(11, 0))
	assert.Len(t, available, 12)
}
