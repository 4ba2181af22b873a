package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalOverlaps(t *testing.T) {
	base := time.Unix(0, 0)
	at := func(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

	tests := []struct {
		name     string
		a, b     Interval
		expected bool
	}{
		{"disjoint", Interval{at(0), at(10)}, Interval{at(20), at(30)}, false},
		{"touching", Interval{at(0), at(10)}, Interval{at(10), at(20)}, false},
		{"partial", Interval{at(0), at(15)}, Interval{at(10), at(20)}, true},
		{"contained", Interval{at(0), at(30)}, Interval{at(10), at(20)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a))
		})
	}

	assert.True(t, AnyOverlap([]Interval{{at(0), at(5)}, {at(6), at(9)}, {at(8), at(12)}}))
	assert.False(t, AnyOverlap([]Interval{{at(0), at(5)}, {at(6), at(9)}}))
}

func TestMockClockWrapper(t *testing.T) {
	clock := NewClockWrapper(NewMockClock(t))

	start := clock.Now()
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	clock.Advance(ctx, 3*time.Second)

	assert.Equal(t, 3*time.Second, clock.Since(start))
}

func TestRunWithTimeout(t *testing.T) {
	ran := false
	assert.True(t, RunWithTimeout(t, DefaultTimeout, func() { ran = true }))
	assert.True(t, ran)
}
