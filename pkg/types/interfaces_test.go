package types

import (
	"testing"
	"time"
)

func TestThreadPoolStats_Pending(t *testing.T) {
	tests := []struct {
		name     string
		stats    ThreadPoolStats
		expected int64
	}{
		{"Empty", ThreadPoolStats{}, 0},
		{"All Done", ThreadPoolStats{TotalScheduled: 10, TotalCompleted: 10}, 0},
		{"In Flight", ThreadPoolStats{TotalScheduled: 10, TotalCompleted: 4, TotalPanicked: 1}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.Pending(); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestRealClock(t *testing.T) {
	clock := NewRealClock()

	start := clock.Now()
	time.Sleep(time.Millisecond)

	if elapsed := clock.Since(start); elapsed < time.Millisecond {
		t.Errorf("expected at least 1ms elapsed, got %v", elapsed)
	}
}
