// Package testutils provides simplified testing utilities and helper functions
package testutils

import (
	"sync"
	"testing"
	"time"
)

// DefaultTimeout bounds any blocking call made by a test so a deadlock fails
// the test instead of hanging the suite
const DefaultTimeout = 5 * time.Second

// RunWithTimeout runs fn on its own goroutine and fails the test if it has
// not returned within timeout. It returns whether fn completed.
func RunWithTimeout(t testing.TB, timeout time.Duration, fn func()) bool {
	t.Helper()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		t.Errorf("operation did not complete within %v", timeout)
		return false
	}
}

// WaitTimeout waits for wg and fails the test if it takes longer than timeout
func WaitTimeout(t testing.TB, wg *sync.WaitGroup, timeout time.Duration) bool {
	t.Helper()
	return RunWithTimeout(t, timeout, wg.Wait)
}

// Interval is a closed wall-clock interval recorded by a test task
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two intervals share any instant
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// AnyOverlap reports whether at least two of the intervals overlap
func AnyOverlap(intervals []Interval) bool {
	for a := 0; a < len(intervals); a++ {
		for b := a + 1; b < len(intervals); b++ {
			if intervals[a].Overlaps(intervals[b]) {
				return true
			}
		}
	}
	return false
}
