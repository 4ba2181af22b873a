// Package types defines the capability contract shared by thread pools and
// the parallel range iterator
package types

import (
	"time"
)

// NotAWorker is returned by ThreadPool.ThreadID when the caller is not one of
// the pool's own workers
const NotAWorker = -1

// ThreadPool defines the capability contract the parallel range iterator drives
type ThreadPool interface {
	// Schedule enqueues a task for execution by one of the pool's workers
	Schedule(task func())

	// NumThreads returns the fixed number of workers
	NumThreads() int

	// ThreadID returns the calling goroutine's logical worker index in
	// [0, NumThreads()), or NotAWorker
	ThreadID() int
}

// ThreadPoolStats defines basic statistics for thread pools
type ThreadPoolStats struct {
	// NumThreads is the fixed number of workers
	NumThreads int

	// BusyWorkers is the number of workers currently running a task
	BusyWorkers int

	// QueueLength is the number of tasks waiting in the queue
	QueueLength int

	// TotalScheduled is the number of tasks ever scheduled
	TotalScheduled int64

	// TotalCompleted is the number of tasks that ran to completion or panicked
	TotalCompleted int64

	// TotalPanicked is the number of tasks that panicked
	TotalPanicked int64

	// BusyTime is the accumulated task execution time across all workers
	BusyTime time.Duration
}

// Pending returns the number of tasks scheduled but not yet finished
func (s ThreadPoolStats) Pending() int64 {
	return s.TotalScheduled - s.TotalCompleted
}
