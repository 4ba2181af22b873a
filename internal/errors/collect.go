// Package errors provides panic capture and per-chunk error collection for
// tasks running on a thread pool
package errors

import (
	"runtime"
	"sync/atomic"

	"github.com/Mibu287/mini-openmp/pkg/types"
)

// maxStackSize bounds the stack captured for a recovered panic
const maxStackSize = 4096

// FromPanic converts a value returned by recover into a TaskPanicError.
// It must be called from the deferred function that recovered, so the
// captured stack still contains the panicking frames.
func FromPanic(value interface{}, workerID, chunk int) *types.TaskPanicError {
	var buf [maxStackSize]byte
	n := runtime.Stack(buf[:], false)

	stack := make([]byte, n)
	copy(stack, buf[:n])

	return &types.TaskPanicError{
		WorkerID: workerID,
		Chunk:    chunk,
		Value:    value,
		Stack:    stack,
	}
}

// Collector keeps at most one error per slot. Each slot must be written by a
// single goroutine, and Err must only be called once every writer has
// finished and that completion has been synchronized with the reader.
type Collector struct {
	errs   []error
	failed int64
}

// NewCollector creates a collector with the given number of slots
func NewCollector(slots int) *Collector {
	return &Collector{errs: make([]error, slots)}
}

// Record stores err in slot; the first non-nil error for a slot wins
func (c *Collector) Record(slot int, err error) {
	if err == nil || c.errs[slot] != nil {
		return
	}
	c.errs[slot] = err
	atomic.AddInt64(&c.failed, 1)
}

// Failed returns the number of slots holding an error
func (c *Collector) Failed() int {
	return int(atomic.LoadInt64(&c.failed))
}

// Err returns the error of the lowest-numbered failed slot, or nil
func (c *Collector) Err() error {
	if c.Failed() == 0 {
		return nil
	}
	for _, err := range c.errs {
		if err != nil {
			return err
		}
	}
	return nil
}
