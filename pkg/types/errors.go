// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrConstruction indicates a thread pool could not be constructed
	ErrConstruction = errors.New("invalid thread pool construction")

	// ErrInvalidRange indicates a start/stop/step combination yields no chunks
	ErrInvalidRange = errors.New("invalid iteration range")

	// ErrTaskPanicked indicates a scheduled task or range callback panicked
	ErrTaskPanicked = errors.New("task panicked")

	// ErrPoolClosed indicates work was scheduled after teardown completed
	ErrPoolClosed = errors.New("thread pool is closed")

	// ErrNilTask indicates a nil task was scheduled
	ErrNilTask = errors.New("task cannot be nil")

	// ErrCloseFromWorker indicates a pool was closed from one of its own tasks
	ErrCloseFromWorker = errors.New("thread pool cannot be closed from its own worker")
)

// ConstructionError is returned when a pool is requested with fewer than one thread.
type ConstructionError struct {
	// NumThreads is the rejected worker count
	NumThreads int
}

// Error implements the error interface
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("number of threads must be greater than 0, got %d", e.NumThreads)
}

// Is reports whether target is ErrConstruction
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

// NewConstructionError creates a new ConstructionError
func NewConstructionError(numThreads int) *ConstructionError {
	return &ConstructionError{NumThreads: numThreads}
}

// InvalidRangeError is returned when a range cannot be split into at least one chunk:
// zero step, a step whose sign disagrees with stop-start, or an empty range.
type InvalidRangeError struct {
	Start int
	Stop  int
	Step  int
}

// Error implements the error interface
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid start, stop, step arguments (%d, %d, %d): "+
		"(stop - start) and step must be non-zero and have the same sign",
		e.Start, e.Stop, e.Step)
}

// Is reports whether target is ErrInvalidRange
func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// NewInvalidRangeError creates a new InvalidRangeError
func NewInvalidRangeError(start, stop, step int) *InvalidRangeError {
	return &InvalidRangeError{Start: start, Stop: stop, Step: step}
}

// TaskPanicError records a panic recovered from a task or a range callback
type TaskPanicError struct {
	// WorkerID is the logical index of the worker that recovered the panic,
	// or NotAWorker when the task ran outside a pool worker
	WorkerID int

	// Chunk is the chunk number for range callbacks, -1 for plain tasks
	Chunk int

	// Value is the value passed to panic
	Value interface{}

	// Stack is the goroutine stack captured at recovery time
	Stack []byte
}

// Error implements the error interface
func (e *TaskPanicError) Error() string {
	if e.Chunk >= 0 {
		return fmt.Sprintf("task panicked on worker %d in chunk %d: %v", e.WorkerID, e.Chunk, e.Value)
	}
	return fmt.Sprintf("task panicked on worker %d: %v", e.WorkerID, e.Value)
}

// Unwrap returns the panic value when it is itself an error
func (e *TaskPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Is reports whether target is ErrTaskPanicked
func (e *TaskPanicError) Is(target error) bool {
	return target == ErrTaskPanicked
}
