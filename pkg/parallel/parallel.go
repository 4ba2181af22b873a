package parallel

import (
	"fmt"

	"github.com/Mibu287/mini-openmp/internal/errors"
	"github.com/Mibu287/mini-openmp/pkg/types"
)

// For calls fn for every index start, start+step, ... short of stop,
// spreading the range over pool in one statically sized chunk per worker.
// It blocks until every chunk has finished.
//
// The range is validated before anything is scheduled; an invalid range
// returns a *types.InvalidRangeError and fn is never called.
//
// Each chunk visits its indices in step order on a single worker. Nothing
// orders calls belonging to different chunks, so fn must synchronize any
// state it shares across indices.
//
// If fn panics, the rest of that chunk is skipped, the other chunks still
// run to completion and For returns a *types.TaskPanicError for the
// lowest-numbered chunk that panicked.
func For(pool types.ThreadPool, start, stop, step int, fn func(i int)) error {
	if fn == nil {
		return fmt.Errorf("parallel: %w", types.ErrNilTask)
	}

	part, err := Plan(pool.NumThreads(), start, stop, step)
	if err != nil {
		return err
	}

	return dispatch(pool, part, func(lo, hi int) error {
		i := part.Index(lo)
		for k := lo; k < hi; k++ {
			fn(i)
			i += part.Step
		}
		return nil
	})
}

// ForErr is like For but fn may fail. A chunk stops at its first error, the
// other chunks run to completion, and ForErr returns the error of the
// lowest-numbered chunk that failed.
func ForErr(pool types.ThreadPool, start, stop, step int, fn func(i int) error) error {
	if fn == nil {
		return fmt.Errorf("parallel: %w", types.ErrNilTask)
	}

	part, err := Plan(pool.NumThreads(), start, stop, step)
	if err != nil {
		return err
	}

	return dispatch(pool, part, func(lo, hi int) error {
		i := part.Index(lo)
		for k := lo; k < hi; k++ {
			if err := fn(i); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
			i += part.Step
		}
		return nil
	})
}

// ForChunks splits [0, n) the same way For does but hands each chunk's
// bounds to fn, for kernels that run their own inner loop.
func ForChunks(pool types.ThreadPool, n int, fn func(lo, hi int)) error {
	if fn == nil {
		return fmt.Errorf("parallel: %w", types.ErrNilTask)
	}

	part, err := Plan(pool.NumThreads(), 0, n, 1)
	if err != nil {
		return err
	}

	return dispatch(pool, part, func(lo, hi int) error {
		fn(lo, hi)
		return nil
	})
}

// dispatch schedules one task per chunk of part and waits on a completion
// barrier until all of them have run.
func dispatch(pool types.ThreadPool, part Partition, body func(lo, hi int) error) error {
	collector := errors.NewCollector(part.NumChunks)
	barrier := NewCompletionBarrier()

	for c := 0; c < part.NumChunks; c++ {
		lo, hi := part.Chunk(c)

		barrier.RegisterOutstanding(1)
		pool.Schedule(func() {
			defer barrier.CompleteOne()
			collector.Record(c, runChunk(pool, c, lo, hi, body))
		})
	}

	barrier.AwaitAll()
	return collector.Err()
}

// runChunk runs body over one chunk, turning a panic into an error
func runChunk(pool types.ThreadPool, c, lo, hi int, body func(lo, hi int) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r, pool.ThreadID(), c)
		}
	}()

	return body(lo, hi)
}
