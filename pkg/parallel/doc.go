/*
Package parallel provides a data-parallel loop over integer index ranges.

For statically partitions start, start+step, ... (short of stop) into at
most NumThreads() contiguous chunks, schedules one task per chunk on any
types.ThreadPool and blocks the caller until every chunk has finished:

	pool, _ := worker.New(runtime.NumCPU())
	defer pool.Close()

	var sum int64
	err := parallel.For(pool, 0, len(xs), 1, func(i int) {
		atomic.AddInt64(&sum, xs[i])
	})

The chunk size is ceil(total / NumThreads()). A range that yields no chunk
(zero step, a step pointing away from stop, or an empty range) is rejected
with *types.InvalidRangeError before any task is scheduled.

Completion is tracked by a CompletionBarrier, a single atomic counter in
which every chunk contributes 2 and the waiting caller contributes 1. The
caller parks on a condition variable only while chunks are outstanding.

# Failures

A panic in the callback ends its chunk early but never the barrier: the
remaining chunks still run and For returns a *types.TaskPanicError naming
the chunk. ForErr does the same for returned errors.

# Nested loops

Calling For from a callback already running on the same pool schedules the
inner chunks on the shared queue and parks the calling worker until they
finish. This takes a worker out of service for the duration of the inner
loop, and if every worker of the pool does it at once no worker is left to
run the inner chunks and the program deadlocks. Callers that nest loops
must leave enough free workers, or run the inner loop on a separate pool.
*/
package parallel
