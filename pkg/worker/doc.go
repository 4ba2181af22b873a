/*
Package worker provides a fixed-size thread pool with a shared FIFO task queue.

# Overview

A ThreadPool owns N long-lived worker goroutines and one unbounded task
queue guarded by a single mutex. Scheduling a task appends it to the queue
and wakes exactly one idle worker. Workers pop tasks one at a time and run
them with the lock released, so any number of tasks execute concurrently.

ThreadPool implements types.ThreadPool, the capability contract driven by
package parallel:

  - Schedule(task) enqueues work and never blocks beyond the queue lock
  - NumThreads() reports the fixed worker count
  - ThreadID() reports the calling worker's index in [0, N), or
    types.NotAWorker for any other goroutine

# Lifecycle

Workers are started by NewThreadPool and have all entered their run loop
before it returns. Close is the only stop mechanism: it marks the pool as
exiting, wakes every worker and waits for them to exit. Work that was
already queued is drained first; shutdown never discards tasks.

	pool, err := worker.New(4)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	pool.Schedule(func() {
		fmt.Println("running on worker", pool.ThreadID())
	})

# Panics

A panicking task does not take its worker down. The panic is recovered,
logged at error level and passed to ThreadPoolConfig.PanicHandler as a
*types.TaskPanicError, and the worker moves on to the next task.

# Configuration

ThreadPoolConfig supports the following configurations:
  - NumThreads: number of workers, at least 1
  - LockOSThread: pin each worker to its own OS thread
  - PanicHandler: receives recovered task panics
  - Logger: *slog.Logger for lifecycle events, silent by default
  - Clock: time source for worker statistics
*/
package worker
