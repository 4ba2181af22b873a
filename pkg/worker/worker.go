package worker

import (
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"

	"github.com/Mibu287/mini-openmp/internal/errors"
	"github.com/Mibu287/mini-openmp/pkg/types"
)

// WorkerState defines the state of a Worker
type WorkerState int32

const (
	// WorkerStateIdle represents idle worker state
	WorkerStateIdle WorkerState = iota
	// WorkerStateWorking represents working worker state
	WorkerStateWorking
	// WorkerStateStopped represents stopped worker state
	WorkerStateStopped
)

// String returns the string representation of WorkerState
func (ws WorkerState) String() string {
	switch ws {
	case WorkerStateIdle:
		return "idle"
	case WorkerStateWorking:
		return "working"
	case WorkerStateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Worker is one long-lived goroutine owned by a ThreadPool. It is a client
// of the pool's task queue, never its owner.
type Worker struct {
	id    int
	pool  *ThreadPool
	state int32 // atomic state

	// statistics
	totalProcessed int64
	totalPanicked  int64
	busyNanos      int64
	lastTaskTime   int64 // Unix nanosecond timestamp
}

func newWorker(id int, pool *ThreadPool) *Worker {
	return &Worker{
		id:    id,
		pool:  pool,
		state: int32(WorkerStateIdle),
	}
}

// ID returns the worker's logical index
func (w *Worker) ID() int {
	return w.id
}

// State returns the current Worker state
func (w *Worker) State() WorkerState {
	return WorkerState(atomic.LoadInt32(&w.state))
}

// run is the worker loop: wait for work or shutdown, pop one task, run it
// with the lock released, repeat. Queued work is drained before exiting.
func (w *Worker) run() {
	p := w.pool

	if p.config.LockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	p.register(goid.Get(), w.id)
	p.logger.Debug("worker started", slog.Int("worker_id", w.id))

	p.mu.Lock()
	for {
		for p.queue.Len() == 0 && !p.exiting {
			p.cond.Wait()
		}
		if p.queue.Len() == 0 {
			// exiting with nothing left to drain
			break
		}

		task := p.queue.Pop()
		p.mu.Unlock()

		w.processTask(task)

		p.mu.Lock()
	}
	p.alive--
	p.mu.Unlock()

	atomic.StoreInt32(&w.state, int32(WorkerStateStopped))
	p.logger.Debug("worker stopped", slog.Int("worker_id", w.id))
}

// processTask runs a single task and records its statistics
func (w *Worker) processTask(task func()) {
	atomic.StoreInt32(&w.state, int32(WorkerStateWorking))
	defer atomic.StoreInt32(&w.state, int32(WorkerStateIdle))

	clock := w.pool.config.Clock
	startTime := clock.Now()
	atomic.StoreInt64(&w.lastTaskTime, startTime.UnixNano())

	perr := w.executeTask(task)

	atomic.AddInt64(&w.busyNanos, int64(clock.Since(startTime)))

	if perr != nil {
		atomic.AddInt64(&w.totalPanicked, 1)
		w.handlePanic(perr)
	} else {
		atomic.AddInt64(&w.totalProcessed, 1)
	}

	atomic.AddInt64(&w.pool.completed, 1)
}

// executeTask executes a task with panic recovery support
func (w *Worker) executeTask(task func()) (perr *types.TaskPanicError) {
	defer func() {
		if r := recover(); r != nil {
			perr = errors.FromPanic(r, w.id, -1)
		}
	}()

	task()
	return nil
}

// handlePanic logs a recovered panic and forwards it to the configured handler
func (w *Worker) handlePanic(perr *types.TaskPanicError) {
	p := w.pool
	p.logger.Error("task panicked",
		slog.Int("worker_id", w.id),
		slog.Any("panic", perr.Value),
		slog.String("stack", string(perr.Stack)),
	)

	if p.config.PanicHandler != nil {
		w.callPanicHandler(perr)
	}
}

// callPanicHandler runs the configured handler; a panic inside the handler
// is logged and dropped so the worker keeps running
func (w *Worker) callPanicHandler(perr *types.TaskPanicError) {
	defer func() {
		if r := recover(); r != nil {
			w.pool.logger.Error("panic handler panicked",
				slog.Int("worker_id", w.id),
				slog.Any("panic", r),
			)
		}
	}()

	w.pool.config.PanicHandler(perr)
}

// Stats gets Worker statistics
func (w *Worker) Stats() WorkerStats {
	var lastTaskTime time.Time
	if ns := atomic.LoadInt64(&w.lastTaskTime); ns != 0 {
		lastTaskTime = time.Unix(0, ns)
	}

	return WorkerStats{
		ID:             w.id,
		State:          w.State(),
		TotalProcessed: atomic.LoadInt64(&w.totalProcessed),
		TotalPanicked:  atomic.LoadInt64(&w.totalPanicked),
		BusyTime:       time.Duration(atomic.LoadInt64(&w.busyNanos)),
		LastTaskTime:   lastTaskTime,
	}
}

// WorkerStats defines Worker statistics
type WorkerStats struct {
	ID             int
	State          WorkerState
	TotalProcessed int64
	TotalPanicked  int64
	BusyTime       time.Duration
	LastTaskTime   time.Time
}

// IsActive checks if Worker is active
func (ws WorkerStats) IsActive() bool {
	return ws.State == WorkerStateWorking
}

// IsIdle checks if Worker is idle
func (ws WorkerStats) IsIdle() bool {
	return ws.State == WorkerStateIdle
}

// GetSuccessRate gets the share of tasks that finished without panicking
func (ws WorkerStats) GetSuccessRate() float64 {
	total := ws.TotalProcessed + ws.TotalPanicked
	if total == 0 {
		return 0
	}
	return float64(ws.TotalProcessed) / float64(total)
}
