package worker

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/petermattis/goid"

	"github.com/Mibu287/mini-openmp/pkg/types"
)

// ThreadPoolConfig defines configuration for a thread pool
type ThreadPoolConfig struct {
	// NumThreads is the fixed number of workers, must be at least 1
	NumThreads int

	// LockOSThread pins every worker goroutine to its own OS thread
	LockOSThread bool

	// PanicHandler receives panics recovered from tasks (optional). It runs on
	// the worker; if it panics itself, that panic is logged and discarded.
	PanicHandler func(*types.TaskPanicError)

	// Logger receives pool lifecycle events (optional, defaults to disabled)
	Logger *slog.Logger

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock
}

// DefaultThreadPoolConfig returns default configuration
func DefaultThreadPoolConfig() *ThreadPoolConfig {
	return &ThreadPoolConfig{
		NumThreads: runtime.GOMAXPROCS(0),
		Logger:     slog.New(disabledSlogHandler{}),
		Clock:      types.NewRealClock(),
	}
}

// ThreadPool is a fixed-size pool of workers sharing one FIFO task queue.
// It implements types.ThreadPool.
type ThreadPool struct {
	config  ThreadPoolConfig
	logger  *slog.Logger
	workers []*Worker

	// queue, exiting and alive are guarded by mu; cond signals
	// "queue became non-empty or shutdown began"
	mu      sync.Mutex
	cond    *sync.Cond
	queue   *TaskQueue
	exiting bool
	alive   int

	// goroutine id -> logical worker index, immutable once construction returns
	identities map[int64]int
	started    sync.WaitGroup

	wg        sync.WaitGroup
	closeOnce sync.Once

	// statistics
	scheduled int64
	completed int64
}

var _ types.ThreadPool = (*ThreadPool)(nil)

// New creates a thread pool with n workers and default settings otherwise
func New(n int) (*ThreadPool, error) {
	config := DefaultThreadPoolConfig()
	config.NumThreads = n
	return NewThreadPool(config)
}

// NewThreadPool creates a thread pool and starts its workers. Every worker
// has entered its run loop by the time NewThreadPool returns.
func NewThreadPool(config *ThreadPoolConfig) (*ThreadPool, error) {
	if config == nil {
		config = DefaultThreadPoolConfig()
	}

	// parameter validation
	if config.NumThreads < 1 {
		return nil, types.NewConstructionError(config.NumThreads)
	}

	cfg := *config
	if cfg.Clock == nil {
		cfg.Clock = types.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(disabledSlogHandler{})
	}

	p := &ThreadPool{
		config:     cfg,
		logger:     cfg.Logger,
		workers:    make([]*Worker, cfg.NumThreads),
		queue:      NewTaskQueue(),
		alive:      cfg.NumThreads,
		identities: make(map[int64]int, cfg.NumThreads),
	}
	p.cond = sync.NewCond(&p.mu)

	p.started.Add(cfg.NumThreads)
	p.wg.Add(cfg.NumThreads)

	for i := 0; i < cfg.NumThreads; i++ {
		w := newWorker(i, p)
		p.workers[i] = w
		go func() {
			defer p.wg.Done()
			w.run()
		}()
	}

	p.started.Wait()
	p.logger.Info("thread pool started",
		slog.Int("threads", cfg.NumThreads),
		slog.Bool("lock_os_thread", cfg.LockOSThread),
	)

	return p, nil
}

// register records the goroutine id of a starting worker so ThreadID can
// resolve it
func (p *ThreadPool) register(gid int64, id int) {
	p.mu.Lock()
	p.identities[gid] = id
	p.mu.Unlock()

	p.started.Done()
}

// Schedule appends task to the queue and wakes one idle worker.
//
// Tasks may schedule further work while the pool is draining. Scheduling
// once Close has let every worker exit panics with types.ErrPoolClosed,
// the same way sending on a closed channel does.
func (p *ThreadPool) Schedule(task func()) {
	if task == nil {
		panic(types.ErrNilTask)
	}

	p.mu.Lock()
	if p.exiting && p.alive == 0 {
		p.mu.Unlock()
		panic(types.ErrPoolClosed)
	}
	p.queue.Push(task)
	atomic.AddInt64(&p.scheduled, 1)
	p.mu.Unlock()

	p.cond.Signal()
}

// NumThreads returns the fixed number of workers
func (p *ThreadPool) NumThreads() int {
	return p.config.NumThreads
}

// ThreadID returns the logical index of the calling worker, or
// types.NotAWorker when called from any other goroutine
func (p *ThreadPool) ThreadID() int {
	if id, ok := p.identities[goid.Get()]; ok {
		return id
	}
	return types.NotAWorker
}

// Close begins shutdown and blocks until every queued and in-flight task has
// run and every worker has exited. It is the only way to stop a pool.
// Calling Close again is a no-op. Calling it from one of the pool's own
// tasks would wait on itself, so it fails with types.ErrCloseFromWorker.
func (p *ThreadPool) Close() error {
	if p.ThreadID() != types.NotAWorker {
		return types.ErrCloseFromWorker
	}

	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.exiting = true
		pending := p.queue.Len()
		p.mu.Unlock()
		p.cond.Broadcast()

		p.logger.Info("thread pool shutting down", slog.Int("pending", pending))

		p.wg.Wait()

		p.logger.Info("thread pool shutdown completed",
			slog.Int64("completed", atomic.LoadInt64(&p.completed)),
		)
	})

	return nil
}

// IsClosed checks if every worker has exited
func (p *ThreadPool) IsClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exiting && p.alive == 0
}

// QueueLength gets the current queue length
func (p *ThreadPool) QueueLength() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}

// Stats gets basic thread pool statistics
func (p *ThreadPool) Stats() types.ThreadPoolStats {
	var busyWorkers int
	var busyTime time.Duration
	var panicked int64
	for _, w := range p.workers {
		ws := w.Stats()
		if ws.IsActive() {
			busyWorkers++
		}
		busyTime += ws.BusyTime
		panicked += ws.TotalPanicked
	}

	return types.ThreadPoolStats{
		NumThreads:     p.config.NumThreads,
		BusyWorkers:    busyWorkers,
		QueueLength:    p.QueueLength(),
		TotalScheduled: atomic.LoadInt64(&p.scheduled),
		TotalCompleted: atomic.LoadInt64(&p.completed),
		TotalPanicked:  panicked,
		BusyTime:       busyTime,
	}
}

// WorkerStats gets statistics of all Workers
func (p *ThreadPool) WorkerStats() []WorkerStats {
	stats := make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		stats[i] = w.Stats()
	}
	return stats
}
