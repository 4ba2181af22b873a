package parallel

import (
	"sync"
	"sync/atomic"
)

// CompletionBarrier lets any number of concurrently finishing chunks notify
// exactly one waiting initiator, exactly once.
//
// A single counter encodes both sides:
//
//	ctr = 2*(chunks not yet finished) + (1 if the initiator reached AwaitAll)
//
// Chunks contribute 2 each and the initiator 1, so any interleaving of chunk
// completions and initiator registration is resolved from the counter alone.
// The mutex and condition variable only park and wake the initiator.
//
// A barrier is single-use: register every chunk, then call AwaitAll once.
type CompletionBarrier struct {
	ctr  int64
	mu   sync.Mutex
	cond *sync.Cond
}

// NewCompletionBarrier creates a barrier with nothing outstanding
func NewCompletionBarrier() *CompletionBarrier {
	b := &CompletionBarrier{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// RegisterOutstanding records n more chunks that must finish before
// AwaitAll returns. It must happen before those chunks can call CompleteOne.
func (b *CompletionBarrier) RegisterOutstanding(n int) {
	atomic.AddInt64(&b.ctr, 2*int64(n))
}

// CompleteOne marks one chunk as finished. The chunk that leaves only the
// initiator's contribution behind wakes the initiator.
func (b *CompletionBarrier) CompleteOne() {
	if atomic.AddInt64(&b.ctr, -2) == 1 {
		// taking the lock orders this wakeup after the initiator has parked
		b.mu.Lock()
		b.cond.Signal()
		b.mu.Unlock()
	}
}

// AwaitAll blocks until every registered chunk has called CompleteOne.
func (b *CompletionBarrier) AwaitAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if atomic.AddInt64(&b.ctr, 1)-1 == 0 {
		// every chunk already finished before we got here
		return
	}

	for atomic.LoadInt64(&b.ctr) != 1 {
		b.cond.Wait()
	}
}

// Outstanding returns the number of registered chunks that have not finished
func (b *CompletionBarrier) Outstanding() int {
	return int(atomic.LoadInt64(&b.ctr) / 2)
}
