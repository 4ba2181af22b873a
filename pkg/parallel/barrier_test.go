package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Mibu287/mini-openmp/internal/testutils"
)

func TestCompletionBarrier_NothingRegistered(t *testing.T) {
	b := NewCompletionBarrier()

	testutils.RunWithTimeout(t, testutils.DefaultTimeout, b.AwaitAll)
	assert.Equal(t, 0, b.Outstanding())
}

func TestCompletionBarrier_AllDoneBeforeWait(t *testing.T) {
	b := NewCompletionBarrier()

	b.RegisterOutstanding(3)
	assert.Equal(t, 3, b.Outstanding())

	for i := 0; i < 3; i++ {
		b.CompleteOne()
	}
	assert.Equal(t, 0, b.Outstanding())

	testutils.RunWithTimeout(t, testutils.DefaultTimeout, b.AwaitAll)
}

func TestCompletionBarrier_WaitsForLateChunks(t *testing.T) {
	b := NewCompletionBarrier()
	b.RegisterOutstanding(3)

	var finished int64
	go func() {
		time.Sleep(20 * time.Millisecond)
		for i := 0; i < 3; i++ {
			atomic.AddInt64(&finished, 1)
			b.CompleteOne()
		}
	}()

	testutils.RunWithTimeout(t, testutils.DefaultTimeout, b.AwaitAll)
	assert.Equal(t, int64(3), atomic.LoadInt64(&finished))
}

func TestCompletionBarrier_MixedOrdering(t *testing.T) {
	b := NewCompletionBarrier()
	b.RegisterOutstanding(2)

	// one chunk finishes before the initiator arrives, one after
	b.CompleteOne()

	var late int64
	go func() {
		time.Sleep(20 * time.Millisecond)
		atomic.StoreInt64(&late, 1)
		b.CompleteOne()
	}()

	testutils.RunWithTimeout(t, testutils.DefaultTimeout, b.AwaitAll)
	assert.Equal(t, int64(1), atomic.LoadInt64(&late))
}

func TestCompletionBarrier_IncrementalRegistration(t *testing.T) {
	b := NewCompletionBarrier()

	var done sync.WaitGroup
	for i := 0; i < 4; i++ {
		b.RegisterOutstanding(1)
		done.Add(1)
		go func() {
			defer done.Done()
			b.CompleteOne()
		}()
	}

	testutils.RunWithTimeout(t, testutils.DefaultTimeout, b.AwaitAll)
	done.Wait()
	assert.Equal(t, 0, b.Outstanding())
}

func TestCompletionBarrier_Stress(t *testing.T) {
	for iter := 0; iter < 500; iter++ {
		chunks := iter%8 + 1

		b := NewCompletionBarrier()
		var finished int64

		for c := 0; c < chunks; c++ {
			b.RegisterOutstanding(1)
			go func() {
				atomic.AddInt64(&finished, 1)
				b.CompleteOne()
			}()
		}

		if !testutils.RunWithTimeout(t, testutils.DefaultTimeout, b.AwaitAll) {
			t.Fatalf("iteration %d: barrier never released", iter)
		}
		if got := atomic.LoadInt64(&finished); got != int64(chunks) {
			t.Fatalf("iteration %d: released with %d of %d chunks finished", iter, got, chunks)
		}
	}
}
