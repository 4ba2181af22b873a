package errors

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Mibu287/mini-openmp/pkg/types"
)

// TestFromPanic tests conversion of recovered values
func TestFromPanic(t *testing.T) {
	var perr *types.TaskPanicError

	func() {
		defer func() {
			if r := recover(); r != nil {
				perr = FromPanic(r, 1, 4)
			}
		}()
		panic("kaboom")
	}()

	if perr == nil {
		t.Fatalf("Expected a TaskPanicError")
	}
	if perr.WorkerID != 1 || perr.Chunk != 4 {
		t.Errorf("Expected worker 1 chunk 4, got worker %d chunk %d", perr.WorkerID, perr.Chunk)
	}
	if perr.Value != "kaboom" {
		t.Errorf("Expected panic value kaboom, got %v", perr.Value)
	}
	if !strings.Contains(string(perr.Stack), "TestFromPanic") {
		t.Errorf("Expected stack to contain the panicking test function")
	}
	if !errors.Is(perr, types.ErrTaskPanicked) {
		t.Errorf("Expected errors.Is to match ErrTaskPanicked")
	}
}

// TestCollector tests first-error-per-slot and lowest-slot reporting
func TestCollector(t *testing.T) {
	c := NewCollector(4)

	if c.Err() != nil {
		t.Errorf("Expected nil error for empty collector")
	}

	err1 := errors.New("slot 1")
	err3 := errors.New("slot 3")

	c.Record(3, err3)
	c.Record(1, err1)
	c.Record(1, errors.New("ignored"))
	c.Record(2, nil)

	if c.Failed() != 2 {
		t.Errorf("Expected 2 failed slots, got %d", c.Failed())
	}
	if c.Err() != err1 {
		t.Errorf("Expected lowest slot error %v, got %v", err1, c.Err())
	}
}

// TestCollectorConcurrentSlots tests one writer per slot from many goroutines
func TestCollectorConcurrentSlots(t *testing.T) {
	const slots = 64
	c := NewCollector(slots)

	var wg sync.WaitGroup
	for i := 0; i < slots; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			if slot%2 == 1 {
				c.Record(slot, errors.New("odd"))
			}
		}(i)
	}
	wg.Wait()

	if c.Failed() != slots/2 {
		t.Errorf("Expected %d failed slots, got %d", slots/2, c.Failed())
	}
	if c.Err() == nil || c.Err().Error() != "odd" {
		t.Errorf("Expected odd slot error, got %v", c.Err())
	}
}
