package worker

import (
	"github.com/gammazero/deque"
)

// minQueueCapacity is the capacity the queue never shrinks below
const minQueueCapacity = 16

// TaskQueue is an unbounded FIFO of tasks backed by a ring buffer, so its
// memory follows the number of waiting tasks rather than the number ever
// pushed. It is not safe for concurrent use; ThreadPool guards it with its
// own mutex.
type TaskQueue struct {
	tasks deque.Deque[func()]
}

// NewTaskQueue creates an empty task queue
func NewTaskQueue() *TaskQueue {
	q := &TaskQueue{}
	q.tasks.SetBaseCap(minQueueCapacity)
	return q
}

// Push appends a task to the tail of the queue
func (q *TaskQueue) Push(task func()) {
	q.tasks.PushBack(task)
}

// Pop removes and returns the task at the head of the queue.
// It returns nil when the queue is empty.
func (q *TaskQueue) Pop() func() {
	if q.tasks.Len() == 0 {
		return nil
	}
	return q.tasks.PopFront()
}

// Len returns the number of queued tasks
func (q *TaskQueue) Len() int {
	return q.tasks.Len()
}

// Cap returns the capacity of the underlying buffer
func (q *TaskQueue) Cap() int {
	return q.tasks.Cap()
}
