// Implements the TaskQueue, the per-core FIFO of VVPs waiting to run.
// Tasks are enqueued by round-robin dispatch and dequeued by the owning core.

package sim

import (
	"fmt"
	"strings"
)

// TaskQueue represents a FIFO queue of tasks assigned to one core
// but not yet started.
type TaskQueue struct {
	queue []Task // FIFO queue of tasks
}

// Enqueue adds a task to the back of the queue.
func (tq *TaskQueue) Enqueue(t Task) {
	tq.queue = append(tq.queue, t)
}

func (tq *TaskQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range tq.queue {
		sb.WriteString(fmt.Sprintf("r%d:%d", val.RequestID, val.Duration))
		if i < len(tq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of tasks in the queue.
func (tq *TaskQueue) Len() int {
	return len(tq.queue)
}

// Peek returns the task at the front of the queue without removing it.
// The boolean is false if the queue is empty.
func (tq *TaskQueue) Peek() (Task, bool) {
	if len(tq.queue) == 0 {
		return Task{}, false
	}
	return tq.queue[0], true
}

// Dequeue removes the task at the front of the queue.
func (tq *TaskQueue) Dequeue() (Task, bool) {
	if len(tq.queue) == 0 {
		return Task{}, false
	}
	t := tq.queue[0]
	tq.queue[0] = Task{}
	tq.queue = tq.queue[1:]
	return t, true
}
