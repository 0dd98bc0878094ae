package sim

import (
	"fmt"
)

// CoreStatus is the two-state variant of a core: Idle or Busy.
type CoreStatus int

const (
	CoreIdle CoreStatus = iota
	CoreBusy
)

func (s CoreStatus) String() string {
	switch s {
	case CoreIdle:
		return "idle"
	case CoreBusy:
		return "busy"
	default:
		return fmt.Sprintf("CoreStatus(%d)", int(s))
	}
}

// runningTask is the Busy payload: the task on the core and the tick it finishes.
type runningTask struct {
	task        Task
	completesAt int64
}

// Completion reports that a task finished on a core.
type Completion struct {
	CoreID    int
	RequestID int64
	Tick      int64
}

// Core is a single-server queue. It never calls back into the simulator;
// Step returns the completions it observed instead.
type Core struct {
	ID       int
	waitQ    TaskQueue
	status   CoreStatus
	current  runningTask // valid only while status == CoreBusy
	executed int64       // tasks completed over the core's lifetime
}

// NewCore creates an idle core.
func NewCore(id int) *Core {
	return &Core{ID: id, status: CoreIdle}
}

// ScheduleVVP appends a task to the core's wait queue.
func (c *Core) ScheduleVVP(t Task) {
	c.waitQ.Enqueue(t)
}

// Status returns whether the core is idle or busy.
func (c *Core) Status() CoreStatus {
	return c.status
}

// QueueLen returns the number of tasks waiting behind the running one.
func (c *Core) QueueLen() int {
	return c.waitQ.Len()
}

// Executed returns the number of tasks this core has completed.
func (c *Core) Executed() int64 {
	return c.executed
}

// CompletesAt returns the finishing tick of the running task.
// The boolean is false when the core is idle.
func (c *Core) CompletesAt() (int64, bool) {
	if c.status != CoreBusy {
		return 0, false
	}
	return c.current.completesAt, true
}

// NextActivity returns the earliest tick at which Step could change state.
// The boolean is false when the core is idle with an empty queue.
func (c *Core) NextActivity(now int64) (int64, bool) {
	switch c.status {
	case CoreBusy:
		return c.current.completesAt, true
	case CoreIdle:
		if c.waitQ.Len() > 0 {
			return now, true
		}
	}
	return 0, false
}

// load pops the queue head onto the core, or leaves it idle.
func (c *Core) load(now int64) {
	t, ok := c.waitQ.Dequeue()
	if !ok {
		c.status = CoreIdle
		c.current = runningTask{}
		return
	}
	c.status = CoreBusy
	c.current = runningTask{task: t, completesAt: now + t.Duration}
}

// Step advances the core to tick now and returns the tasks that finished at now,
// in completion order. A task loaded at now with zero duration also finishes at now.
func (c *Core) Step(now int64) []Completion {
	if c.status == CoreIdle {
		c.load(now)
	}

	var done []Completion
	for c.status == CoreBusy && c.current.completesAt <= now {
		if c.current.completesAt < now {
			panic(fmt.Errorf("core %d: task for request %d due at tick %d was not observed until tick %d: %w",
				c.ID, c.current.task.RequestID, c.current.completesAt, now, ErrInternalInconsistency))
		}
		done = append(done, Completion{CoreID: c.ID, RequestID: c.current.task.RequestID, Tick: now})
		c.executed++
		c.load(now)
	}
	return done
}

func (c *Core) String() string {
	if c.status == CoreBusy {
		return fmt.Sprintf("Core %d: busy (request %d until %d), queue %s",
			c.ID, c.current.task.RequestID, c.current.completesAt, c.waitQ.String())
	}
	return fmt.Sprintf("Core %d: idle, queue %s", c.ID, c.waitQ.String())
}
