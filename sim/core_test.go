package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCore_Step_IdleWithTask_LoadsAndCompletesOnTime(t *testing.T) {
	// GIVEN an idle core with one 5-tick task
	c := NewCore(0)
	c.ScheduleVVP(Task{RequestID: 7, Duration: 5})

	// WHEN stepped at tick 10
	done := c.Step(10)

	// THEN the task is running until tick 15
	assert.Empty(t, done)
	assert.Equal(t, CoreBusy, c.Status())
	end, ok := c.CompletesAt()
	require.True(t, ok)
	assert.Equal(t, int64(15), end)

	// WHEN stepped at tick 15
	done = c.Step(15)

	// THEN it reports completion and goes idle
	assert.Equal(t, []Completion{{CoreID: 0, RequestID: 7, Tick: 15}}, done)
	assert.Equal(t, CoreIdle, c.Status())
	assert.Equal(t, int64(1), c.Executed())
}

func TestCore_Step_Completion_LoadsNextFromSameTick(t *testing.T) {
	c := NewCore(3)
	c.ScheduleVVP(Task{RequestID: 1, Duration: 4})
	c.ScheduleVVP(Task{RequestID: 2, Duration: 6})
	c.Step(0)

	done := c.Step(4)

	require.Len(t, done, 1)
	assert.Equal(t, int64(1), done[0].RequestID)
	end, _ := c.CompletesAt()
	assert.Equal(t, int64(10), end)
	assert.Equal(t, 0, c.QueueLen())
}

func TestCore_Step_ZeroDurationTasks_CompleteWithinTick(t *testing.T) {
	// GIVEN two zero-duration tasks followed by a 3-tick task
	c := NewCore(0)
	c.ScheduleVVP(Task{RequestID: 1, Duration: 0})
	c.ScheduleVVP(Task{RequestID: 2, Duration: 0})
	c.ScheduleVVP(Task{RequestID: 3, Duration: 3})

	// WHEN stepped once
	done := c.Step(8)

	// THEN both zero-duration tasks complete at the same tick, in FIFO order
	require.Len(t, done, 2)
	assert.Equal(t, int64(1), done[0].RequestID)
	assert.Equal(t, int64(2), done[1].RequestID)
	end, _ := c.CompletesAt()
	assert.Equal(t, int64(11), end)
}

func TestCore_Step_IdleEmpty_NoOp(t *testing.T) {
	c := NewCore(0)

	assert.Empty(t, c.Step(0))
	assert.Equal(t, CoreIdle, c.Status())
	_, ok := c.CompletesAt()
	assert.False(t, ok)
}

func TestCore_Step_MissedCompletion_Panics(t *testing.T) {
	c := NewCore(0)
	c.ScheduleVVP(Task{RequestID: 1, Duration: 2})
	c.Step(0)

	requireInconsistencyPanic(t, func() {
		c.Step(5)
	})
}

func TestCore_NextActivity(t *testing.T) {
	c := NewCore(0)
	_, ok := c.NextActivity(0)
	assert.False(t, ok, "idle empty core has no activity")

	c.ScheduleVVP(Task{RequestID: 1, Duration: 9})
	next, ok := c.NextActivity(4)
	require.True(t, ok)
	assert.Equal(t, int64(4), next, "idle core with queued work acts immediately")

	c.Step(4)
	next, ok = c.NextActivity(5)
	require.True(t, ok)
	assert.Equal(t, int64(13), next)
}

func TestCoreStatus_String(t *testing.T) {
	assert.Equal(t, "idle", CoreIdle.String())
	assert.Equal(t, "busy", CoreBusy.String())
	assert.Equal(t, "CoreStatus(9)", CoreStatus(9).String())
}

func TestCore_String_ShowsQueue(t *testing.T) {
	c := NewCore(2)
	c.ScheduleVVP(Task{RequestID: 1, Duration: 4})
	c.ScheduleVVP(Task{RequestID: 5, Duration: 6})
	c.Step(0)

	assert.Equal(t, "Core 2: busy (request 1 until 4), queue [r5:6]", c.String())
}
