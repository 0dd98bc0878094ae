package sim

import "fmt"

// Job is the runtime instantiation of one layer for one request.
// StartTime is when the layer becomes eligible to run, not when its tasks
// reach a core.
type Job struct {
	StartTime    int64
	RequestID    int64
	LayerIndex   int
	VVPCount     int
	TaskDuration int64 // the layer's input size
}

// GenTasks expands the job into VVPCount identical tasks.
func (j *Job) GenTasks() []Task {
	tasks := make([]Task, j.VVPCount)
	for i := range tasks {
		tasks[i] = Task{RequestID: j.RequestID, Duration: j.TaskDuration}
	}
	return tasks
}

func (j Job) String() string {
	return fmt.Sprintf("Job: (Request: %d, Layer: %d, Start: %d, VVPs: %d, Duration: %d)",
		j.RequestID, j.LayerIndex, j.StartTime, j.VVPCount, j.TaskDuration)
}

// Task is one VVP: the smallest schedulable unit of work.
type Task struct {
	RequestID int64
	Duration  int64
}
