package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in ticks), the request it belongs to,
// and an Execute method that advances simulation state when invoked.
type Event interface {
	Timestamp() int64
	RequestID() int64
	Execute(*Simulator)
}

// ArrivalEvent represents the arrival of a new inference request into the system.
type ArrivalEvent struct {
	time    int64    // Simulation time of arrival (in ticks)
	Request *Request // The incoming request associated with this event
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() int64 {
	return e.time
}

// RequestID returns the id of the arriving request.
func (e *ArrivalEvent) RequestID() int64 {
	return e.Request.ID
}

// Execute admits the request and merges the Job for its first layer into the timeline.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Arrival: request %d at %d ticks", e.Request.ID, e.time)
	sim.admit(e.Request, e.time)
}

// JobReadyEvent marks the tick at which a layer's Job becomes eligible to run.
type JobReadyEvent struct {
	Job *Job
}

// Timestamp returns the tick at which the job becomes eligible.
func (e *JobReadyEvent) Timestamp() int64 {
	return e.Job.StartTime
}

// RequestID returns the id of the request owning the job.
func (e *JobReadyEvent) RequestID() int64 {
	return e.Job.RequestID
}

// Execute expands the job into tasks and dispatches them to cores.
func (e *JobReadyEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< JobReady: request %d layer %d at %d ticks", e.Job.RequestID, e.Job.LayerIndex, e.Job.StartTime)
	sim.dispatch(e.Job)
}
