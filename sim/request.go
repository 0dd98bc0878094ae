// Defines the Request struct that models one end-to-end network inference.
// A request is immutable once scheduled; it is consumed exactly once on arrival,
// producing the Job for its first layer plus the chain of dependent layers.

package sim

import (
	"fmt"
)

// RequestState represents the lifecycle state of a request.
type RequestState string

const (
	StatePending    RequestState = "pending"     // scheduled, not yet arrived
	StateInProgress RequestState = "in-progress" // arrived, layers executing
	StateCompleted  RequestState = "completed"
)

type Request struct {
	ID          int64   // Unique, monotonically assigned identifier
	ArrivalTime int64   // Tick at which the request enters the simulator
	Layers      []Layer // Ordered layer chain; never shared with the caller
}

// NewRequest creates a Request that owns a private copy of layers.
func NewRequest(id int64, arrivalTime int64, layers []Layer) *Request {
	return &Request{
		ID:          id,
		ArrivalTime: arrivalTime,
		Layers:      cloneLayers(layers),
	}
}

// GenJobDAG materializes the Job for the first layer and returns the remaining
// layers as an owned copy. The chain is strictly linear: layer i+1 becomes
// eligible only when every task of layer i has completed.
// The first layer becomes eligible at now+datapathLatency.
func (req *Request) GenJobDAG(now int64, datapathLatency int64) (*Job, []Layer) {
	first := req.Layers[0]
	job := &Job{
		StartTime:    now + datapathLatency,
		RequestID:    req.ID,
		LayerIndex:   0,
		VVPCount:     first.VVPCount,
		TaskDuration: first.InputSize,
	}
	return job, cloneLayers(req.Layers[1:])
}

// This method returns a human-readable string representation of a Request.
func (req Request) String() string {
	return fmt.Sprintf("Request: (ID: %d, ArrivalTime: %d, Layers: %v)", req.ID, req.ArrivalTime, req.Layers)
}
