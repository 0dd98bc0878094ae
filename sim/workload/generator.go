package workload

import (
	"fmt"
	"math/rand"

	"github.com/inference-sim/vvpsim/sim"
)

// Arrival is one request to be scheduled.
type Arrival struct {
	Time   int64
	Layers []sim.Layer
}

// GenerateArrivals creates the arrival sequence for a WorkloadSpec.
// Deterministic given the same spec and seed. The first request arrives at
// StartTime; arrivals are returned in non-decreasing time order.
func GenerateArrivals(spec *WorkloadSpec) ([]Arrival, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload spec: %w", err)
	}
	layers, err := spec.ResolveLayers()
	if err != nil {
		return nil, err
	}

	rng := newRandFromSeed(spec.Seed)
	sampler := NewArrivalSampler(spec.Arrival)

	arrivals := make([]Arrival, 0, spec.NumRequests)
	currentTime := spec.StartTime
	for i := 0; i < spec.NumRequests; i++ {
		arrivals = append(arrivals, Arrival{Time: currentTime, Layers: layers})
		currentTime += sampler.SampleIAT(rng)
	}
	return arrivals, nil
}

// ScheduleAll registers every arrival with s and returns the assigned request ids.
// It stops at the first rejected arrival.
func ScheduleAll(s *sim.Simulator, arrivals []Arrival) ([]int64, error) {
	ids := make([]int64, 0, len(arrivals))
	for i, a := range arrivals {
		id, err := s.Schedule(a.Layers, a.Time)
		if err != nil {
			return ids, fmt.Errorf("arrival %d at tick %d: %w", i, a.Time, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func newRandFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
