package sim

import (
	"fmt"
	"math"
)

// Config groups the per-run parameters of a simulation.
// Zero-valued latency fields disable the corresponding delay.
type Config struct {
	Cores           int     // size of the homogeneous core pool (must be > 0)
	DatapathLatency int64   // delay before a request's first layer is eligible (ticks, >= 0)
	OverheadFactor  float64 // inter-layer delay per unit of the next layer's input size (>= 0)
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Cores <= 0 {
		return fmt.Errorf("core count %d must be positive: %w", c.Cores, ErrInvalidInput)
	}
	if c.DatapathLatency < 0 {
		return fmt.Errorf("datapath latency %d is negative: %w", c.DatapathLatency, ErrInvalidInput)
	}
	if c.OverheadFactor < 0 || math.IsNaN(c.OverheadFactor) || math.IsInf(c.OverheadFactor, 0) {
		return fmt.Errorf("overhead factor %v must be a finite non-negative number: %w", c.OverheadFactor, ErrInvalidInput)
	}
	return nil
}

// interLayerDelay is the overhead charged before a layer of the given input size starts.
func (c Config) interLayerDelay(nextInputSize int64) int64 {
	if c.OverheadFactor == 0 {
		return 0
	}
	return int64(math.Ceil(c.OverheadFactor * float64(nextInputSize)))
}

// maxTick is 2^63 as a float64, the first value past the int64 range.
const maxTick = float64(1 << 63)

// horizon returns an upper bound on the tick at which every request finishes.
// Cores never idle while a task is queued, so the run ends no later than the
// last arrival plus all task work plus every datapath and inter-layer delay.
// Every tick the simulation computes is below this bound; a bound that does not
// fit in an int64 is rejected with ErrInvalidInput.
func (c Config) horizon(reqs []*Request) (int64, error) {
	var latest, total int64
	for _, req := range reqs {
		latest = max(latest, req.ArrivalTime)
		cost := c.DatapathLatency
		for i, l := range req.Layers {
			if i > 0 {
				delay := math.Ceil(c.OverheadFactor * float64(l.InputSize))
				if delay >= maxTick {
					return 0, fmt.Errorf("request %d layer %d: inter-layer delay %g exceeds the tick range: %w",
						req.ID, i, delay, ErrInvalidInput)
				}
				cost = addTicks(cost, int64(delay))
			}
			cost = addTicks(cost, mulTicks(l.InputSize, int64(l.VVPCount)))
		}
		total = addTicks(total, cost)
		if total < 0 {
			return 0, fmt.Errorf("request %d: accumulated work exceeds the tick range: %w", req.ID, ErrInvalidInput)
		}
	}
	end := addTicks(latest, total)
	if end < 0 {
		return 0, fmt.Errorf("last arrival %d plus %d ticks of work and delay exceeds the tick range: %w",
			latest, total, ErrInvalidInput)
	}
	return end, nil
}

// addTicks adds two non-negative tick counts, returning -1 on overflow.
func addTicks(a, b int64) int64 {
	if a < 0 || b < 0 || a > math.MaxInt64-b {
		return -1
	}
	return a + b
}

// mulTicks multiplies two non-negative counts, returning -1 on overflow.
func mulTicks(a, b int64) int64 {
	if a < 0 || b < 0 || (a != 0 && b > math.MaxInt64/a) {
		return -1
	}
	return a * b
}
