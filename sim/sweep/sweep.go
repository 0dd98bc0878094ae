// Package sweep runs one simulation per value of a swept parameter,
// each on its own Simulator instance.
package sweep

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/vvpsim/sim"
	"github.com/inference-sim/vvpsim/sim/workload"
)

// Param names the swept parameter.
type Param string

const (
	ParamInterarrival Param = "interarrival" // ticks between arrivals; mean gap for stochastic processes
	ParamCores        Param = "cores"        // core pool size
)

// IsValidParam reports whether p names a sweepable parameter.
func IsValidParam(p string) bool {
	return Param(p) == ParamInterarrival || Param(p) == ParamCores
}

// Spec describes a sweep. Values run from From up to, but excluding, To.
type Spec struct {
	Param    Param
	From     int64
	To       int64
	Step     int64
	Workload workload.WorkloadSpec // base workload; the swept field is overridden per point
	Config   sim.Config            // base run config; the swept field is overridden per point
	Workers  int                   // concurrent simulations; <= 0 means 1
}

// Point is the outcome of one simulation in the sweep.
type Point struct {
	Value      int64
	Mean       float64
	Completion sim.Distribution
}

// Values returns the swept values in order.
func (s Spec) Values() ([]int64, error) {
	if !IsValidParam(string(s.Param)) {
		return nil, fmt.Errorf("unknown sweep parameter %q; valid: interarrival, cores", s.Param)
	}
	if s.Step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", s.Step)
	}
	if s.From >= s.To {
		return nil, fmt.Errorf("empty range [%d, %d)", s.From, s.To)
	}
	if s.Param == ParamInterarrival && s.Workload.Arrival.IsStochastic() && s.From <= 0 {
		return nil, fmt.Errorf("%s arrivals need a positive mean interarrival, got from=%d", s.Workload.Arrival.Process, s.From)
	}
	var values []int64
	for v := s.From; v < s.To; v += s.Step {
		values = append(values, v)
	}
	return values, nil
}

// Run executes the sweep. Points are returned in value order regardless of
// completion order. The first failing point cancels the rest.
func Run(ctx context.Context, spec Spec) ([]Point, error) {
	values, err := spec.Values()
	if err != nil {
		return nil, err
	}
	points := make([]Point, len(values))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(spec.Workers, 1))
	for i, v := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := runPoint(spec, v)
			if err != nil {
				return fmt.Errorf("%s=%d: %w", spec.Param, v, err)
			}
			points[i] = p
			logrus.Infof("Sweep %s=%d: mean completion %.2f ticks", spec.Param, v, p.Mean)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// apply returns the workload and config of one sweep point. A swept
// interarrival sets the gap of constant and burst arrivals, and the mean gap
// (rate = 1/value) of stochastic ones.
func (s Spec) apply(value int64) (workload.WorkloadSpec, sim.Config) {
	wl := s.Workload
	cfg := s.Config
	switch s.Param {
	case ParamInterarrival:
		if wl.Arrival.IsStochastic() {
			wl.Arrival.Rate = 1.0 / float64(value)
		} else {
			wl.Arrival.Interarrival = value
		}
	case ParamCores:
		cfg.Cores = int(value)
	}
	return wl, cfg
}

// runPoint simulates a single swept value on a fresh Simulator.
func runPoint(spec Spec, value int64) (Point, error) {
	wl, cfg := spec.apply(value)

	arrivals, err := workload.GenerateArrivals(&wl)
	if err != nil {
		return Point{}, err
	}
	s := sim.NewSimulator()
	if _, err := workload.ScheduleAll(s, arrivals); err != nil {
		return Point{}, err
	}
	mean, err := s.Run(cfg)
	if err != nil {
		return Point{}, err
	}
	return Point{Value: value, Mean: mean, Completion: s.Metrics.Completion()}, nil
}
