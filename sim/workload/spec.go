// Package workload turns declarative workload descriptions into request
// arrivals for the simulator: which network each request runs and when it arrives.
package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/vvpsim/sim"
)

// WorkloadSpec is the top-level workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version     string      `yaml:"version"`
	Seed        int64       `yaml:"seed"`
	NumRequests int         `yaml:"num_requests"`
	StartTime   int64       `yaml:"start_time,omitempty"` // tick of the first arrival
	Network     string      `yaml:"network,omitempty"`    // preset name; mutually exclusive with layers
	Layers      []sim.Layer `yaml:"layers,omitempty"`
	Arrival     ArrivalSpec `yaml:"arrival"`
}

// ArrivalSpec configures the inter-arrival time process.
type ArrivalSpec struct {
	Process      string   `yaml:"process"`
	Interarrival int64    `yaml:"interarrival,omitempty"` // constant and burst: ticks between arrivals (bursts)
	Rate         float64  `yaml:"rate,omitempty"`         // stochastic processes: requests per tick
	CV           *float64 `yaml:"cv,omitempty"`
	BurstSize    int      `yaml:"burst_size,omitempty"` // burst: requests sharing one arrival tick
}

// Valid value registries.
var (
	validArrivalProcesses = map[string]bool{
		"constant": true, "burst": true, "poisson": true, "gamma": true, "weibull": true,
	}
	stochasticProcesses = map[string]bool{
		"poisson": true, "gamma": true, "weibull": true,
	}
)

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// ResolveLayers returns the layer chain requests of this workload run,
// either the explicit list or the named preset.
func (s *WorkloadSpec) ResolveLayers() ([]sim.Layer, error) {
	switch {
	case s.Network != "" && len(s.Layers) > 0:
		return nil, fmt.Errorf("network %q and explicit layers are mutually exclusive", s.Network)
	case s.Network != "":
		layers, ok := Network(s.Network)
		if !ok {
			return nil, fmt.Errorf("unknown network %q; valid: %v", s.Network, NetworkNames())
		}
		return layers, nil
	case len(s.Layers) > 0:
		return s.Layers, nil
	default:
		return nil, fmt.Errorf("either network or layers is required")
	}
}

// Validate checks that all fields in the spec are valid.
func (s *WorkloadSpec) Validate() error {
	if s.NumRequests <= 0 {
		return fmt.Errorf("num_requests must be positive, got %d", s.NumRequests)
	}
	if s.StartTime < 0 {
		return fmt.Errorf("start_time must be non-negative, got %d", s.StartTime)
	}
	layers, err := s.ResolveLayers()
	if err != nil {
		return err
	}
	if err := sim.ValidateLayers(layers); err != nil {
		return fmt.Errorf("layers: %w", err)
	}
	return validateArrival(&s.Arrival)
}

func validateArrival(a *ArrivalSpec) error {
	if !validArrivalProcesses[a.Process] {
		return fmt.Errorf("unknown arrival process %q; valid: constant, burst, poisson, gamma, weibull", a.Process)
	}
	if a.Interarrival < 0 {
		return fmt.Errorf("arrival.interarrival must be non-negative, got %d", a.Interarrival)
	}
	if a.Process == "burst" && a.BurstSize <= 0 {
		return fmt.Errorf("arrival.burst_size must be positive for burst arrivals, got %d", a.BurstSize)
	}
	if stochasticProcesses[a.Process] {
		if err := validateFinitePositive("arrival.rate", a.Rate); err != nil {
			return err
		}
	}
	if a.Process == "weibull" && a.CV != nil {
		cv := *a.CV
		if cv < 0.01 || cv > 10.4 {
			return fmt.Errorf("weibull CV must be in [0.01, 10.4], got %f", cv)
		}
	}
	if a.CV != nil {
		if err := validateFinitePositive("arrival.cv", *a.CV); err != nil {
			return err
		}
	}
	return nil
}

// IsStochastic reports whether the process draws gaps from Rate rather than
// using Interarrival directly.
func (a ArrivalSpec) IsStochastic() bool {
	return stochasticProcesses[a.Process]
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
