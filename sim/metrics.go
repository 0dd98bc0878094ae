// Tracks simulation-wide and per-request completion statistics.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Metrics aggregates statistics about the simulation
// for final reporting.
type Metrics struct {
	CompletedRequests int   // Number of requests completed
	TotalLatency      int64 // Sum of completion durations (completion - arrival)
	TasksExecuted     int64 // Number of VVPs completed across all cores
	LayersCompleted   int   // Number of layers completed across all requests
	SimEndedTime      int64 // Clock value when the simulation quiesced

	// CompletionDurations lists per-request durations in completion order.
	CompletionDurations []int64
	// RequestLatencies maps request ID -> completion duration.
	RequestLatencies map[int64]int64
}

func NewMetrics() *Metrics {
	return &Metrics{
		CompletionDurations: make([]int64, 0),
		RequestLatencies:    make(map[int64]int64),
	}
}

// recordCompletion appends a finalized request.
func (m *Metrics) recordCompletion(reqID int64, duration int64) {
	m.CompletedRequests++
	m.TotalLatency += duration
	m.CompletionDurations = append(m.CompletionDurations, duration)
	m.RequestLatencies[reqID] = duration
}

// MeanCompletionTime returns the arithmetic mean of all completion durations.
func (m *Metrics) MeanCompletionTime() (float64, error) {
	if m.CompletedRequests == 0 {
		return 0, ErrNoCompletedRequests
	}
	return float64(m.TotalLatency) / float64(m.CompletedRequests), nil
}

type IntOrFloat64 interface {
	int | int64 | float64
}

// Distribution captures statistical summary of a metric.
type Distribution struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// NewDistribution computes a Distribution from raw values.
// Returns zero-value Distribution for empty input.
func NewDistribution[T IntOrFloat64](values []T) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	d := Distribution{
		Mean:  stat.Mean(sorted, nil),
		P50:   stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:   stat.Quantile(0.90, stat.Empirical, sorted, nil),
		P99:   stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Count: len(sorted),
	}
	if len(sorted) > 1 {
		d.StdDev = stat.StdDev(sorted, nil)
	}
	return d
}

// Completion summarizes the per-request completion durations.
func (m *Metrics) Completion() Distribution {
	return NewDistribution(m.CompletionDurations)
}

// Print writes aggregated metrics at the end of the simulation to w.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Completed Requests   : %d\n", m.CompletedRequests)
	fmt.Fprintf(w, "Layers Completed     : %d\n", m.LayersCompleted)
	fmt.Fprintf(w, "Tasks Executed       : %d\n", m.TasksExecuted)
	fmt.Fprintf(w, "Simulation Ended At  : %d ticks\n", m.SimEndedTime)
	if m.CompletedRequests > 0 {
		d := m.Completion()
		fmt.Fprintf(w, "Mean Completion      : %.2f ticks\n", d.Mean)
		fmt.Fprintf(w, "StdDev Completion    : %.2f ticks\n", d.StdDev)
		fmt.Fprintf(w, "P50 / P90 / P99      : %.0f / %.0f / %.0f ticks\n", d.P50, d.P90, d.P99)
		fmt.Fprintf(w, "Min / Max            : %.0f / %.0f ticks\n", d.Min, d.Max)
	}
}

// metricsOutput is the JSON shape written by SaveResults.
type metricsOutput struct {
	CompletedRequests int              `json:"completed_requests"`
	LayersCompleted   int              `json:"layers_completed"`
	TasksExecuted     int64            `json:"tasks_executed"`
	SimEndedTime      int64            `json:"sim_ended_time"`
	Completion        Distribution     `json:"completion"`
	Durations         []int64          `json:"completion_durations"`
	Requests          map[string]int64 `json:"request_latencies"`
}

// SaveResults writes the metrics as indented JSON to path.
func (m *Metrics) SaveResults(path string) error {
	out := metricsOutput{
		CompletedRequests: m.CompletedRequests,
		LayersCompleted:   m.LayersCompleted,
		TasksExecuted:     m.TasksExecuted,
		SimEndedTime:      m.SimEndedTime,
		Completion:        m.Completion(),
		Durations:         m.CompletionDurations,
		Requests:          make(map[string]int64, len(m.RequestLatencies)),
	}
	for id, lat := range m.RequestLatencies {
		out.Requests[fmt.Sprintf("request_%d", id)] = lat
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	logrus.Debugf("Successfully wrote metrics to '%s'", path)
	return nil
}
