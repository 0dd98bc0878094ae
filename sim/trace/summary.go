package trace

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// LayerStats aggregates the durations of one layer index across requests.
type LayerStats struct {
	LayerIndex   int
	Count        int
	MeanDuration float64
	MaxDuration  int64
}

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalLayers     int
	TotalDispatches int
	UniqueRequests  int
	PerLayer        []LayerStats // sorted by LayerIndex
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.TotalLayers = len(st.Layers)
	summary.TotalDispatches = len(st.Dispatches)

	requests := make(map[int64]struct{})
	durations := make(map[int][]float64)
	maxima := make(map[int]int64)
	for _, r := range st.Layers {
		requests[r.RequestID] = struct{}{}
		d := r.Duration()
		durations[r.LayerIndex] = append(durations[r.LayerIndex], float64(d))
		if d > maxima[r.LayerIndex] {
			maxima[r.LayerIndex] = d
		}
	}
	summary.UniqueRequests = len(requests)

	for idx, ds := range durations {
		summary.PerLayer = append(summary.PerLayer, LayerStats{
			LayerIndex:   idx,
			Count:        len(ds),
			MeanDuration: stat.Mean(ds, nil),
			MaxDuration:  maxima[idx],
		})
	}
	sort.Slice(summary.PerLayer, func(i, j int) bool {
		return summary.PerLayer[i].LayerIndex < summary.PerLayer[j].LayerIndex
	})

	return summary
}
