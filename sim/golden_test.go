package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/vvpsim/sim"
	"github.com/inference-sim/vvpsim/sim/internal/testutil"
	"github.com/inference-sim/vvpsim/sim/workload"
)

// TestSimulator_GoldenDataset replays every golden case through the workload
// generator and checks counters exactly and completion times to 1e-9.
func TestSimulator_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			spec := workload.ScenarioBackToBack(tc.NumRequests, tc.Interarrival)
			spec.Network = tc.Network
			arrivals, err := workload.GenerateArrivals(spec)
			require.NoError(t, err)

			s := sim.NewSimulator()
			_, err = workload.ScheduleAll(s, arrivals)
			require.NoError(t, err)
			mean, err := s.Run(sim.Config{Cores: tc.Cores, DatapathLatency: tc.DatapathLatency, OverheadFactor: tc.OverheadFactor})
			require.NoError(t, err)

			want := tc.Metrics
			assert.Equal(t, want.CompletedRequests, s.Metrics.CompletedRequests, "completed_requests")
			assert.Equal(t, want.LayersCompleted, s.Metrics.LayersCompleted, "layers_completed")
			assert.Equal(t, want.TasksExecuted, s.Metrics.TasksExecuted, "tasks_executed")
			assert.Equal(t, want.SimEndedTime, s.Metrics.SimEndedTime, "sim_ended_time")
			testutil.AssertFloat64Equal(t, "mean_completion", want.MeanCompletion, mean, 1e-9)
			testutil.AssertFloat64Equal(t, "max_completion", want.MaxCompletion, s.Metrics.Completion().Max, 1e-9)
		})
	}
}
