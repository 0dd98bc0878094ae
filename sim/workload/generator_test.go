package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/vvpsim/sim"
)

func TestGenerateArrivals_BackToBack_EvenlySpaced(t *testing.T) {
	// GIVEN 5 LeNet requests 1200 ticks apart
	spec := ScenarioBackToBack(5, 1200)

	// WHEN arrivals are generated
	arrivals, err := GenerateArrivals(spec)
	require.NoError(t, err)

	// THEN they are at 0, 1200, ..., 4800 and all run the preset
	require.Len(t, arrivals, 5)
	lenet, _ := Network(DefaultNetwork)
	for i, a := range arrivals {
		assert.Equal(t, int64(i)*1200, a.Time)
		assert.Equal(t, lenet, a.Layers)
	}
}

func TestGenerateArrivals_StartTime_OffsetsFirstArrival(t *testing.T) {
	spec := ScenarioBackToBack(2, 10)
	spec.StartTime = 7

	arrivals, err := GenerateArrivals(spec)
	require.NoError(t, err)

	assert.Equal(t, int64(7), arrivals[0].Time)
	assert.Equal(t, int64(17), arrivals[1].Time)
}

func TestGenerateArrivals_SameSeed_Deterministic(t *testing.T) {
	a, err := GenerateArrivals(ScenarioPoisson(42, 50, 0.002))
	require.NoError(t, err)
	b, err := GenerateArrivals(ScenarioPoisson(42, 50, 0.002))
	require.NoError(t, err)

	require.Len(t, a, 50)
	for i := range a {
		assert.Equal(t, a[i].Time, b[i].Time, "arrival %d", i)
	}
}

func TestGenerateArrivals_NonDecreasingTimes(t *testing.T) {
	arrivals, err := GenerateArrivals(ScenarioBurstyTraffic(3, 200, 0.01))
	require.NoError(t, err)

	for i := 1; i < len(arrivals); i++ {
		assert.GreaterOrEqual(t, arrivals[i].Time, arrivals[i-1].Time)
	}
}

func TestGenerateArrivals_InvalidSpec_ReturnsError(t *testing.T) {
	_, err := GenerateArrivals(&WorkloadSpec{NumRequests: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid workload spec")
}

func TestScheduleAll_AssignsSequentialIDs(t *testing.T) {
	// GIVEN three arrivals and a fresh simulator
	arrivals, err := GenerateArrivals(ScenarioBackToBack(3, 2000))
	require.NoError(t, err)
	s := sim.NewSimulator()

	// WHEN all are scheduled and run on 300 cores
	ids, err := ScheduleAll(s, arrivals)
	require.NoError(t, err)
	mean, err := s.Run(sim.Config{Cores: 300})
	require.NoError(t, err)

	// THEN ids are 0..2 and no request contends with another
	assert.Equal(t, []int64{0, 1, 2}, ids)
	assert.Equal(t, 1184.0, mean)
}

func TestScheduleAll_RejectedArrival_StopsAndReports(t *testing.T) {
	s := sim.NewSimulator()
	arrivals := []Arrival{
		{Time: 0, Layers: []sim.Layer{{InputSize: 1, VVPCount: 1}}},
		{Time: 1, Layers: nil},
	}

	ids, err := ScheduleAll(s, arrivals)

	assert.ErrorIs(t, err, sim.ErrInvalidInput)
	assert.Equal(t, []int64{0}, ids)
}

func TestNetwork_ReturnsCopy(t *testing.T) {
	layers, ok := Network(DefaultNetwork)
	require.True(t, ok)
	layers[0].InputSize = 1

	again, _ := Network(DefaultNetwork)
	assert.Equal(t, int64(784), again[0].InputSize)
}

func TestNetworkNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"lenet-300-100", "lenet-500-150", "mnist-linear"}, NetworkNames())
}
