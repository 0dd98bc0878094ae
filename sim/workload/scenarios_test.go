package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios_AllValid(t *testing.T) {
	scenarios := map[string]*WorkloadSpec{
		"back-to-back": ScenarioBackToBack(5, 100),
		"bursty":       ScenarioBurstyTraffic(7, 50, 0.001),
		"poisson":      ScenarioPoisson(7, 50, 0.001),
	}
	for name, spec := range scenarios {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, spec.Validate())
			arrivals, err := GenerateArrivals(spec)
			require.NoError(t, err)
			assert.Len(t, arrivals, spec.NumRequests)
			assert.Equal(t, int64(0), arrivals[0].Time)
		})
	}
}
