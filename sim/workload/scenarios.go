package workload

// Built-in scenario presets for common workload patterns.
// Each returns a valid WorkloadSpec ready for use with GenerateArrivals.

// ScenarioBackToBack spaces n LeNet-300-100 requests evenly, interarrival ticks apart.
func ScenarioBackToBack(n int, interarrival int64) *WorkloadSpec {
	return &WorkloadSpec{
		Version: "1", NumRequests: n, Network: DefaultNetwork,
		Arrival: ArrivalSpec{Process: "constant", Interarrival: interarrival},
	}
}

// ScenarioBurstyTraffic creates a spec with Gamma-distributed bursty arrivals.
func ScenarioBurstyTraffic(seed int64, n int, ratePerTick float64) *WorkloadSpec {
	cv := 3.5
	return &WorkloadSpec{
		Version: "1", Seed: seed, NumRequests: n, Network: DefaultNetwork,
		Arrival: ArrivalSpec{Process: "gamma", Rate: ratePerTick, CV: &cv},
	}
}

// ScenarioPoisson creates a spec with memoryless arrivals.
func ScenarioPoisson(seed int64, n int, ratePerTick float64) *WorkloadSpec {
	return &WorkloadSpec{
		Version: "1", Seed: seed, NumRequests: n, Network: DefaultNetwork,
		Arrival: ArrivalSpec{Process: "poisson", Rate: ratePerTick},
	}
}
