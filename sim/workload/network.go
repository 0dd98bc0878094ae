package workload

import (
	"sort"

	"github.com/inference-sim/vvpsim/sim"
)

// Built-in fully-connected network presets. Each layer's input size is the
// per-VVP processing time; its VVP count is the number of output neurons.
var networks = map[string][]sim.Layer{
	"lenet-300-100": {{InputSize: 784, VVPCount: 300}, {InputSize: 300, VVPCount: 100}, {InputSize: 100, VVPCount: 10}},
	"lenet-500-150": {{InputSize: 784, VVPCount: 500}, {InputSize: 500, VVPCount: 150}, {InputSize: 150, VVPCount: 10}},
	"mnist-linear":  {{InputSize: 784, VVPCount: 10}},
}

// DefaultNetwork is the preset used when none is given.
const DefaultNetwork = "lenet-300-100"

// Network returns a copy of the named preset.
func Network(name string) ([]sim.Layer, bool) {
	layers, ok := networks[name]
	if !ok {
		return nil, false
	}
	out := make([]sim.Layer, len(layers))
	copy(out, layers)
	return out, true
}

// NetworkNames lists the available presets in sorted order.
func NetworkNames() []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
