// Package trace provides per-layer execution recording for simulation analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TraceLevel controls the verbosity of execution tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelLayers captures one record per completed layer.
	TraceLevelLayers TraceLevel = "layers"
	// TraceLevelDispatch additionally captures every job dispatch.
	TraceLevelDispatch TraceLevel = "dispatch"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelLayers:   true,
	TraceLevelDispatch: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects execution records during a simulation.
type SimulationTrace struct {
	Config     TraceConfig
	Layers     []LayerRecord
	Dispatches []DispatchRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Layers:     make([]LayerRecord, 0),
		Dispatches: make([]DispatchRecord, 0),
	}
}

// RecordLayer appends a completed-layer record. No-op at TraceLevelNone.
func (st *SimulationTrace) RecordLayer(record LayerRecord) {
	if st.Config.Level == TraceLevelNone || st.Config.Level == "" {
		return
	}
	st.Layers = append(st.Layers, record)
}

// RecordDispatch appends a dispatch record. Only kept at TraceLevelDispatch.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	if st.Config.Level != TraceLevelDispatch {
		return
	}
	st.Dispatches = append(st.Dispatches, record)
}

// LayerDurations returns the durations of every recorded layer of one request,
// in layer order.
func (st *SimulationTrace) LayerDurations(requestID int64) []int64 {
	var out []int64
	for _, r := range st.Layers {
		if r.RequestID == requestID {
			out = append(out, r.Duration())
		}
	}
	return out
}
