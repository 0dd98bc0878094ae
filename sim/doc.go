// Package sim provides the core discrete-event simulation engine for vvpsim:
// a fixed pool of homogeneous cores executing layered feed-forward inference
// requests, one vector-vector product (VVP) per task.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - request.go, job.go: a Request expands into one Job per layer, a Job into VVP tasks
//   - event.go, timeline.go: arrival and job-ready events on the global timeline
//   - core.go: the per-core Idle/Busy state machine and its FIFO task queue
//   - simulator.go: the tick loop, round-robin dispatch and layer bookkeeping
//
// # Tick Semantics
//
// Time advances in integer ticks. Within a tick the simulator drains every
// ready event, steps every core in index order, then feeds completions back
// into per-request layer progress. If that emits new events for the same tick
// the tick is resolved again, so zero-latency layer transitions happen within
// the tick that finished the previous layer.
//
// # Sub-packages
//   - sim/workload/: YAML workload specs, network presets and arrival processes
//   - sim/trace/: per-layer execution records
//   - sim/sweep/: parameter sweeps over fresh Simulator instances
package sim
