// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/vvpsim/sim/trace"
)

// Simulator is the core object that holds simulation time, the core pool,
// the global event timeline and per-request bookkeeping.
// One Simulator models one run; construct a fresh instance per run.
type Simulator struct {
	Clock int64
	// Timeline has all pending events: request arrivals and layer jobs
	Timeline *Timeline
	Cores    []*Core
	Metrics  *Metrics
	// Trace collects per-layer records when non-nil
	Trace *trace.SimulationTrace

	config        Config
	nextCore      int   // round-robin dispatch cursor, never reset
	nextRequestID int64 // id assigned to the next admitted Schedule call
	ran           bool
	requests      []*Request // every admitted request, in id order

	arrivalTimes   map[int64]int64          // request ID -> arrival tick
	lastCompletion map[int64]int64          // request ID -> latest task completion tick
	inProgress     map[int64]bool           // request IDs arrived but not finalized
	progress       map[int64]*LayerProgress // request ID -> current layer
}

func NewSimulator() *Simulator {
	return &Simulator{
		Timeline:       NewTimeline(),
		Metrics:        NewMetrics(),
		arrivalTimes:   make(map[int64]int64),
		lastCompletion: make(map[int64]int64),
		inProgress:     make(map[int64]bool),
		progress:       make(map[int64]*LayerProgress),
	}
}

// Schedule registers a request with the given layer chain arriving at arrivalTime
// and returns its id. Malformed input is rejected with ErrInvalidInput and
// consumes no id. The layers are copied; the caller may reuse the slice.
func (sim *Simulator) Schedule(layers []Layer, arrivalTime int64) (int64, error) {
	if sim.ran {
		return 0, ErrAlreadyRun
	}
	if err := ValidateLayers(layers); err != nil {
		return 0, err
	}
	if arrivalTime < 0 {
		return 0, fmt.Errorf("arrival time %d is negative: %w", arrivalTime, ErrInvalidInput)
	}
	req := NewRequest(sim.nextRequestID, arrivalTime, layers)
	sim.nextRequestID++
	sim.requests = append(sim.requests, req)
	sim.Timeline.Merge(&ArrivalEvent{time: arrivalTime, Request: req})
	logrus.Debugf("Scheduled request %d at %d ticks with layers %v", req.ID, arrivalTime, req.Layers)
	return req.ID, nil
}

// Scheduled returns how many requests have been admitted by Schedule.
func (sim *Simulator) Scheduled() int64 {
	return sim.nextRequestID
}

// Run executes the simulation to quiescence and returns the mean completion
// time over all scheduled requests.
func (sim *Simulator) Run(cfg Config) (float64, error) {
	if sim.ran {
		return 0, ErrAlreadyRun
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	horizon, err := cfg.horizon(sim.requests)
	if err != nil {
		return 0, err
	}
	sim.ran = true
	sim.config = cfg
	sim.Cores = make([]*Core, cfg.Cores)
	for i := range sim.Cores {
		sim.Cores[i] = NewCore(i)
	}

	logrus.Infof("Starting simulation with %d cores, %d requests, datapathLatency=%d, overheadFactor=%v, horizon=%d",
		cfg.Cores, sim.nextRequestID, cfg.DatapathLatency, cfg.OverheadFactor, horizon)

	for sim.Timeline.Len() > 0 || len(sim.inProgress) > 0 {
		sim.tick(sim.Clock)
		sim.Metrics.SimEndedTime = sim.Clock
		if sim.Timeline.Len() == 0 && len(sim.inProgress) == 0 {
			break
		}
		sim.Clock = sim.nextTick(sim.Clock)
	}
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)

	mean, err := sim.Metrics.MeanCompletionTime()
	if err != nil {
		return 0, fmt.Errorf("%d requests scheduled: %w", sim.nextRequestID, err)
	}
	return mean, nil
}

// CompletionTimes returns the per-request completion durations in completion order.
func (sim *Simulator) CompletionTimes() []int64 {
	out := make([]int64, len(sim.Metrics.CompletionDurations))
	copy(out, sim.Metrics.CompletionDurations)
	return out
}

// RequestState reports where a request is in its lifecycle.
// The boolean is false for ids that were never assigned.
func (sim *Simulator) RequestState(id int64) (RequestState, bool) {
	if id < 0 || id >= sim.nextRequestID {
		return "", false
	}
	if sim.inProgress[id] {
		return StateInProgress, true
	}
	if _, done := sim.Metrics.RequestLatencies[id]; done {
		return StateCompleted, true
	}
	return StatePending, true
}

// tick resolves every event at now: drain ready events, step all cores, feed
// their completions back. Repeats while completions emit new events at now,
// so a request can cross several layer boundaries within one tick.
func (sim *Simulator) tick(now int64) {
	for {
		sim.drainReady(now)

		var completions []Completion
		for _, core := range sim.Cores {
			completions = append(completions, core.Step(now)...)
		}
		for _, c := range completions {
			sim.Metrics.TasksExecuted++
			sim.updateLayerProgress(c.RequestID, now)
		}

		if ev := sim.Timeline.Peek(); ev == nil || ev.Timestamp() != now {
			return
		}
	}
}

// drainReady pops and executes every event whose timestamp is now.
func (sim *Simulator) drainReady(now int64) {
	for ev := sim.Timeline.Peek(); ev != nil && ev.Timestamp() <= now; ev = sim.Timeline.Peek() {
		if ev.Timestamp() < now {
			panic(fmt.Errorf("event %T for request %d at tick %d is behind clock %d: %w",
				ev, ev.RequestID(), ev.Timestamp(), now, ErrInternalInconsistency))
		}
		sim.Timeline.PopNext()
		logrus.Tracef("[tick %07d] Executing %T", now, ev)
		ev.Execute(sim)
	}
}

// nextTick returns the next tick at which anything can happen. Ticks in between
// would be no-ops, so skipping them leaves all timings unchanged.
func (sim *Simulator) nextTick(now int64) int64 {
	next := int64(math.MaxInt64)
	found := false
	if ev := sim.Timeline.Peek(); ev != nil {
		next = ev.Timestamp()
		found = true
	}
	for _, core := range sim.Cores {
		if t, ok := core.NextActivity(now + 1); ok {
			next = min(next, t)
			found = true
		}
	}
	if !found {
		panic(fmt.Errorf("%d requests in progress at tick %d with no pending work: %w",
			len(sim.inProgress), now, ErrInternalInconsistency))
	}
	return max(next, now+1)
}

// admit records an arrival and merges the Job for the request's first layer.
func (sim *Simulator) admit(req *Request, now int64) {
	if _, seen := sim.arrivalTimes[req.ID]; seen {
		panic(fmt.Errorf("request %d arrived twice: %w", req.ID, ErrInternalInconsistency))
	}
	sim.arrivalTimes[req.ID] = now
	job, dependent := req.GenJobDAG(now, sim.config.DatapathLatency)
	sim.Timeline.Merge(&JobReadyEvent{Job: job})
	sim.inProgress[req.ID] = true
	sim.progress[req.ID] = newLayerProgress(job.LayerIndex, job.StartTime, job.VVPCount, dependent)
}

// dispatch expands a job into tasks and hands them to cores in strict
// round-robin order, regardless of per-core queue depth.
func (sim *Simulator) dispatch(job *Job) {
	if _, ok := sim.progress[job.RequestID]; !ok {
		panic(fmt.Errorf("job for unknown request %d: %w", job.RequestID, ErrInternalInconsistency))
	}
	n := len(sim.Cores)
	first := sim.nextCore % n
	for _, task := range job.GenTasks() {
		sim.Cores[sim.nextCore%n].ScheduleVVP(task)
		sim.nextCore++
	}
	if sim.Trace != nil {
		sim.Trace.RecordDispatch(trace.DispatchRecord{
			RequestID:  job.RequestID,
			LayerIndex: job.LayerIndex,
			Clock:      job.StartTime,
			FirstCore:  first,
			Tasks:      job.VVPCount,
		})
	}
	logrus.Debugf("[tick %07d] Dispatched %d tasks of request %d layer %d starting at core %d",
		job.StartTime, job.VVPCount, job.RequestID, job.LayerIndex, first)
}

// updateLayerProgress handles one completed task of request reqID at tick now.
// When the task was the last of its layer, the next layer's Job is emitted
// after the inter-layer overhead, or the request is finalized.
func (sim *Simulator) updateLayerProgress(reqID int64, now int64) {
	p, ok := sim.progress[reqID]
	if !ok {
		panic(fmt.Errorf("task completion for unknown request %d at tick %d: %w", reqID, now, ErrInternalInconsistency))
	}
	if last, seen := sim.lastCompletion[reqID]; !seen || now > last {
		sim.lastCompletion[reqID] = now
	}
	if p.VVPsRemaining <= 0 {
		panic(fmt.Errorf("request %d layer %d has no outstanding tasks: %w", reqID, p.LayerIndex, ErrInternalInconsistency))
	}
	p.VVPsRemaining--
	if p.VVPsRemaining > 0 {
		return
	}

	sim.Metrics.LayersCompleted++
	if sim.Trace != nil {
		sim.Trace.RecordLayer(trace.LayerRecord{
			RequestID:   reqID,
			LayerIndex:  p.LayerIndex,
			VVPCount:    p.VVPCount,
			ReadyAt:     p.ReadyAt,
			CompletedAt: now,
		})
	}

	if p.HasDependents() {
		next := p.DependentLayers[0]
		job := &Job{
			StartTime:    now + sim.config.interLayerDelay(next.InputSize),
			RequestID:    reqID,
			LayerIndex:   p.LayerIndex + 1,
			VVPCount:     next.VVPCount,
			TaskDuration: next.InputSize,
		}
		sim.Timeline.Merge(&JobReadyEvent{Job: job})
		sim.progress[reqID] = newLayerProgress(job.LayerIndex, job.StartTime, next.VVPCount, p.DependentLayers[1:])
		logrus.Debugf("[tick %07d] Request %d finished layer %d; layer %d ready at %d",
			now, reqID, p.LayerIndex, job.LayerIndex, job.StartTime)
		return
	}

	duration := max(now, sim.lastCompletion[reqID]) - sim.arrivalTimes[reqID]
	sim.Metrics.recordCompletion(reqID, duration)
	delete(sim.inProgress, reqID)
	delete(sim.progress, reqID)
	logrus.Infof("Finished request %d at tick %d, completion time %d", reqID, now, duration)
}
