package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/vvpsim/sim"
	"github.com/inference-sim/vvpsim/sim/trace"
	"github.com/inference-sim/vvpsim/sim/workload"
)

var (
	// Core pool and latency configuration
	numCores        int     // Number of homogeneous cores
	datapathLatency int64   // Delay (ticks) between arrival and first-layer eligibility
	overheadFactor  float64 // Inter-layer delay per unit of the next layer's input size

	// Workload configuration
	workloadPath   string  // Path to a workload YAML; overrides the flags below
	network        string  // Network preset name
	numRequests    int     // Number of requests to generate for run
	arrivalProcess string  // constant, burst, poisson, gamma, weibull
	interarrival   int64   // Ticks between constant/burst arrivals
	arrivalRate    float64 // Requests per tick for stochastic arrivals
	burstSize      int     // Requests per burst
	seed           int64   // Seed for stochastic arrivals

	// Output
	logLevel    string // Log verbosity level
	resultsPath string // File to write JSON metrics to
	traceLevel  string // none, layers or dispatch
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "vvpsim",
	Short: "Discrete-event simulator for layered inference on a pool of VVP cores",
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single simulation and report the mean completion time",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setLogLevel(); err != nil {
			return err
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			return fmt.Errorf("invalid trace level %q; valid: none, layers, dispatch", traceLevel)
		}

		spec, err := loadWorkload(numRequests)
		if err != nil {
			return err
		}
		cfg := simConfig()
		logrus.Infof("Starting simulation with %d cores, datapath latency=%d, overhead factor=%g, %d requests",
			cfg.Cores, cfg.DatapathLatency, cfg.OverheadFactor, spec.NumRequests)

		startTime := time.Now()
		s, mean, err := simulate(spec, cfg, trace.TraceLevel(traceLevel))
		if err != nil {
			return err
		}
		logrus.Infof("Simulation complete in %v", time.Since(startTime))

		out := cmd.OutOrStdout()
		s.Metrics.Print(out)
		fmt.Fprintf(out, "Mean completion time: %.2f ticks\n", mean)
		if s.Trace != nil {
			printTraceSummary(out, trace.Summarize(s.Trace))
		}
		if resultsPath != "" {
			if err := s.Metrics.SaveResults(resultsPath); err != nil {
				return err
			}
		}
		return nil
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setLogLevel() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)
	return nil
}

func simConfig() sim.Config {
	return sim.Config{
		Cores:           numCores,
		DatapathLatency: datapathLatency,
		OverheadFactor:  overheadFactor,
	}
}

// loadWorkload reads --workload when given, and otherwise builds the spec from
// flags with n requests.
func loadWorkload(n int) (*workload.WorkloadSpec, error) {
	if workloadPath != "" {
		spec, err := workload.LoadWorkloadSpec(workloadPath)
		if err != nil {
			return nil, err
		}
		logrus.Infof("Loaded workload from %s", workloadPath)
		return spec, nil
	}
	return &workload.WorkloadSpec{
		Version:     "1",
		Seed:        seed,
		NumRequests: n,
		Network:     network,
		Arrival: workload.ArrivalSpec{
			Process:      arrivalProcess,
			Interarrival: interarrival,
			Rate:         arrivalRate,
			BurstSize:    burstSize,
		},
	}, nil
}

// simulate schedules every arrival of spec on a fresh Simulator and runs it.
func simulate(spec *workload.WorkloadSpec, cfg sim.Config, level trace.TraceLevel) (*sim.Simulator, float64, error) {
	arrivals, err := workload.GenerateArrivals(spec)
	if err != nil {
		return nil, 0, err
	}
	s := sim.NewSimulator()
	if level != "" && level != trace.TraceLevelNone {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
	}
	if _, err := workload.ScheduleAll(s, arrivals); err != nil {
		return nil, 0, err
	}
	mean, err := s.Run(cfg)
	if err != nil {
		return nil, 0, err
	}
	return s, mean, nil
}

func printTraceSummary(w io.Writer, summary *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Layer Trace ===")
	fmt.Fprintf(w, "Layers Recorded      : %d\n", summary.TotalLayers)
	fmt.Fprintf(w, "Dispatches Recorded  : %d\n", summary.TotalDispatches)
	fmt.Fprintf(w, "Requests Traced      : %d\n", summary.UniqueRequests)
	for _, ls := range summary.PerLayer {
		fmt.Fprintf(w, "  layer %d: count=%d mean=%.2f max=%d ticks\n",
			ls.LayerIndex, ls.Count, ls.MeanDuration, ls.MaxDuration)
	}
}

// addSimFlags registers the flags shared by run and sweep.
func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&numCores, "cores", 300, "Number of cores")
	cmd.Flags().Int64Var(&datapathLatency, "datapath-latency", 0, "Ticks between request arrival and first-layer eligibility")
	cmd.Flags().Float64Var(&overheadFactor, "overhead-factor", 0, "Inter-layer delay per unit of the next layer's input size")

	cmd.Flags().StringVar(&workloadPath, "workload", "", "Path to workload YAML (overrides the workload flags)")
	cmd.Flags().StringVar(&network, "network", workload.DefaultNetwork, fmt.Sprintf("Network preset %v", workload.NetworkNames()))
	cmd.Flags().StringVar(&arrivalProcess, "arrival", "constant", "Arrival process (constant, burst, poisson, gamma, weibull)")
	cmd.Flags().Int64Var(&interarrival, "interarrival", 0, "Ticks between arrivals (constant) or bursts (burst)")
	cmd.Flags().Float64Var(&arrivalRate, "rate", 0.001, "Requests per tick for stochastic arrival processes")
	cmd.Flags().IntVar(&burstSize, "burst-size", 1, "Requests per burst")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for stochastic arrivals")

	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&numRequests, "num-requests", 1, "Number of requests")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "File to save metrics as JSON")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, layers, dispatch)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
