package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/vvpsim/sim/sweep"
)

var (
	sweepParam    string // interarrival or cores
	sweepFrom     int64  // first swept value
	sweepTo       int64  // exclusive upper bound
	sweepStep     int64  // increment between values
	sweepWorkers  int    // concurrent simulations
	sweepCSV      bool   // emit CSV instead of a table
	sweepRequests int    // requests per simulated point
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one simulation per value of a parameter and report mean completion times",
	Long: "Sweep the inter-arrival time or the core count over [from, to) in steps of step. " +
		"Each value runs on its own simulator; points are printed in value order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setLogLevel(); err != nil {
			return err
		}
		if !sweep.IsValidParam(sweepParam) {
			return fmt.Errorf("invalid sweep parameter %q; valid: interarrival, cores", sweepParam)
		}
		wl, err := loadWorkload(sweepRequests)
		if err != nil {
			return err
		}

		spec := sweep.Spec{
			Param:    sweep.Param(sweepParam),
			From:     sweepFrom,
			To:       sweepTo,
			Step:     sweepStep,
			Workload: *wl,
			Config:   simConfig(),
			Workers:  sweepWorkers,
		}
		logrus.Infof("Sweeping %s over [%d, %d) step %d with %d workers", spec.Param, spec.From, spec.To, spec.Step, spec.Workers)

		points, err := sweep.Run(cmd.Context(), spec)
		if err != nil {
			return err
		}
		if sweepCSV {
			return writeSweepCSV(cmd.OutOrStdout(), spec.Param, points)
		}
		writeSweepTable(cmd.OutOrStdout(), spec.Param, points)
		return nil
	},
}

func writeSweepTable(w io.Writer, param sweep.Param, points []sweep.Point) {
	fmt.Fprintf(w, "%-14s %12s %10s %10s %10s\n", param, "mean", "p50", "p99", "max")
	for _, p := range points {
		fmt.Fprintf(w, "%-14d %12.2f %10.0f %10.0f %10.0f\n",
			p.Value, p.Mean, p.Completion.P50, p.Completion.P99, p.Completion.Max)
	}
}

func writeSweepCSV(w io.Writer, param sweep.Param, points []sweep.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{string(param), "mean_completion", "p50", "p90", "p99", "max"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatInt(p.Value, 10),
			strconv.FormatFloat(p.Mean, 'f', 2, 64),
			strconv.FormatFloat(p.Completion.P50, 'f', 0, 64),
			strconv.FormatFloat(p.Completion.P90, 'f', 0, 64),
			strconv.FormatFloat(p.Completion.P99, 'f', 0, 64),
			strconv.FormatFloat(p.Completion.Max, 'f', 0, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func init() {
	addSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepRequests, "num-requests", 100, "Number of requests per point")
	sweepCmd.Flags().StringVar(&sweepParam, "param", string(sweep.ParamInterarrival), "Parameter to sweep (interarrival, cores)")
	sweepCmd.Flags().Int64Var(&sweepFrom, "from", 100, "First swept value")
	sweepCmd.Flags().Int64Var(&sweepTo, "to", 2000, "Upper bound of the sweep (exclusive)")
	sweepCmd.Flags().Int64Var(&sweepStep, "step", 100, "Increment between swept values")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 4, "Number of simulations to run concurrently")
	sweepCmd.Flags().BoolVar(&sweepCSV, "csv", false, "Write results as CSV")

	rootCmd.AddCommand(sweepCmd)
}
