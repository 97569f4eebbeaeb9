// bench runs an instrumented synthetic workload and prints its checkpoint
// report, demonstrating the timer and renderer end to end.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/and161185/checkpoint-timer/model"
	"github.com/and161185/checkpoint-timer/timer"
)

var (
	iterations      int
	allocKB         int
	memoryProfiling bool
	format          string
)

var rootCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run an instrumented synthetic workload and print its checkpoint report",
	Long: `bench starts a timer, runs a synthetic workload that sleeps and allocates
memory on every iteration, records a checkpoint per iteration, and prints the
resulting checkpoint and average tables.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().IntVar(&iterations, "iterations", 5, "number of workload iterations")
	rootCmd.Flags().IntVar(&allocKB, "alloc-kb", 64, "memory allocated per iteration, in KB")
	rootCmd.Flags().BoolVar(&memoryProfiling, "memory", false, "capture memory snapshots on every checkpoint")
	rootCmd.Flags().StringVar(&format, "format", string(model.ModeTerminal), "report format: terminal or markup")
}

func run(cmd *cobra.Command, args []string) error {
	mode := model.ModeTerminal
	if model.Mode(format) == model.ModeMarkup {
		mode = model.ModeMarkup
	}

	opts := []timer.Option{timer.WithRenderMode(mode)}
	if memoryProfiling {
		opts = append(opts, timer.WithMemoryProfiling())
	}
	t := timer.New(opts...)

	if err := t.Start(); err != nil {
		return err
	}

	// hold allocations so memory diffs are visible in the report
	sink := make([][]byte, 0, iterations)
	for i := 0; i < iterations; i++ {
		sink = append(sink, make([]byte, allocKB*1024))
		time.Sleep(time.Duration(i+1) * time.Millisecond)
		if err := t.Checkpoint("iteration"); err != nil {
			return err
		}
	}

	if err := t.Finish(); err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), t.String())

	if avg := t.AverageCheckpointTime("iteration"); avg != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "\naverage iteration time: %.4fs\n", avg.Seconds())
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
