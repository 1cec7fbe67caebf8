package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/TommyTokk/parole-bot/internal/logging"
	"github.com/TommyTokk/parole-bot/internal/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <results.csv>",
		Short: "Print per-configuration statistics without drawing a chart",
		Long: `Compute the statistics shown in the chart annotations and print them.

For every max_iterations row: total attempts, failures, successes,
average attempts and variance over successful runs, and success rate.

Examples:
  solveplot stats results.csv
  solveplot stats results.csv --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

			_, s, err := analyze(logger, args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"records":    s.Records,
					"warnings":   warningsOrEmpty(s),
					"duplicates": duplicatesOrEmpty(s),
				})
			}

			printWarnings(out, s)
			printStats(out, s)
			return nil
		},
	}
}

func printStats(w io.Writer, s *stats.Summary) {
	fmt.Fprintf(w, "Solver Statistics\n")
	fmt.Fprintf(w, "=================\n\n")

	if len(s.Records) == 0 {
		fmt.Fprintln(w, "No rows found.")
		return
	}

	fmt.Fprintf(w, "%10s %8s %8s %9s %8s %9s %8s\n",
		"Iterations", "Total", "Failed", "Succeeded", "Avg", "Variance", "Success")
	fmt.Fprintln(w, strings.Repeat("-", 66))
	for _, r := range s.Records {
		fmt.Fprintf(w, "%10d %8.0f %8.0f %9.0f %8.2f %9.2f %7.1f%%\n",
			r.MaxIterations, r.TotalAttempts, r.Failures, r.Successes,
			r.AvgAttempts, r.Variance, r.SuccessRate)
	}
}
