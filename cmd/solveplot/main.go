package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/TommyTokk/parole-bot/internal/config"
	"github.com/TommyTokk/parole-bot/internal/logging"
	"github.com/TommyTokk/parole-bot/internal/render"
	"github.com/TommyTokk/parole-bot/internal/stats"
	"github.com/TommyTokk/parole-bot/internal/table"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "solveplot <results.csv>",
		Short: "Chart word-solver performance by number of attempts",
		Long: `solveplot reads a CSV of solver results, one row per max_iterations
setting with a count per number of attempts, and draws a grouped bar
chart annotated with the average attempts, variance and success rate
of every setting.

The chart is written to imgs/word_solving_performance.png unless
--output-dir or --format say otherwise.

Examples:
  solveplot results.csv
  solveplot results.csv --format svg --output-dir charts
  solveplot results.csv --success-chart --json`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE:          runPlot,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory for written charts (default \"imgs\")")
	rootCmd.PersistentFlags().String("format", "", "Image format: png or svg (default \"png\")")
	rootCmd.PersistentFlags().String("log-level", "", "Log verbosity: info, debug or trace (default \"info\")")

	rootCmd.Flags().Bool("success-chart", false, "Also write a success-rate chart")

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatsCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

func runPlot(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

	t, s, err := analyze(logger, args[0])
	if err != nil {
		return err
	}
	if !jsonOut {
		printWarnings(out, s)
	}

	opts := render.OptionsFromConfig(cfg)
	path, err := render.Render(t, s, opts)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	logger.Info("chart written", "path", path)
	outputs := []string{path}

	if cfg.Output.SuccessChart {
		successPath, err := render.RenderSuccessChart(s, opts)
		if err != nil {
			return fmt.Errorf("failed to render success chart: %w", err)
		}
		logger.Info("success chart written", "path", successPath)
		outputs = append(outputs, successPath)
	}

	if jsonOut {
		return json.NewEncoder(out).Encode(map[string]interface{}{
			"records":    s.Records,
			"warnings":   warningsOrEmpty(s),
			"duplicates": duplicatesOrEmpty(s),
			"outputs":    outputs,
		})
	}
	for _, p := range outputs {
		fmt.Fprintf(out, "Chart written to %s\n", p)
	}
	return nil
}

// loadConfig resolves the effective configuration: defaults, then the
// --config file, then SOLVEPLOT_* variables, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.Output.Dir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Lookup("success-chart") != nil && flags.Changed("success-chart") {
		cfg.Output.SuccessChart, _ = flags.GetBool("success-chart")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// analyze loads the results table at path and computes its statistics.
func analyze(logger *slog.Logger, path string) (*table.Table, *stats.Summary, error) {
	t, err := table.ReadCSV(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load results: %w", err)
	}

	rows, cols := t.Shape()
	logging.Trace(logger, "table loaded", "path", path, "rows", rows, "columns", cols)
	for _, c := range t.Columns() {
		logging.Trace(logger, "column classified", "label", c.Label, "kind", c.Kind.String())
	}

	s := stats.Compute(t)
	for _, iters := range s.Duplicates {
		logger.Warn("duplicate max_iterations, keeping the last row", "max_iterations", iters)
	}
	for _, r := range s.Records {
		logger.Debug("row statistics",
			"max_iterations", r.MaxIterations,
			"total", r.TotalAttempts,
			"failures", r.Failures,
			"avg_attempts", r.AvgAttempts,
			"variance", r.Variance,
			"success_rate", r.SuccessRate)
	}
	return t, s, nil
}

func printWarnings(w io.Writer, s *stats.Summary) {
	for _, warn := range s.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warn)
	}
}

func warningsOrEmpty(s *stats.Summary) []stats.LabelWarning {
	if s.Warnings == nil {
		return []stats.LabelWarning{}
	}
	return s.Warnings
}

func duplicatesOrEmpty(s *stats.Summary) []int {
	if s.Duplicates == nil {
		return []int{}
	}
	return s.Duplicates
}
