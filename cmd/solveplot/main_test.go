package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TommyTokk/parole-bot/internal/config"
	"github.com/TommyTokk/parole-bot/internal/stats"
	"github.com/TommyTokk/parole-bot/internal/table"
	"gopkg.in/yaml.v3"
)

const resultsCSV = `max_iterations , 1 , 2 , 3 , 4 , 5 , 6 , >6
50 , 1 , 4 , 12 , 8 , 6 , 2 , 2
100 , 5 , 3 , 0 , 0 , 0 , 0 , 2
`

const smallChartYAML = `chart:
  width_inches: 4
  height_inches: 3
  dpi: 30
`

// isolateEnv clears SOLVEPLOT_* variables so the host environment cannot
// change test results.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SOLVEPLOT_LOG_LEVEL", "SOLVEPLOT_OUTPUT_DIR", "SOLVEPLOT_FORMAT", "SOLVEPLOT_DPI"} {
		t.Setenv(key, "")
	}
}

// setupWorkdir creates a temp working directory holding results.csv and
// a small-chart config.yaml, and changes into it.
func setupWorkdir(t *testing.T, csv string) string {
	t.Helper()
	isolateEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "results.csv"), csv)
	writeFile(t, filepath.Join(dir, "config.yaml"), smallChartYAML)
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunPlotWritesDefaultChart(t *testing.T) {
	dir := setupWorkdir(t, resultsCSV)

	stdout, _, err := execute(t, "results.csv", "--config", "config.yaml")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	want := filepath.Join("imgs", "word_solving_performance.png")
	if !strings.Contains(stdout, "Chart written to "+want) {
		t.Errorf("stdout = %q, want mention of %s", stdout, want)
	}

	info, err := os.Stat(filepath.Join(dir, want))
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestRunPlotFlagsOverrideConfig(t *testing.T) {
	dir := setupWorkdir(t, resultsCSV)

	_, _, err := execute(t, "results.csv", "--config", "config.yaml", "--format", "svg", "--output-dir", "charts")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "charts", "word_solving_performance.svg")); err != nil {
		t.Errorf("svg chart not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "imgs")); err == nil {
		t.Error("default output dir should not be created")
	}
}

func TestRunPlotLabelWarnings(t *testing.T) {
	setupWorkdir(t, "max_iterations,1,x,>6\n10,1,5,0\n20,2,5,1\n")

	stdout, _, err := execute(t, "results.csv", "--config", "config.yaml")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	warning := "Warning: Could not convert column 'x' to integer\n"
	if got := strings.Count(stdout, warning); got != 2 {
		t.Errorf("warning printed %d times, want 2 (one per row):\n%s", got, stdout)
	}
}

func TestRunPlotDuplicateWarning(t *testing.T) {
	setupWorkdir(t, "max_iterations,1,>6\n10,1,0\n10,1,1\n")

	_, stderr, err := execute(t, "results.csv", "--config", "config.yaml")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(stderr, "level=WARN") || !strings.Contains(stderr, "max_iterations=10") {
		t.Errorf("stderr = %q, want duplicate warning", stderr)
	}
}

func TestRunPlotJSONWithSuccessChart(t *testing.T) {
	dir := setupWorkdir(t, resultsCSV)

	stdout, _, err := execute(t, "results.csv", "--config", "config.yaml", "--success-chart", "--json")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	var result struct {
		Records  []stats.Record       `json:"records"`
		Warnings []stats.LabelWarning `json:"warnings"`
		Outputs  []string             `json:"outputs"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if len(result.Records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(result.Records))
	}
	if result.Records[1].AvgAttempts != 1.375 || result.Records[1].SuccessRate != 80 {
		t.Errorf("record for 100 iterations = %+v", result.Records[1])
	}
	if len(result.Outputs) != 2 {
		t.Fatalf("outputs = %v, want main and success charts", result.Outputs)
	}
	if _, err := os.Stat(filepath.Join(dir, result.Outputs[1])); err != nil {
		t.Errorf("success chart not written: %v", err)
	}
}

func TestRunPlotErrors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing input",
			csv:     resultsCSV,
			args:    []string{"nope.csv"},
			wantErr: os.ErrNotExist,
		},
		{
			name:    "missing iterations column",
			csv:     "iterations,1,>6\n10,1,0\n",
			args:    []string{"results.csv"},
			wantErr: table.ErrMissingIterations,
		},
		{
			name:    "empty input",
			csv:     "",
			args:    []string{"results.csv"},
			wantErr: table.ErrEmpty,
		},
		{
			name:    "invalid format",
			csv:     resultsCSV,
			args:    []string{"results.csv", "--format", "gif"},
			wantMsg: "invalid format",
		},
		{
			name:    "no arguments",
			csv:     resultsCSV,
			args:    []string{},
			wantMsg: "accepts 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupWorkdir(t, tt.csv)

			_, _, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantMsg)
			}
			if _, err := os.Stat(filepath.Join(dir, "imgs", "word_solving_performance.png")); err == nil {
				t.Error("no chart should be written on error")
			}
		})
	}
}

func TestRunPlotInvalidEnvDPI(t *testing.T) {
	dir := setupWorkdir(t, resultsCSV)
	t.Setenv("SOLVEPLOT_DPI", "lots")

	_, _, err := execute(t, "results.csv")
	if err == nil || !strings.Contains(err.Error(), "SOLVEPLOT_DPI") {
		t.Fatalf("error = %v, want rejected SOLVEPLOT_DPI", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "imgs")); err == nil {
		t.Error("no chart should be written with invalid configuration")
	}
}

func TestStatsCmd(t *testing.T) {
	setupWorkdir(t, resultsCSV)

	stdout, _, err := execute(t, "stats", "results.csv")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	for _, want := range []string{"Solver Statistics", "80.0%", "1.38"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if _, err := os.Stat("imgs"); err == nil {
		t.Error("stats should not write a chart")
	}
}

func TestStatsCmdJSON(t *testing.T) {
	setupWorkdir(t, resultsCSV)

	stdout, _, err := execute(t, "stats", "results.csv", "--json")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	var result struct {
		Records    []stats.Record `json:"records"`
		Duplicates []int          `json:"duplicates"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if len(result.Records) != 2 || result.Records[0].MaxIterations != 50 {
		t.Errorf("records = %+v", result.Records)
	}
	if result.Duplicates == nil || len(result.Duplicates) != 0 {
		t.Errorf("duplicates = %v, want empty list", result.Duplicates)
	}
}

func TestConfigCmd(t *testing.T) {
	setupWorkdir(t, resultsCSV)
	t.Setenv("SOLVEPLOT_DPI", "150")

	stdout, _, err := execute(t, "config", "--config", "config.yaml", "--format", "svg")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal([]byte(stdout), &cfg); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if cfg.Chart.WidthInches != 4 {
		t.Errorf("width_inches = %v, want 4 from file", cfg.Chart.WidthInches)
	}
	if cfg.Chart.DPI != 150 {
		t.Errorf("dpi = %d, want 150 from environment", cfg.Chart.DPI)
	}
	if cfg.Output.Format != "svg" {
		t.Errorf("format = %q, want svg from flag", cfg.Output.Format)
	}
	if cfg.Output.Dir != "imgs" {
		t.Errorf("dir = %q, want default imgs", cfg.Output.Dir)
	}
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "solveplot version "+version) {
		t.Errorf("stdout = %q", stdout)
	}
}
