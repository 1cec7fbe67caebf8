// Package config provides unified configuration loading for solveplot.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/TommyTokk/parole-bot/internal/constants"
	"gopkg.in/yaml.v3"
)

// Config contains all solveplot configuration settings.
type Config struct {
	// Chart contains styling settings for the rendered figure.
	Chart ChartConfig `json:"chart" yaml:"chart"`

	// Output controls where and how charts are written.
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// LoggingConfig configures solveplot's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" logs per-configuration statistics.
	// "trace" additionally logs the loaded table and column classification.
	Level string `json:"level" yaml:"level"`
}

// OutputConfig configures the written artifacts.
type OutputConfig struct {
	// Dir is the output directory, created when missing.
	Dir string `json:"dir" yaml:"dir"`

	// Format is the image format: "png" (default) or "svg".
	Format string `json:"format" yaml:"format"`

	// SuccessChart enables the additional success-rate chart.
	SuccessChart bool `json:"success_chart" yaml:"success_chart"`
}

// ChartConfig holds the styling of the grouped bar chart.
type ChartConfig struct {
	Title  string `json:"title" yaml:"title"`
	XLabel string `json:"x_label" yaml:"x_label"`
	YLabel string `json:"y_label" yaml:"y_label"`

	// WidthInches and HeightInches give the figure size.
	WidthInches  float64 `json:"width_inches" yaml:"width_inches"`
	HeightInches float64 `json:"height_inches" yaml:"height_inches"`

	// DPI is the resolution of raster output.
	DPI int `json:"dpi" yaml:"dpi"`

	// BarWidth is the width of one bar in points.
	BarWidth float64 `json:"bar_width" yaml:"bar_width"`

	// BarAlpha is the bar fill opacity, 0 to 1.
	BarAlpha float64 `json:"bar_alpha" yaml:"bar_alpha"`

	// ColormapStart and ColormapEnd bound the sampled viridis range, 0 to 1.
	ColormapStart float64 `json:"colormap_start" yaml:"colormap_start"`
	ColormapEnd   float64 `json:"colormap_end" yaml:"colormap_end"`

	// YHeadroom multiplies the tallest bar to get the y-axis maximum.
	YHeadroom float64 `json:"y_headroom" yaml:"y_headroom"`

	// MaxYTicks caps the number of y-axis tick marks.
	MaxYTicks int `json:"max_y_ticks" yaml:"max_y_ticks"`

	// BoxColors are hex fills cycled over the annotation boxes.
	BoxColors []string `json:"box_colors" yaml:"box_colors"`

	// BoxAnchorX, BoxAnchorY and BoxStep position the annotation boxes
	// in axes fractions.
	BoxAnchorX float64 `json:"box_anchor_x" yaml:"box_anchor_x"`
	BoxAnchorY float64 `json:"box_anchor_y" yaml:"box_anchor_y"`
	BoxStep    float64 `json:"box_step" yaml:"box_step"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Chart: ChartConfig{
			Title:         "Word Solving Performance by Number of Attempts",
			XLabel:        "Number of Attempts",
			YLabel:        "Count",
			WidthInches:   constants.DefaultWidthInches,
			HeightInches:  constants.DefaultHeightInches,
			DPI:           constants.DefaultDPI,
			BarWidth:      constants.DefaultBarWidth,
			BarAlpha:      constants.DefaultBarAlpha,
			ColormapStart: constants.DefaultColormapStart,
			ColormapEnd:   constants.DefaultColormapEnd,
			YHeadroom:     constants.DefaultYHeadroom,
			MaxYTicks:     constants.DefaultMaxYTicks,
			BoxColors:     append([]string(nil), constants.DefaultBoxColors...),
			BoxAnchorX:    constants.DefaultBoxAnchorX,
			BoxAnchorY:    constants.DefaultBoxAnchorY,
			BoxStep:       constants.DefaultBoxStep,
		},
		Output: OutputConfig{
			Dir:    constants.DefaultOutputDir,
			Format: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from path, if non-empty, and environment variables.
// Order: defaults -> config file -> environment variables
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
// Settings absent from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

var hexColor = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	ch := c.Chart
	if ch.WidthInches <= 0 || ch.HeightInches <= 0 {
		return fmt.Errorf("figure size must be positive, got %vx%v inches", ch.WidthInches, ch.HeightInches)
	}
	if ch.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", ch.DPI)
	}
	if ch.BarWidth <= 0 {
		return fmt.Errorf("bar_width must be positive, got %v", ch.BarWidth)
	}
	if ch.BarAlpha < 0 || ch.BarAlpha > 1 {
		return fmt.Errorf("bar_alpha must be between 0 and 1, got %v", ch.BarAlpha)
	}
	if ch.ColormapStart < 0 || ch.ColormapEnd > 1 || ch.ColormapStart > ch.ColormapEnd {
		return fmt.Errorf("colormap range must satisfy 0 <= start <= end <= 1, got [%v, %v]", ch.ColormapStart, ch.ColormapEnd)
	}
	if ch.YHeadroom < 1 {
		return fmt.Errorf("y_headroom must be at least 1, got %v", ch.YHeadroom)
	}
	if ch.MaxYTicks < 2 {
		return fmt.Errorf("max_y_ticks must be at least 2, got %d", ch.MaxYTicks)
	}
	if len(ch.BoxColors) == 0 {
		return fmt.Errorf("box_colors must not be empty")
	}
	for _, col := range ch.BoxColors {
		if !hexColor.MatchString(col) {
			return fmt.Errorf("invalid box color %q (want #RRGGBB)", col)
		}
	}

	validFormats := map[string]bool{"png": true, "svg": true}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid format: %s (valid: png, svg)", c.Output.Format)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output dir must not be empty")
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// A value that cannot be parsed is an error rather than being skipped.
func applyEnvOverrides(config *Config) error {
	if v := os.Getenv("SOLVEPLOT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("SOLVEPLOT_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}

	if v := os.Getenv("SOLVEPLOT_FORMAT"); v != "" {
		config.Output.Format = v
	}

	if v := os.Getenv("SOLVEPLOT_DPI"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SOLVEPLOT_DPI %q: must be an integer", v)
		}
		config.Chart.DPI = n
	}

	return nil
}
