// Package constants provides named constants used throughout solveplot.
// This centralizes column names, labels and default paths.
package constants

// Input table constants
const (
	// IterationsColumn is the header of the column identifying a configuration.
	IterationsColumn = "max_iterations"

	// FailureLabelOver is the preferred label for the "exceeded attempt cap" column.
	FailureLabelOver = ">6"

	// FailureLabelPlus is the alternative failure label.
	FailureLabelPlus = "6+"
)

// FailureLabels lists the recognized failure labels in lookup order.
// The first label present in a table wins.
var FailureLabels = []string{FailureLabelOver, FailureLabelPlus}

// IsFailureLabel reports whether label is a recognized failure label.
func IsFailureLabel(label string) bool {
	for _, l := range FailureLabels {
		if l == label {
			return true
		}
	}
	return false
}

// Output constants
const (
	// DefaultOutputDir is the directory charts are written into,
	// relative to the working directory.
	DefaultOutputDir = "imgs"

	// ChartBaseName is the file name (without extension) of the main chart.
	ChartBaseName = "word_solving_performance"

	// SuccessChartBaseName is the file name (without extension) of the
	// optional success-rate chart.
	SuccessChartBaseName = "success_rate"
)

// Chart style defaults
const (
	// DefaultWidthInches and DefaultHeightInches give the figure size.
	DefaultWidthInches  = 12.0
	DefaultHeightInches = 8.0

	// DefaultDPI is the output resolution for raster formats.
	DefaultDPI = 300

	// DefaultBarWidth is the width of a single bar in points.
	DefaultBarWidth = 18.0

	// DefaultBarAlpha is the opacity applied to bar fill colors.
	DefaultBarAlpha = 0.8

	// DefaultColormapStart and DefaultColormapEnd bound the sampled
	// range of the viridis colormap.
	DefaultColormapStart = 0.0
	DefaultColormapEnd   = 0.8

	// DefaultYHeadroom multiplies the largest bar to get the y-axis maximum.
	DefaultYHeadroom = 1.2

	// DefaultMaxYTicks caps the number of y-axis tick marks.
	DefaultMaxYTicks = 10

	// Annotation box anchors, in axes fractions. Box i is placed at
	// (BoxAnchorX, BoxAnchorY - i*BoxStep).
	DefaultBoxAnchorX = 0.75
	DefaultBoxAnchorY = 0.85
	DefaultBoxStep    = 0.12
)

// DefaultBoxColors are the annotation box fills: lightyellow, lightblue, lightgreen.
var DefaultBoxColors = []string{"#FFFFE0", "#ADD8E6", "#90EE90"}
