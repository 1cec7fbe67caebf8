package render

import (
	"image/color"
	"strings"

	"github.com/TommyTokk/parole-bot/internal/config"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/vg"
)

// Format is an output image format.
type Format string

const (
	// FormatPNG writes a raster PNG at Options.DPI.
	FormatPNG Format = "png"

	// FormatSVG writes a vector SVG.
	FormatSVG Format = "svg"
)

// Valid returns true if the format is a recognized value.
func (f Format) Valid() bool {
	switch f {
	case FormatPNG, FormatSVG:
		return true
	}
	return false
}

// Ext returns the file extension, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Options is the complete, immutable styling of a rendered chart.
// Build one with OptionsFromConfig and pass it by value.
type Options struct {
	Title  string
	XLabel string
	YLabel string

	Width  vg.Length
	Height vg.Length
	DPI    int

	BarWidth vg.Length
	BarAlpha float64

	ColormapStart float64
	ColormapEnd   float64

	YHeadroom float64
	MaxYTicks int

	boxColors  []color.Color
	BoxAnchorX float64
	BoxAnchorY float64
	BoxStep    float64

	Dir    string
	Format Format
}

// OptionsFromConfig converts validated configuration into render options.
func OptionsFromConfig(cfg *config.Config) Options {
	ch := cfg.Chart
	boxColors := make([]color.Color, len(ch.BoxColors))
	for i, hex := range ch.BoxColors {
		boxColors[i] = drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
	}

	return Options{
		Title:         ch.Title,
		XLabel:        ch.XLabel,
		YLabel:        ch.YLabel,
		Width:         vg.Length(ch.WidthInches) * vg.Inch,
		Height:        vg.Length(ch.HeightInches) * vg.Inch,
		DPI:           ch.DPI,
		BarWidth:      vg.Points(ch.BarWidth),
		BarAlpha:      ch.BarAlpha,
		ColormapStart: ch.ColormapStart,
		ColormapEnd:   ch.ColormapEnd,
		YHeadroom:     ch.YHeadroom,
		MaxYTicks:     ch.MaxYTicks,
		boxColors:     boxColors,
		BoxAnchorX:    ch.BoxAnchorX,
		BoxAnchorY:    ch.BoxAnchorY,
		BoxStep:       ch.BoxStep,
		Dir:           cfg.Output.Dir,
		Format:        Format(cfg.Output.Format),
	}
}

// BoxColor returns the fill of annotation box i, cycling through the
// configured colors.
func (o Options) BoxColor(i int) color.Color {
	if len(o.boxColors) == 0 {
		return color.White
	}
	return o.boxColors[i%len(o.boxColors)]
}
