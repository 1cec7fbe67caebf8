// Package render draws solver statistics as a grouped bar chart.
//
// Each attempt-count column becomes a group of bars on the x-axis, with one
// bar per configuration. Annotation boxes in the upper right report the
// statistics of every configuration.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/TommyTokk/parole-bot/internal/constants"
	"github.com/TommyTokk/parole-bot/internal/pathutil"
	"github.com/TommyTokk/parole-bot/internal/stats"
	"github.com/TommyTokk/parole-bot/internal/table"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// ErrNothingToPlot is returned for tables without rows or attempt columns.
var ErrNothingToPlot = errors.New("nothing to plot")

// Build lays out the grouped bar chart of t annotated with s.
func Build(t *table.Table, s *stats.Summary, opts Options) (*plot.Plot, error) {
	nRows, nCols := t.Shape()
	if nRows == 0 || nCols == 0 {
		return nil, ErrNothingToPlot
	}

	cm, err := Viridis()
	if err != nil {
		return nil, err
	}
	colors, err := SampleColors(cm, nRows, opts.ColormapStart, opts.ColormapEnd)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	setupPlot(p, opts)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = color.Gray{Y: 178}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(grid)

	// Calculate the total width of the bar group, center to center.
	groupWidth := opts.BarWidth * vg.Length(nRows-1)

	iterations := make([]int, nRows)
	for i, row := range t.Rows() {
		iterations[i] = row.MaxIterations

		bc, err := plotter.NewBarChart(plotter.Values(row.Values), opts.BarWidth)
		if err != nil {
			return nil, fmt.Errorf("bars for %d iterations: %w", row.MaxIterations, err)
		}
		bc.Offset = opts.BarWidth*vg.Length(i) - groupWidth/2
		bc.Color = withAlpha(colors[i], opts.BarAlpha)
		bc.LineStyle.Width = 0

		p.Add(bc)
		p.Legend.Add(fmt.Sprintf("%d iterations", row.MaxIterations), bc)
	}

	p.Add(newAnnotations(iterations, s, opts))

	xTicks := make([]plot.Tick, nCols)
	for j, label := range t.Labels() {
		xTicks[j] = plot.Tick{Value: float64(j), Label: label}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.X.Min = -0.5
	p.X.Max = float64(nCols) - 0.5

	yMax := t.MaxValue() * opts.YHeadroom
	if yMax <= 0 {
		yMax = 1
	}
	p.Y.Min = 0
	p.Y.Max = yMax
	p.Y.Tick.Marker = boundedTicks{Max: opts.MaxYTicks}

	return p, nil
}

func setupPlot(p *plot.Plot, opts Options) {
	p.Title.Text = opts.Title
	p.Title.TextStyle.Font.Size = vg.Points(15)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold

	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font.Size = vg.Points(12)
		ax.Label.TextStyle.Font.Weight = xfont.WeightBold
	}
	p.X.Tick.Label.Font.Size = vg.Points(10)
	p.X.Tick.Label.Font.Weight = xfont.WeightBold

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = 1 * vg.Millimeter
	p.Legend.TextStyle.Font.Size = vg.Points(10)
}

// Render builds the chart and writes it to the output directory. It
// returns the written path.
func Render(t *table.Table, s *stats.Summary, opts Options) (string, error) {
	p, err := Build(t, s, opts)
	if err != nil {
		return "", err
	}
	return Save(p, opts, constants.ChartBaseName)
}

// Save writes p as baseName plus the format extension inside opts.Dir,
// creating the directory when missing.
func Save(p *plot.Plot, opts Options, baseName string) (string, error) {
	if !opts.Format.Valid() {
		return "", fmt.Errorf("unsupported format %q (use 'png' or 'svg')", opts.Format)
	}

	path, err := pathutil.OutputPath(opts.Dir, baseName+opts.Format.Ext())
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := writePlot(f, p, opts); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func writePlot(w io.Writer, p *plot.Plot, opts Options) error {
	switch opts.Format {
	case FormatSVG:
		c := vgsvg.New(opts.Width, opts.Height)
		p.Draw(draw.New(c))
		_, err := c.WriteTo(w)
		return err
	default:
		c := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI))
		p.Draw(draw.New(c))
		png := vgimg.PngCanvas{Canvas: c}
		_, err := png.WriteTo(w)
		return err
	}
}
