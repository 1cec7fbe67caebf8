package render

import (
	"fmt"
	"image/color"

	"github.com/TommyTokk/parole-bot/internal/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// boxAlpha is the opacity of annotation box fills.
const boxAlpha = 0.8

// annotationBox is one statistics box.
type annotationBox struct {
	Text string
	Fill color.Color
}

// annotations draws statistics boxes stacked downwards from an anchor
// given in axes fractions. It does not implement plot.DataRanger, so it
// never changes the axis ranges.
type annotations struct {
	Boxes   []annotationBox
	AnchorX float64
	AnchorY float64
	Step    float64

	TextStyle text.Style
	Border    draw.LineStyle
	Padding   vg.Length
}

var _ plot.Plotter = (*annotations)(nil)

// annotationText formats the statistics of one configuration.
func annotationText(rec stats.Record) string {
	return fmt.Sprintf("Iterations: %d\nAvg attempts: %.2f\nVariance: %.2f\nSuccess rate: %.1f%%",
		rec.MaxIterations, rec.AvgAttempts, rec.Variance, rec.SuccessRate)
}

func newAnnotations(iterations []int, s *stats.Summary, opts Options) *annotations {
	a := &annotations{
		AnchorX: opts.BoxAnchorX,
		AnchorY: opts.BoxAnchorY,
		Step:    opts.BoxStep,
		TextStyle: text.Style{
			Color:   color.Black,
			Font:    font.From(plot.DefaultFont, vg.Points(10)),
			Handler: plot.DefaultTextHandler,
			XAlign:  draw.XCenter,
			YAlign:  draw.YBottom,
		},
		Border:  draw.LineStyle{Color: color.Gray{Y: 128}, Width: vg.Points(0.8)},
		Padding: vg.Points(5),
	}

	for i, iters := range iterations {
		rec, ok := s.Lookup(iters)
		if !ok {
			rec = stats.Record{MaxIterations: iters}
		}
		a.Boxes = append(a.Boxes, annotationBox{
			Text: annotationText(rec),
			Fill: withAlpha(opts.BoxColor(i), boxAlpha),
		})
	}
	return a
}

// Plot implements plot.Plotter.
func (a *annotations) Plot(c draw.Canvas, _ *plot.Plot) {
	size := c.Size()
	for i, box := range a.Boxes {
		fy := a.AnchorY - float64(i)*a.Step
		anchor := vg.Point{
			X: c.Min.X + vg.Length(a.AnchorX)*size.X,
			Y: c.Min.Y + vg.Length(fy)*size.Y,
		}

		w := a.TextStyle.Width(box.Text)
		h := a.TextStyle.Height(box.Text)
		min := vg.Point{X: anchor.X - w/2 - a.Padding, Y: anchor.Y - a.Padding}
		max := vg.Point{X: anchor.X + w/2 + a.Padding, Y: anchor.Y + h + a.Padding}
		outline := []vg.Point{
			min,
			{X: max.X, Y: min.Y},
			max,
			{X: min.X, Y: max.Y},
		}

		c.FillPolygon(box.Fill, outline)
		c.StrokeLines(a.Border, append(outline, min))
		c.FillText(a.TextStyle, anchor, box.Text)
	}
}
