package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// viridisControls are anchor colors of the viridis colormap, ordered by
// increasing luminance.
var viridisControls = []color.Color{
	color.NRGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	color.NRGBA{R: 0x3b, G: 0x52, B: 0x8b, A: 0xff},
	color.NRGBA{R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
	color.NRGBA{R: 0x5e, G: 0xc9, B: 0x62, A: 0xff},
	color.NRGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

// Viridis returns a perceptually uniform colormap over [0, 1].
func Viridis() (palette.ColorMap, error) {
	cm, err := moreland.NewLuminance(viridisControls)
	if err != nil {
		return nil, fmt.Errorf("build viridis colormap: %w", err)
	}
	cm.SetMax(1)
	cm.SetMin(0)
	return cm, nil
}

// SampleColors returns n colors taken at evenly spaced points of
// [start, end]. A single color is taken at start.
func SampleColors(cm palette.ColorMap, n int, start, end float64) ([]color.Color, error) {
	colors := make([]color.Color, n)
	for i := range colors {
		v := start
		if n > 1 {
			v = start + (end-start)*float64(i)/float64(n-1)
		}
		c, err := cm.At(v)
		if err != nil {
			return nil, fmt.Errorf("sample colormap at %v: %w", v, err)
		}
		colors[i] = c
	}
	return colors, nil
}

// withAlpha scales the opacity of c by alpha.
func withAlpha(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * alpha))
	return n
}

func toDrawing(c color.NRGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
