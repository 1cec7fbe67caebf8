package render

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// niceSteps are the tick step mantissas, scaled by powers of ten.
var niceSteps = []float64{1, 2, 2.5, 5, 10}

// boundedTicks is a plot.Ticker producing at most Max major ticks on
// nice round values.
type boundedTicks struct {
	Max int
}

var _ plot.Ticker = boundedTicks{}

// Ticks implements plot.Ticker.
func (t boundedTicks) Ticks(min, max float64) []plot.Tick {
	if t.Max < 2 || !(max > min) {
		return []plot.Tick{{Value: min, Label: formatTick(min, 1)}}
	}

	step := tickStep(min, max, t.Max)
	start := math.Ceil(min/step-1e-9) * step
	ticks := make([]plot.Tick, 0, t.Max)
	for i := 0; len(ticks) < t.Max; i++ {
		v := start + float64(i)*step
		if v > max+step*1e-9 {
			break
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: formatTick(v, step)})
	}
	return ticks
}

// tickStep returns the smallest nice step that fits at most n ticks in
// [min, max].
func tickStep(min, max float64, n int) float64 {
	raw := (max - min) / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, scale := range []float64{1, 10, 100} {
		for _, m := range niceSteps {
			step := m * mag * scale
			if step < raw {
				continue
			}
			if tickCount(min, max, step) <= n {
				return step
			}
		}
	}
	return max - min
}

func tickCount(min, max, step float64) int {
	first := math.Ceil(min/step - 1e-9)
	last := math.Floor(max/step + 1e-9)
	return int(last-first) + 1
}

// formatTick prints v with just enough decimals for step.
func formatTick(v, step float64) string {
	decimals := 1
	if step > 0 {
		decimals = int(math.Max(0, -math.Floor(math.Log10(step)))) + 1
	}
	pow := math.Pow(10, float64(decimals))
	v = math.Round(v*pow) / pow
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
