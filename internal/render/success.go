package render

import (
	"fmt"
	"os"

	"github.com/TommyTokk/parole-bot/internal/constants"
	"github.com/TommyTokk/parole-bot/internal/pathutil"
	"github.com/TommyTokk/parole-bot/internal/stats"
	chart "github.com/wcharczuk/go-chart/v2"
)

// RenderSuccessChart writes a bar chart of the success rate of every row
// as a PNG next to the main chart and returns its path. Bar colors match
// the grouped chart.
func RenderSuccessChart(s *stats.Summary, opts Options) (string, error) {
	n := len(s.Records)
	if n == 0 {
		return "", ErrNothingToPlot
	}

	cm, err := Viridis()
	if err != nil {
		return "", err
	}
	colors, err := SampleColors(cm, n, opts.ColormapStart, opts.ColormapEnd)
	if err != nil {
		return "", err
	}

	bars := make([]chart.Value, n)
	for i, row := range s.Records {
		rec, ok := s.Lookup(row.MaxIterations)
		if !ok {
			rec = row
		}
		col := toDrawing(withAlpha(colors[i], opts.BarAlpha))
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%d iterations", rec.MaxIterations),
			Value: rec.SuccessRate,
			Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
		}
	}

	graph := chart.BarChart{
		Title:      "Success Rate by Iterations",
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		Width:      200 + 200*n,
		Height:     512,
		BarWidth:   80,
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: percentFormatter,
		},
		Bars: bars,
	}

	path, err := pathutil.OutputPath(opts.Dir, constants.SuccessChartBaseName+FormatPNG.Ext())
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return "", fmt.Errorf("render success chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func percentFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", f)
	}
	return ""
}
