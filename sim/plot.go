package sim

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
)

// RenderAccuracyChart plots the window accuracy series to a PNG at path,
// with the branch count on the x axis. With fewer than two windows there
// is no line to draw; the chart is skipped with a warning rather than
// failing the run.
func RenderAccuracyChart(path string, accuracies []float64, windowSize int) error {
	if len(accuracies) < 2 {
		log.Warn().Int("windows", len(accuracies)).Msg("not enough windows to plot, skipping chart")
		return nil
	}

	xValues := make([]float64, len(accuracies))
	yValues := make([]float64, len(accuracies))
	for i, acc := range accuracies {
		xValues[i] = float64((i + 1) * windowSize)
		yValues[i] = acc * 100
	}

	graph := chart.Chart{
		Background: chart.Style{
			Padding: chart.Box{Top: 30},
		},
		XAxis: chart.XAxis{
			Name:      "branches",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      "accuracy (%)",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
			Range:     &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "window accuracy",
				Style: chart.Style{
					Show:        true,
					StrokeWidth: 2,
					StrokeColor: drawing.Color{R: 51, G: 139, B: 253, A: 255},
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create chart %s", path)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return errors.Wrap(err, "render chart")
	}
	return nil
}
