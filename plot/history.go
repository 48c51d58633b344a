// Package plot renders training curves with gonum/plot.
package plot

import (
	"image/color"

	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/gradlearn/metrics"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
	"github.com/YuminosukeSato/gradlearn/pkg/log"
)

// Width and Height are the size of every saved chart.
var (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// SaveHistory draws h oldest-first (epoch 1 on the left) and writes the chart
// to path. The image format follows the file extension (.png, .svg, .pdf, ...).
func SaveHistory(h metrics.History, xLabel, yLabel, path string) error {
	if h.Len() == 0 {
		return errors.NewEmptyDataError("plot.SaveHistory")
	}

	p := gonumplot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	values := h.Chronological()
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "plot: build line")
	}
	line.Color = color.RGBA{B: 200, A: 255}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line, plotter.NewGrid())

	if err := p.Save(Width, Height, path); err != nil {
		return errors.Wrapf(err, "plot: save %s", path)
	}

	log.GetLoggerWithName("plot").Debug("Saved history chart",
		"path", path,
		log.SamplesKey, len(values),
	)
	return nil
}
