// Package plot renders a dataset and a fitted line with gonum/plot.
package plot

import (
	"image/color"

	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/dataset"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
	"gonum.org/v1/gonum/floats"
	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	title = "Linear Regression"

	// 1000x800 px at the default 96 dpi
	width  = 1000 * vg.Inch / 96
	height = 800 * vg.Inch / 96

	pointRadius = 5
	lineWidth   = 2
)

var (
	backgroundColor = color.RGBA{R: 236, G: 236, B: 243, A: 255}
	pointColor      = color.RGBA{R: 92, G: 157, B: 255, A: 255}
	lineColor       = color.Black
	gridColor       = color.White
)

// LinearModel draws the samples of d and the line est spanning the x range
// of d, and writes the image to path. The format follows the file extension
// (png, svg, pdf, jpg, eps, tif).
//
// The axes cover [x.min, x.max] × [y.min, y.max] as recorded by the last
// normalization of d, or the range of the data when d was never normalized.
func LinearModel(est model.Estimator, d *dataset.Dataset, path string) error {
	const op = "plot.LinearModel"

	if d.IsEmpty() {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	err := errors.SafeExecute(op, func() error {
		p, err := build(est, d)
		if err != nil {
			return err
		}
		if err := p.Save(width, height, path); err != nil {
			return errors.NewIOError(op, errors.CouldNotSaveFile, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.GetLogger().Info("Plot written",
		log.OperationKey, log.OperationPlot,
		log.PathKey, path,
		log.SamplesKey, d.Len(),
	)
	return nil
}

func build(est model.Estimator, d *dataset.Dataset) (*gonumplot.Plot, error) {
	xMin, xMax, yMin, yMax := bounds(d)

	p := gonumplot.New()
	p.Title.Text = title
	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min, p.Y.Max = yMin, yMax

	area, err := plotter.NewPolygon(plotter.XYs{
		{X: xMin, Y: yMin}, {X: xMax, Y: yMin}, {X: xMax, Y: yMax}, {X: xMin, Y: yMax},
	})
	if err != nil {
		return nil, errors.Wrap(err, "background")
	}
	area.Color = backgroundColor
	area.LineStyle.Width = 0

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Vertical.Width = vg.Points(lineWidth)
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Width = vg.Points(lineWidth)

	points, err := plotter.NewScatter(d)
	if err != nil {
		return nil, errors.Wrap(err, "data points")
	}
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Color = pointColor
	points.GlyphStyle.Radius = vg.Points(pointRadius)

	line, err := plotter.NewLine(plotter.XYs{
		{X: xMin, Y: est.Estimate(xMin)},
		{X: xMax, Y: est.Estimate(xMax)},
	})
	if err != nil {
		return nil, errors.Wrap(err, "regression line")
	}
	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(lineWidth)

	p.Add(area, grid, points, line)
	p.Legend.Add("Data", points)
	p.Legend.Add("Regression Line", line)
	p.Legend.Top = true

	return p, nil
}

func bounds(d *dataset.Dataset) (xMin, xMax, yMin, yMax float64) {
	if d.HasBounds() {
		return d.XMin(), d.XMax(), d.YMin(), d.YMax()
	}
	xs, ys := d.X(), d.Y()
	return floats.Min(xs), floats.Max(xs), floats.Min(ys), floats.Max(ys)
}
