package cuebench

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart dimensions for sweep plots.
const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// SweepPlot renders the table as a CUE-versus-cost line chart. Failed
// points are skipped; at least two valid points are required to draw a
// line.
func SweepPlot(table SweepTable, title string) (*plot.Plot, error) {
	valid := table.Valid()
	if len(valid) < 2 {
		return nil, fmt.Errorf("plot sweep: %d valid points, need at least 2", len(valid))
	}

	xys := make(plotter.XYs, len(valid))
	for i, pt := range valid {
		xys[i].X = pt.Cost
		xys[i].Y = pt.CUE
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "ATP maintenance cost (mmol/gDW/h)"
	p.Y.Label.Text = "Carbon use efficiency"
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("plot sweep: %w", err)
	}
	p.Add(line, points)

	return p, nil
}

// SaveSweep renders the sweep chart to path; the image format follows
// the file extension (.png, .svg, .pdf).
func SaveSweep(table SweepTable, title, path string) error {
	p, err := SweepPlot(table, title)
	if err != nil {
		return err
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("save sweep chart: %w", err)
	}
	return nil
}

// WriteSweep renders the sweep chart as PNG to w.
func WriteSweep(table SweepTable, title string, w io.Writer) error {
	p, err := SweepPlot(table, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return fmt.Errorf("render sweep chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write sweep chart: %w", err)
	}
	return nil
}
