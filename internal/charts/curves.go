package charts

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"pv_simulator/internal/pvmodel"
)

// 8x6 inch canvas for both charts.
const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 6 * vg.Inch
)

var lineBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// PVCurvePNG renders the power-voltage curve as a PNG.
func PVCurvePNG(w io.Writer, curve pvmodel.Curve) error {
	pts := make(plotter.XYs, len(curve))
	for i, s := range curve {
		pts[i].X = s.VoltageV
		pts[i].Y = s.PowerW
	}
	return renderLine(w, pts, "Power-Voltage Curve", "Voltage (V)", "Power (W)", "P-V Curve")
}

// IVCurvePNG renders the current-voltage curve as a PNG. Current runs along
// the X axis with voltage on Y.
func IVCurvePNG(w io.Writer, curve pvmodel.Curve) error {
	pts := make(plotter.XYs, len(curve))
	for i, s := range curve {
		pts[i].X = s.CurrentA
		pts[i].Y = s.VoltageV
	}
	return renderLine(w, pts, "Current-Voltage Curve", "Current (A)", "Voltage (V)", "I-V Curve")
}

func renderLine(w io.Writer, pts plotter.XYs, title, xLabel, yLabel, legend string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building line for %s: %w", title, err)
	}
	line.Color = lineBlue
	p.Add(line)
	p.Legend.Add(legend, line)

	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("rendering %s: %w", title, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing %s PNG: %w", title, err)
	}
	return nil
}
