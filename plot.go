package speedup

import (
	"image/color"
	"math"
	"os/exec"
	"runtime"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Plot renders the delta series as a line chart with circular markers
// and writes it to the configured output file, replacing any previous
// chart. A dashed red line at y=0 separates the hardware-faster region
// from the hardware-slower one.
func (a *Analyzer) Plot(points []Point, ticks []Tick) error {
	p := plot.New()
	p.Title.Text = "Absolute Speedup From IAA vs Cache Size"
	p.X.Label.Text = "Cache Size (MB)"
	p.Y.Label.Text = "Absolute Speedup (s)"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	for i, point := range points {
		xys[i].X = point.X
		xys[i].Y = point.Delta
	}
	line, markers, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 255, A: 255}
	markers.Shape = draw.CircleGlyph{}
	markers.Color = color.RGBA{B: 255, A: 255}

	ref, err := plotter.NewLine(zeroLine(points))
	if err != nil {
		return err
	}
	ref.Color = color.RGBA{R: 255, A: 255}
	ref.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(ref, line, markers)

	if len(ticks) > 0 {
		plotTicks := make([]plot.Tick, len(ticks))
		for i, tick := range ticks {
			plotTicks[i] = plot.Tick{Value: tick.Value, Label: tick.Label}
		}
		p.X.Tick.Marker = plot.ConstantTicks(plotTicks)
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	return p.Save(10*vg.Inch, 6*vg.Inch, a.outputFile)
}

// zeroLine spans the x range of the series at y=0, widened a little
// when the series has a single point so the reference line stays
// visible.
func zeroLine(points []Point) plotter.XYs {
	lo, hi := points[0].X, points[0].X
	for _, point := range points[1:] {
		if point.X < lo {
			lo = point.X
		}
		if point.X > hi {
			hi = point.X
		}
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return plotter.XYs{{X: lo, Y: 0}, {X: hi, Y: 0}}
}

// openImage hands the saved chart to the platform opener. Callers treat
// a failure here as harmless since the chart is already on disk.
func openImage(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
