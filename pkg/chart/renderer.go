// Package chart renders the analysis figure: the raw revenue series on
// the left, the raw points with both fitted trend curves on the right.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/farnsworth3010/revenue-forecast/internal/models"
	"github.com/farnsworth3010/revenue-forecast/internal/timeseries"
	"github.com/farnsworth3010/revenue-forecast/pkg/utils"
)

const curveSamples = 200

var (
	colorActual   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorLinear   = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	colorSeasonal = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	colorForecast = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

type Renderer struct {
	dir  string
	file string
}

func New(dir, file string) *Renderer {
	return &Renderer{dir: dir, file: file}
}

// Render writes the two-panel PNG and returns the path of the saved file.
func (r *Renderer) Render(series *timeseries.Series, report *models.Report) (string, error) {
	const op = "chart.Render"

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	left, err := seriesPanel(series)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	right, err := trendsPanel(series, report)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	img := vgimg.New(12*vg.Inch, 5*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1, Cols: 2,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}

	plots := [][]*plot.Plot{{left, right}}
	canvases := plot.Align(plots, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	path := filepath.Join(r.dir, r.file)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return path, nil
}

func seriesPanel(series *timeseries.Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Revenue time series"
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Revenue, mln RUB"

	line, points, err := plotter.NewLinePoints(observedXYs(series))
	if err != nil {
		return nil, err
	}
	line.Color = colorActual
	points.GlyphStyle.Color = colorActual
	points.GlyphStyle.Radius = vg.Points(3)

	p.Add(line, points)
	p.Legend.Add("Actual data", line, points)
	p.Legend.Top = true
	return p, nil
}

func trendsPanel(series *timeseries.Series, report *models.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Trends: linear and seasonal"
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Revenue, mln RUB"

	actual, err := plotter.NewScatter(observedXYs(series))
	if err != nil {
		return nil, err
	}
	actual.GlyphStyle.Color = colorActual
	actual.GlyphStyle.Radius = vg.Points(3)

	// both curves extend through the last forecast month
	from := series.Months[0]
	till := series.Months[series.Len()-1]
	if n := len(report.Forecasts); n > 0 {
		till = float64(report.Forecasts[n-1].Month)
	}

	linTrend, err := plotter.NewLine(curveXYs(report.Linear.Eval, from, till))
	if err != nil {
		return nil, err
	}
	linTrend.Color = colorLinear
	linTrend.Width = vg.Points(1.5)

	seasTrend, err := plotter.NewLine(curveXYs(report.Seasonal.Eval, from, till))
	if err != nil {
		return nil, err
	}
	seasTrend.Color = colorSeasonal
	seasTrend.Width = vg.Points(1.5)
	seasTrend.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}

	p.Add(actual, linTrend, seasTrend)
	p.Legend.Add("Actual data", actual)
	p.Legend.Add("Linear trend", linTrend)
	p.Legend.Add("Seasonal trend (sine)", seasTrend)
	p.Legend.Top = true

	if len(report.Forecasts) > 0 {
		forecasts, err := forecastScatter(report.Forecasts)
		if err != nil {
			return nil, err
		}
		p.Add(forecasts)
		p.Legend.Add("Forecast", forecasts)
	}

	return p, nil
}

func observedXYs(series *timeseries.Series) plotter.XYs {
	pts := make(plotter.XYs, series.Len())
	for i := range pts {
		pts[i].X = series.Months[i]
		pts[i].Y = series.Values[i]
	}
	return pts
}

func curveXYs(eval func(float64) float64, from, till float64) plotter.XYs {
	xs := utils.Linspace(from, till, curveSamples)
	pts := make(plotter.XYs, len(xs))
	for i, x := range xs {
		pts[i].X = x
		pts[i].Y = eval(x)
	}
	return pts
}

func forecastScatter(forecasts []models.Forecast) (*plotter.Scatter, error) {
	pts := make(plotter.XYs, 0, 2*len(forecasts))
	for _, fc := range forecasts {
		t := float64(fc.Month)
		pts = append(pts, plotter.XY{X: t, Y: fc.Linear}, plotter.XY{X: t, Y: fc.Seasonal})
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = colorForecast
	s.GlyphStyle.Radius = vg.Points(4)
	s.GlyphStyle.Shape = draw.CrossGlyph{}
	return s, nil
}
