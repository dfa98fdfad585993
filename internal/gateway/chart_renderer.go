package gateway

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"fraud-analysis/internal/domain"
	"fraud-analysis/internal/logger"
)

// Fallback palette for series without an explicit color.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// PlotChartRenderer renders chart specs to PNG files using gonum/plot.
type PlotChartRenderer struct{}

// NewPlotChartRenderer creates a new renderer instance.
func NewPlotChartRenderer() *PlotChartRenderer {
	return &PlotChartRenderer{}
}

// Render draws a single chart spec to the given path. Rendering is
// idempotent: the same spec always produces an equivalent image.
func (r *PlotChartRenderer) Render(ctx context.Context, spec domain.ChartSpec, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create chart directory %s: %w", dir, err)
		}
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	var err error
	switch spec.Kind {
	case domain.ChartBar:
		err = addBars(p, spec, false)
	case domain.ChartHBar:
		err = addBars(p, spec, true)
	case domain.ChartHistogram:
		err = addHistograms(p, spec)
	case domain.ChartBox:
		err = addBoxPlots(p, spec)
	case domain.ChartHeatmap:
		err = addHeatmap(p, spec)
	default:
		err = fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
	if err != nil {
		return err
	}

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	log := logger.FromContext(ctx)
	log.Debug().Str("chart", spec.Name).Str("path", path).Msg("chart rendered")
	return nil
}

func addBars(p *plot.Plot, spec domain.ChartSpec, horizontal bool) error {
	if len(spec.Series) == 0 || len(spec.Series[0].Points) == 0 {
		return fmt.Errorf("chart %s has no data", spec.Name)
	}

	width := vg.Points(20)
	if n := len(spec.Series[0].Points) * len(spec.Series); n > 15 {
		width = vg.Points(240 / float64(n))
	}

	for i, s := range spec.Series {
		values := make(plotter.Values, len(s.Points))
		for j, pt := range s.Points {
			values[j] = pt.Value
		}
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return fmt.Errorf("failed to build bar series %s: %w", s.Name, err)
		}
		bars.Color = seriesColor(s, i)
		bars.LineStyle.Width = 0
		bars.Horizontal = horizontal
		bars.Offset = vg.Length(float64(i)-float64(len(spec.Series)-1)/2) * width
		p.Add(bars)
		if len(spec.Series) > 1 {
			p.Legend.Add(s.Name, bars)
		}
	}

	labels := make([]string, len(spec.Series[0].Points))
	for j, pt := range spec.Series[0].Points {
		labels[j] = pt.Label
	}
	if horizontal {
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
	}
	return nil
}

func addHistograms(p *plot.Plot, spec domain.ChartSpec) error {
	if len(spec.Series) == 0 {
		return fmt.Errorf("chart %s has no data", spec.Name)
	}
	bins := spec.Bins
	if bins <= 0 {
		bins = 50
	}

	for i, s := range spec.Series {
		if len(s.Points) == 0 {
			continue
		}
		values := make(plotter.Values, len(s.Points))
		for j, pt := range s.Points {
			values[j] = pt.Value
		}
		hist, err := plotter.NewHist(values, bins)
		if err != nil {
			return fmt.Errorf("failed to build histogram series %s: %w", s.Name, err)
		}
		if spec.Density {
			hist.Normalize(1)
		}
		c := withAlpha(seriesColor(s, i), 160)
		hist.FillColor = c
		hist.LineStyle.Width = 0
		p.Add(hist)
		if len(spec.Series) > 1 {
			p.Legend.Add(s.Name, swatch{c})
		}
	}
	return nil
}

func addBoxPlots(p *plot.Plot, spec domain.ChartSpec) error {
	if len(spec.Series) == 0 {
		return fmt.Errorf("chart %s has no data", spec.Name)
	}

	names := make([]string, 0, len(spec.Series))
	for i, s := range spec.Series {
		values := make(plotter.Values, len(s.Points))
		for j, pt := range s.Points {
			values[j] = pt.Value
		}
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), values)
		if err != nil {
			return fmt.Errorf("failed to build box plot series %s: %w", s.Name, err)
		}
		box.FillColor = withAlpha(seriesColor(s, i), 160)
		p.Add(box)
		names = append(names, s.Name)
	}
	p.NominalX(names...)
	return nil
}

func addHeatmap(p *plot.Plot, spec domain.ChartSpec) error {
	hm := spec.Heatmap
	if hm == nil || len(hm.Values) == 0 {
		return fmt.Errorf("chart %s has no heatmap data", spec.Name)
	}

	grid := heatGrid{values: hm.Values}
	heat := plotter.NewHeatMap(grid, moreland.SmoothBlueRed().Palette(255))
	heat.Min = -1
	heat.Max = 1
	p.Add(heat)

	ticks := make([]plot.Tick, len(hm.Labels))
	for i, l := range hm.Labels {
		ticks[i] = plot.Tick{Value: float64(i), Label: l}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	return nil
}

// heatGrid adapts a row-major matrix to plotter.GridXYZ.
type heatGrid struct {
	values [][]float64
}

func (g heatGrid) Dims() (c, r int) {
	if len(g.values) == 0 {
		return 0, 0
	}
	return len(g.values[0]), len(g.values)
}

func (g heatGrid) Z(c, r int) float64 { return g.values[r][c] }
func (g heatGrid) X(c int) float64    { return float64(c) }
func (g heatGrid) Y(r int) float64    { return float64(r) }

// swatch is a solid-color legend thumbnail for plotters that don't
// implement plot.Thumbnailer themselves.
type swatch struct {
	col color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.col, pts)
}

func seriesColor(s domain.ChartSeries, i int) color.NRGBA {
	if c, ok := parseHexColor(s.Color); ok {
		return c
	}
	c, _ := parseHexColor(defaultColors[i%len(defaultColors)])
	return c
}

func parseHexColor(s string) (color.NRGBA, bool) {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
