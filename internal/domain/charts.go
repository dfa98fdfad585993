package domain

// ChartKind selects the renderer used for a chart spec.
type ChartKind string

const (
	ChartBar       ChartKind = "bar"
	ChartHBar      ChartKind = "hbar"
	ChartHistogram ChartKind = "histogram"
	ChartBox       ChartKind = "box"
	ChartHeatmap   ChartKind = "heatmap"
)

// ChartPoint is a single labeled value. Histograms use Value only.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is one data series with an optional hex color ("#RRGGBB").
type ChartSeries struct {
	Name   string       `json:"name"`
	Color  string       `json:"color,omitempty"`
	Points []ChartPoint `json:"points"`
}

// HeatmapData is a square labeled grid, rendered row 0 at the bottom.
type HeatmapData struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
}

// ChartSpec is a render-ready chart description. The visualizer builds specs
// from the dataset and its summary statistics; a ChartRenderer turns each one
// into an image file. Rendering the same spec twice produces an equivalent
// chart.
type ChartSpec struct {
	Name    string        `json:"name"` // file stem, e.g. "01_fraud_distribution"
	Kind    ChartKind     `json:"kind"`
	Title   string        `json:"title"`
	XLabel  string        `json:"xLabel,omitempty"`
	YLabel  string        `json:"yLabel,omitempty"`
	Bins    int           `json:"bins,omitempty"`    // histogram bin count
	Density bool          `json:"density,omitempty"` // normalize histogram area to 1
	Series  []ChartSeries `json:"series,omitempty"`
	Heatmap *HeatmapData  `json:"heatmap,omitempty"`
}
