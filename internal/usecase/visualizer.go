package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"fraud-analysis/internal/domain"
	"fraud-analysis/internal/logger"
)

// Chart colors: green for legitimate, red for fraud, blue for neutral series.
const (
	colorLegitimate = "#2ecc71"
	colorFraud      = "#e74c3c"
	colorNeutral    = "#3498db"
)

type chartBuilder struct {
	name  string
	build func() (*domain.ChartSpec, error)
}

// renderCharts builds and renders every chart of the analysis. Each chart
// attempt is isolated: a failure is wrapped in ChartRenderError, logged, and
// recorded in the result without aborting the remaining charts.
func (uc *AnalysisUseCase) renderCharts(ctx context.Context, ds *domain.Dataset, stats *domain.SummaryStats, outputDir string) []domain.ChartResult {
	log := logger.FromContext(ctx)

	builders := []chartBuilder{
		{"01_fraud_distribution", func() (*domain.ChartSpec, error) {
			return buildClassDistributionChart(stats)
		}},
		{"02_amount_analysis", func() (*domain.ChartSpec, error) {
			return buildAmountDistributionChart(ds)
		}},
		{"02_amount_boxplot", func() (*domain.ChartSpec, error) {
			return buildAmountBoxPlotChart(ds)
		}},
		{"03_feature_correlation", func() (*domain.ChartSpec, error) {
			return buildFeatureCorrelationChart(stats)
		}},
	}
	for _, fc := range topDiscriminating(stats, 6) {
		feature := fc.Feature
		builders = append(builders, chartBuilder{
			name: "04_top_feature_" + strings.ToLower(feature),
			build: func() (*domain.ChartSpec, error) {
				return buildFeatureHistogramChart(ds, feature)
			},
		})
	}
	builders = append(builders,
		chartBuilder{"05_fraud_by_amount", func() (*domain.ChartSpec, error) {
			return buildFraudByAmountChart(ds, false)
		}},
		chartBuilder{"05_fraud_rate_by_amount", func() (*domain.ChartSpec, error) {
			return buildFraudByAmountChart(ds, true)
		}},
		chartBuilder{"06_correlation_matrix", func() (*domain.ChartSpec, error) {
			return buildCorrelationMatrixChart(ds, stats)
		}},
	)

	results := make([]domain.ChartResult, 0, len(builders))
	for _, b := range builders {
		spec, err := b.build()
		if err == nil {
			path := filepath.Join(outputDir, spec.Name+".png")
			if err = uc.charts.Render(ctx, *spec, path); err == nil {
				results = append(results, domain.ChartResult{Name: spec.Name, Path: path})
				continue
			}
		}
		renderErr := &domain.ChartRenderError{Chart: b.name, Err: err}
		log.Warn().Err(renderErr).Str("chart", b.name).Msg("chart skipped")
		results = append(results, domain.ChartResult{Name: b.name, Error: renderErr.Error()})
	}
	return results
}

func buildClassDistributionChart(stats *domain.SummaryStats) (*domain.ChartSpec, error) {
	return &domain.ChartSpec{
		Name:   "01_fraud_distribution",
		Kind:   domain.ChartBar,
		Title:  fmt.Sprintf("Fraud Distribution (%.2f%% fraud)", stats.FraudRate),
		YLabel: "Count",
		Series: []domain.ChartSeries{{
			Name:  "Transactions",
			Color: colorNeutral,
			Points: []domain.ChartPoint{
				{Label: domain.ClassLegitimate.String(), Value: float64(stats.LegitimateCount)},
				{Label: domain.ClassFraud.String(), Value: float64(stats.FraudCount)},
			},
		}},
	}, nil
}

func buildAmountDistributionChart(ds *domain.Dataset) (*domain.ChartSpec, error) {
	amountIdx, ok := ds.ColumnIndex(domain.AmountColumn)
	if !ok {
		return nil, errors.New("dataset has no Amount column")
	}
	legit, fraud := splitColumnByClass(ds, amountIdx)
	return &domain.ChartSpec{
		Name:   "02_amount_analysis",
		Kind:   domain.ChartHistogram,
		Title:  "Amount Distribution by Class",
		XLabel: "Amount ($)",
		YLabel: "Frequency",
		Bins:   50,
		Series: []domain.ChartSeries{
			{Name: domain.ClassLegitimate.String(), Color: colorLegitimate, Points: legit},
			{Name: domain.ClassFraud.String(), Color: colorFraud, Points: fraud},
		},
	}, nil
}

func buildAmountBoxPlotChart(ds *domain.Dataset) (*domain.ChartSpec, error) {
	amountIdx, ok := ds.ColumnIndex(domain.AmountColumn)
	if !ok {
		return nil, errors.New("dataset has no Amount column")
	}
	legit, fraud := splitColumnByClass(ds, amountIdx)
	return &domain.ChartSpec{
		Name:   "02_amount_boxplot",
		Kind:   domain.ChartBox,
		Title:  "Amount Comparison by Class",
		YLabel: "Amount ($)",
		Series: []domain.ChartSeries{
			{Name: domain.ClassLegitimate.String(), Color: colorLegitimate, Points: legit},
			{Name: domain.ClassFraud.String(), Color: colorFraud, Points: fraud},
		},
	}, nil
}

func buildFeatureCorrelationChart(stats *domain.SummaryStats) (*domain.ChartSpec, error) {
	if len(stats.ClassCorrelations) == 0 {
		return nil, errors.New("no feature correlations available")
	}
	sorted := append([]domain.FeatureCorrelation(nil), stats.ClassCorrelations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Correlation < sorted[j].Correlation })

	points := make([]domain.ChartPoint, len(sorted))
	for i, fc := range sorted {
		points[i] = domain.ChartPoint{Label: fc.Feature, Value: fc.Correlation}
	}
	return &domain.ChartSpec{
		Name:   "03_feature_correlation",
		Kind:   domain.ChartHBar,
		Title:  "Feature Correlation with Fraud",
		XLabel: "Correlation",
		Series: []domain.ChartSeries{{Name: "Correlation", Color: colorNeutral, Points: points}},
	}, nil
}

func buildFeatureHistogramChart(ds *domain.Dataset, feature string) (*domain.ChartSpec, error) {
	idx, ok := ds.ColumnIndex(feature)
	if !ok {
		return nil, fmt.Errorf("dataset has no %s column", feature)
	}
	legit, fraud := splitColumnByClass(ds, idx)
	return &domain.ChartSpec{
		Name:    "04_top_feature_" + strings.ToLower(feature),
		Kind:    domain.ChartHistogram,
		Title:   feature + " by Class",
		XLabel:  feature,
		YLabel:  "Density",
		Bins:    50,
		Density: true,
		Series: []domain.ChartSeries{
			{Name: domain.ClassLegitimate.String(), Color: colorLegitimate, Points: legit},
			{Name: domain.ClassFraud.String(), Color: colorFraud, Points: fraud},
		},
	}, nil
}

func buildFraudByAmountChart(ds *domain.Dataset, rate bool) (*domain.ChartSpec, error) {
	summary, err := amountCategorySummary(ds)
	if err != nil {
		return nil, err
	}

	points := make([]domain.ChartPoint, 0, len(summary))
	for _, row := range summary {
		value := float64(row.fraud)
		if rate {
			value = float64(row.fraud) / float64(row.total) * 100
		}
		points = append(points, domain.ChartPoint{Label: row.category, Value: value})
	}

	spec := &domain.ChartSpec{
		Name:   "05_fraud_by_amount",
		Kind:   domain.ChartBar,
		Title:  "Fraud by Amount Category",
		XLabel: "Amount Category",
		YLabel: "Fraud Count",
		Series: []domain.ChartSeries{{Name: "Fraud", Color: colorFraud, Points: points}},
	}
	if rate {
		spec.Name = "05_fraud_rate_by_amount"
		spec.Title = "Fraud Rate by Amount Category"
		spec.YLabel = "Fraud Rate (%)"
		spec.Series[0].Color = colorNeutral
	}
	return spec, nil
}

func buildCorrelationMatrixChart(ds *domain.Dataset, stats *domain.SummaryStats) (*domain.ChartSpec, error) {
	if stats.Correlations == nil {
		return nil, errors.New("no correlation matrix available")
	}

	labels := make([]string, 0, 10)
	for _, fc := range topDiscriminating(stats, 8) {
		labels = append(labels, fc.Feature)
	}
	if _, ok := ds.ColumnIndex(domain.AmountColumn); ok {
		labels = append(labels, domain.AmountColumn)
	}
	labels = append(labels, domain.ClassColumn)

	values := make([][]float64, len(labels))
	for i, a := range labels {
		values[i] = make([]float64, len(labels))
		for j, b := range labels {
			r, ok := stats.Correlations.At(a, b)
			if !ok {
				return nil, fmt.Errorf("column %s missing from correlation matrix", b)
			}
			values[i][j] = r
		}
	}

	return &domain.ChartSpec{
		Name:    "06_correlation_matrix",
		Kind:    domain.ChartHeatmap,
		Title:   "Correlation Matrix",
		Heatmap: &domain.HeatmapData{Labels: labels, Values: values},
	}, nil
}

// topDiscriminating returns the n features most correlated with the class
// label, skipping the amount columns so the anonymized features dominate.
func topDiscriminating(stats *domain.SummaryStats, n int) []domain.FeatureCorrelation {
	top := make([]domain.FeatureCorrelation, 0, n)
	for _, fc := range stats.ClassCorrelations {
		if fc.Feature == domain.AmountColumn || fc.Feature == domain.AmountNormalizedColumn {
			continue
		}
		top = append(top, fc)
		if len(top) == n {
			break
		}
	}
	return top
}

func splitColumnByClass(ds *domain.Dataset, idx int) (legitimate, fraud []domain.ChartPoint) {
	for i, row := range ds.Rows {
		pt := domain.ChartPoint{Value: row[idx]}
		if ds.ClassOf(i) == domain.ClassFraud {
			fraud = append(fraud, pt)
		} else {
			legitimate = append(legitimate, pt)
		}
	}
	return legitimate, fraud
}
