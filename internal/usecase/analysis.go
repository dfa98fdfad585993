package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fraud-analysis/internal/domain"
	"fraud-analysis/internal/logger"
)

// Output file names under the configured output directory.
const (
	SampleExportFile      = "fraud_data_for_tableau.csv"
	AmountSummaryFile     = "summary_by_amount.csv"
	FeatureComparisonFile = "feature_comparison.csv"
)

// AnalysisUseCase orchestrates the analysis pipeline:
// load -> clean -> profile -> visualize -> sample -> export.
type AnalysisUseCase struct {
	repo   DatasetRepository
	charts ChartRenderer
	log    zerolog.Logger
}

// NewAnalysisUseCase creates a new instance of the usecase.
func NewAnalysisUseCase(repo DatasetRepository, charts ChartRenderer, log zerolog.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{repo: repo, charts: charts, log: log}
}

// Run executes the full pipeline for one configuration and returns the run
// report. Loader, profiler, sampler and export errors are fatal and abort
// the run with no partial sample export; chart errors are isolated per chart
// and only recorded in the report.
func (uc *AnalysisUseCase) Run(ctx context.Context, cfg domain.Config) (*domain.AnalysisReport, error) {
	if cfg.SamplePerClass <= 0 {
		cfg.SamplePerClass = domain.DefaultSamplePerClass
	}
	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	runID := uuid.New().String()
	log := uc.log.With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx, log)

	raw, err := uc.repo.LoadDataset(ctx, cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("could not load dataset: %w", err)
	}
	log.Info().Int("rows", raw.NumRows()).Int("columns", len(raw.Columns)).Msg("dataset loaded")

	ds := Clean(raw)

	stats, err := Profile(ds)
	if err != nil {
		return nil, fmt.Errorf("could not profile dataset: %w", err)
	}
	log.Info().
		Int("fraud", stats.FraudCount).
		Int("legitimate", stats.LegitimateCount).
		Float64("fraud_rate", stats.FraudRate).
		Msg("dataset profiled")

	charts := uc.renderCharts(ctx, ds, stats, cfg.OutputDir)

	sample, err := BalancedSample(ds, cfg.SamplePerClass, seed)
	if err != nil {
		return nil, fmt.Errorf("could not draw balanced sample: %w", err)
	}

	report := &domain.AnalysisReport{
		RunID:     runID,
		InputPath: cfg.InputPath,
		Summary:   *stats,
		Charts:    charts,
		Sample: domain.SampleSummary{
			PerClass:  cfg.SamplePerClass,
			Seed:      seed,
			TotalRows: sample.NumRows(),
		},
	}

	samplePath := filepath.Join(cfg.OutputDir, SampleExportFile)
	if err := uc.repo.SaveDataset(ctx, samplePath, sample); err != nil {
		return nil, fmt.Errorf("could not export balanced sample: %w", err)
	}
	report.Exports = append(report.Exports, domain.ExportResult{
		Name: "balanced_sample",
		Path: samplePath,
		Rows: sample.NumRows(),
	})
	log.Info().Str("path", samplePath).Int("rows", sample.NumRows()).Int64("seed", seed).Msg("balanced sample exported")

	if export, err := uc.exportAmountSummary(ctx, ds, cfg.OutputDir); err != nil {
		var missing *missingColumnError
		if !errors.As(err, &missing) {
			return nil, err
		}
		log.Warn().Err(err).Msg("amount summary export skipped")
	} else {
		report.Exports = append(report.Exports, *export)
	}

	export, err := uc.exportFeatureComparison(ctx, ds, cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	report.Exports = append(report.Exports, *export)

	log.Info().Int("charts", len(report.Charts)).Int("exports", len(report.Exports)).Msg("analysis complete")
	return report, nil
}

// missingColumnError marks exports that are impossible for this schema
// rather than failed; the pipeline skips them instead of aborting.
type missingColumnError struct {
	column string
}

func (e *missingColumnError) Error() string {
	return fmt.Sprintf("dataset has no %s column", e.column)
}

type categoryCount struct {
	category string
	fraud    int
	total    int
}

// amountCategorySummary buckets every record by amount category and counts
// fraud per bucket, in bucket order. Empty buckets are omitted.
func amountCategorySummary(ds *domain.Dataset) ([]categoryCount, error) {
	amountIdx, ok := ds.ColumnIndex(domain.AmountColumn)
	if !ok {
		return nil, &missingColumnError{column: domain.AmountColumn}
	}

	totals := make(map[string]int)
	frauds := make(map[string]int)
	for i, row := range ds.Rows {
		cat := domain.AmountCategory(row[amountIdx])
		if cat == "" {
			continue
		}
		totals[cat]++
		if ds.ClassOf(i) == domain.ClassFraud {
			frauds[cat]++
		}
	}

	summary := make([]categoryCount, 0, len(domain.AmountCategories))
	for _, cat := range domain.AmountCategories {
		if totals[cat] == 0 {
			continue
		}
		summary = append(summary, categoryCount{category: cat, fraud: frauds[cat], total: totals[cat]})
	}
	if len(summary) == 0 {
		return nil, errors.New("no records with a usable amount")
	}
	return summary, nil
}

func (uc *AnalysisUseCase) exportAmountSummary(ctx context.Context, ds *domain.Dataset, outputDir string) (*domain.ExportResult, error) {
	summary, err := amountCategorySummary(ds)
	if err != nil {
		return nil, err
	}

	header := []string{"Amount_Category", "Fraud_Count", "Total", "Fraud_Rate"}
	rows := make([][]string, 0, len(summary))
	for _, row := range summary {
		rows = append(rows, []string{
			row.category,
			strconv.Itoa(row.fraud),
			strconv.Itoa(row.total),
			strconv.FormatFloat(float64(row.fraud)/float64(row.total), 'f', 4, 64),
		})
	}

	path := filepath.Join(outputDir, AmountSummaryFile)
	if err := uc.repo.SaveSummaryTable(ctx, path, header, rows); err != nil {
		return nil, fmt.Errorf("could not export amount summary: %w", err)
	}
	return &domain.ExportResult{Name: "amount_summary", Path: path, Rows: len(rows)}, nil
}

// exportFeatureComparison writes the per-class mean of every feature and the
// fraud-minus-legitimate difference.
func (uc *AnalysisUseCase) exportFeatureComparison(ctx context.Context, ds *domain.Dataset, outputDir string) (*domain.ExportResult, error) {
	legitimate, fraud := ds.CountByClass()

	legitSums := make([]float64, len(ds.Columns))
	fraudSums := make([]float64, len(ds.Columns))
	for i, row := range ds.Rows {
		sums := legitSums
		if ds.ClassOf(i) == domain.ClassFraud {
			sums = fraudSums
		}
		for j, v := range row {
			sums[j] += v
		}
	}

	header := []string{"Feature", "Legitimate_Mean", "Fraud_Mean", "Difference"}
	var rows [][]string
	for j, name := range ds.Columns {
		if j == ds.ClassIdx {
			continue
		}
		var legitMean, fraudMean float64
		if legitimate > 0 {
			legitMean = legitSums[j] / float64(legitimate)
		}
		if fraud > 0 {
			fraudMean = fraudSums[j] / float64(fraud)
		}
		rows = append(rows, []string{
			name,
			strconv.FormatFloat(legitMean, 'g', -1, 64),
			strconv.FormatFloat(fraudMean, 'g', -1, 64),
			strconv.FormatFloat(fraudMean-legitMean, 'g', -1, 64),
		})
	}

	path := filepath.Join(outputDir, FeatureComparisonFile)
	if err := uc.repo.SaveSummaryTable(ctx, path, header, rows); err != nil {
		return nil, fmt.Errorf("could not export feature comparison: %w", err)
	}
	return &domain.ExportResult{Name: "feature_comparison", Path: path, Rows: len(rows)}, nil
}
