package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"fraud-analysis/internal/domain"
	"fraud-analysis/internal/usecase"
	mock_usecase "fraud-analysis/internal/usecase/mocks"
)

func analysisFixture() *domain.Dataset {
	return &domain.Dataset{
		Columns:  []string{"V1", "V2", "Amount", "Class"},
		ClassIdx: 3,
		Rows: [][]float64{
			{1, 5, 10, 0},
			{2, 6, 60, 0},
			{3, 7, 250, 0},
			{4, 8, 600, 1},
			{5, 9, 1200, 1},
			{6, 10, 20, 1},
		},
	}
}

func seedOf(v int64) *int64 { return &v }

func TestAnalysisUseCase_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_usecase.NewMockDatasetRepository(ctrl)
	renderer := mock_usecase.NewMockChartRenderer(ctrl)

	outputDir := t.TempDir()
	samplePath := filepath.Join(outputDir, usecase.SampleExportFile)

	repo.EXPECT().LoadDataset(gomock.Any(), "creditcard.csv").Return(analysisFixture(), nil)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	var sample *domain.Dataset
	repo.EXPECT().
		SaveDataset(gomock.Any(), samplePath, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, ds *domain.Dataset) error {
			sample = ds
			return nil
		})
	repo.EXPECT().SaveSummaryTable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	uc := usecase.NewAnalysisUseCase(repo, renderer, zerolog.Nop())
	report, err := uc.Run(context.Background(), domain.Config{
		InputPath:      "creditcard.csv",
		OutputDir:      outputDir,
		SamplePerClass: 2,
		Seed:           seedOf(42),
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "creditcard.csv", report.InputPath)

	// profile of the cleaned table
	assert.Equal(t, 6, report.Summary.TotalRecords)
	assert.Equal(t, 3, report.Summary.LegitimateCount)
	assert.Equal(t, 3, report.Summary.FraudCount)

	// every chart attempt succeeded
	assert.NotEmpty(t, report.Charts)
	chartNames := make([]string, 0, len(report.Charts))
	for _, chart := range report.Charts {
		assert.Empty(t, chart.Error, "chart %s should not fail", chart.Name)
		assert.NotEmpty(t, chart.Path)
		chartNames = append(chartNames, chart.Name)
	}
	assert.Contains(t, chartNames, "01_fraud_distribution")
	assert.Contains(t, chartNames, "02_amount_boxplot")
	assert.Contains(t, chartNames, "06_correlation_matrix")

	// balanced sample exported with the cleaned schema
	assert.Equal(t, int64(42), report.Sample.Seed)
	assert.Equal(t, 4, report.Sample.TotalRows)
	assert.Equal(t, 4, sample.NumRows())
	legitimate, fraud := sample.CountByClass()
	assert.Equal(t, 2, legitimate)
	assert.Equal(t, 2, fraud)
	assert.Contains(t, sample.Columns, domain.AmountNormalizedColumn)

	assert.Len(t, report.Exports, 3)
	assert.Equal(t, "balanced_sample", report.Exports[0].Name)
	assert.Equal(t, "amount_summary", report.Exports[1].Name)
	assert.Equal(t, "feature_comparison", report.Exports[2].Name)
}

func TestAnalysisUseCase_Run_LoaderFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_usecase.NewMockDatasetRepository(ctrl)
	renderer := mock_usecase.NewMockChartRenderer(ctrl)

	repo.EXPECT().LoadDataset(gomock.Any(), "missing.csv").Return(nil, errors.New("open failed"))

	uc := usecase.NewAnalysisUseCase(repo, renderer, zerolog.Nop())
	report, err := uc.Run(context.Background(), domain.Config{InputPath: "missing.csv"})

	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "could not load dataset")
}

func TestAnalysisUseCase_Run_ChartFailuresAreIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_usecase.NewMockDatasetRepository(ctrl)
	renderer := mock_usecase.NewMockChartRenderer(ctrl)

	repo.EXPECT().LoadDataset(gomock.Any(), gomock.Any()).Return(analysisFixture(), nil)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("render failed")).AnyTimes()
	repo.EXPECT().SaveDataset(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().SaveSummaryTable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	uc := usecase.NewAnalysisUseCase(repo, renderer, zerolog.Nop())
	report, err := uc.Run(context.Background(), domain.Config{
		InputPath:      "creditcard.csv",
		OutputDir:      t.TempDir(),
		SamplePerClass: 2,
		Seed:           seedOf(1),
	})

	// chart failures never abort the run or the export
	assert.NoError(t, err)
	assert.NotEmpty(t, report.Charts)
	for _, chart := range report.Charts {
		assert.NotEmpty(t, chart.Error)
		assert.Empty(t, chart.Path)
	}
	assert.Len(t, report.Exports, 3)
}

func TestAnalysisUseCase_Run_InsufficientRowsIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_usecase.NewMockDatasetRepository(ctrl)
	renderer := mock_usecase.NewMockChartRenderer(ctrl)

	repo.EXPECT().LoadDataset(gomock.Any(), gomock.Any()).Return(analysisFixture(), nil)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	// no SaveDataset expectation: nothing may be exported

	uc := usecase.NewAnalysisUseCase(repo, renderer, zerolog.Nop())
	report, err := uc.Run(context.Background(), domain.Config{
		InputPath: "creditcard.csv",
		OutputDir: t.TempDir(),
		Seed:      seedOf(1), // default 10000 per class against 3/3 rows
	})

	assert.Nil(t, report)
	var insufficientErr *domain.InsufficientRowsError
	assert.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 3, insufficientErr.Have)
	assert.Equal(t, domain.DefaultSamplePerClass, insufficientErr.Want)
}

func TestAnalysisUseCase_Run_InsufficientDataIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_usecase.NewMockDatasetRepository(ctrl)
	renderer := mock_usecase.NewMockChartRenderer(ctrl)

	tiny := &domain.Dataset{
		Columns:  []string{"V1", "Amount", "Class"},
		ClassIdx: 2,
		Rows:     [][]float64{{1, 10, 0}},
	}
	repo.EXPECT().LoadDataset(gomock.Any(), gomock.Any()).Return(tiny, nil)

	uc := usecase.NewAnalysisUseCase(repo, renderer, zerolog.Nop())
	report, err := uc.Run(context.Background(), domain.Config{InputPath: "tiny.csv", OutputDir: t.TempDir()})

	assert.Nil(t, report)
	var insufficientErr *domain.InsufficientDataError
	assert.ErrorAs(t, err, &insufficientErr)
}

func TestAnalysisUseCase_Run_SampleIsReproducible(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_usecase.NewMockDatasetRepository(ctrl)
	renderer := mock_usecase.NewMockChartRenderer(ctrl)

	repo.EXPECT().LoadDataset(gomock.Any(), gomock.Any()).Return(analysisFixture(), nil).Times(2)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	var samples []*domain.Dataset
	repo.EXPECT().
		SaveDataset(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, ds *domain.Dataset) error {
			samples = append(samples, ds)
			return nil
		}).Times(2)
	repo.EXPECT().SaveSummaryTable(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)

	uc := usecase.NewAnalysisUseCase(repo, renderer, zerolog.Nop())
	cfg := domain.Config{
		InputPath:      "creditcard.csv",
		OutputDir:      t.TempDir(),
		SamplePerClass: 2,
		Seed:           seedOf(42),
	}
	_, err := uc.Run(context.Background(), cfg)
	assert.NoError(t, err)
	_, err = uc.Run(context.Background(), cfg)
	assert.NoError(t, err)

	assert.Len(t, samples, 2)
	assert.Equal(t, samples[0].Rows, samples[1].Rows)
}
