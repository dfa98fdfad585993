package usecase

import (
	"context"

	"fraud-analysis/internal/domain"
)

// DatasetRepository defines the interface for reading and writing tabular
// datasets. The usecase layer depends on this interface, not on a concrete
// implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go DatasetRepository,ChartRenderer
type DatasetRepository interface {
	LoadDataset(ctx context.Context, path string) (*domain.Dataset, error)
	SaveDataset(ctx context.Context, path string, ds *domain.Dataset) error
	SaveSummaryTable(ctx context.Context, path string, header []string, rows [][]string) error
}

// ChartRenderer renders a single chart spec to an image file.
type ChartRenderer interface {
	Render(ctx context.Context, spec domain.ChartSpec, path string) error
}
