package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fraud-analysis/internal/domain"
)

// CSVDatasetRepository reads and writes transaction datasets as CSV files.
type CSVDatasetRepository struct{}

// NewCSVDatasetRepository creates a new repository instance.
func NewCSVDatasetRepository() *CSVDatasetRepository {
	return &CSVDatasetRepository{}
}

// LoadDataset reads a delimited transaction file into a Dataset.
// A missing file surfaces the os.Open error (fs.ErrNotExist reachable via
// errors.Is); a header without the class column yields a SchemaError.
// Blank or unparsable feature cells load as NaN for the cleaner to fill.
func (r *CSVDatasetRepository) LoadDataset(ctx context.Context, path string) (*domain.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	columns := make([]string, len(header))
	classIdx := -1
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
		if columns[i] == domain.ClassColumn {
			classIdx = i
		}
	}
	if classIdx < 0 {
		return nil, &domain.SchemaError{Path: path, Missing: []string{domain.ClassColumn}}
	}

	var rows [][]float64
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}
		line++

		row := make([]float64, len(columns))
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				row[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				if i == classIdx {
					return nil, fmt.Errorf("line %d of %s: could not parse class label '%s': %w", line, path, cell, err)
				}
				row[i] = math.NaN()
				continue
			}
			row[i] = v
		}
		if c := row[classIdx]; c != float64(domain.ClassLegitimate) && c != float64(domain.ClassFraud) {
			return nil, fmt.Errorf("line %d of %s: class label must be 0 or 1, got %v", line, path, c)
		}
		rows = append(rows, row)
	}

	return &domain.Dataset{Columns: columns, Rows: rows, ClassIdx: classIdx}, nil
}

// SaveDataset writes a dataset back out as CSV, preserving the column schema.
// The class column is written as an integer label.
func (r *CSVDatasetRepository) SaveDataset(ctx context.Context, path string, ds *domain.Dataset) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(ds.Columns); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, v := range row {
			if i == ds.ClassIdx {
				record[i] = strconv.Itoa(int(v))
			} else {
				record[i] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record to %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// SaveSummaryTable writes an auxiliary string table (header + rows) as CSV.
func (r *CSVDatasetRepository) SaveSummaryTable(ctx context.Context, path string, header []string, rows [][]string) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record to %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return file, nil
}
