package usecase

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"fraud-analysis/internal/domain"
)

// Clean derives a new dataset ready for profiling and export:
//   - NaN cells (blank or unparsable in the source file) are replaced by the
//     column median,
//   - a normalized amount column ((amount - mean) / std) is appended when the
//     dataset has an Amount column.
//
// The input dataset is never mutated.
func Clean(ds *domain.Dataset) *domain.Dataset {
	medians := make([]float64, len(ds.Columns))
	for j := range ds.Columns {
		vals := make([]float64, 0, len(ds.Rows))
		for _, row := range ds.Rows {
			if !math.IsNaN(row[j]) {
				vals = append(vals, row[j])
			}
		}
		medians[j] = median(vals)
	}

	amountIdx, hasAmount := ds.ColumnIndex(domain.AmountColumn)
	columns := append([]string(nil), ds.Columns...)

	var amountMean, amountStd float64
	if hasAmount {
		columns = append(columns, domain.AmountNormalizedColumn)
		amounts := make([]float64, len(ds.Rows))
		for i, row := range ds.Rows {
			v := row[amountIdx]
			if math.IsNaN(v) {
				v = medians[amountIdx]
			}
			amounts[i] = v
		}
		amountMean = stat.Mean(amounts, nil)
		amountStd = stat.StdDev(amounts, nil)
		if amountStd == 0 || math.IsNaN(amountStd) {
			amountStd = 1
		}
	}

	rows := make([][]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		out := make([]float64, len(row), len(columns))
		for j, v := range row {
			if math.IsNaN(v) {
				v = medians[j]
			}
			out[j] = v
		}
		if hasAmount {
			out = append(out, (out[amountIdx]-amountMean)/amountStd)
		}
		rows[i] = out
	}

	return &domain.Dataset{Columns: columns, Rows: rows, ClassIdx: ds.ClassIdx}
}

func median(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
