package usecase

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"fraud-analysis/internal/domain"
)

// Profile computes the summary statistics of a transaction table: per-class
// counts, per-feature descriptive statistics, the full pairwise correlation
// matrix (class label included) and each feature's correlation with the
// class, sorted by absolute value. The input dataset is not mutated.
//
// Tables with fewer than 2 records yield an InsufficientDataError; there are
// no other failure modes.
func Profile(ds *domain.Dataset) (*domain.SummaryStats, error) {
	n := ds.NumRows()
	if n < 2 {
		return nil, &domain.InsufficientDataError{Rows: n}
	}

	legitimate, fraud := ds.CountByClass()
	stats := &domain.SummaryStats{
		TotalRecords:    n,
		LegitimateCount: legitimate,
		FraudCount:      fraud,
		FraudRate:       float64(fraud) / float64(n) * 100,
	}

	if amountIdx, ok := ds.ColumnIndex(domain.AmountColumn); ok {
		var legitSum, fraudSum float64
		for i, row := range ds.Rows {
			if ds.ClassOf(i) == domain.ClassFraud {
				fraudSum += row[amountIdx]
			} else {
				legitSum += row[amountIdx]
			}
		}
		if legitimate > 0 {
			stats.AvgLegitimateAmount = legitSum / float64(legitimate)
		}
		if fraud > 0 {
			stats.AvgFraudAmount = fraudSum / float64(fraud)
		}
	}

	for _, name := range ds.FeatureColumns() {
		col := ds.Column(name)
		stats.Features = append(stats.Features, domain.FeatureStats{
			Name:   name,
			Min:    floats.Min(col),
			Max:    floats.Max(col),
			Mean:   stat.Mean(col, nil),
			StdDev: stat.StdDev(col, nil),
		})
	}

	stats.Correlations = correlationMatrix(ds)

	for i, name := range ds.Columns {
		if i == ds.ClassIdx {
			continue
		}
		r := stats.Correlations.Values[i][ds.ClassIdx]
		if math.IsNaN(r) {
			continue // constant column
		}
		stats.ClassCorrelations = append(stats.ClassCorrelations, domain.FeatureCorrelation{
			Feature:     name,
			Correlation: r,
		})
	}
	sort.SliceStable(stats.ClassCorrelations, func(i, j int) bool {
		return math.Abs(stats.ClassCorrelations[i].Correlation) > math.Abs(stats.ClassCorrelations[j].Correlation)
	})

	return stats, nil
}

func correlationMatrix(ds *domain.Dataset) *domain.CorrelationMatrix {
	n, k := ds.NumRows(), len(ds.Columns)
	flat := make([]float64, n*k)
	for i, row := range ds.Rows {
		copy(flat[i*k:(i+1)*k], row)
	}

	sym := mat.NewSymDense(k, nil)
	stat.CorrelationMatrix(sym, mat.NewDense(n, k, flat), nil)

	values := make([][]float64, k)
	for i := range values {
		values[i] = make([]float64, k)
		for j := 0; j < k; j++ {
			values[i][j] = sym.At(i, j)
		}
	}
	return &domain.CorrelationMatrix{
		Columns: append([]string(nil), ds.Columns...),
		Values:  values,
	}
}
