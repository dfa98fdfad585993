package usecase_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"fraud-analysis/internal/domain"
	"fraud-analysis/internal/usecase"
)

func profilerFixture() *domain.Dataset {
	return &domain.Dataset{
		Columns:  []string{"V1", "Amount", "Class"},
		ClassIdx: 2,
		Rows: [][]float64{
			{1, 10, 0},
			{2, 20, 0},
			{3, 30, 1},
			{4, 40, 1},
		},
	}
}

func TestProfile(t *testing.T) {
	stats, err := usecase.Profile(profilerFixture())

	assert.NoError(t, err)
	assert.Equal(t, 4, stats.TotalRecords)
	assert.Equal(t, 2, stats.LegitimateCount)
	assert.Equal(t, 2, stats.FraudCount)
	assert.Equal(t, stats.TotalRecords, stats.LegitimateCount+stats.FraudCount)
	assert.InDelta(t, 50.0, stats.FraudRate, 1e-9)
	assert.InDelta(t, 15.0, stats.AvgLegitimateAmount, 1e-9)
	assert.InDelta(t, 35.0, stats.AvgFraudAmount, 1e-9)
}

func TestProfile_FeatureStats(t *testing.T) {
	stats, err := usecase.Profile(profilerFixture())
	assert.NoError(t, err)

	assert.Len(t, stats.Features, 2) // V1 and Amount, not Class
	v1 := stats.Features[0]
	assert.Equal(t, "V1", v1.Name)
	assert.Equal(t, 1.0, v1.Min)
	assert.Equal(t, 4.0, v1.Max)
	assert.InDelta(t, 2.5, v1.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(5.0/3.0), v1.StdDev, 1e-9)
}

func TestProfile_Correlations(t *testing.T) {
	stats, err := usecase.Profile(profilerFixture())
	assert.NoError(t, err)

	matrix := stats.Correlations
	assert.Equal(t, []string{"V1", "Amount", "Class"}, matrix.Columns)
	for i := range matrix.Columns {
		assert.InDelta(t, 1.0, matrix.Values[i][i], 1e-9)
		for j := range matrix.Columns {
			assert.InDelta(t, matrix.Values[j][i], matrix.Values[i][j], 1e-12)
		}
	}

	// V1 and Amount are perfectly correlated in the fixture.
	r, ok := matrix.At("V1", "Amount")
	assert.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-9)

	// corr([1,2,3,4], [0,0,1,1]) = 2/sqrt(5)
	r, ok = matrix.At("V1", domain.ClassColumn)
	assert.True(t, ok)
	assert.InDelta(t, 2.0/math.Sqrt(5), r, 1e-9)

	_, ok = matrix.At("V1", "V99")
	assert.False(t, ok)
}

func TestProfile_ClassCorrelationsSortedByMagnitude(t *testing.T) {
	stats, err := usecase.Profile(profilerFixture())
	assert.NoError(t, err)

	assert.Len(t, stats.ClassCorrelations, 2)
	for _, fc := range stats.ClassCorrelations {
		assert.NotEqual(t, domain.ClassColumn, fc.Feature)
	}
	for i := 1; i < len(stats.ClassCorrelations); i++ {
		assert.GreaterOrEqual(t,
			math.Abs(stats.ClassCorrelations[i-1].Correlation),
			math.Abs(stats.ClassCorrelations[i].Correlation))
	}
}

func TestProfile_InsufficientData(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
	}{
		{name: "empty table", rows: nil},
		{name: "single record", rows: [][]float64{{1, 10, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &domain.Dataset{
				Columns:  []string{"V1", "Amount", "Class"},
				ClassIdx: 2,
				Rows:     tt.rows,
			}

			_, err := usecase.Profile(ds)

			var insufficientErr *domain.InsufficientDataError
			assert.ErrorAs(t, err, &insufficientErr)
			assert.Equal(t, len(tt.rows), insufficientErr.Rows)
		})
	}
}

func TestProfile_DoesNotMutateInput(t *testing.T) {
	ds := profilerFixture()
	want := profilerFixture()

	_, err := usecase.Profile(ds)

	assert.NoError(t, err)
	assert.Equal(t, want, ds)
}
