package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountCategory(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{10, "Very Low"},
		{50, "Very Low"},
		{50.01, "Low"},
		{200, "Low"},
		{500, "Medium"},
		{1000, "High"},
		{1500, "Very High"},
		{math.NaN(), ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AmountCategory(tt.amount), "amount %v", tt.amount)
	}
}

func TestDataset_CountByClass(t *testing.T) {
	ds := &Dataset{
		Columns:  []string{"V1", "Class"},
		ClassIdx: 1,
		Rows: [][]float64{
			{1, 0},
			{2, 1},
			{3, 0},
			{4, 0},
		},
	}

	legitimate, fraud := ds.CountByClass()

	assert.Equal(t, 3, legitimate)
	assert.Equal(t, 1, fraud)
	assert.Equal(t, ds.NumRows(), legitimate+fraud)
	assert.Equal(t, []int{1}, ds.RowIndicesByClass(ClassFraud))
	assert.Equal(t, []int{0, 2, 3}, ds.RowIndicesByClass(ClassLegitimate))
}

func TestDataset_FeatureColumns(t *testing.T) {
	ds := &Dataset{
		Columns:  []string{"V1", "Class", "Amount"},
		ClassIdx: 1,
	}

	assert.Equal(t, []string{"V1", "Amount"}, ds.FeatureColumns())
}

func TestDataset_Column(t *testing.T) {
	ds := &Dataset{
		Columns:  []string{"V1", "Class"},
		ClassIdx: 1,
		Rows:     [][]float64{{1, 0}, {2, 1}},
	}

	assert.Equal(t, []float64{1, 2}, ds.Column("V1"))
	assert.Nil(t, ds.Column("V99"))
}

func TestDataset_Select(t *testing.T) {
	ds := &Dataset{
		Columns:  []string{"V1", "Class"},
		ClassIdx: 1,
		Rows:     [][]float64{{1, 0}, {2, 1}, {3, 0}},
	}

	selected := ds.Select([]int{2, 0})

	assert.Equal(t, [][]float64{{3, 0}, {1, 0}}, selected.Rows)
	assert.Equal(t, ds.Columns, selected.Columns)
	assert.Equal(t, ds.ClassIdx, selected.ClassIdx)
	// receiver untouched
	assert.Equal(t, 3, ds.NumRows())
}

func TestClassLabel_String(t *testing.T) {
	assert.Equal(t, "Legitimate", ClassLegitimate.String())
	assert.Equal(t, "Fraud", ClassFraud.String())
}
