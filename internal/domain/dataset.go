package domain

import "math"

// ClassLabel is the binary transaction class.
type ClassLabel int

const (
	ClassLegitimate ClassLabel = 0
	ClassFraud      ClassLabel = 1
)

// String returns the human-readable label used in charts and exports.
func (c ClassLabel) String() string {
	if c == ClassFraud {
		return "Fraud"
	}
	return "Legitimate"
}

// Well-known column names in the credit card dataset.
const (
	ClassColumn            = "Class"
	AmountColumn           = "Amount"
	AmountNormalizedColumn = "Amount_Normalized"
)

// DefaultSamplePerClass is the number of rows drawn per class for the
// dashboard export when no explicit size is configured.
const DefaultSamplePerClass = 10000

// Config carries the invocation parameters for a full analysis run.
type Config struct {
	InputPath      string
	OutputDir      string
	SamplePerClass int
	// Seed fixes the sampling PRNG for reproducible exports.
	// When nil a time-derived seed is used and recorded in the report.
	Seed *int64
}

// Dataset is an in-memory transaction table: a fixed column schema and
// row-major numeric values. It is treated as immutable once built; derived
// tables (cleaned, sampled) are new Dataset values.
type Dataset struct {
	Columns  []string    // header, in file order
	Rows     [][]float64 // one slice per record, len(Columns) values each
	ClassIdx int         // index of ClassColumn within Columns
}

// NumRows returns the record count.
func (d *Dataset) NumRows() int { return len(d.Rows) }

// ColumnIndex returns the position of a column by name.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for i, c := range d.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Column extracts a full column as a new slice, or nil if the column
// does not exist.
func (d *Dataset) Column(name string) []float64 {
	idx, ok := d.ColumnIndex(name)
	if !ok {
		return nil
	}
	col := make([]float64, len(d.Rows))
	for i, row := range d.Rows {
		col[i] = row[idx]
	}
	return col
}

// FeatureColumns returns every column name except the class label.
func (d *Dataset) FeatureColumns() []string {
	features := make([]string, 0, len(d.Columns)-1)
	for i, c := range d.Columns {
		if i == d.ClassIdx {
			continue
		}
		features = append(features, c)
	}
	return features
}

// ClassOf returns the class label of a record.
func (d *Dataset) ClassOf(row int) ClassLabel {
	if d.Rows[row][d.ClassIdx] == float64(ClassFraud) {
		return ClassFraud
	}
	return ClassLegitimate
}

// CountByClass returns the number of legitimate and fraudulent records.
func (d *Dataset) CountByClass() (legitimate, fraud int) {
	for i := range d.Rows {
		if d.ClassOf(i) == ClassFraud {
			fraud++
		} else {
			legitimate++
		}
	}
	return legitimate, fraud
}

// RowIndicesByClass returns the indices of all records with the given label,
// in row order.
func (d *Dataset) RowIndicesByClass(label ClassLabel) []int {
	var indices []int
	for i := range d.Rows {
		if d.ClassOf(i) == label {
			indices = append(indices, i)
		}
	}
	return indices
}

// Select builds a new dataset containing the given rows in the given order.
// Row slices are shared with the receiver, which stays untouched.
func (d *Dataset) Select(rows []int) *Dataset {
	selected := make([][]float64, 0, len(rows))
	for _, idx := range rows {
		selected = append(selected, d.Rows[idx])
	}
	return &Dataset{
		Columns:  d.Columns,
		Rows:     selected,
		ClassIdx: d.ClassIdx,
	}
}

// AmountCategories lists the transaction amount buckets from smallest to
// largest. Bucket edges: 50, 200, 500, 1000.
var AmountCategories = []string{"Very Low", "Low", "Medium", "High", "Very High"}

// AmountCategory buckets a transaction amount, or returns "" for NaN.
func AmountCategory(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return ""
	case amount <= 50:
		return AmountCategories[0]
	case amount <= 200:
		return AmountCategories[1]
	case amount <= 500:
		return AmountCategories[2]
	case amount <= 1000:
		return AmountCategories[3]
	default:
		return AmountCategories[4]
	}
}
