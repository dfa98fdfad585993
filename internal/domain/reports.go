package domain

// FeatureStats holds the descriptive statistics of one numeric column.
type FeatureStats struct {
	Name   string  `json:"name"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// FeatureCorrelation is the Pearson correlation of one feature with the
// class label.
type FeatureCorrelation struct {
	Feature     string  `json:"feature"`
	Correlation float64 `json:"correlation"`
}

// CorrelationMatrix is the full pairwise Pearson correlation across all
// numeric columns, class label included.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64 // Values[i][j] = corr(Columns[i], Columns[j])
}

// At looks up the correlation between two columns by name.
func (m *CorrelationMatrix) At(a, b string) (float64, bool) {
	ai, bi := -1, -1
	for i, c := range m.Columns {
		if c == a {
			ai = i
		}
		if c == b {
			bi = i
		}
	}
	if ai < 0 || bi < 0 {
		return 0, false
	}
	return m.Values[ai][bi], true
}

// SummaryStats is the read-only aggregate computed once per run. Charts and
// exports consume it; nothing mutates it.
type SummaryStats struct {
	TotalRecords        int                  `json:"total_records"`
	LegitimateCount     int                  `json:"legitimate_count"`
	FraudCount          int                  `json:"fraud_count"`
	FraudRate           float64              `json:"fraud_rate"` // percent
	AvgLegitimateAmount float64              `json:"avg_legitimate_amount"`
	AvgFraudAmount      float64              `json:"avg_fraud_amount"`
	Features            []FeatureStats       `json:"features"`
	ClassCorrelations   []FeatureCorrelation `json:"class_correlations"` // sorted by |r| descending

	// Correlations is the full matrix; too large for the JSON report.
	Correlations *CorrelationMatrix `json:"-"`
}

// ChartResult records one chart attempt, successful or not.
type ChartResult struct {
	Name  string `json:"name"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

// ExportResult records one file written for downstream consumption.
type ExportResult struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

// SampleSummary describes the balanced sample drawn at the end of the run.
type SampleSummary struct {
	PerClass  int   `json:"per_class"`
	Seed      int64 `json:"seed"`
	TotalRows int   `json:"total_rows"`
}

// AnalysisReport is the top-level structure for the final JSON output.
type AnalysisReport struct {
	RunID     string         `json:"run_id"`
	InputPath string         `json:"input_path"`
	Summary   SummaryStats   `json:"summary"`
	Charts    []ChartResult  `json:"charts"`
	Sample    SampleSummary  `json:"sample"`
	Exports   []ExportResult `json:"exports"`
}
