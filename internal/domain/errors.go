package domain

import (
	"fmt"
	"strings"
)

// SchemaError reports required dataset columns that are absent.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset %s is missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
}

// InsufficientDataError reports a table too small for descriptive statistics.
// Variance and correlation are undefined below 2 records.
type InsufficientDataError struct {
	Rows int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d records, need at least 2 for variance and correlation", e.Rows)
}

// InsufficientRowsError reports a class with fewer rows than the requested
// sample size.
type InsufficientRowsError struct {
	Class string
	Have  int
	Want  int
}

func (e *InsufficientRowsError) Error() string {
	return fmt.Sprintf("insufficient %s rows for sampling: have %d, want %d", e.Class, e.Have, e.Want)
}

// ChartRenderError wraps a single chart's failure. Chart failures are
// isolated: they never abort the rest of the pipeline.
type ChartRenderError struct {
	Chart string
	Err   error
}

func (e *ChartRenderError) Error() string {
	return fmt.Sprintf("chart %s failed: %v", e.Chart, e.Err)
}

func (e *ChartRenderError) Unwrap() error { return e.Err }
