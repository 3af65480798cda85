// Package schema has models, typed constants and errors for all parts of cpitrend.
package schema

import "time"

// Observation is a single dated reading of the series.
// A nil Value marks a missing reading.
type Observation struct {
	Date  time.Time `json:"date"`
	Value *float64  `json:"value"`
}

// Known reports whether the observation carries a value.
func (o Observation) Known() bool {
	return o.Value != nil
}

// Series is an ordered sequence of observations, ascending by date with no duplicate dates.
type Series struct {
	Name         string        `json:"name"`
	Observations []Observation `json:"observations"`
}

// RawRow is one row handed over by a dataset reader before any parsing.
type RawRow struct {
	Line  int    // 1-based line or row number in the source, for error messages
	Date  string // Date text, e.g. "2020-03-31"
	Value string // Numeric text or a missing-value token
}

// Annotation is a labeled date range or point overlaid on the series.
type Annotation struct {
	Label string         `json:"label"`
	Kind  AnnotationKind `json:"kind"`
	Start time.Time      `json:"start"`
	End   *time.Time     `json:"end,omitempty"` // Only set for RangeKind
}

// Descriptor is the render-ready placement of one annotation against a series.
type Descriptor struct {
	Label      string         `json:"label"`
	Kind       AnnotationKind `json:"kind"`
	Start      time.Time      `json:"start"`       // Clamped range start, or the snapped point date
	End        time.Time      `json:"end"`         // Clamped range end, or the snapped point date
	LabelDate  time.Time      `json:"label_date"`  // Where the text label sits on the date axis
	LabelValue *float64       `json:"label_value"` // Series value at LabelDate, nil if unknown
	OutOfRange bool           `json:"out_of_range"`
}

// BoundaryGapWarning reports a missing observation that could not be interpolated
// because it has no known neighbour on one side.
type BoundaryGapWarning struct {
	Date     time.Time        `json:"date"`
	Position BoundaryPosition `json:"position"`
}

// FillResult is the outcome of a gap-fill pass.
type FillResult struct {
	Series   Series               `json:"series"`
	Filled   []time.Time          `json:"filled"`   // Dates whose value was interpolated
	Warnings []BoundaryGapWarning `json:"warnings"` // Unfillable boundary gaps
}

// Rate is a percentage change of the series at a date.
// A nil field means the rate is undefined for that date.
type Rate struct {
	Date         time.Time `json:"date"`
	PeriodChange *float64  `json:"period_change"`
	YearChange   *float64  `json:"year_change"`
}
