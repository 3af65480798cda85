package schema

import "time"

// ReportRow is one line of the report: an observation with its provenance and rates.
type ReportRow struct {
	Date         time.Time         `json:"date"`
	Value        *float64          `json:"value"`
	Status       ObservationStatus `json:"status"`
	PeriodChange *float64          `json:"period_change"`
	YearChange   *float64          `json:"year_change"`
	Annotations  []string          `json:"annotations,omitempty"` // Labels of in-range annotations covering this date
}

// Report is the complete output of a report run.
type Report struct {
	Title       string               `json:"title"`
	Series      string               `json:"series"`
	Rows        []ReportRow          `json:"rows"`
	Descriptors []Descriptor         `json:"descriptors"`
	Warnings    []BoundaryGapWarning `json:"warnings"`
}
