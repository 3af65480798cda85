package schema

import "time"

// RunSummary holds the counters recorded when a report run completes.
type RunSummary struct {
	Observations int
	Filled       int
	Warnings     int
	Annotations  int
}

// RunRecord represents a row from the cpitrend_runs table.
type RunRecord struct {
	RunID         int64
	Dataset       string
	SeriesName    string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	Observations  int32
	Filled        int32
	Warnings      int32
	Annotations   int32
	ConfigParams  *string
}

// ObservationRecord represents a row from the cpitrend_observations table.
type ObservationRecord struct {
	RunID  int64
	Date   time.Time
	Value  *float64
	Status string
}
