// Package parquet provides data structures and functions for exporting cpitrend
// reports and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/cpitrend/schema"
)

// annotationSeparator joins annotation labels into a single column.
const annotationSeparator = "|"

// ReportObservation is one row of a report: a dated value with its status and rates.
type ReportObservation struct {
	// Date of the observation (stored as TIMESTAMP with nanosecond precision)
	Date time.Time `parquet:"date,snappy"`

	// Value is the CPI value; null when it is still missing after gap filling
	Value *float64 `parquet:"value,optional,snappy"`

	// Status is observed, interpolated or missing
	Status string `parquet:"status,snappy,dict"`

	PeriodChange *float64 `parquet:"period_change,optional,snappy"`
	YearChange   *float64 `parquet:"year_change,optional,snappy"`

	// Annotations holds the labels covering this date, joined by "|"
	Annotations string `parquet:"annotations,snappy"`
}

// Run represents a single report run with metadata.
// This struct maps to the cpitrend_runs database table.
type Run struct {
	RunID      int64  `parquet:"run_id,snappy"`
	Dataset    string `parquet:"dataset,snappy"`
	SeriesName string `parquet:"series_name,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	Observations int32 `parquet:"observations,snappy"`
	Filled       int32 `parquet:"filled,snappy"`
	Warnings     int32 `parquet:"warnings,snappy"`
	Annotations  int32 `parquet:"annotations,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Observation is a stored observation of a past run.
// This struct maps to the cpitrend_observations database table.
type Observation struct {
	RunID  int64     `parquet:"run_id,snappy"`
	Date   time.Time `parquet:"date,snappy"`
	Value  *float64  `parquet:"value,optional,snappy"`
	Status string    `parquet:"status,snappy,dict"`
}

// writeRows encodes data to w with a schema derived from T's struct tags.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes data to it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeRows(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteReport writes report rows to w.
func WriteReport(w io.Writer, rows []schema.ReportRow) error {
	return writeRows(w, ConvertReportRows(rows))
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteObservationsParquet writes a slice of Observation structs to a Parquet file.
func WriteObservationsParquet(data []Observation, outputPath string) error {
	return writeFile(data, outputPath)
}

// ConvertReportRows converts report rows to their Parquet form.
func ConvertReportRows(rows []schema.ReportRow) []ReportObservation {
	out := make([]ReportObservation, len(rows))
	for i, r := range rows {
		out[i] = ReportObservation{
			Date:         r.Date,
			Value:        r.Value,
			Status:       string(r.Status),
			PeriodChange: r.PeriodChange,
			YearChange:   r.YearChange,
			Annotations:  strings.Join(r.Annotations, annotationSeparator),
		}
	}
	return out
}

// ConvertRunRecords converts schema.RunRecord to Run.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	out := make([]Run, len(records))
	for i, r := range records {
		out[i] = Run{
			RunID:         r.RunID,
			Dataset:       r.Dataset,
			SeriesName:    r.SeriesName,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			Observations:  r.Observations,
			Filled:        r.Filled,
			Warnings:      r.Warnings,
			Annotations:   r.Annotations,
			ConfigParams:  r.ConfigParams,
		}
	}
	return out
}

// ConvertObservationRecords converts schema.ObservationRecord to Observation.
func ConvertObservationRecords(records []schema.ObservationRecord) []Observation {
	out := make([]Observation, len(records))
	for i, r := range records {
		out[i] = Observation{RunID: r.RunID, Date: r.Date, Value: r.Value, Status: r.Status}
	}
	return out
}
