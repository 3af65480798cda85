package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/cpitrend/schema"
)

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"report", new(ReportObservation), []string{"date", "value", "status", "period_change", "year_change", "annotations"}},
		{"run", new(Run), []string{"run_id", "dataset", "series_name", "start_time", "end_time", "run_duration_ms", "observations", "filled", "warnings", "annotations", "config_params"}},
		{"observation", new(Observation), []string{"run_id", "date", "value", "status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, col := range tt.columns {
				_, ok := s.Lookup(col)
				assert.True(t, ok, "Column %s should exist in schema", col)
			}
		})
	}
}

func TestWriteReport(t *testing.T) {
	d := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []schema.ReportRow{
		{Date: d, Value: schema.Float(100.5), Status: schema.ObservedStatus, Annotations: []string{"pandemic", "lockdown"}},
		{Date: d.AddDate(0, 3, 0), Status: schema.MissingStatus, PeriodChange: schema.Float(1.25)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, rows))

	reader := parquet.NewGenericReader[ReportObservation](bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()

	got := make([]ReportObservation, reader.NumRows())
	n, err := reader.Read(got)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)

	assert.True(t, d.Equal(got[0].Date))
	require.NotNil(t, got[0].Value)
	assert.InDelta(t, 100.5, *got[0].Value, 1e-12)
	assert.Equal(t, "pandemic|lockdown", got[0].Annotations)
	assert.Nil(t, got[1].Value)
	assert.Equal(t, "missing", got[1].Status)
	require.NotNil(t, got[1].PeriodChange)
	assert.InDelta(t, 1.25, *got[1].PeriodChange, 1e-12)
}

func TestWriteRunsParquet(t *testing.T) {
	start := time.Now().Add(-time.Minute)
	end := start.Add(1500 * time.Millisecond)
	duration := int32(1500)
	params := `{"year_lag":4}`
	records := []schema.RunRecord{
		{RunID: 1, Dataset: "cpi.csv", SeriesName: "CPI", StartTime: start, EndTime: &end, RunDurationMs: &duration, Observations: 20, Filled: 3, Warnings: 1, Annotations: 2, ConfigParams: &params},
		{RunID: 2, Dataset: "cpi.xlsx", SeriesName: "CPI", StartTime: start},
	}

	path := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteRunsParquet(ConvertRunRecords(records), path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[Run](file)
	defer func() { _ = reader.Close() }()

	got := make([]Run, reader.NumRows())
	n, err := reader.Read(got)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)

	assert.Equal(t, int64(1), got[0].RunID)
	assert.Equal(t, int32(3), got[0].Filled)
	require.NotNil(t, got[0].EndTime)
	assert.WithinDuration(t, end, *got[0].EndTime, time.Nanosecond)
	require.NotNil(t, got[0].ConfigParams)
	assert.Equal(t, params, *got[0].ConfigParams)

	assert.Nil(t, got[1].EndTime)
	assert.Nil(t, got[1].RunDurationMs)
	assert.Nil(t, got[1].ConfigParams)
}

func TestWriteObservationsParquet(t *testing.T) {
	records := []schema.ObservationRecord{
		{RunID: 1, Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Value: schema.Float(99), Status: "observed"},
		{RunID: 1, Date: time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC), Status: "missing"},
	}

	path := filepath.Join(t.TempDir(), "observations.parquet")
	require.NoError(t, WriteObservationsParquet(ConvertObservationRecords(records), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteParquet_EmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRunsParquet([]Run{}, path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteObservationsParquet(nil, "/nonexistent/dir/out.parquet")
	assert.Error(t, err)
}
