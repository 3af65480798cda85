package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/huangsam/cpitrend/schema"
)

var defaultOpts = Options{DateColumn: "date", ValueColumn: "cpi"}

func TestReadCSV(t *testing.T) {
	data := "region,Date,CPI\n" +
		"north,2020-01-01,101.2\n" +
		"\n" +
		"north,2020-04-01,NA\n" +
		"north,2020-07-01\n"

	rows, err := ReadCSV(strings.NewReader(data), defaultOpts)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, schema.RawRow{Line: 2, Date: "2020-01-01", Value: "101.2"}, rows[0])
	assert.Equal(t, schema.RawRow{Line: 4, Date: "2020-04-01", Value: "NA"}, rows[1])
	assert.Equal(t, schema.RawRow{Line: 5, Date: "2020-07-01", Value: ""}, rows[2])
}

func TestReadCSV_ByteOrderMark(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("\ufeffdate,cpi\n2020-01-01,1\n"), defaultOpts)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing date column", "when,cpi\n2020-01-01,1\n"},
		{"missing value column", "date,index\n2020-01-01,1\n"},
		{"broken quoting", "date,cpi\n\"2020-01-01,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data), defaultOpts)
			assert.Error(t, err)
		})
	}

	_, err := ReadCSV(strings.NewReader(""), defaultOpts)
	assert.ErrorIs(t, err, schema.ErrEmptySeries)
}

// writeWorkbook creates an XLSX file with a header row and the given rows on sheet.
func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, r := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	path := filepath.Join(t.TempDir(), "cpi.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"Date", "CPI"},
		{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 101.5},
		{"2020-04-01", ""},
		{time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC), 103.25},
	})

	rows, err := ReadXLSX(path, defaultOpts)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "2020-01-01", rows[0].Date)
	assert.Equal(t, "101.5", rows[0].Value)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "2020-04-01", rows[1].Date)
	assert.Equal(t, "", rows[1].Value)
	assert.Equal(t, "2020-07-01", rows[2].Date)
}

func TestReadXLSX_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Quarterly", [][]any{
		{"date", "cpi"},
		{"2021-01-01", 110},
	})

	rows, err := ReadXLSX(path, Options{DateColumn: "date", ValueColumn: "cpi", Sheet: "Quarterly"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "110", rows[0].Value)

	_, err = ReadXLSX(path, Options{DateColumn: "date", ValueColumn: "cpi", Sheet: "Monthly"})
	assert.Error(t, err)
}

func TestReadXLSXFrom(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{{"date", "cpi"}, {"2021-01-01", 1.5}})
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := ReadXLSXFrom(f, defaultOpts)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "cpi.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("date,cpi\n2020-01-01,1\n"), 0o600))

	rows, err := Read(csvPath, defaultOpts)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = Read(filepath.Join(dir, "cpi.parquet"), defaultOpts)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Read(filepath.Join(dir, "missing.csv"), defaultOpts)
	assert.Error(t, err)
}

func TestSerialDate(t *testing.T) {
	assert.Equal(t, "2020-01-01", serialDate("43831", schema.DefaultDateFormat))
	assert.Equal(t, "2020-01-01", serialDate("2020-01-01", schema.DefaultDateFormat))
	assert.Equal(t, "Q1 2020", serialDate("Q1 2020", schema.DefaultDateFormat))
}
