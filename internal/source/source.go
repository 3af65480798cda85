// Package source reads CPI datasets from CSV and XLSX files into raw rows.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/cpitrend/schema"
)

// ErrUnsupportedFormat is returned for dataset files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Options selects the columns (and sheet, for workbooks) to read.
type Options struct {
	DateColumn  string // Header of the date column, matched case-insensitively
	ValueColumn string // Header of the value column, matched case-insensitively
	DateFormat  string // Layout used when a workbook stores dates as serial numbers
	Sheet       string // Workbook sheet; empty means the first sheet
}

// Read loads raw rows from path, choosing the reader by file extension.
func Read(path string, opts Options) ([]schema.RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset: %w", err)
		}
		defer func() { _ = f.Close() }()
		return ReadCSV(f, opts)
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// columns holds the resolved positions of the date and value columns.
type columns struct {
	date, value int
}

// findColumns locates the configured columns in a header row.
func findColumns(header []string, opts Options) (columns, error) {
	cols := columns{date: -1, value: -1}
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case strings.EqualFold(name, opts.DateColumn):
			cols.date = i
		case strings.EqualFold(name, opts.ValueColumn):
			cols.value = i
		}
	}
	if cols.date < 0 {
		return cols, fmt.Errorf("date column %q not found in header %v", opts.DateColumn, header)
	}
	if cols.value < 0 {
		return cols, fmt.Errorf("value column %q not found in header %v", opts.ValueColumn, header)
	}
	return cols, nil
}

// row builds a raw row from a record, treating absent trailing cells as empty.
func (c columns) row(line int, record []string) schema.RawRow {
	return schema.RawRow{Line: line, Date: cell(record, c.date), Value: cell(record, c.value)}
}

func cell(record []string, i int) string {
	if i < len(record) {
		return strings.TrimSpace(record[i])
	}
	return ""
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
