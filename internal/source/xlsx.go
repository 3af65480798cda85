package source

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/huangsam/cpitrend/schema"
)

// ReadXLSX reads a workbook file. The first non-blank row of the sheet is the header.
func ReadXLSX(path string, opts Options) ([]schema.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readWorkbook(f, opts)
}

// ReadXLSXFrom reads a workbook from r.
func ReadXLSXFrom(r io.Reader, opts Options) ([]schema.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readWorkbook(f, opts)
}

func readWorkbook(f *excelize.File, opts Options) ([]schema.RawRow, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, schema.ErrEmptySeries
	}
	sheet := opts.Sheet
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("sheet %q not found (available: %v)", sheet, sheets)
	}

	// Raw values keep date cells as serial numbers instead of locale-formatted text.
	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	headerAt := slices.IndexFunc(records, func(r []string) bool { return !isBlank(r) })
	if headerAt < 0 {
		return nil, schema.ErrEmptySeries
	}
	cols, err := findColumns(records[headerAt], opts)
	if err != nil {
		return nil, err
	}

	layout := opts.DateFormat
	if layout == "" {
		layout = schema.DefaultDateFormat
	}

	var rows []schema.RawRow
	for i := headerAt + 1; i < len(records); i++ {
		if isBlank(records[i]) {
			continue
		}
		row := cols.row(i+1, records[i])
		row.Date = serialDate(row.Date, layout)
		rows = append(rows, row)
	}
	return rows, nil
}

// serialDate converts a spreadsheet serial date to text in layout; other text is returned as is.
func serialDate(text, layout string) string {
	if _, err := time.Parse(layout, text); err == nil {
		return text
	}
	serial, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return text
	}
	return t.Format(layout)
}
