package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/cpitrend/schema"
)

// ReadCSV reads a header row followed by data rows. Blank rows are skipped and
// line numbers in the returned rows refer to the source text.
func ReadCSV(r io.Reader, opts Options) ([]schema.RawRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, schema.ErrEmptySeries
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols, err := findColumns(header, opts)
	if err != nil {
		return nil, err
	}

	var rows []schema.RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if isBlank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, cols.row(line, record))
	}
	return rows, nil
}
