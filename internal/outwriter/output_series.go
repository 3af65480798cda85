package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/internal/parquet"
	"github.com/huangsam/cpitrend/schema"
)

// seriesJSON is the JSON shape of a filled series.
type seriesJSON struct {
	Series   string                      `json:"series"`
	Rows     []seriesJSONRow             `json:"rows"`
	Warnings []schema.BoundaryGapWarning `json:"warnings"`
}

type seriesJSONRow struct {
	Date   string                   `json:"date"`
	Value  *float64                 `json:"value"`
	Status schema.ObservationStatus `json:"status"`
}

// PrintSeries outputs the filled series to the configured destination.
func PrintSeries(report schema.Report, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSeriesResults(w, report, cfg)
	}, fmt.Sprintf("Wrote %s series", cfg.Output))
}

// WriteSeriesResults writes the filled series without rates or annotations.
func WriteSeriesResults(w io.Writer, report schema.Report, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, toSeriesJSON(report))
	case schema.CSVOut:
		return writeCSVSeries(w, report, cfg.Precision)
	case schema.ParquetOut:
		return parquet.WriteReport(w, report.Rows)
	default:
		return writeSeriesTable(w, report, cfg)
	}
}

func toSeriesJSON(report schema.Report) seriesJSON {
	out := seriesJSON{Series: report.Series, Rows: make([]seriesJSONRow, len(report.Rows)), Warnings: report.Warnings}
	for i, r := range report.Rows {
		out.Rows[i] = seriesJSONRow{Date: r.Date.Format(schema.DefaultDateFormat), Value: r.Value, Status: r.Status}
	}
	return out
}

func writeCSVSeries(w io.Writer, report schema.Report, precision int) error {
	return writeCSVWithHeader(w, []string{"date", "value", "status"}, func(cw *csv.Writer) error {
		for _, r := range report.Rows {
			if err := cw.Write([]string{r.Date.Format(schema.DefaultDateFormat), csvFloat(r.Value, precision), string(r.Status)}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeSeriesTable(w io.Writer, report schema.Report, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "CPI", "Status"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range report.Rows {
		data = append(data, []string{
			r.Date.Format(schema.DefaultDateFormat),
			contract.FormatValue(r.Value, cfg.Precision),
			statusLabel(r.Status, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if err := writeWarningsFooter(w, report.Warnings); err != nil {
		return fmt.Errorf("failed to write warnings: %w", err)
	}
	return nil
}
