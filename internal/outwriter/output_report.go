package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/internal/parquet"
	"github.com/huangsam/cpitrend/schema"
)

// reportCSVHeader is shared by the CSV writer and its tests.
var reportCSVHeader = []string{"date", "value", "status", "period_change", "year_change", "annotations"}

// PrintReport outputs the report to the configured destination.
func PrintReport(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteReportResults(w, report, cfg, duration)
	}, fmt.Sprintf("Wrote %s report", cfg.Output))
}

// WriteReportResults writes the report to w, dispatching based on the output format configured.
func WriteReportResults(w io.Writer, report schema.Report, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, report); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVReport(w, report, cfg.Precision); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteReport(w, report.Rows); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := writeReportTable(w, report, cfg, duration); err != nil {
			return fmt.Errorf("error writing report table output: %w", err)
		}
	}
	return nil
}

// writeCSVReport writes one CSV row per observation. Unknown values are empty cells.
func writeCSVReport(w io.Writer, report schema.Report, precision int) error {
	return writeCSVWithHeader(w, reportCSVHeader, func(cw *csv.Writer) error {
		for _, r := range report.Rows {
			row := []string{
				r.Date.Format(schema.DefaultDateFormat),
				csvFloat(r.Value, precision),
				string(r.Status),
				csvFloat(r.PeriodChange, precision),
				csvFloat(r.YearChange, precision),
				strings.Join(r.Annotations, "|"),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeReportTable renders the report as a table followed by a summary and any boundary gaps.
func writeReportTable(w io.Writer, report schema.Report, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n", report.Title, report.Series); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "CPI", "Status", "QoQ", "YoY", "Annotations"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	width := GetMaxAnnotationWidth(cfg)
	var data [][]string
	for _, r := range report.Rows {
		data = append(data, []string{
			r.Date.Format(schema.DefaultDateFormat),
			contract.FormatValue(r.Value, cfg.Precision),
			statusLabel(r.Status, cfg.UseColors),
			contract.FormatRate(r.PeriodChange, cfg.Precision, cfg.UseColors),
			contract.FormatRate(r.YearChange, cfg.Precision, cfg.UseColors),
			contract.TruncateText(strings.Join(r.Annotations, ", "), width),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if err := writeHiddenAnnotations(w, report.Descriptors); err != nil {
		return err
	}
	if err := writeWarningsFooter(w, report.Warnings); err != nil {
		return err
	}

	filled := 0
	for _, r := range report.Rows {
		if r.Status == schema.InterpolatedStatus {
			filled++
		}
	}
	_, err := fmt.Fprintf(w, "Report completed in %v. %d observations, %d interpolated, %d boundary gaps. History backend: %s\n",
		duration, len(report.Rows), filled, len(report.Warnings), cfg.HistoryBackend)
	return err
}

// writeWarningsFooter lists boundary gaps left unfilled, if any.
func writeWarningsFooter(w io.Writer, warnings []schema.BoundaryGapWarning) error {
	if len(warnings) == 0 {
		return nil
	}
	byPosition := map[schema.BoundaryPosition][]string{}
	for _, gap := range warnings {
		byPosition[gap.Position] = append(byPosition[gap.Position], gap.Date.Format(schema.DefaultDateFormat))
	}
	for _, pos := range []schema.BoundaryPosition{schema.LeadingBoundary, schema.TrailingBoundary} {
		if dates := byPosition[pos]; len(dates) > 0 {
			if _, err := fmt.Fprintf(w, "Unfilled %s gap: %s\n", pos, strings.Join(dates, ", ")); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeHiddenAnnotations names annotations that fall outside the series.
func writeHiddenAnnotations(w io.Writer, descriptors []schema.Descriptor) error {
	var hidden []string
	for _, d := range descriptors {
		if d.OutOfRange {
			hidden = append(hidden, d.Label)
		}
	}
	if len(hidden) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "Outside the series: %s\n", strings.Join(hidden, ", "))
	return err
}

func csvFloat(v *float64, precision int) string {
	if v == nil {
		return ""
	}
	return contract.FormatValue(v, precision)
}
