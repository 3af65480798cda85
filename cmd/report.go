package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/cpitrend/core"
	"github.com/huangsam/cpitrend/internal/contract"
)

// reportCmd runs the full pipeline and prints the annotated report.
var reportCmd = &cobra.Command{
	Use:   "report [dataset]",
	Short: "Print the annotated CPI report with inflation rates.",
	Long: `Load the CPI dataset, fill interior gaps, place annotations and report every quarter.

Each row shows:
- The CPI value and whether it was observed, interpolated or is still missing
- Quarter-over-quarter and year-over-year inflation
- The annotations covering that quarter

Leading and trailing gaps cannot be interpolated. They are kept as missing,
logged as warnings and listed below the table.

When a history backend is configured, the run and its rows are recorded.

Examples:
  # Report a CSV dataset with the default annotations
  cpitrend report cpi.csv

  # Read the second sheet of a workbook and export JSON
  cpitrend report cpi.xlsx --sheet Quarterly --output json --output-file report.json

  # Use custom annotations and record the run in SQLite
  cpitrend report cpi.csv --annotations-file events.hcl --history-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot build report", err)
		}
	},
}

// fillCmd prints the filled series only.
var fillCmd = &cobra.Command{
	Use:   "fill [dataset]",
	Short: "Print the series with interior gaps interpolated.",
	Long: `Load the CPI dataset and fill interior gaps by time-weighted linear interpolation.

A missing quarter between two known quarters gets the value on the straight line
joining them, weighted by elapsed days. Gaps at either end stay missing.

Examples:
  cpitrend fill cpi.csv
  cpitrend fill cpi.csv --output csv --output-file filled.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFill(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot fill series", err)
		}
	},
}

// annotateCmd prints the placed annotations.
var annotateCmd = &cobra.Command{
	Use:   "annotate [dataset]",
	Short: "Place annotations against the series and print where they land.",
	Long: `Resolve each configured annotation against the filled series.

Ranges are clamped to the series, points snap to the nearest quarter and
anything entirely outside the series is flagged as out of range.

Annotations come from --annotations-file (HCL), the 'annotations' list in
.cpitrend.yaml, or the built-in pandemic and conflict-onset defaults.

Examples:
  cpitrend annotate cpi.csv
  cpitrend annotate cpi.csv --annotations-file events.hcl --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnnotate(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot annotate series", err)
		}
	},
}

// chartCmd writes the styled chart document.
var chartCmd = &cobra.Command{
	Use:   "chart [dataset]",
	Short: "Write a styled chart document (JSON) for an external renderer.",
	Long: `Build a renderer-agnostic chart document: the plotted points, annotation
bands and markers, and the shared chart style.

The style is configured once under 'style' in .cpitrend.yaml and applied to
every chart. The document is always JSON.

Examples:
  cpitrend chart cpi.csv --output-file chart.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChart(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot build chart", err)
		}
	},
}
