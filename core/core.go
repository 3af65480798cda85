// Package core has the CPI pipeline: loading, gap filling, annotation and report assembly.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/huangsam/cpitrend/internal/chart"
	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/internal/outwriter"
	"github.com/huangsam/cpitrend/internal/source"
	"github.com/huangsam/cpitrend/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// Result holds every stage output of one pipeline run.
type Result struct {
	Fill        schema.FillResult
	Descriptors []schema.Descriptor
	Rates       []schema.Rate
	Report      schema.Report
}

// ExecuteReport runs the full pipeline, records the run in history and prints the report.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	result, err := runDataset(ctx, cfg)
	if err != nil {
		return err
	}
	recordRun(ctx, cfg, mgr, start, result)
	return outwriter.NewOutWriter().WriteReport(result.Report, cfg, time.Since(start))
}

// ExecuteFill loads and fills the dataset, then prints the filled series.
func ExecuteFill(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	result, err := runDataset(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSeries(result.Report, cfg)
}

// ExecuteAnnotate places the configured annotations against the filled series and prints them.
func ExecuteAnnotate(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	result, err := runDataset(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDescriptors(result.Descriptors, cfg)
}

// ExecuteChart builds the styled chart document for an external renderer.
func ExecuteChart(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	result, err := runDataset(ctx, cfg)
	if err != nil {
		return err
	}
	doc := chart.Render(result.Report, chart.ResolveStyle(cfg.Title, cfg.Style))
	return outwriter.NewOutWriter().WriteChart(doc, cfg)
}

// runDataset reads the configured dataset and runs the pipeline on it.
func runDataset(ctx context.Context, cfg *contract.Config) (*Result, error) {
	rows, err := source.Read(cfg.DatasetPath, source.Options{
		DateColumn:  cfg.DateColumn,
		ValueColumn: cfg.ValueColumn,
		DateFormat:  cfg.DateFormat,
		Sheet:       cfg.Sheet,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", cfg.DatasetPath, err)
	}
	return Run(ctx, rows, cfg)
}

// Run turns raw rows into a filled, annotated report.
// Boundary gaps are not errors: they are logged and carried in the result.
func Run(ctx context.Context, rows []schema.RawRow, cfg *contract.Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	series, err := LoadSeries(rows, LoadOptions{Name: cfg.SeriesName, DateFormat: cfg.DateFormat})
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}

	fill, err := FillGaps(series)
	if err != nil {
		return nil, fmt.Errorf("failed to fill gaps: %w", err)
	}
	logBoundaryWarnings(fill.Warnings)
	contract.LogInfo("Filled interior gaps", logrus.Fields{
		"series":       series.Name,
		"observations": series.Len(),
		"filled":       len(fill.Filled),
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	descriptors, err := Annotate(fill.Series, cfg.Annotations)
	if err != nil {
		return nil, fmt.Errorf("failed to annotate series: %w", err)
	}
	for _, d := range descriptors {
		if d.OutOfRange {
			contract.LogWarnFields("Annotation lies outside the series", logrus.Fields{"label": d.Label, "kind": d.Kind})
		}
	}

	rates := InflationRates(fill.Series, cfg.YearLag)
	return &Result{
		Fill:        fill,
		Descriptors: descriptors,
		Rates:       rates,
		Report:      BuildReport(cfg.Title, fill, rates, descriptors),
	}, nil
}

func logBoundaryWarnings(warnings []schema.BoundaryGapWarning) {
	for _, w := range warnings {
		contract.LogWarnFields("Boundary gap left unfilled", logrus.Fields{
			"date":     w.Date.Format(schema.DefaultDateFormat),
			"position": w.Position,
		})
	}
}
