package core

import (
	"context"
	"time"

	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/schema"
)

// recordRun stores the report run in the history store when one is configured.
// Tracking failures are logged and never fail the report.
func recordRun(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, start time.Time, result *Result) {
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(ctx, start, cfg.DatasetPath, result.Report.Series, cfg.ConfigParams())
	if err != nil {
		contract.LogWarn("History tracking initialization failed", err)
		return
	}
	if runID == 0 {
		return // history disabled
	}

	if err := store.RecordObservations(ctx, runID, result.Report.Rows); err != nil {
		contract.LogWarn("Failed to record observations", err)
	}

	summary := schema.RunSummary{
		Observations: len(result.Report.Rows),
		Filled:       len(result.Fill.Filled),
		Warnings:     len(result.Fill.Warnings),
		Annotations:  len(result.Descriptors),
	}
	if err := store.EndRun(ctx, runID, time.Now(), summary); err != nil {
		contract.LogWarn("Failed to finalize history tracking", err)
	}
}
