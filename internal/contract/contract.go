// Package contract provides interfaces and shared utilities for cpitrend's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/cpitrend/schema"
)

// HistoryManager defines the interface for managing run history stores.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking report runs and the observations they produced.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(ctx context.Context, startTime time.Time, dataset, seriesName string, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(ctx context.Context, runID int64, endTime time.Time, summary schema.RunSummary) error

	// RecordObservations stores the reported observations for a run
	RecordObservations(ctx context.Context, runID int64, rows []schema.ReportRow) error

	// GetStatus returns status information about the history store
	GetStatus(ctx context.Context) (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
