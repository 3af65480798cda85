package history

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/cpitrend/internal/parquet"
	"github.com/huangsam/cpitrend/schema"
)

// Exporter is the read side of a history store.
type Exporter interface {
	GetStatus(ctx context.Context) (schema.HistoryStatus, error)
	GetAllRuns(ctx context.Context) ([]schema.RunRecord, error)
	GetAllObservations(ctx context.Context) ([]schema.ObservationRecord, error)
}

var _ Exporter = &Store{} // Compile-time check

// ExportParquet writes all runs and observations into two Parquet files prefixed by outputFile.
func ExportParquet(ctx context.Context, w io.Writer, store Exporter, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no history data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total observations: %d\n", status.TotalObservations)

	runs, err := store.GetAllRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	observations, err := store.GetAllObservations(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve observations: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	parquetRuns := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	observationsFile := outputFile + ".observations.parquet"
	parquetObservations := parquet.ConvertObservationRecords(observations)
	if err := parquet.WriteObservationsParquet(parquetObservations, observationsFile); err != nil {
		return fmt.Errorf("failed to write observations: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d observations to: %s\n", len(parquetObservations), observationsFile)

	return nil
}
