package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/lushalytics/dateplot/internal/contract"
	"github.com/lushalytics/dateplot/internal/parquet"
)

// ExecuteHistoryExport writes every recorded run to a Parquet file at outputFile.
func ExecuteHistoryExport(w io.Writer, mgr contract.HistoryManager, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := mgr.GetRunStore()
	if store == nil {
		return errors.New("run history is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total plot runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve plot runs: %w", err)
	}

	records := parquet.ConvertRunRecords(runs)
	if err := parquet.WritePlotRunsParquet(records, outputFile); err != nil {
		return fmt.Errorf("failed to write plot runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d plot runs to: %s\n", len(records), outputFile)

	return nil
}
