// Package contract provides interfaces and shared utilities for dateplot's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/lushalytics/dateplot/schema"
)

// TableSource loads the flat input table for a plot.
// This allows the plot commands to be tested without touching the filesystem.
type TableSource interface {
	Load(ctx context.Context, path string) (*schema.Table, error)
}

// HistoryManager defines the interface for managing the run history store.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking plot runs.
type RunStore interface {
	// BeginRun creates a new run record and returns its unique ID
	BeginRun(kind schema.ChartKind, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run record with completion data
	EndRun(runID int64, endTime time.Time, summary schema.RunSummary) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every run record ordered by ID
	GetAllRuns() ([]schema.RunRecord, error)

	// Close closes the underlying connection
	Close() error
}

// OutputWriter defines the interface for presenting a finished chart.
// This allows the plot commands to be tested without writing to stdout.
type OutputWriter interface {
	WritePlot(spec *schema.ChartSpec, result *schema.PipelineResult, cfg *Config, duration time.Duration) error
}
