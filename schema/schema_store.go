package schema

import "time"

// RunRecord represents a row from the dateplot_runs table.
type RunRecord struct {
	RunID         int64
	Kind          string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	InputRows     int32
	OutputRows    int32
	SeriesCount   int32
	ConfigParams  *string
}

// RunSummary is what a finished plot run reports to the history store.
type RunSummary struct {
	InputRows   int
	OutputRows  int
	SeriesCount int
}
