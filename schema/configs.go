package schema

import "time"

// PipelineOptions are the parameters of one pass through the date pipeline.
type PipelineOptions struct {
	DateCol        string              // Column holding the row date
	Targets        []string            // Metric columns to aggregate
	Filters        map[string][]string // Column to allowed values, ANDed across columns
	SegmentCol     string              // Optional column splitting the output into series
	Aggregator     AggregationMode     // Reduction applied per bucket
	WeightCol      string              // Count column for weighted_avg; carried as a sum otherwise
	Granularity    Granularity         // Bucket size
	DropIncomplete bool                // Drop the latest bucket if its span is not fully observed
	DaysBack       int                 // Lookback window in days; <= 0 disables it
	WeekStart      *time.Weekday       // First day of weekly buckets; nil means Monday
	Now            time.Time           // Reference time for DaysBack; zero means time.Now
}

// PlotRequest is a complete request for one chart.
type PlotRequest struct {
	Kind        ChartKind
	Title       string
	Pipeline    PipelineOptions
	PartOfWhole bool      // bar: plot each segment as a percentage of its period total
	YRange      []float64 // error_line: fixed y range, defaults to [0, 1]
	Width       int
	Height      int
	Style       Style
}

// PipelineResult is the aggregated table plus row accounting.
type PipelineResult struct {
	Table        *AggregatedTable
	InputRows    int // rows in the source table
	FilteredRows int // rows left after filters and lookback
	DroppedRows  int // rows removed by the incomplete period trim
}
