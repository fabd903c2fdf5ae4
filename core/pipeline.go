package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/lushalytics/dateplot/core/agg"
	"github.com/lushalytics/dateplot/schema"
)

// aggOptions maps pipeline options onto the aggregator's.
func aggOptions(opts schema.PipelineOptions) agg.Options {
	return agg.Options{
		Targets:     opts.Targets,
		SegmentCol:  opts.SegmentCol,
		WeightCol:   opts.WeightCol,
		Mode:        opts.Aggregator,
		Granularity: opts.Granularity,
	}
}

// ValidatePipeline checks every option against tbl. It runs before any rows
// are touched so a bad request never produces partial output.
func ValidatePipeline(tbl *schema.Table, opts schema.PipelineOptions) error {
	if opts.DateCol == "" {
		return fmt.Errorf("%w: date column is required", schema.ErrInvalidColumn)
	}
	if !tbl.HasColumn(opts.DateCol) {
		return fmt.Errorf("%w: date column %q not in table", schema.ErrInvalidColumn, opts.DateCol)
	}
	if tbl.Kind(opts.DateCol) != schema.TimeColumn {
		return fmt.Errorf("%w: date column %q is %s, not time", schema.ErrInvalidColumn, opts.DateCol, tbl.Kind(opts.DateCol))
	}

	cols := make([]string, 0, len(opts.Filters))
	for col := range opts.Filters {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		if !tbl.HasColumn(col) {
			return fmt.Errorf("%w: filter column %q not in table", schema.ErrInvalidColumn, col)
		}
	}
	return agg.Validate(tbl, aggOptions(opts))
}

// RunPipeline runs the date pipeline over tbl:
// weekStart resolves the first day of weekly buckets, defaulting to Monday.
func weekStart(opts schema.PipelineOptions) time.Weekday {
	if opts.WeekStart == nil {
		return schema.DefaultWeekStart
	}
	return *opts.WeekStart
}

// filter, lookback, bucket, trim, aggregate, then hover text.
// tbl is never modified.
func RunPipeline(tbl *schema.Table, opts schema.PipelineOptions) (*schema.PipelineResult, error) {
	if err := ValidatePipeline(tbl, opts); err != nil {
		return nil, err
	}

	filtered, err := ApplyFilters(tbl, opts.Filters)
	if err != nil {
		return nil, err
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	filtered = ApplyLookback(filtered, opts.DateCol, opts.DaysBack, now)

	rows, err := BucketRows(filtered, opts.DateCol, opts.Granularity, weekStart(opts))
	if err != nil {
		return nil, err
	}
	bucketed := len(rows)
	if opts.DropIncomplete {
		rows = DropIncompletePeriod(rows, opts.Granularity)
	}

	aggregated, err := agg.Aggregate(rows, aggOptions(opts))
	if err != nil {
		return nil, err
	}

	return &schema.PipelineResult{
		Table:        CompileHoverText(aggregated),
		InputRows:    tbl.Len(),
		FilteredRows: bucketed,
		DroppedRows:  bucketed - len(rows),
	}, nil
}
