package core

import (
	"testing"
	"time"

	"github.com/lushalytics/dateplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPipelineWeeklyWeighted(t *testing.T) {
	tbl := salesTable()
	res, err := RunPipeline(tbl, schema.PipelineOptions{
		DateCol:     "date",
		Targets:     []string{"value"},
		Aggregator:  schema.WeightedAvgAgg,
		WeightCol:   "count",
		Granularity: schema.Weekly,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.InputRows)
	assert.Equal(t, 5, res.FilteredRows)
	assert.Equal(t, 0, res.DroppedRows)

	rows := res.Table.Rows
	require.Len(t, rows, 2)
	// Week 1: (10*1 + 20*3 + 30*2) / 6
	assert.InDelta(t, 130.0/6, rows[0].Values["value"].Float, 1e-9)
	assert.Equal(t, schema.Float(6), rows[0].Values["count"])
	// Week 2: (40*4 + 50*1) / 5
	assert.InDelta(t, 42.0, rows[1].Values["value"].Float, 1e-9)
	assert.Equal(t, "2024-01-08 → 2024-01-14<br>Value: 42<br>Count: 5", rows[1].Hover)
}

func TestRunPipelineFilterLookbackDrop(t *testing.T) {
	res, err := RunPipeline(salesTable(), schema.PipelineOptions{
		DateCol:        "date",
		Targets:        []string{"value"},
		Filters:        map[string][]string{"cat": {"A"}},
		Aggregator:     schema.SumAgg,
		Granularity:    schema.Weekly,
		DropIncomplete: true,
		DaysBack:       30,
		Now:            date(2024, 1, 20),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.FilteredRows)
	assert.Equal(t, 1, res.DroppedRows)
	require.Len(t, res.Table.Rows, 1)
	assert.Equal(t, schema.Float(40), res.Table.Rows[0].Values["value"])
}

func TestRunPipelinePassthrough(t *testing.T) {
	res, err := RunPipeline(salesTable(), schema.PipelineOptions{
		DateCol:     "date",
		Targets:     []string{"value"},
		SegmentCol:  "cat",
		WeightCol:   "count",
		Granularity: schema.Daily,
	})
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 5)
	assert.Equal(t, []string{"value", "count"}, res.Table.Columns)
	assert.Equal(t, "2024-01-01<br>Cat: A<br>Value: 10<br>Count: 1", res.Table.Rows[0].Hover)
}

func TestRunPipelineValidationErrors(t *testing.T) {
	base := schema.PipelineOptions{
		DateCol:     "date",
		Targets:     []string{"value"},
		Aggregator:  schema.AvgAgg,
		Granularity: schema.Daily,
	}
	tests := []struct {
		name   string
		mutate func(o *schema.PipelineOptions)
		err    error
	}{
		{"no date column", func(o *schema.PipelineOptions) { o.DateCol = "" }, schema.ErrInvalidColumn},
		{"unknown date column", func(o *schema.PipelineOptions) { o.DateCol = "when" }, schema.ErrInvalidColumn},
		{"date column not time", func(o *schema.PipelineOptions) { o.DateCol = "cat" }, schema.ErrInvalidColumn},
		{"unknown filter column", func(o *schema.PipelineOptions) { o.Filters = map[string][]string{"region": {"EU"}} }, schema.ErrInvalidColumn},
		{"unknown granularity", func(o *schema.PipelineOptions) { o.Granularity = "yearly" }, schema.ErrInvalidGranularity},
		{"unknown aggregator", func(o *schema.PipelineOptions) { o.Aggregator = "max" }, schema.ErrInvalidAggregator},
		{"weighted without weight", func(o *schema.PipelineOptions) { o.Aggregator = schema.WeightedAvgAgg }, schema.ErrMissingWeightColumn},
		{"segment with two targets", func(o *schema.PipelineOptions) {
			o.SegmentCol = "cat"
			o.Targets = []string{"value", "count"}
		}, schema.ErrIncompatibleOptions},
		{"weekly without aggregator", func(o *schema.PipelineOptions) {
			o.Aggregator = schema.NoAggregation
			o.Granularity = schema.Weekly
		}, schema.ErrAggregatorRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			tt.mutate(&opts)
			res, err := RunPipeline(salesTable(), opts)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, res)
		})
	}
}

func TestRunPipelineDoesNotMutateInput(t *testing.T) {
	tbl := salesTable()
	before := salesTable()
	_, err := RunPipeline(tbl, schema.PipelineOptions{
		DateCol:     "date",
		Targets:     []string{"value"},
		Filters:     map[string][]string{"cat": {"B"}},
		Aggregator:  schema.AvgAgg,
		Granularity: schema.Monthly,
	})
	require.NoError(t, err)
	assert.Equal(t, before, tbl)
}

func TestRunPipelineWeekStart(t *testing.T) {
	opts := schema.PipelineOptions{
		DateCol:     "date",
		Targets:     []string{"value"},
		Aggregator:  schema.SumAgg,
		Granularity: schema.Weekly,
	}

	t.Run("unset starts on monday", func(t *testing.T) {
		res, err := RunPipeline(salesTable(), opts)
		require.NoError(t, err)
		require.Len(t, res.Table.Rows, 2)
		first := res.Table.Rows[0].Period
		assert.Equal(t, time.Monday, first.Start.Weekday())
		assert.Equal(t, date(2024, 1, 1), first.Start)
		assert.Equal(t, date(2024, 1, 7), first.End)
	})

	t.Run("explicit sunday", func(t *testing.T) {
		sunday := time.Sunday
		withSunday := opts
		withSunday.WeekStart = &sunday
		res, err := RunPipeline(salesTable(), withSunday)
		require.NoError(t, err)
		first := res.Table.Rows[0].Period
		assert.Equal(t, date(2023, 12, 31), first.Start)
		assert.Equal(t, date(2024, 1, 6), first.End)
	})
}

func TestRunPipelineSegmentKeepsSourceText(t *testing.T) {
	res, err := RunPipeline(zipTable(), schema.PipelineOptions{
		DateCol:     "date",
		Targets:     []string{"value"},
		SegmentCol:  "zip",
		Aggregator:  schema.SumAgg,
		Granularity: schema.Daily,
	})
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 3)
	assert.Equal(t, "01234", res.Table.Rows[0].Segment)
	assert.Equal(t, "02134", res.Table.Rows[1].Segment)
	assert.Contains(t, res.Table.Rows[0].Hover, "Zip: 01234")
}
