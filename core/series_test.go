package core

import (
	"testing"

	"github.com/lushalytics/dateplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregatedSales(t *testing.T, segment string, targets ...string) *schema.AggregatedTable {
	t.Helper()
	res, err := RunPipeline(salesTable(), schema.PipelineOptions{
		DateCol:     "date",
		Targets:     targets,
		SegmentCol:  segment,
		Aggregator:  schema.SumAgg,
		Granularity: schema.Daily,
	})
	require.NoError(t, err)
	return res.Table
}

func TestBuildSeriesPerSegment(t *testing.T) {
	tbl := aggregatedSales(t, "cat", "value")
	series := BuildSeries(tbl, []string{"value"}, "cat")
	require.Len(t, series, 2)

	assert.Equal(t, "A", series[0].Name)
	assert.Equal(t, 0, series[0].ColorIndex)
	assert.Equal(t, "B", series[1].Name)
	assert.Equal(t, 1, series[1].ColorIndex)

	require.Len(t, series[0].Points, 3)
	assert.Equal(t, date(2024, 1, 1), series[0].Points[0].X)
	assert.Equal(t, schema.Float(10), series[0].Points[0].Y)
	assert.NotEmpty(t, series[0].Points[0].Hover)
	for _, s := range series {
		for i := 1; i < len(s.Points); i++ {
			assert.True(t, s.Points[i-1].X.Before(s.Points[i].X))
		}
	}
}

func TestBuildSeriesPerTarget(t *testing.T) {
	tbl := aggregatedSales(t, "", "value", "count")
	series := BuildSeries(tbl, []string{"value", "count"}, "")
	require.Len(t, series, 2)
	assert.Equal(t, "value", series[0].Name)
	assert.Equal(t, "count", series[1].Name)
	assert.Equal(t, schema.Float(30), series[0].Points[0].Y)
	assert.Equal(t, schema.Float(4), series[1].Points[0].Y)
}

func TestBuildSeriesIsRepeatable(t *testing.T) {
	tbl := aggregatedSales(t, "cat", "value")
	first := BuildSeries(tbl, []string{"value"}, "cat")
	second := BuildSeries(tbl, []string{"value"}, "cat")
	assert.Equal(t, first, second)
}

func TestPartOfWhole(t *testing.T) {
	tbl := aggregatedSales(t, "cat", "value")
	out := PartOfWhole(tbl, "value")

	assert.Equal(t, []string{"value", "total_value", "value_percentage"}, out.Columns)
	assert.Equal(t, []string{"value"}, tbl.Columns, "input must not change")

	// 2024-01-01: A=10, B=20
	require.Equal(t, "A", out.Rows[0].Segment)
	assert.Equal(t, schema.Float(30), out.Rows[0].Values["total_value"])
	assert.InDelta(t, 100.0/3, out.Rows[0].Values["value_percentage"].Float, 1e-9)
	assert.InDelta(t, 200.0/3, out.Rows[1].Values["value_percentage"].Float, 1e-9)

	// Single-segment periods are 100%.
	assert.Equal(t, schema.Float(100), out.Rows[2].Values["value_percentage"])
	_, ok := tbl.Rows[0].Values["total_value"]
	assert.False(t, ok)
}

func TestPartOfWholeZeroTotal(t *testing.T) {
	p := schema.Period{Start: date(2024, 1, 1), Label: "2024-01-01"}
	tbl := &schema.AggregatedTable{
		Columns: []string{"v"},
		Rows: []schema.AggregatedRow{
			{Period: p, Segment: "A", Values: map[string]schema.NullFloat{"v": schema.Float(0)}},
			{Period: p, Segment: "B", Values: map[string]schema.NullFloat{"v": schema.NoData}},
		},
	}
	out := PartOfWhole(tbl, "v")
	for _, r := range out.Rows {
		assert.False(t, r.Values["v_percentage"].Valid)
	}
}
