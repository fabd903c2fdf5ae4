package core

import (
	"testing"

	"github.com/lushalytics/dateplot/schema"
	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Sample Size", TitleCase("sample_size"))
	assert.Equal(t, "Value", TitleCase("value"))
	assert.Equal(t, "Total Value", TitleCase("total_value"))
}

func TestFormatHoverValue(t *testing.T) {
	tests := []struct {
		in       schema.NullFloat
		expected string
	}{
		{schema.Float(17.5), "17.5"},
		{schema.Float(1234567.891), "1,234,567.89"},
		{schema.Float(10), "10"},
		{schema.Float(0.005), "0.01"},
		{schema.Float(-1234.5), "-1,234.5"},
		{schema.Float(-0.001), "0"},
		{schema.Float(-0.004), "0"},
		{schema.Float(0), "0"},
		{schema.Float(1e21), "1,000,000,000,000,000,000,000"},
		{schema.Float(-2.5e18), "-2,500,000,000,000,000,000"},
		{schema.NoData, "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatHoverValue(tt.in))
	}
}

func TestCompileHoverText(t *testing.T) {
	week := schema.Period{Granularity: schema.Weekly, Start: date(2024, 1, 1), End: date(2024, 1, 7), Label: "2024-01-01/2024-01-07"}
	tbl := &schema.AggregatedTable{
		Granularity: schema.Weekly,
		SegmentCol:  "tier",
		Columns:     []string{"avg_value", "sample_size"},
		Rows: []schema.AggregatedRow{{
			Period:  week,
			Segment: "gold",
			Values: map[string]schema.NullFloat{
				"avg_value":   schema.Float(1234.567),
				"sample_size": schema.NoData,
			},
		}},
	}

	out := CompileHoverText(tbl)
	assert.Equal(t, "2024-01-01 → 2024-01-07<br>Tier: gold<br>Avg Value: 1,234.57<br>Sample Size: n/a", out.Rows[0].Hover)
	assert.Empty(t, tbl.Rows[0].Hover, "input must not change")
}

func TestCompileHoverTextDaily(t *testing.T) {
	day := schema.Period{Granularity: schema.Daily, Start: date(2024, 1, 1), End: date(2024, 1, 1), Label: "2024-01-01"}
	tbl := &schema.AggregatedTable{
		Granularity: schema.Daily,
		Columns:     []string{"value"},
		Rows:        []schema.AggregatedRow{{Period: day, Values: map[string]schema.NullFloat{"value": schema.Float(17.5)}}},
	}
	assert.Equal(t, "2024-01-01<br>Value: 17.5", CompileHoverText(tbl).Rows[0].Hover)
}
