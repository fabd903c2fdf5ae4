package core

import (
	"testing"

	"github.com/lushalytics/dateplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineRequest() schema.PlotRequest {
	return schema.PlotRequest{
		Kind:  schema.LineChart,
		Title: "daily sales",
		Pipeline: schema.PipelineOptions{
			DateCol:     "date",
			Targets:     []string{"value"},
			SegmentCol:  "cat",
			Aggregator:  schema.AvgAgg,
			Granularity: schema.Daily,
		},
	}
}

func TestLinePlot(t *testing.T) {
	spec, res, err := LinePlot(salesTable(), lineRequest())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, schema.LineChart, spec.Kind)
	require.Len(t, spec.Series, 2)
	for i, s := range spec.Series {
		assert.Equal(t, schema.DefaultPalette[i], s.Color)
		assert.Equal(t, schema.LinesMarkersTrace, s.Mode)
		assert.True(t, s.Spline)
		assert.Equal(t, 4, s.LineWidth)
		assert.Equal(t, 10, s.MarkerSize)
	}

	l := spec.Layout
	assert.Equal(t, "Daily Sales", l.Title)
	assert.Equal(t, "#AE37FF", l.TitleColor)
	assert.Equal(t, 700, l.Width)
	assert.Equal(t, 271, l.Height)
	assert.Equal(t, schema.Margin{L: 45, R: 0, T: 35, B: 35}, l.Margin)
	assert.Equal(t, "cat", l.Legend.Title)
	assert.Equal(t, "h", l.Legend.Orientation)
	assert.Equal(t, -0.15, l.Legend.Y)
	assert.Equal(t, "%b %d", l.XAxis.TickFormat)

	// 5 rows over 2 series is sparse, so every period gets a tick.
	require.Len(t, l.XAxis.TickVals, 4)
	assert.Equal(t, []string{"Jan 01", "Jan 03", "Jan 08", "Jan 10"}, l.XAxis.TickText)
}

func TestLinePlotPaletteWraps(t *testing.T) {
	tbl := salesTable()
	for i := range 9 {
		tbl.Rows = append(tbl.Rows, schema.Row{
			"date":  schema.TimeCell(date(2024, 1, 2)),
			"cat":   schema.StringCell(string(rune('C' + i))),
			"value": num(1),
		})
	}
	spec, _, err := LinePlot(tbl, lineRequest())
	require.NoError(t, err)
	require.Len(t, spec.Series, 11)
	assert.Equal(t, spec.Series[0].Color, spec.Series[7].Color)
	assert.Equal(t, 7, spec.Series[7].ColorIndex)
}

func TestLinePlotDenseHasNoExplicitTicks(t *testing.T) {
	tbl := salesTable()
	for d := 11; d <= 25; d++ {
		tbl.Rows = append(tbl.Rows, schema.Row{"date": schema.TimeCell(date(2024, 1, d)), "value": num(float64(d))})
	}
	req := lineRequest()
	req.Pipeline.SegmentCol = ""
	spec, _, err := LinePlot(tbl, req)
	require.NoError(t, err)
	assert.Empty(t, spec.Layout.XAxis.TickVals)
	assert.Equal(t, "%b %d", spec.Layout.XAxis.TickFormat)
}

func TestBarPlotPartOfWhole(t *testing.T) {
	req := lineRequest()
	req.Kind = schema.BarChart
	req.PartOfWhole = true
	req.Pipeline.Aggregator = schema.NoAggregation

	spec, res, err := BarPlot(salesTable(), req)
	require.NoError(t, err)
	assert.Equal(t, schema.BarChart, spec.Kind)
	assert.Equal(t, 600, spec.Layout.Width)
	assert.Equal(t, schema.Margin{L: 35, R: 35, T: 35, B: 35}, spec.Layout.Margin)
	assert.Equal(t, "stack", spec.Layout.BarMode)

	require.Len(t, spec.Series, 2)
	a := spec.Series[0]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, schema.BarTrace, a.Mode)
	assert.InDelta(t, 100.0/3, a.Points[0].Y.Float, 1e-9)
	assert.Contains(t, a.Points[0].Hover, "Value Percentage: 33.33")
	assert.Contains(t, res.Table.Columns, "total_value")
}

func TestBarPlotRejectsMultipleTargets(t *testing.T) {
	req := lineRequest()
	req.Pipeline.SegmentCol = ""
	req.Pipeline.Targets = []string{"value", "count"}
	_, _, err := BarPlot(salesTable(), req)
	assert.ErrorIs(t, err, schema.ErrIncompatibleOptions)
}

func errorRequest() schema.PlotRequest {
	return schema.PlotRequest{
		Kind:  schema.ErrorLineChart,
		Title: "prediction error",
		Pipeline: schema.PipelineOptions{
			DateCol:     "date",
			Targets:     []string{"value", "pred"},
			WeightCol:   "count",
			Granularity: schema.Weekly,
		},
	}
}

func TestErrorLinePlot(t *testing.T) {
	spec, res, err := ErrorLinePlot(salesTable(), errorRequest())
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 2)

	// 2 connectors, actual, predicted, 3 legend entries
	require.Len(t, spec.Series, 7)
	for _, c := range spec.Series[:2] {
		assert.Equal(t, "dot", c.Dash)
		assert.Equal(t, "#4d4d4d", c.Color)
		assert.False(t, c.ShowLegend)
		require.Len(t, c.Points, 2)
		assert.Equal(t, c.Points[0].X, c.Points[1].X)
	}

	actual, pred := spec.Series[2], spec.Series[3]
	assert.Equal(t, "value", actual.Name)
	assert.Equal(t, "#ae37ff", actual.Color)
	assert.False(t, actual.ShowLegend)
	assert.Equal(t, schema.MarkersTrace, pred.Mode)
	assert.Equal(t, int64(6), pred.Points[0].Size)
	assert.Equal(t, "red", pred.Points[0].Color)
	// Week 1 prediction: (0.5*1 + 0.25*3 + 0.75*2) / 6
	assert.InDelta(t, 2.75/6, pred.Points[0].Y.Float, 1e-9)

	for _, legend := range spec.Series[4:] {
		assert.True(t, legend.LegendOnly)
		assert.True(t, legend.ShowLegend)
		assert.Empty(t, legend.Points)
	}
	assert.Equal(t, "≤ 1,000 sample size", spec.Series[4].Name)
	assert.Equal(t, []float64{0, 1}, spec.Layout.YAxis.Range)
	assert.Len(t, spec.Layout.XAxis.TickVals, 2)
}

func TestErrorLinePlotOptions(t *testing.T) {
	req := errorRequest()
	req.Pipeline.Targets = []string{"value"}
	_, _, err := ErrorLinePlot(salesTable(), req)
	assert.ErrorIs(t, err, schema.ErrIncompatibleOptions)

	req = errorRequest()
	req.Pipeline.WeightCol = ""
	_, _, err = ErrorLinePlot(salesTable(), req)
	assert.ErrorIs(t, err, schema.ErrMissingWeightColumn)

	req = errorRequest()
	req.YRange = []float64{-1, 2}
	spec, _, err := ErrorLinePlot(salesTable(), req)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 2}, spec.Layout.YAxis.Range)
}

func TestSampleSizeColor(t *testing.T) {
	s := schema.DefaultStyle()
	assert.Equal(t, "red", SampleSizeColor(s, 1000))
	assert.Equal(t, "yellow", SampleSizeColor(s, 1001))
	assert.Equal(t, "yellow", SampleSizeColor(s, 10000))
	assert.Equal(t, "green", SampleSizeColor(s, 10001))
}

func TestPaletteColor(t *testing.T) {
	s := schema.DefaultStyle()
	assert.Equal(t, "#ae37ff", PaletteColor(s, 0))
	assert.Equal(t, "#91de73", PaletteColor(s, 6))
	assert.Equal(t, "#ae37ff", PaletteColor(s, 7))
	assert.Equal(t, "", PaletteColor(schema.Style{}, 3))
}
