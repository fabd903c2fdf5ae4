package core

import (
	"fmt"

	"github.com/lushalytics/dateplot/schema"
)

// SampleSizeColor maps a sample size to its band color in s.
func SampleSizeColor(s schema.Style, n int64) string {
	switch schema.GetSampleSizeLabel(n) {
	case schema.LargeSample:
		return s.LargeColor
	case schema.MediumSample:
		return s.MediumColor
	default:
		return s.SmallColor
	}
}

// ErrorLinePlot compares an actual metric with its prediction. Both are
// weighted averages over the count column. Targets must be [actual, predicted].
func ErrorLinePlot(tbl *schema.Table, req schema.PlotRequest) (*schema.ChartSpec, *schema.PipelineResult, error) {
	opts := req.Pipeline
	if len(opts.Targets) != 2 {
		return nil, nil, fmt.Errorf("%w: error line plot takes actual and predicted targets, got %d", schema.ErrIncompatibleOptions, len(opts.Targets))
	}
	if opts.SegmentCol != "" {
		return nil, nil, fmt.Errorf("%w: error line plot does not segment", schema.ErrIncompatibleOptions)
	}
	opts.Aggregator = schema.WeightedAvgAgg
	res, err := RunPipeline(tbl, opts)
	if err != nil {
		return nil, nil, err
	}
	s := resolveStyle(req.Style)
	actualCol, predCol, countCol := opts.Targets[0], opts.Targets[1], opts.WeightCol

	var series []schema.Series
	for _, r := range res.Table.Rows {
		series = append(series, schema.Series{
			Name:  r.Period.Label,
			Mode:  schema.LinesTrace,
			Dash:  "dot",
			Color: s.ConnectorColor,
			Points: []schema.Point{
				{X: r.Period.Start, Y: r.Values[actualCol]},
				{X: r.Period.Start, Y: r.Values[predCol]},
			},
		})
	}

	built := BuildSeries(res.Table, []string{actualCol, predCol}, "")
	actual, pred := built[0], built[1]
	actual.Color = PaletteColor(s, 0)
	actual.Mode = schema.LinesMarkersTrace
	actual.Spline = true
	actual.LineWidth = s.LineWidth
	actual.MarkerSize = s.MarkerSize

	pred.Color = PaletteColor(s, 1)
	pred.Mode = schema.MarkersTrace
	pred.MarkerSize = s.MarkerSize
	sizes := make(map[int64]int64, len(res.Table.Rows))
	for _, r := range res.Table.Rows {
		sizes[r.Period.Start.Unix()] = int64(r.Values[countCol].Float)
	}
	for i, p := range pred.Points {
		n := sizes[p.X.Unix()]
		pred.Points[i].Size = n
		pred.Points[i].Color = SampleSizeColor(s, n)
	}
	series = append(series, actual, pred)

	bands := []struct {
		label string
		color string
	}{
		{schema.SmallSample, s.SmallColor},
		{schema.MediumSample, s.MediumColor},
		{schema.LargeSample, s.LargeColor},
	}
	for _, band := range bands {
		series = append(series, schema.Series{
			Name:       schema.SampleSizeLegend[band.label],
			Color:      band.color,
			Mode:       schema.MarkersTrace,
			MarkerSize: s.MarkerSize,
			ShowLegend: true,
			LegendOnly: true,
		})
	}

	layout := baseLayout(req, s, schema.DefaultLineWidth)
	layout.Legend.Title = ""
	yRange := req.YRange
	if len(yRange) != 2 {
		yRange = []float64{0, 1}
	}
	layout.YAxis.Range = yRange
	applyDateTicks(&layout, res.Table, 1, s)

	return &schema.ChartSpec{
		Kind:   schema.ErrorLineChart,
		Series: series,
		Layout: layout,
		Table:  res.Table,
	}, res, nil
}
