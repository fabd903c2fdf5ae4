package core

import (
	"github.com/lushalytics/dateplot/schema"
)

// LinePlot aggregates tbl and draws one spline per segment or target.
func LinePlot(tbl *schema.Table, req schema.PlotRequest) (*schema.ChartSpec, *schema.PipelineResult, error) {
	res, err := RunPipeline(tbl, req.Pipeline)
	if err != nil {
		return nil, nil, err
	}
	s := resolveStyle(req.Style)

	series := BuildSeries(res.Table, req.Pipeline.Targets, req.Pipeline.SegmentCol)
	for i := range series {
		series[i].Color = PaletteColor(s, series[i].ColorIndex)
		series[i].Mode = schema.LinesMarkersTrace
		series[i].Spline = true
		series[i].LineWidth = s.LineWidth
		series[i].MarkerSize = s.MarkerSize
		series[i].ShowLegend = true
	}

	layout := baseLayout(req, s, schema.DefaultLineWidth)
	layout.Margin.L = s.MarginBase + 10
	layout.Margin.R = 0
	applyDateTicks(&layout, res.Table, len(series), s)

	return &schema.ChartSpec{
		Kind:   schema.LineChart,
		Series: series,
		Layout: layout,
		Table:  res.Table,
	}, res, nil
}
