package core

import (
	"fmt"

	"github.com/lushalytics/dateplot/schema"
)

// BarPlot sums one target per bucket and stacks the segments. With
// PartOfWhole each bar shows its share of the period total instead.
func BarPlot(tbl *schema.Table, req schema.PlotRequest) (*schema.ChartSpec, *schema.PipelineResult, error) {
	opts := req.Pipeline
	if len(opts.Targets) != 1 {
		return nil, nil, fmt.Errorf("%w: bar plot takes exactly one target, got %d", schema.ErrIncompatibleOptions, len(opts.Targets))
	}
	opts.Aggregator = schema.SumAgg
	res, err := RunPipeline(tbl, opts)
	if err != nil {
		return nil, nil, err
	}
	s := resolveStyle(req.Style)

	target := opts.Targets[0]
	plotted := target
	if req.PartOfWhole {
		res.Table = CompileHoverText(PartOfWhole(res.Table, target))
		plotted = PercentageColumn(target)
	}

	series := BuildSeries(res.Table, []string{plotted}, opts.SegmentCol)
	for i := range series {
		series[i].Color = PaletteColor(s, series[i].ColorIndex)
		series[i].Mode = schema.BarTrace
		series[i].ShowLegend = opts.SegmentCol != ""
		if opts.SegmentCol == "" {
			series[i].Name = target
		}
	}

	layout := baseLayout(req, s, schema.DefaultBarWidth)
	applyDateTicks(&layout, res.Table, len(series), s)

	return &schema.ChartSpec{
		Kind:   schema.BarChart,
		Series: series,
		Layout: layout,
		Table:  res.Table,
	}, res, nil
}
