// Package core has core logic for bucketing, aggregating and charting dated rows.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/lushalytics/dateplot/internal/contract"
	"github.com/lushalytics/dateplot/schema"
)

// PlotterFunc defines the function signature shared by every chart builder.
type PlotterFunc func(tbl *schema.Table, req schema.PlotRequest) (*schema.ChartSpec, *schema.PipelineResult, error)

// Plotters maps each chart kind to its builder.
var Plotters = map[schema.ChartKind]PlotterFunc{
	schema.LineChart:      LinePlot,
	schema.BarChart:       BarPlot,
	schema.ErrorLineChart: ErrorLinePlot,
}

// Plot runs the builder registered for req.Kind.
func Plot(tbl *schema.Table, req schema.PlotRequest) (*schema.ChartSpec, *schema.PipelineResult, error) {
	plotter, ok := Plotters[req.Kind]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported chart kind %q", req.Kind)
	}
	return plotter(tbl, req)
}

// ExecutePlot loads the input table, builds the chart and hands it to the writer.
// It serves as the main entry point for the plot commands. Each run is recorded
// in the history store; history failures are logged but never fail the plot.
func ExecutePlot(ctx context.Context, cfg *contract.Config, src contract.TableSource, mgr contract.HistoryManager, out contract.OutputWriter) error {
	start := time.Now()

	tbl, err := src.Load(ctx, cfg.InputPath)
	if err != nil {
		return err
	}

	runs := runStore(mgr)
	var runID int64
	if runs != nil {
		runID, err = runs.BeginRun(cfg.Kind, start, cfg.ConfigParams())
		if err != nil {
			contract.LogWarn("Failed to record run start", err)
			runs = nil
		}
	}

	spec, result, err := Plot(tbl, cfg.PlotRequest())
	if err != nil {
		endRun(runs, runID, schema.RunSummary{InputRows: tbl.Len()})
		return err
	}
	endRun(runs, runID, schema.RunSummary{
		InputRows:   result.InputRows,
		OutputRows:  len(result.Table.Rows),
		SeriesCount: len(spec.Series),
	})

	return out.WritePlot(spec, result, cfg, time.Since(start))
}

func runStore(mgr contract.HistoryManager) contract.RunStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetRunStore()
}

func endRun(runs contract.RunStore, runID int64, summary schema.RunSummary) {
	if runs == nil {
		return
	}
	if err := runs.EndRun(runID, time.Now(), summary); err != nil {
		contract.LogWarn("Failed to record run end", err)
	}
}
