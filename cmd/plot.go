package cmd

import (
	"github.com/lushalytics/dateplot/schema"
	"github.com/spf13/cobra"
)

// lineCmd draws one line per target or segment value.
var lineCmd = &cobra.Command{
	Use:   "line <file>",
	Short: "Plot metrics over time as lines.",
	Long: `Bucket the rows of a CSV or JSON table by date and plot one line per
target column, or one line per segment value when --segment is set.

Without --aggregator, daily rows are passed through unchanged. Weekly and
monthly buckets need an aggregator (sum, avg, weighted_avg).

Examples:
  # Daily revenue for the last 30 days
  dateplot line sales.csv --date day --target revenue

  # Weekly average order value per region
  dateplot line sales.csv --date day --target aov --segment region \
    --aggregator avg --granularity weekly

  # Weighted conversion rate per month, as a chart spec
  dateplot line funnel.json --date day --target cvr --aggregator weighted_avg \
    --count sessions --granularity monthly --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: plotSetup(schema.LineChart),
	Run:     runPlot,
}

// errorCmd compares actual and predicted values per bucket.
var errorCmd = &cobra.Command{
	Use:     "error <file>",
	Aliases: []string{"error-line"},
	Short:   "Plot actual against predicted values with sample size markers.",
	Long: `Average an actual and a predicted column per date bucket, weighted by a
count column. Each bucket gets a dotted connector from actual to predicted,
and predicted markers are colored by sample size:

  ≤ 1,000          red
  1,001 – 10,000   yellow
  > 10,000         green

Examples:
  # Weekly calibration of a model
  dateplot error predictions.csv --date day --actual clicked \
    --predicted p_click --count impressions --granularity weekly

  # Save a PNG preview
  dateplot error predictions.csv --date day --actual clicked \
    --predicted p_click --count impressions --output png --output-file calib.png`,
	Args:    cobra.ExactArgs(1),
	PreRunE: plotSetup(schema.ErrorLineChart),
	Run:     runPlot,
}

// barCmd sums a metric per bucket as (stacked) bars.
var barCmd = &cobra.Command{
	Use:   "bar <file>",
	Short: "Plot a summed metric per bucket as bars.",
	Long: `Sum one target column per date bucket. With --segment the bars are
stacked per segment value; --part-of-whole turns each stack into the share
of its period total.

Examples:
  # Orders per week
  dateplot bar sales.csv --date day --target orders --granularity weekly

  # Share of orders per channel each month
  dateplot bar sales.csv --date day --target orders --segment channel \
    --part-of-whole --granularity monthly`,
	Args:    cobra.ExactArgs(1),
	PreRunE: plotSetup(schema.BarChart),
	Run:     runPlot,
}
