package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lushalytics/dateplot/internal/contract"
	"github.com/lushalytics/dateplot/internal/parquet"
	"github.com/lushalytics/dateplot/internal/render"
	"github.com/lushalytics/dateplot/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PrintPlotResults outputs a chart, dispatching based on the output format configured.
func PrintPlotResults(spec *schema.ChartSpec, result *schema.PipelineResult, cfg *contract.Config, duration time.Duration) error {
	if spec == nil || result == nil || result.Table == nil {
		return errors.New("no chart to write")
	}

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, spec)
		}, "Wrote JSON chart"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForPlot(w, result.Table)
		}, "Wrote CSV aggregates"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteAggregatedParquet(parquet.ConvertAggregatedTable(result.Table), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet aggregates to %s\n", cfg.OutputFile)
	case schema.SVGOut, schema.PNGOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return render.Render(w, spec, cfg.Output)
		}, fmt.Sprintf("Wrote %s chart", strings.ToUpper(string(cfg.Output)))); err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
	default:
		// Default to human-readable table
		if err := printPlotTable(os.Stdout, spec, result, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// csvHeaderForPlot names the columns of the aggregated CSV.
func csvHeaderForPlot(tbl *schema.AggregatedTable) []string {
	header := []string{"period_start", "period_end"}
	if tbl.SegmentCol != "" {
		header = append(header, tbl.SegmentCol)
	}
	return append(header, tbl.Columns...)
}

// writeCSVResultsForPlot writes one CSV record per aggregated row.
func writeCSVResultsForPlot(w io.Writer, tbl *schema.AggregatedTable) error {
	return writeCSVWithHeader(w, csvHeaderForPlot(tbl), func(csvWriter *csv.Writer) error {
		for _, r := range tbl.Rows {
			record := []string{
				r.Period.Start.Format(schema.DateFormat),
				r.Period.End.Format(schema.DateFormat),
			}
			if tbl.SegmentCol != "" {
				record = append(record, r.Segment)
			}
			for _, col := range tbl.Columns {
				record = append(record, formatCSVValue(r.Values[col]))
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// headerName turns a column name like "sample_size" into "Sample Size".
func headerName(col string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(col, "_", " "))
}

// periodText is the period column of the table.
func periodText(p schema.Period) string {
	if p.Granularity == schema.Daily {
		return p.Start.Format(schema.DateFormat)
	}
	return p.Label
}

// sampleLabel bands the weight column, colored when the config asks for it.
func sampleLabel(v schema.NullFloat, useColors bool) string {
	if !v.Valid {
		return noDataText
	}
	n := int64(v.Float)
	if useColors {
		return contract.GetColorLabel(n)
	}
	return schema.GetSampleSizeLabel(n)
}

// printPlotTable prints the aggregated rows in a table followed by a summary line.
func printPlotTable(w io.Writer, spec *schema.ChartSpec, result *schema.PipelineResult, cfg *contract.Config, duration time.Duration) error {
	tbl := result.Table
	table := tablewriter.NewWriter(w)

	// --- 1. Define Headers ---
	headers := []string{"Period"}
	if tbl.SegmentCol != "" {
		headers = append(headers, headerName(tbl.SegmentCol))
	}
	for _, col := range tbl.Columns {
		headers = append(headers, headerName(col))
	}
	weightCol := cfg.Pipeline.WeightCol
	if weightCol != "" {
		headers = append(headers, "Sample")
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	maxSegment := GetMaxSegmentWidth(len(tbl.Columns))
	data := make([][]string, 0, len(tbl.Rows))
	for _, r := range tbl.Rows {
		row := []string{periodText(r.Period)}
		if tbl.SegmentCol != "" {
			row = append(row, truncate(r.Segment, maxSegment))
		}
		for _, col := range tbl.Columns {
			row = append(row, formatTableValue(r.Values[col]))
		}
		if weightCol != "" {
			row = append(row, sampleLabel(r.Values[weightCol], cfg.UseColors))
		}
		data = append(data, row)
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	prefix := ""
	if cfg.UseEmojis {
		prefix = "📈 "
	}
	_, err := fmt.Fprintf(w, "%sPlotted %d series over %d periods from %d rows (%d kept, %d dropped) in %v. History backend: %s\n",
		prefix, drawnSeries(spec), len(tbl.PeriodStarts()), result.InputRows, result.FilteredRows, result.DroppedRows,
		duration, cfg.HistoryBackend)
	return err
}

// drawnSeries counts the series that carry data, skipping legend-only entries.
func drawnSeries(spec *schema.ChartSpec) int {
	n := 0
	for _, s := range spec.Series {
		if !s.LegendOnly {
			n++
		}
	}
	return n
}
