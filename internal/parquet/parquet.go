// Package parquet writes dateplot aggregates and run history to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/lushalytics/dateplot/schema"
	"github.com/parquet-go/parquet-go"
)

// PlotRun maps one row of the dateplot_runs history table.
type PlotRun struct {
	RunID int64 `parquet:"run_id,snappy"`

	// Kind is the chart kind that was plotted
	Kind string `parquet:"kind,snappy"`

	StartTime time.Time  `parquet:"start_time,snappy"`
	EndTime   *time.Time `parquet:"end_time,optional,snappy"`

	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`
	InputRows     int32  `parquet:"input_rows,snappy"`
	OutputRows    int32  `parquet:"output_rows,snappy"`
	SeriesCount   int32  `parquet:"series_count,snappy"`

	// ConfigParams contains the JSON-encoded plot parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// AggregatedValue is one cell of an aggregated table in long format.
// Tables have a dynamic set of value columns, so each (period, segment,
// column) triple becomes its own Parquet row.
type AggregatedValue struct {
	PeriodStart time.Time `parquet:"period_start,snappy"`
	PeriodEnd   time.Time `parquet:"period_end,snappy"`
	PeriodLabel string    `parquet:"period_label,snappy,dict"`
	Granularity string    `parquet:"granularity,snappy,dict"`

	// Segment is nil when the table is not segmented
	Segment *string `parquet:"segment,optional,snappy,dict"`

	Column string `parquet:"column,snappy,dict"`

	// Value is nil for no data
	Value *float64 `parquet:"value,optional,snappy"`
}

// WritePlotRunsParquet writes history rows to outputPath.
func WritePlotRunsParquet(data []PlotRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteAggregatedParquet writes aggregated values to outputPath.
func WriteAggregatedParquet(data []AggregatedValue, outputPath string) error {
	return writeParquet(data, outputPath)
}

func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to PlotRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []PlotRun {
	result := make([]PlotRun, len(records))
	for i, record := range records {
		result[i] = PlotRun{
			RunID:         record.RunID,
			Kind:          record.Kind,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			InputRows:     record.InputRows,
			OutputRows:    record.OutputRows,
			SeriesCount:   record.SeriesCount,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertAggregatedTable flattens tbl into long format, one value per output column.
func ConvertAggregatedTable(tbl *schema.AggregatedTable) []AggregatedValue {
	if tbl == nil {
		return nil
	}
	result := make([]AggregatedValue, 0, len(tbl.Rows)*len(tbl.Columns))
	for _, row := range tbl.Rows {
		var segment *string
		if tbl.SegmentCol != "" {
			s := row.Segment
			segment = &s
		}
		for _, col := range tbl.Columns {
			var value *float64
			if v := row.Values[col]; v.Valid {
				f := v.Float
				value = &f
			}
			result = append(result, AggregatedValue{
				PeriodStart: row.Period.Start,
				PeriodEnd:   row.Period.End,
				PeriodLabel: row.Period.Label,
				Granularity: string(tbl.Granularity),
				Segment:     segment,
				Column:      col,
				Value:       value,
			})
		}
	}
	return result
}
