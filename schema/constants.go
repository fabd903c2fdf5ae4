package schema

import (
	"fmt"
	"strings"
	"time"
)

// Custom string types for type safety.
type (
	// Granularity is the time bucket size used to group rows.
	Granularity string

	// AggregationMode selects the reduction applied to each bucket.
	AggregationMode string

	// OutputMode represents the format of the output.
	OutputMode string

	// ChartKind identifies which plotter produced a chart specification.
	ChartKind string

	// TraceMode is the drawing mode of a series (lines, markers, bars).
	TraceMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All granularities supported.
const (
	Daily   Granularity = "daily" // default
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// All aggregation modes supported. NoAggregation is only valid for daily charts.
const (
	NoAggregation  AggregationMode = ""
	SumAgg         AggregationMode = "sum"
	AvgAgg         AggregationMode = "avg"
	WeightedAvgAgg AggregationMode = "weighted_avg"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
	SVGOut     OutputMode = "svg"
	PNGOut     OutputMode = "png"
)

// All chart kinds supported.
const (
	LineChart      ChartKind = "line"
	ErrorLineChart ChartKind = "error_line"
	BarChart       ChartKind = "bar"
)

// All trace modes emitted.
const (
	LinesMarkersTrace TraceMode = "lines+markers"
	MarkersTrace      TraceMode = "markers"
	LinesTrace        TraceMode = "lines"
	BarTrace          TraceMode = "bar"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidGranularities lists all valid granularities.
var ValidGranularities = map[Granularity]struct{}{
	Daily:   {},
	Weekly:  {},
	Monthly: {},
}

// ValidAggregationModes lists all named aggregation modes.
var ValidAggregationModes = map[AggregationMode]struct{}{
	SumAgg:         {},
	AvgAgg:         {},
	WeightedAvgAgg: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
	SVGOut:     {},
	PNGOut:     {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ParseGranularity normalizes s and checks it against ValidGranularities.
// An empty string means Daily.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	if g == "" {
		return Daily, nil
	}
	if _, ok := ValidGranularities[g]; !ok {
		return "", fmt.Errorf("%w: %q (must be daily, weekly, monthly)", ErrInvalidGranularity, s)
	}
	return g, nil
}

// ParseAggregationMode normalizes s and checks it against ValidAggregationModes.
// An empty string or "none" means NoAggregation.
func ParseAggregationMode(s string) (AggregationMode, error) {
	m := strings.ToLower(strings.TrimSpace(s))
	if m == "" || m == "none" {
		return NoAggregation, nil
	}
	mode := AggregationMode(m)
	if _, ok := ValidAggregationModes[mode]; !ok {
		return "", fmt.Errorf("%w: %q (must be sum, avg, weighted_avg)", ErrInvalidAggregator, s)
	}
	return mode, nil
}

// DefaultWeekStart is the first day of weekly buckets when none is set.
const DefaultWeekStart = time.Monday

// ParseWeekday parses an English weekday name ("monday", "Mon") into a time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultWeekStart, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("invalid weekday %q", s)
}
