// Package agg reduces bucketed rows to one row per (period, segment) bucket.
package agg

import (
	"fmt"
	"slices"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/lushalytics/dateplot/schema"
)

// Options controls a single aggregation.
type Options struct {
	Targets     []string
	SegmentCol  string
	WeightCol   string
	Mode        schema.AggregationMode
	Granularity schema.Granularity
}

// reducer collapses the values of one column in one bucket. weights is
// aligned with values and is only populated for weighted modes.
type reducer func(values, weights []schema.NullFloat) schema.NullFloat

var reducers = map[schema.AggregationMode]reducer{
	schema.SumAgg:         reduceSum,
	schema.AvgAgg:         reduceAvg,
	schema.WeightedAvgAgg: reduceWeightedAvg,
}

// Validate checks opts against the columns of tbl before any work is done.
func Validate(tbl *schema.Table, opts Options) error {
	if _, ok := schema.ValidGranularities[opts.Granularity]; !ok {
		return fmt.Errorf("%w: %q", schema.ErrInvalidGranularity, opts.Granularity)
	}
	if opts.Mode != schema.NoAggregation {
		if _, ok := reducers[opts.Mode]; !ok {
			return fmt.Errorf("%w: %q", schema.ErrInvalidAggregator, opts.Mode)
		}
	}
	if len(opts.Targets) == 0 {
		return fmt.Errorf("%w: at least one target column is required", schema.ErrInvalidColumn)
	}
	for _, t := range opts.Targets {
		if !tbl.HasColumn(t) {
			return fmt.Errorf("%w: target column %q not in table", schema.ErrInvalidColumn, t)
		}
		if tbl.Kind(t) != schema.NumberColumn {
			return fmt.Errorf("%w: target column %q is %s, not number", schema.ErrInvalidColumn, t, tbl.Kind(t))
		}
	}
	if opts.SegmentCol != "" {
		if !tbl.HasColumn(opts.SegmentCol) {
			return fmt.Errorf("%w: segment column %q not in table", schema.ErrInvalidColumn, opts.SegmentCol)
		}
		if len(opts.Targets) > 1 {
			return fmt.Errorf("%w: segment %q with %d targets (exactly one allowed)", schema.ErrIncompatibleOptions, opts.SegmentCol, len(opts.Targets))
		}
	}
	if opts.Mode == schema.WeightedAvgAgg && opts.WeightCol == "" {
		return fmt.Errorf("%w: weighted_avg needs a weight column", schema.ErrMissingWeightColumn)
	}
	if opts.WeightCol != "" {
		if !tbl.HasColumn(opts.WeightCol) {
			return fmt.Errorf("%w: %q not in table", schema.ErrMissingWeightColumn, opts.WeightCol)
		}
		if tbl.Kind(opts.WeightCol) != schema.NumberColumn {
			return fmt.Errorf("%w: weight column %q is %s, not number", schema.ErrInvalidColumn, opts.WeightCol, tbl.Kind(opts.WeightCol))
		}
	}
	if opts.Mode == schema.NoAggregation && opts.Granularity != schema.Daily {
		return fmt.Errorf("%w: granularity %q", schema.ErrAggregatorRequired, opts.Granularity)
	}
	return nil
}

// OutputColumns returns the value columns Aggregate emits, in order.
// The weight column rides along as a per-bucket sum.
func OutputColumns(opts Options) []string {
	cols := make([]string, 0, len(opts.Targets)+1)
	cols = append(cols, opts.Targets...)
	if opts.WeightCol != "" && !slices.Contains(opts.Targets, opts.WeightCol) {
		cols = append(cols, opts.WeightCol)
	}
	return cols
}

// Aggregate reduces rows to one AggregatedRow per (period, segment) bucket.
// With NoAggregation and daily granularity every row passes through as-is.
// Rows with an empty segment value are left out, as are buckets they would form.
func Aggregate(rows []schema.BucketedRow, opts Options) (*schema.AggregatedTable, error) {
	cols := OutputColumns(opts)
	out := &schema.AggregatedTable{
		Granularity: opts.Granularity,
		SegmentCol:  opts.SegmentCol,
		Columns:     cols,
	}

	if opts.Mode == schema.NoAggregation {
		if opts.Granularity != schema.Daily {
			return nil, fmt.Errorf("%w: granularity %q", schema.ErrAggregatorRequired, opts.Granularity)
		}
		out.Rows = passthrough(rows, cols, opts.SegmentCol)
		return out, nil
	}

	reduce, ok := reducers[opts.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", schema.ErrInvalidAggregator, opts.Mode)
	}
	if opts.Mode == schema.WeightedAvgAgg && opts.WeightCol == "" {
		return nil, fmt.Errorf("%w: weighted_avg needs a weight column", schema.ErrMissingWeightColumn)
	}

	for _, b := range groupBuckets(rows, opts.SegmentCol) {
		weights := columnValues(b.rows, opts.WeightCol)
		values := make(map[string]schema.NullFloat, len(cols))
		for _, col := range cols {
			if col == opts.WeightCol {
				values[col] = reduceSum(weights, nil)
				continue
			}
			var w []schema.NullFloat
			if opts.Mode == schema.WeightedAvgAgg {
				w = weights
			}
			values[col] = reduce(columnValues(b.rows, col), w)
		}
		out.Rows = append(out.Rows, schema.AggregatedRow{
			Period:  b.period,
			Segment: b.segment,
			Values:  values,
		})
	}
	return out, nil
}

type bucketKey struct {
	period  string
	segment string
}

type bucket struct {
	period  schema.Period
	segment string
	rows    []schema.Row
}

// groupBuckets groups rows by (period start, segment) and returns the buckets
// sorted by period start, then segment.
func groupBuckets(rows []schema.BucketedRow, segmentCol string) []*bucket {
	index := make(map[bucketKey]*bucket)
	var buckets []*bucket
	for _, r := range rows {
		seg := ""
		if segmentCol != "" {
			seg = r.Row[segmentCol].String()
			if seg == "" {
				continue
			}
		}
		key := bucketKey{period: r.Period.Label, segment: seg}
		b, ok := index[key]
		if !ok {
			b = &bucket{period: r.Period, segment: seg}
			index[key] = b
			buckets = append(buckets, b)
		}
		b.rows = append(b.rows, r.Row)
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		if !buckets[i].period.Start.Equal(buckets[j].period.Start) {
			return buckets[i].period.Start.Before(buckets[j].period.Start)
		}
		return buckets[i].segment < buckets[j].segment
	})
	return buckets
}

// passthrough emits one row per input row, ordered by date.
func passthrough(rows []schema.BucketedRow, cols []string, segmentCol string) []schema.AggregatedRow {
	sorted := make([]schema.BucketedRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	out := make([]schema.AggregatedRow, 0, len(sorted))
	for _, r := range sorted {
		seg := ""
		if segmentCol != "" {
			seg = r.Row[segmentCol].String()
			if seg == "" {
				continue
			}
		}
		values := make(map[string]schema.NullFloat, len(cols))
		for _, col := range cols {
			values[col] = r.Row[col].Num
		}
		out = append(out, schema.AggregatedRow{Period: r.Period, Segment: seg, Values: values})
	}
	return out
}

func columnValues(rows []schema.Row, col string) []schema.NullFloat {
	if col == "" {
		return nil
	}
	vals := make([]schema.NullFloat, len(rows))
	for i, r := range rows {
		vals[i] = r[col].Num
	}
	return vals
}

func present(values []schema.NullFloat) []float64 {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Valid {
			xs = append(xs, v.Float)
		}
	}
	return xs
}

// reduceSum is a true sum over the bucket. All values missing means no data.
func reduceSum(values, _ []schema.NullFloat) schema.NullFloat {
	xs := present(values)
	if len(xs) == 0 {
		return schema.NoData
	}
	return schema.Float(stats.Sample{Xs: xs}.Sum())
}

// reduceAvg is the arithmetic mean of the present values.
func reduceAvg(values, _ []schema.NullFloat) schema.NullFloat {
	xs := present(values)
	if len(xs) == 0 {
		return schema.NoData
	}
	return schema.Float(stats.Mean(xs))
}

// reduceWeightedAvg returns sum(x_i * w_i / W) where W is the sum of every
// present weight in the bucket, including rows whose metric is missing.
// W == 0 or no row with both values present means no data.
func reduceWeightedAvg(values, weights []schema.NullFloat) schema.NullFloat {
	total := present(weights)
	if len(total) == 0 {
		return schema.NoData
	}
	w := stats.Sample{Xs: total}.Sum()
	if w == 0 {
		return schema.NoData
	}

	var sample stats.Sample
	for i, v := range values {
		if i >= len(weights) || !v.Valid || !weights[i].Valid {
			continue
		}
		sample.Xs = append(sample.Xs, v.Float)
		sample.Weights = append(sample.Weights, weights[i].Float)
	}
	if len(sample.Xs) == 0 {
		return schema.NoData
	}
	return schema.Float(sample.Sum() / w)
}
