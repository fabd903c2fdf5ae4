package core

import (
	"maps"
	"sort"

	"github.com/lushalytics/dateplot/schema"
)

// BuildSeries turns an aggregated table into one series per segment value
// (first appearance order) when segmentCol is set, or one per target
// otherwise. Points are sorted by x. The table is not modified.
func BuildSeries(tbl *schema.AggregatedTable, targets []string, segmentCol string) []schema.Series {
	if segmentCol != "" {
		if len(targets) == 0 {
			return nil
		}
		target := targets[0]
		segments := tbl.Segments()
		series := make([]schema.Series, 0, len(segments))
		for i, seg := range segments {
			var points []schema.Point
			for _, r := range tbl.Rows {
				if r.Segment == seg {
					points = append(points, toPoint(r, target))
				}
			}
			series = append(series, schema.Series{Name: seg, ColorIndex: i, Points: sortPoints(points)})
		}
		return series
	}

	series := make([]schema.Series, 0, len(targets))
	for i, target := range targets {
		points := make([]schema.Point, 0, len(tbl.Rows))
		for _, r := range tbl.Rows {
			points = append(points, toPoint(r, target))
		}
		series = append(series, schema.Series{Name: target, ColorIndex: i, Points: sortPoints(points)})
	}
	return series
}

func toPoint(r schema.AggregatedRow, col string) schema.Point {
	return schema.Point{X: r.Period.Start, Y: r.Values[col], Hover: r.Hover}
}

func sortPoints(points []schema.Point) []schema.Point {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].X.Before(points[j].X)
	})
	return points
}

// TotalColumn names the period total column added by PartOfWhole.
func TotalColumn(target string) string {
	return "total_" + target
}

// PercentageColumn names the share-of-total column added by PartOfWhole.
func PercentageColumn(target string) string {
	return target + "_percentage"
}

// PartOfWhole returns a copy of tbl with the period total of target and each
// row's share of it as a percentage. A zero or missing total yields no data.
func PartOfWhole(tbl *schema.AggregatedTable, target string) *schema.AggregatedTable {
	totals := make(map[string]schema.NullFloat)
	for _, r := range tbl.Rows {
		v := r.Values[target]
		if !v.Valid {
			continue
		}
		t := totals[r.Period.Label]
		totals[r.Period.Label] = schema.Float(t.Float + v.Float)
	}

	totalCol, pctCol := TotalColumn(target), PercentageColumn(target)
	out := *tbl
	out.Columns = append(append([]string{}, tbl.Columns...), totalCol, pctCol)
	out.Rows = make([]schema.AggregatedRow, len(tbl.Rows))
	for i, r := range tbl.Rows {
		values := maps.Clone(r.Values)
		total := totals[r.Period.Label]
		values[totalCol] = total
		values[pctCol] = schema.NoData
		if v := r.Values[target]; v.Valid && total.Valid && total.Float != 0 {
			values[pctCol] = schema.Float(v.Float / total.Float * 100)
		}
		r.Values = values
		out.Rows[i] = r
	}
	return &out
}
