package core

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/lushalytics/dateplot/schema"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	hoverBreak  = "<br>"
	hoverArrow  = " → "
	hoverNoData = "n/a"

	// Above this magnitude x*100 is no longer exact, and cents are noise anyway.
	roundingLimit = 1e15
)

// TitleCase turns a column name like "sample_size" into "Sample Size".
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// FormatHoverValue rounds to two decimals and adds thousands separators.
func FormatHoverValue(v schema.NullFloat) string {
	if !v.Valid || math.IsNaN(v.Float) {
		return hoverNoData
	}
	f := v.Float
	if math.Abs(f) < roundingLimit {
		f = math.Round(f*100) / 100
	}
	if f == 0 {
		f = 0 // drops the sign of -0
	}
	return humanize.CommafWithDigits(f, 2)
}

// CompileHoverText returns a copy of tbl with Hover set on every row.
func CompileHoverText(tbl *schema.AggregatedTable) *schema.AggregatedTable {
	out := *tbl
	out.Rows = make([]schema.AggregatedRow, len(tbl.Rows))
	for i, r := range tbl.Rows {
		r.Hover = hoverText(r, tbl)
		out.Rows[i] = r
	}
	return &out
}

func hoverText(r schema.AggregatedRow, tbl *schema.AggregatedTable) string {
	var sb strings.Builder
	start := r.Period.Start.Format(schema.DateFormat)
	if tbl.Granularity == schema.Daily {
		sb.WriteString(start)
	} else {
		sb.WriteString(start + hoverArrow + r.Period.End.Format(schema.DateFormat))
	}
	if tbl.SegmentCol != "" {
		sb.WriteString(hoverBreak + TitleCase(tbl.SegmentCol) + ": " + r.Segment)
	}
	for _, col := range tbl.Columns {
		sb.WriteString(hoverBreak + TitleCase(col) + ": " + FormatHoverValue(r.Values[col]))
	}
	return sb.String()
}
