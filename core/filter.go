package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/lushalytics/dateplot/schema"
)

// ApplyFilters keeps the rows whose value in every filtered column is one of
// the allowed values. Row order is preserved and the input is never modified.
func ApplyFilters(tbl *schema.Table, filters map[string][]string) (*schema.Table, error) {
	if len(filters) == 0 {
		return tbl.WithRows(tbl.Rows), nil
	}

	// Sorted for a deterministic error when several columns are unknown
	cols := make([]string, 0, len(filters))
	for col := range filters {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	allowed := make(map[string]map[string]struct{}, len(filters))
	for _, col := range cols {
		if !tbl.HasColumn(col) {
			return nil, fmt.Errorf("%w: filter column %q not in table", schema.ErrInvalidColumn, col)
		}
		set := make(map[string]struct{}, len(filters[col]))
		for _, v := range filters[col] {
			set[v] = struct{}{}
		}
		allowed[col] = set
	}

	kept := make([]schema.Row, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		if rowMatches(row, cols, allowed) {
			kept = append(kept, row)
		}
	}
	return tbl.WithRows(kept), nil
}

func rowMatches(row schema.Row, cols []string, allowed map[string]map[string]struct{}) bool {
	for _, col := range cols {
		if _, ok := allowed[col][row[col].String()]; !ok {
			return false
		}
	}
	return true
}

// ApplyLookback keeps the rows dated within daysBack days of now, inclusive on
// both ends. A non-positive daysBack keeps everything.
func ApplyLookback(tbl *schema.Table, dateCol string, daysBack int, now time.Time) *schema.Table {
	if daysBack <= 0 {
		return tbl.WithRows(tbl.Rows)
	}
	cutoff := now.AddDate(0, 0, -daysBack)
	kept := make([]schema.Row, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		d := row[dateCol].Time
		if d.IsZero() || d.Before(cutoff) || d.After(now) {
			continue
		}
		kept = append(kept, row)
	}
	return tbl.WithRows(kept)
}
