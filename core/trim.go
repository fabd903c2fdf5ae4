package core

import (
	"time"

	"github.com/lushalytics/dateplot/schema"
)

// DropIncompletePeriod removes the rows of the latest period when the data
// does not reach that period's last day. It never looks at the wall clock.
// Daily granularity is returned unchanged.
func DropIncompletePeriod(rows []schema.BucketedRow, g schema.Granularity) []schema.BucketedRow {
	if g == schema.Daily || len(rows) == 0 {
		return rows
	}

	var maxDate, maxEnd time.Time
	for _, r := range rows {
		if d := floorDay(r.Date); d.After(maxDate) {
			maxDate = d
		}
		if r.Period.End.After(maxEnd) {
			maxEnd = r.Period.End
		}
	}
	if !maxDate.Before(maxEnd) {
		return rows
	}

	kept := make([]schema.BucketedRow, 0, len(rows))
	for _, r := range rows {
		if !r.Period.End.Equal(maxEnd) {
			kept = append(kept, r)
		}
	}
	return kept
}
