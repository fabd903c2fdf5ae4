package core

import (
	"fmt"
	"time"

	"github.com/lushalytics/dateplot/schema"
)

// floorDay truncates t to midnight in its own location.
func floorDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NewPeriod returns the period of the given granularity containing t.
// Weekly periods begin on weekStart; monthly periods are calendar months.
func NewPeriod(t time.Time, g schema.Granularity, weekStart time.Weekday) (schema.Period, error) {
	day := floorDay(t)
	var start, end time.Time
	switch g {
	case schema.Daily:
		start, end = day, day
	case schema.Weekly:
		offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
		start = day.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 6)
	case schema.Monthly:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		end = start.AddDate(0, 1, -1)
	default:
		return schema.Period{}, fmt.Errorf("%w: %q", schema.ErrInvalidGranularity, g)
	}
	label := start.Format(schema.DateFormat)
	if g != schema.Daily {
		label += "/" + end.Format(schema.DateFormat)
	}
	return schema.Period{
		Granularity: g,
		Start:       start,
		End:         end,
		Label:       label,
	}, nil
}

// BucketRows attaches a period to every row. Rows with no date are skipped.
func BucketRows(tbl *schema.Table, dateCol string, g schema.Granularity, weekStart time.Weekday) ([]schema.BucketedRow, error) {
	if !tbl.HasColumn(dateCol) {
		return nil, fmt.Errorf("%w: date column %q not in table", schema.ErrInvalidColumn, dateCol)
	}
	out := make([]schema.BucketedRow, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		d := row[dateCol].Time
		if d.IsZero() {
			continue
		}
		p, err := NewPeriod(d, g, weekStart)
		if err != nil {
			return nil, err
		}
		out = append(out, schema.BucketedRow{Date: d, Period: p, Row: row})
	}
	return out, nil
}
