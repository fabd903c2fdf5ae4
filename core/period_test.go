package core

import (
	"testing"
	"time"

	"github.com/lushalytics/dateplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriod(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		g         schema.Granularity
		weekStart time.Weekday
		start     time.Time
		end       time.Time
		label     string
	}{
		{"daily floors the time", date(2024, 1, 10).Add(15 * time.Hour), schema.Daily, time.Monday,
			date(2024, 1, 10), date(2024, 1, 10), "2024-01-10"},
		{"weekly midweek", date(2024, 1, 10), schema.Weekly, time.Monday,
			date(2024, 1, 8), date(2024, 1, 14), "2024-01-08/2024-01-14"},
		{"weekly on start day", date(2024, 1, 8), schema.Weekly, time.Monday,
			date(2024, 1, 8), date(2024, 1, 14), "2024-01-08/2024-01-14"},
		{"weekly on last day", date(2024, 1, 14), schema.Weekly, time.Monday,
			date(2024, 1, 8), date(2024, 1, 14), "2024-01-08/2024-01-14"},
		{"weekly sunday start", date(2024, 1, 10), schema.Weekly, time.Sunday,
			date(2024, 1, 7), date(2024, 1, 13), "2024-01-07/2024-01-13"},
		{"weekly across year", date(2024, 1, 2), schema.Weekly, time.Sunday,
			date(2023, 12, 31), date(2024, 1, 6), "2023-12-31/2024-01-06"},
		{"monthly leap february", date(2024, 2, 15), schema.Monthly, time.Monday,
			date(2024, 2, 1), date(2024, 2, 29), "2024-02-01/2024-02-29"},
		{"monthly december", date(2023, 12, 31), schema.Monthly, time.Monday,
			date(2023, 12, 1), date(2023, 12, 31), "2023-12-01/2023-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPeriod(tt.date, tt.g, tt.weekStart)
			require.NoError(t, err)
			assert.Equal(t, tt.start, p.Start)
			assert.Equal(t, tt.end, p.End)
			assert.Equal(t, tt.label, p.Label)
			assert.Equal(t, tt.g, p.Granularity)
			assert.False(t, tt.date.Before(p.Start))
			assert.False(t, floorDay(tt.date).After(p.End))
		})
	}
}

func TestNewPeriodInvalidGranularity(t *testing.T) {
	_, err := NewPeriod(date(2024, 1, 1), "hourly", time.Monday)
	assert.ErrorIs(t, err, schema.ErrInvalidGranularity)
}

func TestBucketRowsContainsEveryDate(t *testing.T) {
	tbl := salesTable()
	for _, g := range []schema.Granularity{schema.Daily, schema.Weekly, schema.Monthly} {
		rows, err := BucketRows(tbl, "date", g, time.Monday)
		require.NoError(t, err)
		require.Len(t, rows, tbl.Len())
		for _, r := range rows {
			assert.False(t, r.Date.Before(r.Period.Start), "%s: %v before %v", g, r.Date, r.Period.Start)
			assert.False(t, floorDay(r.Date).After(r.Period.End), "%s: %v after %v", g, r.Date, r.Period.End)
			if g == schema.Daily {
				assert.Equal(t, r.Period.Start, r.Period.End)
				assert.Equal(t, floorDay(r.Date), r.Period.Start)
				assert.Equal(t, r.Period.Start.Format(schema.DateFormat), r.Period.Label)
			}
		}
	}
}

func TestBucketRowsUnknownDateColumn(t *testing.T) {
	_, err := BucketRows(salesTable(), "when", schema.Daily, time.Monday)
	assert.ErrorIs(t, err, schema.ErrInvalidColumn)
}
