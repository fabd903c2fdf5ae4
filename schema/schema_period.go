package schema

import "time"

// Period is the time bucket a row falls into.
// Start and End are both midnight; End is the last calendar day in the period.
type Period struct {
	Granularity Granularity `json:"granularity"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Label       string      `json:"label"` // "2024-01-01/2024-01-07"; daily is "2024-01-01"
}

// BucketedRow pairs an input row with its raw date and derived period.
type BucketedRow struct {
	Date   time.Time
	Period Period
	Row    Row
}

// AggregatedRow is the reduction of every row in one (period, segment) bucket.
type AggregatedRow struct {
	Period  Period               `json:"period"`
	Segment string               `json:"segment,omitempty"`
	Values  map[string]NullFloat `json:"values"`
	Hover   string               `json:"hover"`
}

// AggregatedTable is the output of the date pipeline.
// Rows are ordered by period start, then by segment.
type AggregatedTable struct {
	Granularity Granularity     `json:"granularity"`
	SegmentCol  string          `json:"segment_col,omitempty"`
	Columns     []string        `json:"columns"` // value columns in output order
	Rows        []AggregatedRow `json:"rows"`
}

// Segments returns the distinct segment values in first-appearance order.
func (t *AggregatedTable) Segments() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.Rows {
		if _, ok := seen[r.Segment]; ok {
			continue
		}
		seen[r.Segment] = struct{}{}
		out = append(out, r.Segment)
	}
	return out
}

// PeriodStarts returns the distinct period starts in ascending order.
func (t *AggregatedTable) PeriodStarts() []time.Time {
	var out []time.Time
	for _, r := range t.Rows {
		if n := len(out); n > 0 && out[n-1].Equal(r.Period.Start) {
			continue
		}
		out = append(out, r.Period.Start)
	}
	return out
}
