package core

import (
	"testing"

	"github.com/lushalytics/dateplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFiltersKeepsOrder(t *testing.T) {
	tbl := salesTable()
	out, err := ApplyFilters(tbl, map[string][]string{"cat": {"A"}})
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())
	assert.Equal(t, schema.Float(10), out.Rows[0]["value"].Num)
	assert.Equal(t, schema.Float(30), out.Rows[1]["value"].Num)
	assert.Equal(t, schema.Float(50), out.Rows[2]["value"].Num)
	assert.Equal(t, 5, tbl.Len(), "input must not change")
}

func TestApplyFiltersAndAcrossColumns(t *testing.T) {
	out, err := ApplyFilters(salesTable(), map[string][]string{
		"cat":   {"A", "B"},
		"count": {"1", "4"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())
	for _, r := range out.Rows {
		assert.Contains(t, []string{"1", "4"}, r["count"].String())
	}
}

func TestApplyFiltersMatchesSourceText(t *testing.T) {
	out, err := ApplyFilters(zipTable(), map[string][]string{"zip": {"01234"}})
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, schema.Float(5), out.Rows[0]["value"].Num)
	assert.Equal(t, schema.Float(9), out.Rows[1]["value"].Num)

	out, err = ApplyFilters(zipTable(), map[string][]string{"zip": {"1234"}})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestApplyFiltersPassthrough(t *testing.T) {
	tbl := salesTable()
	out, err := ApplyFilters(tbl, nil)
	require.NoError(t, err)
	assert.Equal(t, tbl.Rows, out.Rows)
}

func TestApplyFiltersUnknownColumn(t *testing.T) {
	_, err := ApplyFilters(salesTable(), map[string][]string{"region": {"EU"}})
	assert.ErrorIs(t, err, schema.ErrInvalidColumn)
}

func TestApplyFiltersEmptyAllowedSet(t *testing.T) {
	out, err := ApplyFilters(salesTable(), map[string][]string{"cat": {}})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestApplyLookback(t *testing.T) {
	tbl := salesTable()
	now := date(2024, 1, 10)

	out := ApplyLookback(tbl, "date", 7, now)
	// 2024-01-03 00:00 is exactly 7 days back; the 15:00 row on the 10th is after now.
	require.Equal(t, 2, out.Len())
	assert.Equal(t, date(2024, 1, 3), out.Rows[0]["date"].Time)
	assert.Equal(t, date(2024, 1, 8), out.Rows[1]["date"].Time)

	assert.Equal(t, 5, ApplyLookback(tbl, "date", 0, now).Len())
}
