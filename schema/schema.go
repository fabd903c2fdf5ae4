// Package schema has configs, models and sentinel errors for all parts of dateplot.
package schema

import (
	"encoding/json"
	"strconv"
	"time"
)

// ColumnKind is the inferred type of a table column.
type ColumnKind int

// All column kinds supported.
const (
	StringColumn ColumnKind = iota
	NumberColumn
	TimeColumn
)

// String returns the lowercase name of the kind.
func (k ColumnKind) String() string {
	switch k {
	case NumberColumn:
		return "number"
	case TimeColumn:
		return "time"
	default:
		return "string"
	}
}

// NullFloat is a float64 that may be "no data". The zero value is NoData.
type NullFloat struct {
	Float float64
	Valid bool
}

// NoData is the missing-value sentinel.
var NoData = NullFloat{}

// Float wraps v as a present value.
func Float(v float64) NullFloat {
	return NullFloat{Float: v, Valid: true}
}

// String returns the shortest decimal form of the value, or "" for NoData.
func (n NullFloat) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Float, 'f', -1, 64)
}

// MarshalJSON encodes NoData as null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float)
}

// UnmarshalJSON decodes null as NoData.
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NoData
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Float(v)
	return nil
}

// Cell is a single typed value in a Row.
// Str holds the value for string cells and the source text for cells read
// from a file, so "01234" in a numeric column keeps its leading zero.
type Cell struct {
	Kind ColumnKind
	Str  string
	Num  NullFloat
	Time time.Time
}

// StringCell builds a string cell.
func StringCell(s string) Cell { return Cell{Kind: StringColumn, Str: s} }

// NumberCell builds a numeric cell.
func NumberCell(n NullFloat) Cell { return Cell{Kind: NumberColumn, Num: n} }

// TimeCell builds a timestamp cell.
func TimeCell(t time.Time) Cell { return Cell{Kind: TimeColumn, Time: t} }

// String returns the source text of the cell when known, else its canonical
// text form. Filters and segments compare against it.
func (c Cell) String() string {
	if c.Str != "" {
		return c.Str
	}
	switch c.Kind {
	case NumberColumn:
		return c.Num.String()
	case TimeColumn:
		if c.Time.IsZero() {
			return ""
		}
		if c.Time.Equal(time.Date(c.Time.Year(), c.Time.Month(), c.Time.Day(), 0, 0, 0, 0, c.Time.Location())) {
			return c.Time.Format(DateFormat)
		}
		return c.Time.Format(time.RFC3339)
	default:
		return c.Str
	}
}

// Row is one record of the input table keyed by column name.
type Row map[string]Cell

// Table is a flat, column-typed set of rows. Pipeline stages never mutate a
// Table they receive; they build new ones with WithRows.
type Table struct {
	Columns []string              // Column names in source order
	Kinds   map[string]ColumnKind // Column name to inferred kind
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(columns []string, kinds map[string]ColumnKind) *Table {
	if kinds == nil {
		kinds = make(map[string]ColumnKind, len(columns))
	}
	return &Table{Columns: columns, Kinds: kinds}
}

// HasColumn reports whether name is a column of t.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Kinds[name]
	return ok
}

// Kind returns the kind of the named column.
func (t *Table) Kind(name string) ColumnKind {
	return t.Kinds[name]
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// WithRows returns a new table sharing t's column schema but holding rows.
func (t *Table) WithRows(rows []Row) *Table {
	return &Table{Columns: t.Columns, Kinds: t.Kinds, Rows: rows}
}

// DateFormat is the layout used for period labels and date-only cells.
const DateFormat = "2006-01-02"
