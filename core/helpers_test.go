package core

import (
	"time"

	"github.com/lushalytics/dateplot/schema"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func num(v float64) schema.Cell { return schema.NumberCell(schema.Float(v)) }

// zipTable has a numeric-looking zip column read from text with leading zeros.
func zipTable() *schema.Table {
	tbl := schema.NewTable([]string{"date", "zip", "value"}, map[string]schema.ColumnKind{
		"date":  schema.TimeColumn,
		"zip":   schema.NumberColumn,
		"value": schema.NumberColumn,
	})
	add := func(d time.Time, zip string, zipNum, value float64) {
		tbl.Rows = append(tbl.Rows, schema.Row{
			"date":  schema.TimeCell(d),
			"zip":   schema.Cell{Kind: schema.NumberColumn, Str: zip, Num: schema.Float(zipNum)},
			"value": num(value),
		})
	}
	add(date(2024, 1, 1), "01234", 1234, 5)
	add(date(2024, 1, 1), "02134", 2134, 7)
	add(date(2024, 1, 2), "01234", 1234, 9)
	return tbl
}

// salesTable has two categories over the first two weeks of January 2024.
// 2024-01-01 is a Monday.
func salesTable() *schema.Table {
	tbl := schema.NewTable([]string{"date", "cat", "value", "count", "pred"}, map[string]schema.ColumnKind{
		"date":  schema.TimeColumn,
		"cat":   schema.StringColumn,
		"value": schema.NumberColumn,
		"count": schema.NumberColumn,
		"pred":  schema.NumberColumn,
	})
	add := func(d time.Time, cat string, value, count, pred float64) {
		tbl.Rows = append(tbl.Rows, schema.Row{
			"date":  schema.TimeCell(d),
			"cat":   schema.StringCell(cat),
			"value": num(value),
			"count": num(count),
			"pred":  num(pred),
		})
	}
	add(date(2024, 1, 1), "A", 10, 1, 0.5)
	add(date(2024, 1, 1), "B", 20, 3, 0.25)
	add(date(2024, 1, 3), "A", 30, 2, 0.75)
	add(date(2024, 1, 8), "B", 40, 4, 0.5)
	add(date(2024, 1, 10).Add(15*time.Hour), "A", 50, 1, 0.5)
	return tbl
}
