// Package source loads the flat input table from CSV or JSON files.
package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lushalytics/dateplot/internal/contract"
	"github.com/lushalytics/dateplot/schema"
)

// TimeLayouts are tried in order when inferring time columns.
var TimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	schema.DateFormat,
}

// checkEvery is how many records are read between context checks.
const checkEvery = 1024

// FileSource reads tables from the local filesystem.
type FileSource struct{}

var _ contract.TableSource = FileSource{} // Compile-time check

// Load reads path as CSV or JSON depending on its extension.
func (FileSource) Load(ctx context.Context, path string) (*schema.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(ctx, f)
	case ".json":
		return ReadJSON(ctx, f)
	default:
		return nil, fmt.Errorf("unsupported input format %q (must be .csv or .json)", ext)
	}
}

// ReadCSV reads a CSV stream whose first record is the header.
func ReadCSV(ctx context.Context, r io.Reader) (*schema.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("input has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}
	if err := checkColumns(columns); err != nil {
		return nil, err
	}

	var records [][]string
	for {
		if len(records)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}
	return BuildTable(columns, records), nil
}

// ReadJSON reads a JSON array of flat objects. Column order follows first appearance.
func ReadJSON(ctx context.Context, r io.Reader) (*schema.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var columns []string
	index := make(map[string]int)
	var objects []map[string]string

	for dec.More() {
		if len(objects)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		obj, keys, err := readObject(dec)
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON object %d: %w", len(objects)+1, err)
		}
		for _, k := range keys {
			if _, ok := index[k]; !ok {
				index[k] = len(columns)
				columns = append(columns, k)
			}
		}
		objects = append(objects, obj)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if err := checkColumns(columns); err != nil {
		return nil, err
	}

	records := make([][]string, len(objects))
	for i, obj := range objects {
		record := make([]string, len(columns))
		for j, col := range columns {
			record[j] = obj[col]
		}
		records[i] = record
	}
	return BuildTable(columns, records), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q in JSON input, found %v", want, tok)
	}
	return nil
}

// readObject decodes one flat object into its string form, keeping key order.
func readObject(dec *json.Decoder) (map[string]string, []string, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, err
	}
	obj := make(map[string]string)
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		value, err := scalarString(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", key, err)
		}
		if _, seen := obj[key]; !seen {
			keys = append(keys, key)
		}
		obj[key] = value
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, nil, err
	}
	return obj, keys, nil
}

// scalarString renders a JSON scalar as the text a CSV cell would hold.
func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case '{', '[':
		return "", errors.New("nested values are not supported")
	default:
		// numbers and booleans keep their literal form
		return string(raw), nil
	}
}

func checkColumns(columns []string) error {
	if len(columns) == 0 {
		return errors.New("input has no columns")
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if c == "" {
			return errors.New("input has an empty column name")
		}
		if _, ok := seen[c]; ok {
			return fmt.Errorf("input has duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// BuildTable infers a kind per column and converts every record into typed cells.
// A column is a time column when every non-empty value parses with TimeLayouts,
// else numeric when every non-empty value parses as a float, else string.
// Columns with no values at all are numeric so they aggregate to no data.
func BuildTable(columns []string, records [][]string) *schema.Table {
	kinds := make(map[string]schema.ColumnKind, len(columns))
	for j, col := range columns {
		kinds[col] = inferKind(records, j)
	}

	tbl := schema.NewTable(columns, kinds)
	tbl.Rows = make([]schema.Row, 0, len(records))
	for _, record := range records {
		row := make(schema.Row, len(columns))
		for j, col := range columns {
			var value string
			if j < len(record) {
				value = strings.TrimSpace(record[j])
			}
			row[col] = toCell(kinds[col], value)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

func inferKind(records [][]string, j int) schema.ColumnKind {
	isTime, isNumber, seen := true, true, false
	for _, record := range records {
		if j >= len(record) {
			continue
		}
		v := strings.TrimSpace(record[j])
		if v == "" {
			continue
		}
		seen = true
		if isTime {
			if _, ok := ParseTime(v); !ok {
				isTime = false
			}
		}
		if isNumber {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isNumber = false
			}
		}
		if !isTime && !isNumber {
			return schema.StringColumn
		}
	}
	switch {
	case !seen:
		return schema.NumberColumn
	case isTime:
		return schema.TimeColumn
	case isNumber:
		return schema.NumberColumn
	default:
		return schema.StringColumn
	}
}

func toCell(kind schema.ColumnKind, value string) schema.Cell {
	var cell schema.Cell
	switch kind {
	case schema.TimeColumn:
		t, _ := ParseTime(value)
		cell = schema.TimeCell(t)
	case schema.NumberColumn:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(f) {
			cell = schema.NumberCell(schema.NoData)
		} else {
			cell = schema.NumberCell(schema.Float(f))
		}
	default:
		return schema.StringCell(value)
	}
	cell.Str = value
	return cell
}

// ParseTime parses s with the first matching layout in TimeLayouts.
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range TimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
