package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ColumnType is the inferred type of a column: numeric, datetime or text.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeNumeric
	TypeDatetime
)

func (t ColumnType) String() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypeDatetime:
		return "datetime"
	default:
		return "text"
	}
}

// classifyThreshold is the fraction of non-empty cells that must parse for a
// column to be classified as numeric or datetime.
const classifyThreshold = 0.8

// Column is a single named column. Text always holds the raw cell text; the
// typed slice matching Type (Nums or Times) is populated alongside it. Valid
// is false for empty cells and cells that failed to parse as the column type.
type Column struct {
	Name  string
	Type  ColumnType
	Text  []string
	Nums  []float64
	Times []time.Time
	Valid []bool
}

// Table is an ordered set of columns sharing one row count. A Table is never
// mutated after construction; transformations produce new Tables.
type Table struct {
	Columns []*Column
}

// NewTable builds a table and verifies all columns share one row count.
func NewTable(cols ...*Column) (*Table, error) {
	if len(cols) > 0 {
		n := len(cols[0].Text)
		for _, c := range cols[1:] {
			if len(c.Text) != n {
				return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name, len(c.Text), n)
			}
		}
	}
	return &Table{Columns: cols}, nil
}

func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Text)
}

func (t *Table) NumCols() int {
	return len(t.Columns)
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// NumericColumns returns the names of numeric columns in table order.
func (t *Table) NumericColumns() []string {
	var names []string
	for _, c := range t.Columns {
		if c.Type == TypeNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// Records returns up to limit rows of raw cell text. limit <= 0 means all.
func (t *Table) Records(limit int) [][]string {
	n := t.NumRows()
	if limit > 0 && limit < n {
		n = limit
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = c.Text[i]
		}
		rows[i] = row
	}
	return rows
}

// NewTextColumn builds a text column. Empty cells are marked invalid.
func NewTextColumn(name string, vals []string) *Column {
	valid := make([]bool, len(vals))
	for i, v := range vals {
		valid[i] = strings.TrimSpace(v) != ""
	}
	return &Column{Name: name, Type: TypeText, Text: vals, Valid: valid}
}

// NewNumericColumn builds a numeric column; valid may be nil when every
// value is present. Cell text is the shortest round-trip formatting.
func NewNumericColumn(name string, vals []float64, valid []bool) *Column {
	if valid == nil {
		valid = make([]bool, len(vals))
		for i := range valid {
			valid[i] = true
		}
	}
	text := make([]string, len(vals))
	for i, v := range vals {
		if valid[i] && !math.IsNaN(v) {
			text[i] = strconv.FormatFloat(v, 'g', -1, 64)
		} else {
			valid[i] = false
		}
	}
	return &Column{Name: name, Type: TypeNumeric, Text: text, Nums: vals, Valid: valid}
}

// NewTimeColumn builds a datetime column; valid may be nil.
func NewTimeColumn(name string, vals []time.Time, valid []bool) *Column {
	if valid == nil {
		valid = make([]bool, len(vals))
		for i := range valid {
			valid[i] = true
		}
	}
	text := make([]string, len(vals))
	for i, v := range vals {
		if valid[i] {
			text[i] = v.UTC().Format(time.RFC3339)
		}
	}
	return &Column{Name: name, Type: TypeDatetime, Text: text, Times: vals, Valid: valid}
}

// FromRecords builds a table from a header row and raw string rows,
// classifying and parsing each column. Short rows are padded with empty
// cells. Blank header cells are named Column_N.
func FromRecords(headers []string, rows [][]string) *Table {
	cols := make([]*Column, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		cells := make([]string, len(rows))
		for r, row := range rows {
			if i < len(row) {
				cells[r] = row[i]
			}
		}
		cols[i] = classifyColumn(h, cells)
	}
	return &Table{Columns: cols}
}

// classifyColumn infers a column type from raw cells and parses the typed
// representation. A column is numeric (resp. datetime) when at least 80% of
// its non-empty cells parse; otherwise it is text.
func classifyColumn(name string, cells []string) *Column {
	nonEmpty, numericOK, timeOK := 0, 0, 0
	for _, v := range cells {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			numericOK++
		} else if _, ok := ParseTimestamp(v); ok {
			timeOK++
		}
	}
	if nonEmpty == 0 {
		return NewTextColumn(name, cells)
	}
	if float64(numericOK)/float64(nonEmpty) >= classifyThreshold {
		nums := make([]float64, len(cells))
		valid := make([]bool, len(cells))
		for i, v := range cells {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err == nil {
				nums[i], valid[i] = f, true
			} else {
				nums[i] = math.NaN()
			}
		}
		return &Column{Name: name, Type: TypeNumeric, Text: cells, Nums: nums, Valid: valid}
	}
	if float64(timeOK)/float64(nonEmpty) >= classifyThreshold {
		times := make([]time.Time, len(cells))
		valid := make([]bool, len(cells))
		for i, v := range cells {
			if ts, ok := ParseTimestamp(strings.TrimSpace(v)); ok {
				times[i], valid[i] = ts, true
			}
		}
		return &Column{Name: name, Type: TypeDatetime, Text: cells, Times: times, Valid: valid}
	}
	return NewTextColumn(name, cells)
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseTimestamp parses a textual timestamp against the supported layouts.
// Times without an explicit zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Timestamps converts a column to per-row timestamps. Numeric columns are
// read as seconds since epoch, datetime columns use their parsed times, and
// text columns are parsed row by row. Rows that fail conversion are marked
// invalid rather than failing the whole column.
func (c *Column) Timestamps() ([]time.Time, []bool) {
	n := len(c.Text)
	times := make([]time.Time, n)
	valid := make([]bool, n)
	switch c.Type {
	case TypeNumeric:
		for i, v := range c.Nums {
			if !c.Valid[i] || math.IsNaN(v) {
				continue
			}
			sec := math.Floor(v)
			times[i] = time.Unix(int64(sec), int64((v-sec)*1e9)).UTC()
			valid[i] = true
		}
	case TypeDatetime:
		copy(times, c.Times)
		copy(valid, c.Valid)
	default:
		for i, v := range c.Text {
			if ts, ok := ParseTimestamp(strings.TrimSpace(v)); ok {
				times[i], valid[i] = ts, true
			}
		}
	}
	return times, valid
}
