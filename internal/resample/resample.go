// Package resample implements frequency-bucketed aggregation of numeric
// columns over a time axis.
package resample

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/RMahshie/tabled/internal/dataset"
)

// Request names the time column and how to bucket and reduce it.
type Request struct {
	TimeColumn  string
	Frequency   Frequency
	Aggregation Aggregation
}

// Result is a resampled table plus any partial-success warnings.
type Result struct {
	Table       *dataset.Table
	Warnings    []string
	DroppedRows int
}

// Resample buckets the table's rows by the request frequency and aggregates
// every numeric column except the time column itself. The input table is
// not mutated. Rows whose time value fails conversion are dropped with a
// warning; if no row converts the whole operation fails with
// ConversionError, and if no numeric column remains NoNumericColumnsError.
// The output holds one row per non-empty bucket, sorted ascending, with the
// time column first as integer epoch seconds.
func Resample(t *dataset.Table, req Request) (*Result, error) {
	timeCol := t.Column(req.TimeColumn)
	if timeCol == nil {
		return nil, fmt.Errorf("unknown column %q", req.TimeColumn)
	}

	times, valid := timeCol.Timestamps()
	var rows []int
	for i, ok := range valid {
		if ok {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return nil, &dataset.ConversionError{Column: req.TimeColumn}
	}

	var aggCols []*dataset.Column
	for _, c := range t.Columns {
		if c.Type == dataset.TypeNumeric && c.Name != req.TimeColumn {
			aggCols = append(aggCols, c)
		}
	}
	if len(aggCols) == 0 {
		return nil, &dataset.NoNumericColumnsError{}
	}

	result := &Result{DroppedRows: t.NumRows() - len(rows)}
	if result.DroppedRows > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"%d rows in %q could not be converted to timestamps and were ignored",
			result.DroppedRows, req.TimeColumn))
	}

	// Stable sort by timestamp so first/last are time-ordered and ties keep
	// input order.
	sort.SliceStable(rows, func(a, b int) bool {
		return times[rows[a]].Before(times[rows[b]])
	})

	type bucket struct {
		start time.Time
		cells [][]float64 // per aggregated column, present values in time order
	}
	var buckets []*bucket
	byStart := make(map[int64]*bucket)
	for _, r := range rows {
		start := req.Frequency.BucketStart(times[r])
		b, ok := byStart[start.Unix()]
		if !ok {
			b = &bucket{start: start, cells: make([][]float64, len(aggCols))}
			byStart[start.Unix()] = b
			buckets = append(buckets, b)
		}
		for ci, c := range aggCols {
			if c.Valid[r] {
				b.cells[ci] = append(b.cells[ci], c.Nums[r])
			}
		}
	}
	sort.Slice(buckets, func(a, b int) bool { return buckets[a].start.Before(buckets[b].start) })

	// Time column restored first, as integer seconds since epoch.
	n := len(buckets)
	secs := make([]float64, n)
	text := make([]string, n)
	tvalid := make([]bool, n)
	for i, b := range buckets {
		secs[i] = float64(b.start.Unix())
		text[i] = strconv.FormatInt(b.start.Unix(), 10)
		tvalid[i] = true
	}
	cols := []*dataset.Column{{
		Name:  req.TimeColumn,
		Type:  dataset.TypeNumeric,
		Text:  text,
		Nums:  secs,
		Valid: tvalid,
	}}

	for ci, c := range aggCols {
		vals := make([]float64, n)
		for i, b := range buckets {
			vals[i] = req.Aggregation.Apply(b.cells[ci])
		}
		cols = append(cols, dataset.NewNumericColumn(c.Name, vals, nil))
	}

	out, err := dataset.NewTable(cols...)
	if err != nil {
		return nil, err
	}
	result.Table = out
	return result, nil
}
